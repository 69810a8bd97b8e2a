package ledger

import (
	"bytes"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/blake2b"
)

const AddressLength = 8

// Address is an opaque account identifier. It is comparable, so it can be
// a map key, and byte comparison gives it a total order for deterministic
// coin selection and change address choice
type Address [AddressLength]byte

// AddressFromString derives a deterministic address from an arbitrary name.
// Convenient in tests: named participants instead of opaque hex
func AddressFromString(name string) (ret Address) {
	h := blake2b.Sum256([]byte(name))
	copy(ret[:], h[:AddressLength])
	return
}

func AddressFromBytes(data []byte) (ret Address, err error) {
	if len(data) != AddressLength {
		err = errors.New("AddressFromBytes: wrong data length")
		return
	}
	copy(ret[:], data)
	return
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// Less is the total order used wherever address choice must be deterministic
func (a Address) Less(another Address) bool {
	return bytes.Compare(a[:], another[:]) < 0
}

// Signature is a mock authorization tag: it names the address claimed to
// authorize the spend. No cryptography is involved and the wallet never
// verifies it, that is the ledger's business
type Signature struct {
	Signer Address
	Valid  bool
}

// SignedBy returns a valid mock signature of the given address
func SignedBy(addr Address) Signature {
	return Signature{Signer: addr, Valid: true}
}
