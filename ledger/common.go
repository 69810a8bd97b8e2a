package ledger

import (
	"encoding/hex"
	"errors"

	"github.com/fxamacker/cbor/v2"
	"github.com/lunfardo314/unitrie/common"
	"golang.org/x/crypto/blake2b"
)

const IDLength = 32

type (
	// BlockID is the blake2b hash of the canonical encoding of the whole block
	BlockID [IDLength]byte

	// TransactionID is the blake2b hash of the canonical encoding of the transaction.
	// It depends on the full content, inputs and outputs, and not on where
	// the transaction is included
	TransactionID [IDLength]byte

	// CoinID identifies one produced coin. It is derived from the producing
	// transaction ID, the height of the block of inclusion and the output index,
	// so the same transaction body included at another height produces different coin IDs
	CoinID [IDLength]byte
)

// cborEnc is the canonical encoder used for all content-derived identifiers
// and for block storage. Canonical form makes hashing deterministic
var cborEnc = mustEncMode()

func mustEncMode() cbor.EncMode {
	ret, err := cbor.CanonicalEncOptions().EncMode()
	common.AssertNoError(err)
	return ret
}

func mustCanonicalBytes(v interface{}) []byte {
	data, err := cborEnc.Marshal(v)
	common.AssertNoError(err)
	return data
}

func hashContent(v interface{}) [IDLength]byte {
	return blake2b.Sum256(mustCanonicalBytes(v))
}

func BlockIDFromBytes(data []byte) (ret BlockID, err error) {
	if len(data) != IDLength {
		err = errors.New("BlockIDFromBytes: wrong data length")
		return
	}
	copy(ret[:], data)
	return
}

func (bid BlockID) Bytes() []byte {
	return bid[:]
}

func (bid BlockID) String() string {
	return hex.EncodeToString(bid[:])
}

func TransactionIDFromBytes(data []byte) (ret TransactionID, err error) {
	if len(data) != IDLength {
		err = errors.New("TransactionIDFromBytes: wrong data length")
		return
	}
	copy(ret[:], data)
	return
}

func (txid TransactionID) Bytes() []byte {
	return txid[:]
}

func (txid TransactionID) String() string {
	return hex.EncodeToString(txid[:])
}

func CoinIDFromBytes(data []byte) (ret CoinID, err error) {
	if len(data) != IDLength {
		err = errors.New("CoinIDFromBytes: wrong data length")
		return
	}
	copy(ret[:], data)
	return
}

func (cid CoinID) Bytes() []byte {
	return cid[:]
}

func (cid CoinID) String() string {
	return hex.EncodeToString(cid[:])
}
