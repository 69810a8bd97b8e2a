package ledger

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Block links to its parent by ID and carries an ordered list of transactions.
// There is no header/body separation: the ID covers the whole content
type Block struct {
	Parent BlockID
	Number uint64
	Body   []*Transaction
}

// genesisID is fixed and known to every client without fetching the block
var genesisID = Genesis().ID()

// Genesis returns the one and only genesis block: all-0 sentinel parent,
// height 0, empty body
func Genesis() *Block {
	return &Block{}
}

func GenesisID() BlockID {
	return genesisID
}

func (b *Block) ID() BlockID {
	return hashContent(b)
}

func (b *Block) Bytes() []byte {
	return mustCanonicalBytes(b)
}

func BlockFromBytes(data []byte) (*Block, error) {
	ret := &Block{}
	if err := cbor.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("BlockFromBytes: %w", err)
	}
	return ret, nil
}

func (b *Block) String() string {
	return fmt.Sprintf("block %d (%s), parent %s, %d transaction(s)",
		b.Number, b.ID().String(), b.Parent.String(), len(b.Body))
}
