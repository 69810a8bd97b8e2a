package ledger

import (
	"golang.org/x/crypto/blake2b"
)

type (
	// Transaction consumes coins by ID and produces new coins.
	// The listed order of inputs and outputs is part of the content
	Transaction struct {
		Inputs  []Input
		Outputs []Coin
	}

	// Input points at the consumed coin. The signature is a mock tag,
	// only the coin ID matters for bookkeeping
	Input struct {
		CoinID    CoinID
		Signature Signature
	}
)

// coinOrigin pins a produced coin to the producing transaction,
// the height of inclusion and the output index
type coinOrigin struct {
	Tx     TransactionID
	Height uint64
	Index  uint32
}

func (tx *Transaction) ID() TransactionID {
	return hashContent(tx)
}

// CoinID returns the ID of the output produced at outputIndex, assuming
// the transaction is included in the block at the given height.
// Height is part of the hash: the same transaction body replayed at another
// height during a reorg does not collide with the abandoned instance
func (tx *Transaction) CoinID(blockNumber uint64, outputIndex int) CoinID {
	return hashContent(coinOrigin{
		Tx:     tx.ID(),
		Height: blockNumber,
		Index:  uint32(outputIndex),
	})
}

// ForEachInputID iterates over consumed coin IDs in listed order until fun returns false
func (tx *Transaction) ForEachInputID(fun func(i int, id CoinID) bool) {
	for i := range tx.Inputs {
		if !fun(i, tx.Inputs[i].CoinID) {
			return
		}
	}
}

// ForEachOutputWithID iterates over produced coins together with the IDs they
// take when the transaction is included at the given height
func (tx *Transaction) ForEachOutputWithID(blockNumber uint64, fun func(i int, id CoinID, coin Coin) bool) {
	txid := tx.ID()
	for i := range tx.Outputs {
		id := CoinID(hashContent(coinOrigin{
			Tx:     txid,
			Height: blockNumber,
			Index:  uint32(i),
		}))
		if !fun(i, id, tx.Outputs[i]) {
			return
		}
	}
}

// DummyInput returns a placeholder input with an invalid signature and a fixed
// nonsense coin ID. Useful for minting coins in tests and for marker transactions
func DummyInput() Input {
	return Input{
		CoinID: blake2b.Sum256([]byte("placeholder input, spends nothing")),
	}
}
