package ledger

import "fmt"

// Coin is an unspent output: some value locked by an owner address.
// A coin of value 0 is never produced by this module's own builders.
// Coins observed in ledger data are taken as-is, whatever they contain
type Coin struct {
	Value uint64
	Owner Address
}

func (c Coin) String() string {
	return fmt.Sprintf("%d/%s", c.Value, c.Owner.String())
}
