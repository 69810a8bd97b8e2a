package wallet

import (
	"github.com/lunfardo314/utxowallet/ledger"
)

// utxoSet holds the coins currently unspent and owned by a tracked address,
// as of the block the wallet's cursor points at. It is derived state: fully
// reconstructible by replaying the chain, never the source of truth
type utxoSet struct {
	coins map[ledger.CoinID]ledger.Coin
}

func newUTXOSet() *utxoSet {
	return &utxoSet{
		coins: make(map[ledger.CoinID]ledger.Coin),
	}
}

func (u *utxoSet) insert(id ledger.CoinID, coin ledger.Coin) {
	u.coins[id] = coin
}

func (u *utxoSet) remove(id ledger.CoinID) (ledger.Coin, bool) {
	ret, found := u.coins[id]
	if found {
		delete(u.coins, id)
	}
	return ret, found
}

func (u *utxoSet) get(id ledger.CoinID) (ledger.Coin, bool) {
	ret, found := u.coins[id]
	return ret, found
}

// ownedBy returns IDs and values of all coins of the given owner
func (u *utxoSet) ownedBy(addr ledger.Address) map[ledger.CoinID]uint64 {
	ret := make(map[ledger.CoinID]uint64)
	for id, coin := range u.coins {
		if coin.Owner == addr {
			ret[id] = coin.Value
		}
	}
	return ret
}

// sumOwnedBy returns the total value of all coins of the given owner
func (u *utxoSet) sumOwnedBy(addr ledger.Address) uint64 {
	ret := uint64(0)
	for _, coin := range u.coins {
		if coin.Owner == addr {
			ret += coin.Value
		}
	}
	return ret
}

// sumAll returns the total value of all coins in the set
func (u *utxoSet) sumAll() uint64 {
	ret := uint64(0)
	for _, coin := range u.coins {
		ret += coin.Value
	}
	return ret
}

func (u *utxoSet) size() int {
	return len(u.coins)
}
