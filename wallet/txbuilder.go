package wallet

import (
	"bytes"
	"sort"

	"github.com/lunfardo314/utxowallet/ledger"
)

// CreateManualTransaction builds a transaction consuming exactly the given
// coins and producing exactly the given outputs, in the given order.
// Each input is tagged with the stored coin's owner. The UTXO set is not
// mutated: the caller submits the transaction to the ledger and re-syncs
func (w *Wallet) CreateManualTransaction(inputIDs []ledger.CoinID, outputs []ledger.Coin) (*ledger.Transaction, error) {
	if len(inputIDs) == 0 {
		return nil, ErrZeroInputs
	}
	inputs := make([]ledger.Input, 0, len(inputIDs))
	for _, id := range inputIDs {
		coin, found := w.utxo.get(id)
		if !found {
			return nil, ErrUnknownCoin
		}
		inputs = append(inputs, ledger.Input{
			CoinID:    id,
			Signature: ledger.SignedBy(coin.Owner),
		})
	}
	for _, out := range outputs {
		if out.Value == 0 {
			return nil, ErrZeroCoinValue
		}
	}
	return &ledger.Transaction{
		Inputs:  inputs,
		Outputs: outputs,
	}, nil
}

// CreateAutomaticTransaction selects coins from the wallet to pay the given
// amount to the recipient, plus a tip left to the ledger. The tip is never an
// output: it is the difference between consumed and produced value. Any
// surplus above amount+tip comes back as change to a wallet-owned address.
// Selection is largest coin first, deterministic per call
func (w *Wallet) CreateAutomaticTransaction(recipient ledger.Address, amount, tip uint64) (*ledger.Transaction, error) {
	if amount == 0 {
		return nil, ErrZeroCoinValue
	}
	required := amount + tip
	if required < amount {
		// uint64 wrap: no wallet can cover such a request
		return nil, ErrInsufficientFunds
	}

	selected, total, err := w.selectCoins(required)
	if err != nil {
		return nil, err
	}

	inputs := make([]ledger.Input, 0, len(selected))
	for _, s := range selected {
		inputs = append(inputs, ledger.Input{
			CoinID:    s.id,
			Signature: ledger.SignedBy(s.coin.Owner),
		})
	}
	outputs := []ledger.Coin{
		{Value: amount, Owner: recipient},
	}
	if total > required {
		// change coin. Zero-value coins are invalid, so exact cover produces none
		changeAddr, found := w.changeAddress()
		if !found {
			return nil, ErrNoOwnedAddresses
		}
		outputs = append(outputs, ledger.Coin{
			Value: total - required,
			Owner: changeAddr,
		})
	}
	return &ledger.Transaction{
		Inputs:  inputs,
		Outputs: outputs,
	}, nil
}

// selectCoins accumulates wallet coins, largest value first with ties broken
// by coin ID, until the required value is covered
func (w *Wallet) selectCoins(required uint64) ([]spentCoin, uint64, error) {
	candidates := make([]spentCoin, 0, w.utxo.size())
	for id, coin := range w.utxo.coins {
		candidates = append(candidates, spentCoin{id: id, coin: coin})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].coin.Value != candidates[j].coin.Value {
			return candidates[i].coin.Value > candidates[j].coin.Value
		}
		return bytes.Compare(candidates[i].id[:], candidates[j].id[:]) < 0
	})

	selected := candidates[:0]
	total := uint64(0)
	for _, c := range candidates {
		if total >= required {
			break
		}
		selected = append(selected, c)
		total += c.coin.Value
	}
	if total < required {
		return nil, 0, ErrInsufficientFunds
	}
	return selected, total, nil
}

// changeAddress picks the smallest tracked address, so repeated builds on the
// same wallet state produce identical transactions
func (w *Wallet) changeAddress() (ledger.Address, bool) {
	var ret ledger.Address
	found := false
	for a := range w.addresses {
		if !found || a.Less(ret) {
			ret = a
			found = true
		}
	}
	return ret, found
}
