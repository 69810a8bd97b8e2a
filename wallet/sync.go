package wallet

import (
	"github.com/lunfardo314/unitrie/common"
	"github.com/lunfardo314/utxowallet/ledger"
)

type (
	// undoRecord is the exact set of UTXO mutations one applied block caused,
	// enough to reverse the block without consulting the ledger source
	undoRecord struct {
		// parent of the applied block: where the cursor goes on rollback
		parent ledger.BlockID
		// coins removed by the block's inputs, with their full pre-removal content
		spent []spentCoin
		// coin IDs inserted for tracked owners
		created []ledger.CoinID
	}

	spentCoin struct {
		id   ledger.CoinID
		coin ledger.Coin
	}
)

// Sync reconciles the wallet with the current canonical view of the ledger
// source: first unwinds applied blocks back to the fork point, if the chain
// reorganized, then replays canonical blocks forward up to the tip.
//
// Safe to call repeatedly. If a block fetch fails mid-way, the pass stops
// early and keeps everything applied so far: each applied block was reported
// canonical when it was fetched, so the retained prefix is valid and the next
// Sync resumes from it
func (w *Wallet) Sync(chain ChainAccess) {
	w.rollback(chain)
	w.rollforward(chain)
}

// rollback pops and reverses undo records while the ledger disagrees with the
// cursor. An absent answer counts as disagreement: the canonical chain got
// shorter than the cursor. Genesis never mismatches, so height 0 terminates
func (w *Wallet) rollback(chain ChainAccess) {
	for w.bestHeight > 0 {
		id, found := chain.BestBlockAtHeight(w.bestHeight)
		if found && id == w.bestBlock {
			break
		}
		common.Assert(w.undo.Len() > 0, "sync: undo log must cover every applied height")
		rec := w.undo.PopBack()

		// re-insert spent coins first, remove created IDs last. A coin created
		// and spent within the same block is on both lists and its net effect
		// is nil, so the removal must win
		for _, s := range rec.spent {
			w.utxo.insert(s.id, s.coin)
		}
		for _, cid := range rec.created {
			w.utxo.remove(cid)
		}
		w.log.Debugf("rolled back block %s at height %d", w.bestBlock.String(), w.bestHeight)

		w.bestHeight--
		w.bestBlock = rec.parent
	}
}

// rollforward applies canonical blocks above the cursor until the ledger
// reports no higher canonical height, or a block body is unavailable
func (w *Wallet) rollforward(chain ChainAccess) {
	for {
		h := w.bestHeight + 1
		id, found := chain.BestBlockAtHeight(h)
		if !found {
			// caught up with the canonical tip
			return
		}
		b, found := chain.GetBlock(id)
		if !found {
			w.log.Debugf("block %s not available, sync postponed", id.String())
			return
		}
		common.Assert(b.Number == h, "sync: block %s reports height %d, queried at height %d",
			id.String(), b.Number, h)
		w.undo.PushBack(w.applyBlock(b))
		w.bestHeight = h
		w.bestBlock = id
		w.log.Debugf("applied block %s at height %d, %d transaction(s)",
			id.String(), h, len(b.Body))
	}
}

// applyBlock mutates the UTXO set by the block's transactions in listed order.
// The order is load-bearing: a transaction may spend a coin created by an
// earlier transaction of the same block
func (w *Wallet) applyBlock(b *ledger.Block) *undoRecord {
	rec := &undoRecord{parent: b.Parent}
	for _, tx := range b.Body {
		tx.ForEachInputID(func(_ int, id ledger.CoinID) bool {
			// absence is normal: the coin belongs to an untracked owner
			// or was never seen by this wallet
			if coin, found := w.utxo.remove(id); found {
				rec.spent = append(rec.spent, spentCoin{id: id, coin: coin})
			}
			return true
		})
		tx.ForEachOutputWithID(b.Number, func(_ int, id ledger.CoinID, coin ledger.Coin) bool {
			if !w.TracksAddress(coin.Owner) {
				return true
			}
			w.utxo.insert(id, coin)
			rec.created = append(rec.created, id)
			return true
		})
	}
	return rec
}
