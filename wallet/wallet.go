package wallet

import (
	"sort"

	"github.com/gammazero/deque"
	"github.com/lunfardo314/utxowallet/ledger"
	"go.uber.org/zap"
)

type (
	// ChainAccess is the consumed ledger source interface. Both operations are
	// read-only and synchronous. No snapshot isolation across calls: the
	// canonical chain may change between any two of them
	ChainAccess interface {
		// BestBlockAtHeight returns the ID of the block on the current canonical
		// chain at the given height. Not found when the chain is shorter
		BestBlockAtHeight(h uint64) (ledger.BlockID, bool)
		// GetBlock returns the whole block by ID, including orphaned blocks.
		// Not found only when the ID is entirely unknown
		GetBlock(id ledger.BlockID) (*ledger.Block, bool)
	}

	// Wallet tracks coins owned by its addresses by syncing against a ledger
	// source which may reorganize at any time. All state is in memory and
	// derived: replaying the canonical chain from genesis reproduces it.
	//
	// Not safe for concurrent use: one wallet, one goroutine
	Wallet struct {
		addresses map[ledger.Address]struct{}
		utxo      *utxoSet
		// the cursor: the block the wallet currently believes canonical
		bestHeight uint64
		bestBlock  ledger.BlockID
		// one undo record per applied height, bottom at height 1
		undo *deque.Deque[*undoRecord]
		log  *zap.SugaredLogger
	}
)

// New creates a wallet tracking the given addresses, positioned at genesis
func New(addresses ...ledger.Address) *Wallet {
	return NewWithLogger(zap.NewNop().Sugar(), addresses...)
}

// NewWithLogger is New with sync progress logging, the way the test harness uses it
func NewWithLogger(log *zap.SugaredLogger, addresses ...ledger.Address) *Wallet {
	addrs := make(map[ledger.Address]struct{})
	for _, a := range addresses {
		addrs[a] = struct{}{}
	}
	return &Wallet{
		addresses:  addrs,
		utxo:       newUTXOSet(),
		bestHeight: 0,
		bestBlock:  ledger.GenesisID(),
		undo:       new(deque.Deque[*undoRecord]),
		log:        log,
	}
}

// BestHeight returns the height of the cursor
func (w *Wallet) BestHeight() uint64 {
	return w.bestHeight
}

// BestBlock returns the block ID of the cursor
func (w *Wallet) BestBlock() ledger.BlockID {
	return w.bestBlock
}

// TracksAddress tells if the address is owned by this wallet
func (w *Wallet) TracksAddress(addr ledger.Address) bool {
	_, ok := w.addresses[addr]
	return ok
}

// Addresses returns all tracked addresses in deterministic (byte) order
func (w *Wallet) Addresses() []ledger.Address {
	ret := make([]ledger.Address, 0, len(w.addresses))
	for a := range w.addresses {
		ret = append(ret, a)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Less(ret[j])
	})
	return ret
}

// TotalAssetsOf returns the total value owned by the address
func (w *Wallet) TotalAssetsOf(addr ledger.Address) (uint64, error) {
	if !w.TracksAddress(addr) {
		return 0, ErrForeignAddress
	}
	return w.utxo.sumOwnedBy(addr), nil
}

// NetWorth returns the total value of all coins in the wallet.
// Only tracked coins ever enter the UTXO set, so nothing else is counted
func (w *Wallet) NetWorth() uint64 {
	return w.utxo.sumAll()
}

// AllCoinsOf returns IDs and values of all known coins of the address
func (w *Wallet) AllCoinsOf(addr ledger.Address) (map[ledger.CoinID]uint64, error) {
	if !w.TracksAddress(addr) {
		return nil, ErrForeignAddress
	}
	return w.utxo.ownedBy(addr), nil
}

// CoinDetails returns value and owner of the coin by its ID
func (w *Wallet) CoinDetails(id ledger.CoinID) (ledger.Coin, error) {
	ret, found := w.utxo.get(id)
	if !found {
		return ledger.Coin{}, ErrUnknownCoin
	}
	return ret, nil
}

// NumCoins returns the number of coins currently in the UTXO set
func (w *Wallet) NumCoins() int {
	return w.utxo.size()
}
