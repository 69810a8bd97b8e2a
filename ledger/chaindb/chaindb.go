package chaindb

import (
	"sync"

	"github.com/lunfardo314/unitrie/common"
	"github.com/lunfardo314/utxowallet/ledger"
	"go.uber.org/atomic"
)

type (
	// BlockStore is the key/value backing of the block database
	BlockStore interface {
		common.KVReader
		common.BatchedUpdatable
	}

	// ChainDB is an in-memory ledger node: a content-addressed fork tree
	// of blocks plus a manually set best block. There is no fork choice rule,
	// the best block is whatever was declared best last. That makes arbitrary
	// reorg scenarios trivial to stage in tests.
	//
	// Blocks are stored by ID, so orphaned branches remain fetchable.
	// The only structural assumption is that every stored block except genesis
	// has its parent stored too.
	//
	// ChainDB counts queries made through the ledger access interface.
	// Tests use the counter to catch a wallet which re-scans the whole chain
	// instead of syncing incrementally
	ChainDB struct {
		mutex      sync.RWMutex
		blocks     BlockStore // block ID -> canonical block bytes
		best       ledger.BlockID
		numQueries atomic.Uint64
	}
)

// New creates a chain DB with only the genesis block in it, marked best
func New() *ChainDB {
	ret := &ChainDB{
		blocks: common.NewInMemoryKVStore(),
		best:   ledger.GenesisID(),
	}
	ret.mustStoreBlock(ledger.Genesis())
	return ret
}

func (db *ChainDB) mustStoreBlock(b *ledger.Block) {
	batch := db.blocks.BatchedWriter()
	id := b.ID()
	batch.Set(id[:], b.Bytes())
	common.AssertNoError(batch.Commit())
}

func (db *ChainDB) getBlock(id ledger.BlockID) (*ledger.Block, bool) {
	data := db.blocks.Get(id[:])
	if len(data) == 0 {
		return nil, false
	}
	ret, err := ledger.BlockFromBytes(data)
	common.AssertNoError(err)
	return ret, true
}

// BestBlockAtHeight returns the ID of the block on the current canonical
// chain at height h, walking parent links down from the best block.
// Not found means the canonical chain is shorter than h
func (db *ChainDB) BestBlockAtHeight(h uint64) (ledger.BlockID, bool) {
	db.numQueries.Inc()

	db.mutex.RLock()
	defer db.mutex.RUnlock()

	b, found := db.getBlock(db.best)
	common.Assert(found, "chaindb: best block %s must be in the DB", db.best.String())

	if h > b.Number {
		return ledger.BlockID{}, false
	}
	for b.Number != h {
		b, found = db.getBlock(b.Parent)
		common.Assert(found, "chaindb: every stored block must have its parent stored")
	}
	return b.ID(), true
}

// GetBlock returns the whole block by ID, canonical or orphaned
func (db *ChainDB) GetBlock(id ledger.BlockID) (*ledger.Block, bool) {
	db.numQueries.Inc()

	db.mutex.RLock()
	defer db.mutex.RUnlock()

	return db.getBlock(id)
}

// AddBlock stores a new block on top of the given parent and returns its ID.
// The best block does not change. Panics if the parent is unknown
func (db *ChainDB) AddBlock(parent ledger.BlockID, body []*ledger.Transaction) ledger.BlockID {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	parentBlock, found := db.getBlock(parent)
	common.Assert(found, "chaindb: cannot build child block on unknown parent %s", parent.String())

	b := &ledger.Block{
		Parent: parent,
		Number: parentBlock.Number + 1,
		Body:   body,
	}
	db.mustStoreBlock(b)
	return b.ID()
}

// SetBest declares a known block best. The canonical chain becomes the
// parent path of that block, whatever its length
func (db *ChainDB) SetBest(id ledger.BlockID) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	_, found := db.getBlock(id)
	common.Assert(found, "chaindb: cannot set unknown block %s as best", id.String())
	db.best = id
}

// AddBlockAsBest stores a new block and immediately declares it best
func (db *ChainDB) AddBlockAsBest(parent ledger.BlockID, body []*ledger.Transaction) ledger.BlockID {
	ret := db.AddBlock(parent, body)
	db.SetBest(ret)
	return ret
}

// BestBlock returns the ID of the current best block
func (db *ChainDB) BestBlock() ledger.BlockID {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	return db.best
}

// NumQueries returns how many times the DB was queried through the ledger
// access interface since creation
func (db *ChainDB) NumQueries() uint64 {
	return db.numQueries.Load()
}
