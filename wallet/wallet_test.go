package wallet_test

import (
	"testing"

	"github.com/lunfardo314/utxowallet/ledger"
	"github.com/lunfardo314/utxowallet/ledger/chaindb"
	"github.com/lunfardo314/utxowallet/util/testutil"
	"github.com/lunfardo314/utxowallet/wallet"
	"github.com/stretchr/testify/require"
)

var (
	alice   = ledger.AddressFromString("alice")
	bob     = ledger.AddressFromString("bob")
	charlie = ledger.AddressFromString("charlie")
)

func walletWithAlice() *wallet.Wallet {
	return wallet.New(alice)
}

// markerTx makes the forked side of a chain differ from the abandoned one,
// so staged reorg scenarios never accidentally rebuild identical blocks
func markerTx() *ledger.Transaction {
	return &ledger.Transaction{
		Inputs:  []ledger.Input{ledger.DummyInput()},
		Outputs: []ledger.Coin{{Value: 123, Owner: ledger.AddressFromString("marker")}},
	}
}

// mintTx fabricates a coin out of a dummy input. The wallet does not validate,
// so this is the standard way to fund test scenarios
func mintTx(value uint64, owner ledger.Address) *ledger.Transaction {
	return &ledger.Transaction{
		Inputs:  []ledger.Input{ledger.DummyInput()},
		Outputs: []ledger.Coin{{Value: value, Owner: owner}},
	}
}

func TestGenesisValues(t *testing.T) {
	w := walletWithAlice()

	require.EqualValues(t, 0, w.BestHeight())
	require.EqualValues(t, ledger.GenesisID(), w.BestBlock())
	require.EqualValues(t, 0, w.NetWorth())

	total, err := w.TotalAssetsOf(alice)
	require.NoError(t, err)
	require.EqualValues(t, 0, total)

	coins, err := w.AllCoinsOf(alice)
	require.NoError(t, err)
	require.EqualValues(t, 0, len(coins))
}

func TestForeignAddress(t *testing.T) {
	w := walletWithAlice()

	_, err := w.TotalAssetsOf(bob)
	require.ErrorIs(t, err, wallet.ErrForeignAddress)

	_, err = w.AllCoinsOf(bob)
	require.ErrorIs(t, err, wallet.ErrForeignAddress)

	require.True(t, w.TracksAddress(alice))
	require.False(t, w.TracksAddress(bob))
}

func TestAddresses(t *testing.T) {
	w := wallet.New(alice, bob)
	addrs := w.Addresses()
	require.EqualValues(t, 2, len(addrs))
	require.True(t, addrs[0].Less(addrs[1]))
}

func TestSyncTwoBlocks(t *testing.T) {
	node := chaindb.New()
	w := walletWithAlice()

	b1 := node.AddBlockAsBest(ledger.GenesisID(), nil)
	w.Sync(node)
	require.EqualValues(t, 1, w.BestHeight())
	require.EqualValues(t, b1, w.BestBlock())

	b2 := node.AddBlockAsBest(b1, nil)
	w.Sync(node)
	require.EqualValues(t, 2, w.BestHeight())
	require.EqualValues(t, b2, w.BestBlock())
}

func TestTracksSingleUTXO(t *testing.T) {
	const coinValue = 100
	tx := mintTx(coinValue, alice)
	coinID := tx.CoinID(1, 0)

	node := chaindb.New()
	node.AddBlockAsBest(ledger.GenesisID(), []*ledger.Transaction{tx})

	w := wallet.NewWithLogger(testutil.NewSimpleLogger(true), alice)
	w.Sync(node)

	total, err := w.TotalAssetsOf(alice)
	require.NoError(t, err)
	require.EqualValues(t, coinValue, total)
	require.EqualValues(t, coinValue, w.NetWorth())

	coins, err := w.AllCoinsOf(alice)
	require.NoError(t, err)
	require.EqualValues(t, map[ledger.CoinID]uint64{coinID: coinValue}, coins)

	coin, err := w.CoinDetails(coinID)
	require.NoError(t, err)
	require.EqualValues(t, ledger.Coin{Value: coinValue, Owner: alice}, coin)
}

func TestConsumesOwnUTXO(t *testing.T) {
	const coinValue = 100
	txMint := mintTx(coinValue, alice)
	coinID := txMint.CoinID(1, 0)

	// the signature is invalid on purpose: the wallet does not check it
	txBurn := &ledger.Transaction{
		Inputs: []ledger.Input{{CoinID: coinID}},
	}

	node := chaindb.New()
	b1 := node.AddBlockAsBest(ledger.GenesisID(), []*ledger.Transaction{txMint})
	node.AddBlockAsBest(b1, []*ledger.Transaction{txBurn})

	w := walletWithAlice()
	w.Sync(node)

	total, err := w.TotalAssetsOf(alice)
	require.NoError(t, err)
	require.EqualValues(t, 0, total)
	require.EqualValues(t, 0, w.NetWorth())

	coins, err := w.AllCoinsOf(alice)
	require.NoError(t, err)
	require.EqualValues(t, 0, len(coins))

	_, err = w.CoinDetails(coinID)
	require.ErrorIs(t, err, wallet.ErrUnknownCoin)
}

func TestSameBlockDependency(t *testing.T) {
	// tx2 spends the coin tx1 creates in the very same block.
	// The intermediate coin must not survive the block
	tx1 := mintTx(100, alice)
	intermediateID := tx1.CoinID(1, 0)
	tx2 := &ledger.Transaction{
		Inputs:  []ledger.Input{{CoinID: intermediateID, Signature: ledger.SignedBy(alice)}},
		Outputs: []ledger.Coin{{Value: 100, Owner: alice}},
	}
	finalID := tx2.CoinID(1, 0)

	node := chaindb.New()
	node.AddBlockAsBest(ledger.GenesisID(), []*ledger.Transaction{tx1, tx2})

	w := walletWithAlice()
	w.Sync(node)

	_, err := w.CoinDetails(intermediateID)
	require.ErrorIs(t, err, wallet.ErrUnknownCoin)

	coin, err := w.CoinDetails(finalID)
	require.NoError(t, err)
	require.EqualValues(t, ledger.Coin{Value: 100, Owner: alice}, coin)
	require.EqualValues(t, 100, w.NetWorth())
	require.EqualValues(t, 1, w.NumCoins())
}

func TestTracksTwoUTXOsInOneBlock(t *testing.T) {
	tx0 := mintTx(100, alice)
	tx1 := mintTx(200, alice)
	tx2 := mintTx(300, bob)
	id0 := tx0.CoinID(1, 0)
	id1 := tx1.CoinID(1, 0)
	id2 := tx2.CoinID(1, 0)

	node := chaindb.New()
	node.AddBlockAsBest(ledger.GenesisID(), []*ledger.Transaction{tx0, tx1, tx2})

	w := wallet.New(alice, bob)
	w.Sync(node)

	total, err := w.TotalAssetsOf(alice)
	require.NoError(t, err)
	require.EqualValues(t, 300, total)
	require.EqualValues(t, 600, w.NetWorth())

	coins, err := w.AllCoinsOf(alice)
	require.NoError(t, err)
	require.EqualValues(t, map[ledger.CoinID]uint64{id0: 100, id1: 200}, coins)

	for id, expected := range map[ledger.CoinID]ledger.Coin{
		id0: {Value: 100, Owner: alice},
		id1: {Value: 200, Owner: alice},
		id2: {Value: 300, Owner: bob},
	} {
		coin, err := w.CoinDetails(id)
		require.NoError(t, err)
		require.EqualValues(t, expected, coin)
	}
}

func TestUntrackedOwnerFiltered(t *testing.T) {
	txAlice := mintTx(100, alice)
	txCharlie := mintTx(500, charlie)

	node := chaindb.New()
	node.AddBlockAsBest(ledger.GenesisID(), []*ledger.Transaction{txAlice, txCharlie})

	w := walletWithAlice()
	w.Sync(node)

	// charlie's coin never entered the UTXO set
	require.EqualValues(t, 100, w.NetWorth())
	require.EqualValues(t, 1, w.NumCoins())

	_, err := w.CoinDetails(txCharlie.CoinID(1, 0))
	require.ErrorIs(t, err, wallet.ErrUnknownCoin)
}

func TestUTXOToMultipleUsers(t *testing.T) {
	txAlice := mintTx(100, alice)
	txBob := mintTx(200, bob)

	node := chaindb.New()
	node.AddBlockAsBest(ledger.GenesisID(), []*ledger.Transaction{txAlice, txBob})

	w := wallet.New(alice, bob)
	w.Sync(node)

	totalAlice, err := w.TotalAssetsOf(alice)
	require.NoError(t, err)
	require.EqualValues(t, 100, totalAlice)

	totalBob, err := w.TotalAssetsOf(bob)
	require.NoError(t, err)
	require.EqualValues(t, 200, totalBob)

	require.EqualValues(t, 300, w.NetWorth())
}
