package wallet

import "errors"

// Errors returned by wallet queries and transaction builders.
// All of them are ordinary results of the call that raised them,
// never a reason to stop the wallet
var (
	// ErrForeignAddress: the queried address is not tracked by this wallet
	ErrForeignAddress = errors.New("address is not tracked by this wallet")
	// ErrUnknownCoin: the coin ID is absent from the local UTXO set.
	// Not synced yet, already spent, or never existed from this wallet's point of view
	ErrUnknownCoin = errors.New("coin is not known to this wallet")
	// ErrNoOwnedAddresses: the operation needs a wallet-owned address and there is none
	ErrNoOwnedAddresses = errors.New("wallet does not own any address")
	// ErrInsufficientFunds: available or selected coins do not cover the required value
	ErrInsufficientFunds = errors.New("not enough funds")
	// ErrZeroCoinValue: attempt to produce a coin of value 0
	ErrZeroCoinValue = errors.New("coin value cannot be zero")
	// ErrZeroInputs: attempt to build a transaction which consumes nothing
	ErrZeroInputs = errors.New("transaction must consume at least one input")
)
