package ports

import (
	"context"
	"errors"
)

// ErrLedgerInsufficientBalance is returned by Transfer when the source
// account does not hold the requested amount.
var ErrLedgerInsufficientBalance = errors.New("insufficient balance in source account")

// Ledger is the token-ledger execution engine the daemon calls into to
// move balances once an operation is authorized. Transfers are atomic:
// they either complete entirely or leave both accounts untouched.
//
// The vault's custodial token account is only ever used as a transfer
// source by the withdraw operation. No general-purpose authority over it
// is exposed anywhere else.
type Ledger interface {
	// OpenAccount creates the holder account for (account, asset) if it
	// does not exist yet. Idempotent.
	OpenAccount(ctx context.Context, account, asset string) error
	// BalanceOf returns the current balance of (account, asset).
	BalanceOf(ctx context.Context, account, asset string) (uint64, error)
	// Transfer moves amount of asset between two accounts.
	Transfer(ctx context.Context, from, to, asset string, amount uint64) error
	// TransferMany applies all the given legs in a single atomic unit:
	// either every leg lands or none does.
	TransferMany(ctx context.Context, legs ...TransferLeg) error
}

// TransferLeg is a single balance movement of a multi-leg transfer.
type TransferLeg struct {
	From   string
	To     string
	Asset  string
	Amount uint64
}
