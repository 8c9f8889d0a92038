package inmemoryledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-network/custodia-daemon/internal/core/ports"
	"github.com/custodia-network/custodia-daemon/pkg/mathutil"
)

type accountKey struct {
	owner string
	asset string
}

// Ledger is an in memory implementation of the ports.Ledger interface.
// It keeps per account, per asset balances guarded by a single mutex so
// that multi leg transfers are applied all or nothing.
type Ledger struct {
	locker   *sync.Mutex
	balances map[accountKey]uint64
}

// NewLedger returns a new empty in memory ledger.
func NewLedger() *Ledger {
	return &Ledger{
		locker:   &sync.Mutex{},
		balances: map[accountKey]uint64{},
	}
}

func (l *Ledger) OpenAccount(ctx context.Context, owner, asset string) error {
	l.locker.Lock()
	defer l.locker.Unlock()

	key := accountKey{owner, asset}
	if _, ok := l.balances[key]; !ok {
		l.balances[key] = 0
	}
	return nil
}

func (l *Ledger) BalanceOf(
	ctx context.Context, owner, asset string,
) (uint64, error) {
	l.locker.Lock()
	defer l.locker.Unlock()

	return l.balances[accountKey{owner, asset}], nil
}

func (l *Ledger) Transfer(
	ctx context.Context, from, to, asset string, amount uint64,
) error {
	return l.TransferMany(ctx, ports.TransferLeg{
		From:   from,
		To:     to,
		Asset:  asset,
		Amount: amount,
	})
}

// TransferMany applies all the given legs atomically. If any leg cannot
// be covered by the source balance, no balance is touched.
func (l *Ledger) TransferMany(
	ctx context.Context, legs ...ports.TransferLeg,
) error {
	l.locker.Lock()
	defer l.locker.Unlock()

	next := make(map[accountKey]uint64, len(legs)*2)
	balance := func(key accountKey) uint64 {
		if v, ok := next[key]; ok {
			return v
		}
		return l.balances[key]
	}

	for _, leg := range legs {
		fromKey := accountKey{leg.From, leg.Asset}
		toKey := accountKey{leg.To, leg.Asset}

		fromBalance := balance(fromKey)
		if fromBalance < leg.Amount {
			return fmt.Errorf(
				"%w: account %s holds %d of asset %s, need %d",
				ports.ErrLedgerInsufficientBalance,
				leg.From, fromBalance, leg.Asset, leg.Amount,
			)
		}

		toBalance, err := mathutil.CheckedAdd(balance(toKey), leg.Amount)
		if err != nil {
			return err
		}

		next[fromKey] = fromBalance - leg.Amount
		next[toKey] = toBalance
	}

	for key, value := range next {
		l.balances[key] = value
	}
	return nil
}

// Mint credits the given account out of thin air. It backs faucet style
// funding for tests and regtest like local runs.
func (l *Ledger) Mint(
	ctx context.Context, owner, asset string, amount uint64,
) error {
	l.locker.Lock()
	defer l.locker.Unlock()

	key := accountKey{owner, asset}
	newBalance, err := mathutil.CheckedAdd(l.balances[key], amount)
	if err != nil {
		return err
	}
	l.balances[key] = newBalance
	return nil
}
