package deedmarket

import (
	"sync"

	"github.com/deedmarket/deedmarket/schema"
	"github.com/shopspring/decimal"
)

// Ledger models the platform's native value transfer primitive. An operation's
// attached value is debited from the caller's balance when the operation
// commits; pushes to sellers, landlords and outbid bidders are credits.
type Ledger struct {
	store *Store
	lock  sync.Mutex
}

func NewLedger(store *Store) *Ledger {
	return &Ledger{store: store}
}

func (l *Ledger) Balance(account string) (decimal.Decimal, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.store.LoadBalance(account)
}

func (l *Ledger) Deposit(account string, amount decimal.Decimal) error {
	if account == "" || amount.Sign() <= 0 {
		return schema.ErrInvalidArgument
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	bal, err := l.store.LoadBalance(account)
	if err != nil {
		return err
	}
	return l.store.SaveBalance(account, bal.Add(amount))
}

func (l *Ledger) debit(account string, amount decimal.Decimal) error {
	l.lock.Lock()
	defer l.lock.Unlock()
	bal, err := l.store.LoadBalance(account)
	if err != nil {
		return err
	}
	if bal.LessThan(amount) {
		return schema.ErrInsufficientBalance
	}
	return l.store.SaveBalance(account, bal.Sub(amount))
}

func (l *Ledger) credit(account string, amount decimal.Decimal) error {
	l.lock.Lock()
	defer l.lock.Unlock()
	bal, err := l.store.LoadBalance(account)
	if err != nil {
		return err
	}
	return l.store.SaveBalance(account, bal.Add(amount))
}
