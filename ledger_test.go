package deedmarket

import (
	"testing"

	"github.com/deedmarket/deedmarket/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedgerDeposit(t *testing.T) {
	s := newTestStore(t)
	ledger := NewLedger(s)

	assert.Equal(t, schema.ErrInvalidArgument, ledger.Deposit("", decimal.NewFromInt(10)))
	assert.Equal(t, schema.ErrInvalidArgument, ledger.Deposit("alice", decimal.Zero))
	assert.Equal(t, schema.ErrInvalidArgument, ledger.Deposit("alice", decimal.NewFromInt(-5)))

	assert.NoError(t, ledger.Deposit("alice", decimal.NewFromInt(10)))
	assert.NoError(t, ledger.Deposit("alice", decimal.NewFromInt(5)))
	bal, err := ledger.Balance("alice")
	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(15).Equal(bal))
}

func TestLedgerDebitCredit(t *testing.T) {
	s := newTestStore(t)
	ledger := NewLedger(s)
	assert.NoError(t, ledger.Deposit("alice", decimal.NewFromInt(10)))

	assert.Equal(t, schema.ErrInsufficientBalance, ledger.debit("alice", decimal.NewFromInt(11)))
	assert.Equal(t, schema.ErrInsufficientBalance, ledger.debit("bob", decimal.NewFromInt(1)))

	assert.NoError(t, ledger.debit("alice", decimal.NewFromInt(4)))
	assert.NoError(t, ledger.credit("bob", decimal.NewFromInt(4)))

	bal, err := ledger.Balance("alice")
	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6).Equal(bal))
	bal, err = ledger.Balance("bob")
	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4).Equal(bal))
}
