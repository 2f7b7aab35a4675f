package deedmarket

import (
	"errors"
	"path"
	"testing"

	"github.com/deedmarket/deedmarket/rawdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type testClock struct {
	now int64
}

func (c *testClock) Now() int64 {
	return c.now
}

type testMinters map[string]struct{}

func (m testMinters) IsPrivileged(caller string) bool {
	_, ok := m[caller]
	return ok
}

func newTestMarket(t *testing.T, minters ...string) (*Deedmarket, *testClock) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewBoltStore(path.Join(dir, "bolt"))
	assert.NoError(t, err)
	wdb := NewSqliteDb(path.Join(dir, "sqlite"))
	assert.NoError(t, wdb.Migrate())

	mm := testMinters{}
	for _, m := range minters {
		mm[m] = struct{}{}
	}
	clock := &testClock{now: 1700000000}
	d := &Deedmarket{
		store:       store,
		assetLocker: newAssetLocker(),
		ledger:      NewLedger(store),
		clock:       clock,
		wdb:         wdb,
		stats:       NewCache(),
		access:      mm,
	}
	d.titles = NewTitleBook(store)
	t.Cleanup(func() {
		wdb.Close()
		store.Close()
	})
	return d, clock
}

// faultyKV fails every Put into one bucket, leaving the rest of the store
// working, so tests can drive the partial-failure branches.
type faultyKV struct {
	rawdb.KeyValueDB
	failBucket string
}

func (f *faultyKV) Put(bucket, key string, value []byte) error {
	if bucket == f.failBucket {
		return errors.New("disk full")
	}
	return f.KeyValueDB.Put(bucket, key, value)
}

func failPuts(d *Deedmarket, bucket string) {
	d.store.KVDb = &faultyKV{KeyValueDB: d.store.KVDb, failBucket: bucket}
}

func fund(t *testing.T, d *Deedmarket, account string, amount int64) {
	t.Helper()
	assert.NoError(t, d.ledger.Deposit(account, decimal.NewFromInt(amount)))
}

func balance(t *testing.T, d *Deedmarket, account string) decimal.Decimal {
	t.Helper()
	bal, err := d.ledger.Balance(account)
	assert.NoError(t, err)
	return bal
}

func assertAmount(t *testing.T, expected int64, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(expected).Equal(actual), "expected %d, got %s", expected, actual)
}
