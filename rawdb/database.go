package rawdb

import (
	"github.com/inconshreveable/log15"
)

var log = log15.New("module", "rawdb")

// KeyValueDB is the raw record store under the market: property records, offer
// escrows, auction records, delegates, titles and ledger balances all live in
// named buckets. Values are opaque bytes; encoding is owned by the caller.
type KeyValueDB interface {
	Put(bucket, key string, value []byte) (err error)

	Get(bucket, key string) (data []byte, err error)

	GetAllKey(bucket string) (keys []string, err error)

	Delete(bucket, key string) (err error)

	Exist(bucket, key string) bool

	Close() (err error)

	Type() string
}
