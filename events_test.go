package deedmarket

import (
	"testing"

	"github.com/deedmarket/deedmarket/schema"
	"github.com/stretchr/testify/assert"
)

// A committed transition whose feed append fails is parked in the KV backlog
// and replayed once the feed is writable again, so the feed still ends up
// with exactly one record per transition, in emit order.
func TestEventBacklogReplay(t *testing.T) {
	d, _ := newTestMarket(t, "gov")

	// make the feed unwritable
	d.wdb.Close()

	id1, err := d.Mint("gov", "alice", "12 Harbor Rd", 120, "apartment")
	assert.NoError(t, err)
	id2, err := d.Mint("gov", "bob", "7 Main St", 80, "house")
	assert.NoError(t, err)

	keys, parked, err := d.store.LoadEventBacklog()
	assert.NoError(t, err)
	assert.Equal(t, 2, len(keys))
	assert.Equal(t, 2, len(parked))
	assert.Equal(t, id1, parked[0].AssetId)
	assert.Equal(t, id2, parked[1].AssetId)

	// feed comes back, the scheduler replays the backlog
	wdb := NewSqliteDb(t.TempDir())
	defer wdb.Close()
	assert.NoError(t, wdb.Migrate())
	d.wdb = wdb
	d.flushEventBacklog()

	events, err := d.Events(0, 10)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(events))
	assert.Equal(t, schema.EventMinted, events[0].Name)
	assert.Equal(t, id1, events[0].AssetId)
	assert.Equal(t, id2, events[1].AssetId)

	keys, _, err = d.store.LoadEventBacklog()
	assert.NoError(t, err)
	assert.Equal(t, 0, len(keys))
}
