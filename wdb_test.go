package deedmarket

import (
	"testing"

	"github.com/deedmarket/deedmarket/schema"
	"github.com/stretchr/testify/assert"
)

func TestEventLog(t *testing.T) {
	wdb := NewSqliteDb(t.TempDir())
	defer wdb.Close()
	assert.NoError(t, wdb.Migrate())

	names := []string{schema.EventMinted, schema.EventListed, schema.EventOfferMade}
	for _, name := range names {
		err := wdb.InsertEvent(&schema.Event{AssetId: 1, Name: name, Payload: []byte(`{}`)})
		assert.NoError(t, err)
	}
	err := wdb.InsertEvent(&schema.Event{AssetId: 2, Name: schema.EventMinted, Payload: []byte(`{}`)})
	assert.NoError(t, err)

	// feed preserves operation order
	events, err := wdb.GetEvents(0, 100)
	assert.NoError(t, err)
	assert.Equal(t, 4, len(events))
	for i, name := range names {
		assert.Equal(t, name, events[i].Name)
	}

	// cursor pagination
	events, err = wdb.GetEvents(events[1].ID, 100)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(events))

	events, err = wdb.GetEventsByAsset(2, 0, 100)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(events))
	assert.Equal(t, uint64(2), events[0].AssetId)

	total, err := wdb.CountEvents()
	assert.NoError(t, err)
	assert.Equal(t, int64(4), total)
}
