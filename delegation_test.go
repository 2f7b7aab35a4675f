package deedmarket

import (
	"testing"

	"github.com/deedmarket/deedmarket/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSetManagerOnlyTitleHolder(t *testing.T) {
	d, _ := newTestMarket(t, "gov")
	id, err := d.Mint("gov", "alice", "12 Harbor Rd", 120, "apartment")
	assert.NoError(t, err)

	assert.Equal(t, schema.ErrNotAuthorized, d.SetManager(id, "bob", "bob"))
	assert.Equal(t, schema.ErrNotFound, d.SetManager(99, "alice", "mary"))

	assert.NoError(t, d.SetManager(id, "alice", "mary"))
	manager, err := d.Manager(id)
	assert.NoError(t, err)
	assert.Equal(t, "mary", manager)

	// a delegate cannot appoint another delegate
	assert.Equal(t, schema.ErrNotAuthorized, d.SetManager(id, "mary", "eve"))

	// the title holder replaces and clears unconditionally
	assert.NoError(t, d.SetManager(id, "alice", "nick"))
	assert.NoError(t, d.SetManager(id, "alice", ""))
	manager, err = d.Manager(id)
	assert.NoError(t, err)
	assert.Equal(t, "", manager)
}

func TestDelegateGatedOperations(t *testing.T) {
	d, clock := newTestMarket(t, "gov")
	id, err := d.Mint("gov", "alice", "12 Harbor Rd", 120, "apartment")
	assert.NoError(t, err)
	assert.NoError(t, d.SetManager(id, "alice", "mary"))

	// the delegate can list for sale and accept offers
	assert.NoError(t, d.ListForSale(id, "mary", decimal.NewFromInt(500)))
	fund(t, d, "bob", 600)
	assert.NoError(t, d.MakeOffer(id, "bob", decimal.NewFromInt(550)))
	assert.NoError(t, d.AcceptOffer(id, "mary", "bob"))

	// sale proceeds go to the title holder, not the delegate
	assertAmount(t, 550, balance(t, d, "alice"))
	owner, err := d.titles.OwnerOf(id)
	assert.NoError(t, err)
	assert.Equal(t, "bob", owner)

	// bob's delegate can start an auction on the transferred asset
	assert.NoError(t, d.SetManager(id, "bob", "nick"))
	assert.NoError(t, d.StartAuction(id, "nick", decimal.NewFromInt(100), 3600))
	auction, err := d.AuctionState(id)
	assert.NoError(t, err)
	assert.Equal(t, clock.Now()+3600, auction.EndTime)
}
