package deedmarket

import (
	"testing"

	"github.com/deedmarket/deedmarket/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewBoltStore(t.TempDir())
	assert.NoError(t, err)
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestPropertySeq(t *testing.T) {
	s := newTestStore(t)
	for want := uint64(1); want <= 3; want++ {
		id, err := s.NextPropertyId()
		assert.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestProperty(t *testing.T) {
	s := newTestStore(t)
	prop := schema.Property{
		ID:          1,
		Location:    "12 Harbor Rd",
		Area:        120,
		Category:    "apartment",
		SalePrice:   decimal.NewFromInt(500),
		ForSale:     true,
		Renter:      "bob",
		RentalEnd:   1700000000,
		MonthlyRent: decimal.NewFromInt(10),
	}
	assert.False(t, s.ExistProperty(1))
	err := s.SaveProperty(prop)
	assert.NoError(t, err)
	assert.True(t, s.ExistProperty(1))

	got, err := s.LoadProperty(1)
	assert.NoError(t, err)
	assert.Equal(t, prop, got)

	_, err = s.LoadProperty(2)
	assert.Equal(t, schema.ErrNotExist, err)

	count, err := s.CountProperties()
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOffer(t *testing.T) {
	s := newTestStore(t)
	offer := schema.Offer{AssetId: 1, Bidder: "bob", Amount: decimal.NewFromInt(550)}
	err := s.SaveOffer(offer)
	assert.NoError(t, err)
	err = s.SaveOffer(schema.Offer{AssetId: 1, Bidder: "carol", Amount: decimal.NewFromInt(560)})
	assert.NoError(t, err)
	err = s.SaveOffer(schema.Offer{AssetId: 11, Bidder: "dave", Amount: decimal.NewFromInt(570)})
	assert.NoError(t, err)

	got, err := s.LoadOffer(1, "bob")
	assert.NoError(t, err)
	assert.Equal(t, offer, got)

	// key prefix must not leak asset 11 offers into asset 1
	offers, err := s.LoadAssetOffers(1)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(offers))

	err = s.DeleteOffer(1, "bob")
	assert.NoError(t, err)
	_, err = s.LoadOffer(1, "bob")
	assert.Equal(t, schema.ErrNotExist, err)
}

func TestAuctionRecord(t *testing.T) {
	s := newTestStore(t)
	auction := schema.Auction{
		AssetId:    3,
		StartPrice: decimal.NewFromInt(100),
		HighBid:    decimal.NewFromInt(101),
		HighBidder: "bob",
		EndTime:    1700086400,
	}
	assert.False(t, s.ExistAuction(3))
	err := s.SaveAuction(auction)
	assert.NoError(t, err)
	assert.True(t, s.ExistAuction(3))

	got, err := s.LoadAuction(3)
	assert.NoError(t, err)
	assert.Equal(t, auction, got)

	all, err := s.LoadAllAuctions()
	assert.NoError(t, err)
	assert.Equal(t, 1, len(all))
}

func TestDelegateRecord(t *testing.T) {
	s := newTestStore(t)
	// unset delegate reads as empty
	delegate, err := s.LoadDelegate(1)
	assert.NoError(t, err)
	assert.Equal(t, "", delegate)

	assert.NoError(t, s.SaveDelegate(1, "mary"))
	delegate, err = s.LoadDelegate(1)
	assert.NoError(t, err)
	assert.Equal(t, "mary", delegate)

	assert.NoError(t, s.SaveDelegate(1, ""))
	delegate, err = s.LoadDelegate(1)
	assert.NoError(t, err)
	assert.Equal(t, "", delegate)
}

func TestBalanceRecord(t *testing.T) {
	s := newTestStore(t)
	bal, err := s.LoadBalance("alice")
	assert.NoError(t, err)
	assert.True(t, bal.IsZero())

	err = s.SaveBalance("alice", decimal.RequireFromString("10.25"))
	assert.NoError(t, err)
	bal, err = s.LoadBalance("alice")
	assert.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.25").Equal(bal))
}

func TestTitleRecord(t *testing.T) {
	s := newTestStore(t)
	titles := NewTitleBook(s)

	_, err := titles.OwnerOf(1)
	assert.Equal(t, schema.ErrNotFound, err)

	assert.NoError(t, titles.Mint("alice", 1))
	assert.Equal(t, schema.ErrStateConflict, titles.Mint("bob", 1))

	owner, err := titles.OwnerOf(1)
	assert.NoError(t, err)
	assert.Equal(t, "alice", owner)

	assert.Equal(t, schema.ErrNotAuthorized, titles.Transfer("bob", "carol", 1))
	assert.NoError(t, titles.Transfer("alice", "bob", 1))
	owner, err = titles.OwnerOf(1)
	assert.NoError(t, err)
	assert.Equal(t, "bob", owner)
}
