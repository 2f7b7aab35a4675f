package deedmarket

import (
	"testing"

	"github.com/deedmarket/deedmarket/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestListForSale(t *testing.T) {
	d, _ := newTestMarket(t, "gov")
	id, err := d.Mint("gov", "alice", "12 Harbor Rd", 120, "apartment")
	assert.NoError(t, err)

	assert.Equal(t, schema.ErrNotFound, d.ListForSale(99, "alice", decimal.NewFromInt(500)))
	assert.Equal(t, schema.ErrNotAuthorized, d.ListForSale(id, "bob", decimal.NewFromInt(500)))
	assert.Equal(t, schema.ErrInvalidArgument, d.ListForSale(id, "alice", decimal.Zero))

	assert.NoError(t, d.ListForSale(id, "alice", decimal.NewFromInt(500)))
	prop, err := d.GetDetails(id)
	assert.NoError(t, err)
	assert.True(t, prop.ForSale)
	assertAmount(t, 500, prop.SalePrice)
}

func TestListForSaleWhileRented(t *testing.T) {
	d, _ := newTestMarket(t, "gov")
	id, err := d.Mint("gov", "alice", "12 Harbor Rd", 120, "apartment")
	assert.NoError(t, err)
	assert.NoError(t, d.ListForRent(id, "alice", decimal.NewFromInt(10)))
	fund(t, d, "bob", 100)
	assert.NoError(t, d.RentProperty(id, "bob", 2, decimal.NewFromInt(20)))

	// regardless of caller identity
	assert.Equal(t, schema.ErrStateConflict, d.ListForSale(id, "alice", decimal.NewFromInt(500)))
}

func TestMakeOffer(t *testing.T) {
	d, _ := newTestMarket(t, "gov")
	id, err := d.Mint("gov", "alice", "12 Harbor Rd", 120, "apartment")
	assert.NoError(t, err)
	fund(t, d, "bob", 1000)

	assert.Equal(t, schema.ErrStateConflict, d.MakeOffer(id, "bob", decimal.NewFromInt(550)))

	assert.NoError(t, d.ListForSale(id, "alice", decimal.NewFromInt(500)))
	assert.Equal(t, schema.ErrInvalidArgument, d.MakeOffer(id, "bob", decimal.Zero))
	assert.Equal(t, schema.ErrInsufficientBalance, d.MakeOffer(id, "bob", decimal.NewFromInt(2000)))

	assert.NoError(t, d.MakeOffer(id, "bob", decimal.NewFromInt(550)))
	offer, err := d.Offer(id, "bob")
	assert.NoError(t, err)
	assertAmount(t, 550, offer.Amount)
	assertAmount(t, 450, balance(t, d, "bob"))
}

// A second offer from the same bidder overwrites the first; only the second
// amount stays withdrawable.
func TestOfferOverwrite(t *testing.T) {
	d, _ := newTestMarket(t, "gov")
	id, err := d.Mint("gov", "alice", "12 Harbor Rd", 120, "apartment")
	assert.NoError(t, err)
	assert.NoError(t, d.ListForSale(id, "alice", decimal.NewFromInt(500)))
	fund(t, d, "bob", 1000)

	assert.NoError(t, d.MakeOffer(id, "bob", decimal.NewFromInt(300)))
	assert.NoError(t, d.MakeOffer(id, "bob", decimal.NewFromInt(400)))

	offer, err := d.Offer(id, "bob")
	assert.NoError(t, err)
	assertAmount(t, 400, offer.Amount)

	assert.NoError(t, d.WithdrawOffer(id, "bob"))
	// 1000 - 300 - 400 + 400: the first escrowed amount stays unreachable
	assertAmount(t, 700, balance(t, d, "bob"))
	assert.Equal(t, schema.ErrNotFound, d.WithdrawOffer(id, "bob"))
}

// A failed escrow write must not swallow the attached value.
func TestMakeOfferSaveFailure(t *testing.T) {
	d, _ := newTestMarket(t, "gov")
	id, err := d.Mint("gov", "alice", "12 Harbor Rd", 120, "apartment")
	assert.NoError(t, err)
	assert.NoError(t, d.ListForSale(id, "alice", decimal.NewFromInt(500)))
	fund(t, d, "bob", 1000)

	failPuts(d, schema.OfferBucket)
	assert.Error(t, d.MakeOffer(id, "bob", decimal.NewFromInt(550)))

	assertAmount(t, 1000, balance(t, d, "bob"))
	_, err = d.Offer(id, "bob")
	assert.Equal(t, schema.ErrNotFound, err)
}

func TestAcceptOffer(t *testing.T) {
	d, _ := newTestMarket(t, "gov")
	id, err := d.Mint("gov", "alice", "12 Harbor Rd", 120, "apartment")
	assert.NoError(t, err)
	assert.NoError(t, d.ListForSale(id, "alice", decimal.NewFromInt(500)))
	fund(t, d, "bob", 600)
	fund(t, d, "carol", 600)
	assert.NoError(t, d.MakeOffer(id, "bob", decimal.NewFromInt(550)))
	assert.NoError(t, d.MakeOffer(id, "carol", decimal.NewFromInt(520)))

	assert.Equal(t, schema.ErrNotAuthorized, d.AcceptOffer(id, "bob", "bob"))
	assert.Equal(t, schema.ErrNotFound, d.AcceptOffer(id, "alice", "dave"))

	assert.NoError(t, d.AcceptOffer(id, "alice", "bob"))

	owner, err := d.titles.OwnerOf(id)
	assert.NoError(t, err)
	assert.Equal(t, "bob", owner)
	prop, err := d.GetDetails(id)
	assert.NoError(t, err)
	assert.False(t, prop.ForSale)
	assert.True(t, prop.SalePrice.IsZero())
	assertAmount(t, 550, balance(t, d, "alice"))

	_, err = d.Offer(id, "bob")
	assert.Equal(t, schema.ErrNotFound, err)

	// carol's escrow is untouched and still withdrawable
	offer, err := d.Offer(id, "carol")
	assert.NoError(t, err)
	assertAmount(t, 520, offer.Amount)
	assert.NoError(t, d.WithdrawOffer(id, "carol"))
	assertAmount(t, 600, balance(t, d, "carol"))

	// the listing is gone, a second accept fails
	assert.Equal(t, schema.ErrStateConflict, d.AcceptOffer(id, "bob", "carol"))
}

func TestWithdrawOfferNotFound(t *testing.T) {
	d, _ := newTestMarket(t, "gov")
	id, err := d.Mint("gov", "alice", "12 Harbor Rd", 120, "apartment")
	assert.NoError(t, err)

	assert.Equal(t, schema.ErrNotFound, d.WithdrawOffer(id, "bob"))
}

func TestSaleEndToEnd(t *testing.T) {
	d, _ := newTestMarket(t, "gov")
	id, err := d.Mint("gov", "A", "1 Main St", 90, "house")
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	price := int64(500)
	assert.NoError(t, d.ListForSale(id, "A", decimal.NewFromInt(price)))
	fund(t, d, "B", price+10)
	assert.NoError(t, d.MakeOffer(id, "B", decimal.NewFromInt(price+10)))
	assert.NoError(t, d.AcceptOffer(id, "A", "B"))

	owner, err := d.titles.OwnerOf(id)
	assert.NoError(t, err)
	assert.Equal(t, "B", owner)
	assertAmount(t, price+10, balance(t, d, "A"))
	prop, err := d.GetDetails(id)
	assert.NoError(t, err)
	assert.False(t, prop.ForSale)

	events, err := d.Events(0, 10)
	assert.NoError(t, err)
	names := make([]string, 0, len(events))
	for _, ev := range events {
		names = append(names, ev.Name)
	}
	assert.Equal(t, []string{schema.EventMinted, schema.EventListed, schema.EventOfferMade, schema.EventOfferAccepted}, names)
}
