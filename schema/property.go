package schema

import (
	"github.com/shopspring/decimal"
)

// One rental month is a fixed 30 days, not a calendar month.
const SecondsPerMonth = int64(30 * 24 * 60 * 60)

// Property is the persistent per-asset record. Created at mint, never deleted.
// Renter and RentalEnd are not cleared when a rental expires; expiry is derived
// from the chain clock at read time.
type Property struct {
	ID       uint64 `json:"id"`
	Location string `json:"location"`
	Area     uint64 `json:"area"`
	Category string `json:"category"`

	SalePrice decimal.Decimal `json:"salePrice"`
	ForSale   bool            `json:"forSale"`

	Renter      string          `json:"renter"` // empty means never rented
	RentalEnd   int64           `json:"rentalEnd"`
	MonthlyRent decimal.Decimal `json:"monthlyRent"`
}

// Offer is the escrow record for one (asset, bidder) pair. A later offer from
// the same bidder overwrites an earlier one; the earlier escrowed amount is not
// returned.
type Offer struct {
	AssetId uint64          `json:"assetId"`
	Bidder  string          `json:"bidder"`
	Amount  decimal.Decimal `json:"amount"`
}

// Auction is a timed english auction record. At most one per asset; a finished
// auction stays readable and blocks a new one on the same asset.
type Auction struct {
	AssetId    uint64          `json:"assetId"`
	StartPrice decimal.Decimal `json:"startPrice"`
	HighBid    decimal.Decimal `json:"highBid"`
	HighBidder string          `json:"highBidder"` // empty until the first bid
	EndTime    int64           `json:"endTime"`
	Ended      bool            `json:"ended"`
}
