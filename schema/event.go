package schema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	EventMinted         = "Minted"
	EventListed         = "Listed"
	EventOfferMade      = "OfferMade"
	EventOfferAccepted  = "OfferAccepted"
	EventOfferWithdrawn = "OfferWithdrawn"
	EventRented         = "Rented"
	EventExtended       = "Extended"
	EventAuctionStarted = "AuctionStarted"
	EventBid            = "Bid"
	EventAuctionEnded   = "AuctionEnded"
)

// Event is one row of the notification channel: an append-only, ordered log of
// every state transition, consumed by external indexers. Written synchronously
// inside the operation that caused the transition.
type Event struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	AssetId uint64         `gorm:"index:idx_event_asset" json:"assetId"`
	Name    string         `gorm:"index:idx_event_name" json:"name"`
	Payload datatypes.JSON `json:"payload"`
}

type MintedPayload struct {
	Owner    string `json:"owner"`
	Location string `json:"location"`
}

type ListedPayload struct {
	Price decimal.Decimal `json:"price"`
}

type OfferMadePayload struct {
	Bidder string          `json:"bidder"`
	Amount decimal.Decimal `json:"amount"`
}

type OfferAcceptedPayload struct {
	Buyer  string          `json:"buyer"`
	Amount decimal.Decimal `json:"amount"`
}

type OfferWithdrawnPayload struct {
	Bidder string `json:"bidder"`
}

type RentedPayload struct {
	Renter    string          `json:"renter"`
	Months    uint64          `json:"months"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
}

type ExtendedPayload struct {
	AdditionalMonths uint64          `json:"additionalMonths"`
	AdditionalPaid   decimal.Decimal `json:"additionalPaid"`
}

type AuctionStartedPayload struct {
	StartPrice decimal.Decimal `json:"startPrice"`
	EndTime    int64           `json:"endTime"`
}

type BidPayload struct {
	Bidder string          `json:"bidder"`
	Amount decimal.Decimal `json:"amount"`
}

type AuctionEndedPayload struct {
	Winner string          `json:"winner"` // empty when the auction closed without bids
	Amount decimal.Decimal `json:"amount"`
}
