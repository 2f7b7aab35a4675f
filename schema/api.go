package schema

import (
	"github.com/shopspring/decimal"
)

type RespErr struct {
	Err string `json:"error"`
}

func (r RespErr) Error() string {
	return r.Err
}

type RespAssetId struct {
	AssetId uint64 `json:"assetId"`
}

type MintReq struct {
	Caller   string `json:"caller"`
	To       string `json:"to"`
	Location string `json:"location"`
	Area     uint64 `json:"area"`
	Category string `json:"category"`
}

type ListSaleReq struct {
	Caller string          `json:"caller"`
	Price  decimal.Decimal `json:"price"`
}

// Amount is the value attached to the request; it is debited from the caller's
// ledger balance when the operation commits.
type OfferReq struct {
	Caller string          `json:"caller"`
	Amount decimal.Decimal `json:"amount"`
}

type AcceptOfferReq struct {
	Caller string `json:"caller"`
	Buyer  string `json:"buyer"`
}

type WithdrawOfferReq struct {
	Caller string `json:"caller"`
}

type ListRentReq struct {
	Caller      string          `json:"caller"`
	MonthlyRent decimal.Decimal `json:"monthlyRent"`
}

type RentReq struct {
	Caller string          `json:"caller"`
	Months uint64          `json:"months"`
	Amount decimal.Decimal `json:"amount"`
}

type ExtendRentReq struct {
	Caller           string          `json:"caller"`
	AdditionalMonths uint64          `json:"additionalMonths"`
	Amount           decimal.Decimal `json:"amount"`
}

type StartAuctionReq struct {
	Caller     string          `json:"caller"`
	StartPrice decimal.Decimal `json:"startPrice"`
	Duration   int64           `json:"duration"` // seconds
}

type BidReq struct {
	Caller string          `json:"caller"`
	Amount decimal.Decimal `json:"amount"`
}

type EndAuctionReq struct {
	Caller string `json:"caller"`
}

type SetManagerReq struct {
	Caller  string `json:"caller"`
	Manager string `json:"manager"` // empty clears the delegate
}

type DepositReq struct {
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}

type RespBalance struct {
	Account string          `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

type RespOwner struct {
	AssetId uint64 `json:"assetId"`
	Owner   string `json:"owner"`
}

type RespManager struct {
	AssetId uint64 `json:"assetId"`
	Manager string `json:"manager"`
}

type RespRented struct {
	AssetId uint64 `json:"assetId"`
	Rented  bool   `json:"rented"`
}

// MarketStats is the snapshot served by /info, refreshed on a schedule.
type MarketStats struct {
	Assets       int   `json:"assets"`
	OpenAuctions int   `json:"openAuctions"`
	Events       int64 `json:"events"`
}
