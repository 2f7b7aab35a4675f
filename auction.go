package deedmarket

import (
	"github.com/deedmarket/deedmarket/schema"
	"github.com/shopspring/decimal"
)

// StartAuction opens a timed english auction on the asset. One auction per
// asset, ever: a finished auction record stays in place and blocks a new one.
func (s *Deedmarket) StartAuction(assetId uint64, caller string, startPrice decimal.Decimal, duration int64) error {
	s.assetLocker.Lock(assetId)
	defer s.assetLocker.Unlock(assetId)

	prop, err := s.store.LoadProperty(assetId)
	if err != nil {
		return schema.ErrNotFound
	}
	if !s.isAuthorized(assetId, caller) {
		return schema.ErrNotAuthorized
	}
	if startPrice.Sign() <= 0 || duration <= 0 {
		return schema.ErrInvalidArgument
	}
	if prop.ForSale || s.rented(prop) {
		return schema.ErrStateConflict
	}
	if s.store.ExistAuction(assetId) {
		return schema.ErrStateConflict
	}

	auction := schema.Auction{
		AssetId:    assetId,
		StartPrice: startPrice,
		HighBid:    decimal.Zero,
		EndTime:    s.clock.Now() + duration,
	}
	if err := s.store.SaveAuction(auction); err != nil {
		return err
	}

	s.emit(assetId, schema.EventAuctionStarted, schema.AuctionStartedPayload{StartPrice: startPrice, EndTime: auction.EndTime})
	return nil
}

// PlaceBid records a strictly higher bid and refunds the prior high bidder in
// full before the new bid is recorded.
func (s *Deedmarket) PlaceBid(assetId uint64, caller string, amount decimal.Decimal) error {
	s.assetLocker.Lock(assetId)
	defer s.assetLocker.Unlock(assetId)

	auction, err := s.store.LoadAuction(assetId)
	if err != nil {
		return schema.ErrNotFound
	}
	if auction.Ended || s.clock.Now() >= auction.EndTime {
		return schema.ErrStateConflict
	}
	if amount.LessThan(auction.StartPrice) || amount.LessThanOrEqual(auction.HighBid) {
		return schema.ErrInsufficientPayment
	}

	prior, priorBid := auction.HighBidder, auction.HighBid
	if err := s.ledger.debit(caller, amount); err != nil {
		return err
	}
	if prior != "" {
		if err := s.ledger.credit(prior, priorBid); err != nil {
			if cErr := s.ledger.credit(caller, amount); cErr != nil {
				log.Error("return attached value failed", "err", cErr, "assetId", assetId, "bidder", caller)
			}
			return err
		}
	}
	auction.HighBid = amount
	auction.HighBidder = caller
	if err := s.store.SaveAuction(auction); err != nil {
		// the bid was not recorded: return the attached value and take the
		// refunded escrow back from the standing high bidder
		if cErr := s.ledger.credit(caller, amount); cErr != nil {
			log.Error("return attached value failed", "err", cErr, "assetId", assetId, "bidder", caller)
		}
		if prior != "" {
			if dErr := s.ledger.debit(prior, priorBid); dErr != nil {
				log.Error("reclaim refunded escrow failed", "err", dErr, "assetId", assetId, "bidder", prior)
			}
		}
		return err
	}

	s.emit(assetId, schema.EventBid, schema.BidPayload{Bidder: caller, Amount: amount})
	return nil
}

// EndAuction finalizes the auction exactly once after its end time. With a
// high bidder, title moves to the winner and the high bid is pushed to the
// pre-transfer title holder; with none, nothing transfers. `ended` is set
// before any transfer.
func (s *Deedmarket) EndAuction(assetId uint64, caller string) error {
	s.assetLocker.Lock(assetId)
	defer s.assetLocker.Unlock(assetId)

	auction, err := s.store.LoadAuction(assetId)
	if err != nil {
		return schema.ErrNotFound
	}
	if s.clock.Now() < auction.EndTime {
		return schema.ErrStateConflict
	}
	if auction.Ended {
		return schema.ErrStateConflict
	}

	auction.Ended = true
	if err := s.store.SaveAuction(auction); err != nil {
		return err
	}

	if auction.HighBidder == "" {
		s.emit(assetId, schema.EventAuctionEnded, schema.AuctionEndedPayload{Winner: "", Amount: decimal.Zero})
		return nil
	}

	seller, err := s.titles.OwnerOf(assetId)
	if err != nil {
		return schema.ErrNotFound
	}
	if err := s.titles.Transfer(seller, auction.HighBidder, assetId); err != nil {
		return err
	}
	if err := s.ledger.credit(seller, auction.HighBid); err != nil {
		return err
	}

	s.emit(assetId, schema.EventAuctionEnded, schema.AuctionEndedPayload{Winner: auction.HighBidder, Amount: auction.HighBid})
	return nil
}

func (s *Deedmarket) AuctionState(assetId uint64) (schema.Auction, error) {
	auction, err := s.store.LoadAuction(assetId)
	if err == schema.ErrNotExist {
		return auction, schema.ErrNotFound
	}
	return auction, err
}
