package deedmarket

import (
	"github.com/deedmarket/deedmarket/schema"
	"github.com/shopspring/decimal"
)

// ListForSale puts the asset on the market at the given price. There is no
// delist operation; the listing clears only through an accepted offer.
func (s *Deedmarket) ListForSale(assetId uint64, caller string, price decimal.Decimal) error {
	s.assetLocker.Lock(assetId)
	defer s.assetLocker.Unlock(assetId)

	prop, err := s.store.LoadProperty(assetId)
	if err != nil {
		return schema.ErrNotFound
	}
	if !s.isAuthorized(assetId, caller) {
		return schema.ErrNotAuthorized
	}
	if price.Sign() <= 0 {
		return schema.ErrInvalidArgument
	}
	if s.rented(prop) {
		return schema.ErrStateConflict
	}

	prop.ForSale = true
	prop.SalePrice = price
	if err := s.store.SaveProperty(prop); err != nil {
		return err
	}

	s.emit(assetId, schema.EventListed, schema.ListedPayload{Price: price})
	return nil
}

// MakeOffer escrows the attached amount against the asset for the caller. A
// later offer from the same bidder overwrites the earlier escrow record; the
// earlier amount is not returned.
func (s *Deedmarket) MakeOffer(assetId uint64, caller string, amount decimal.Decimal) error {
	s.assetLocker.Lock(assetId)
	defer s.assetLocker.Unlock(assetId)

	prop, err := s.store.LoadProperty(assetId)
	if err != nil {
		return schema.ErrNotFound
	}
	if !prop.ForSale {
		return schema.ErrStateConflict
	}
	if amount.Sign() <= 0 {
		return schema.ErrInvalidArgument
	}

	// attach the offered value
	if err := s.ledger.debit(caller, amount); err != nil {
		return err
	}
	offer := schema.Offer{AssetId: assetId, Bidder: caller, Amount: amount}
	if err := s.store.SaveOffer(offer); err != nil {
		// no escrow record was written, return the attached value
		if cErr := s.ledger.credit(caller, amount); cErr != nil {
			log.Error("return attached value failed", "err", cErr, "assetId", assetId, "bidder", caller)
		}
		return err
	}

	s.emit(assetId, schema.EventOfferMade, schema.OfferMadePayload{Bidder: caller, Amount: amount})
	return nil
}

// AcceptOffer closes the sale to `buyer`. Ordering is load-bearing: listing
// state cleared, escrow zeroed and title transferred before the escrowed
// amount is pushed to the pre-transfer title holder. Other bidders' escrows
// stay withdrawable.
func (s *Deedmarket) AcceptOffer(assetId uint64, caller, buyer string) error {
	s.assetLocker.Lock(assetId)
	defer s.assetLocker.Unlock(assetId)

	prop, err := s.store.LoadProperty(assetId)
	if err != nil {
		return schema.ErrNotFound
	}
	if !s.isAuthorized(assetId, caller) {
		return schema.ErrNotAuthorized
	}
	if !prop.ForSale {
		return schema.ErrStateConflict
	}
	offer, err := s.store.LoadOffer(assetId, buyer)
	if err != nil || offer.Amount.Sign() <= 0 {
		return schema.ErrNotFound
	}
	seller, err := s.titles.OwnerOf(assetId)
	if err != nil {
		return schema.ErrNotFound
	}

	prop.ForSale = false
	prop.SalePrice = decimal.Zero
	if err := s.store.SaveProperty(prop); err != nil {
		return err
	}
	if err := s.store.DeleteOffer(assetId, buyer); err != nil {
		return err
	}
	if err := s.titles.Transfer(seller, buyer, assetId); err != nil {
		return err
	}
	if err := s.ledger.credit(seller, offer.Amount); err != nil {
		return err
	}

	s.emit(assetId, schema.EventOfferAccepted, schema.OfferAcceptedPayload{Buyer: buyer, Amount: offer.Amount})
	return nil
}

// WithdrawOffer returns the caller's escrowed amount.
func (s *Deedmarket) WithdrawOffer(assetId uint64, caller string) error {
	s.assetLocker.Lock(assetId)
	defer s.assetLocker.Unlock(assetId)

	offer, err := s.store.LoadOffer(assetId, caller)
	if err != nil || offer.Amount.Sign() <= 0 {
		return schema.ErrNotFound
	}
	if err := s.store.DeleteOffer(assetId, caller); err != nil {
		return err
	}
	if err := s.ledger.credit(caller, offer.Amount); err != nil {
		return err
	}

	s.emit(assetId, schema.EventOfferWithdrawn, schema.OfferWithdrawnPayload{Bidder: caller})
	return nil
}

func (s *Deedmarket) Offer(assetId uint64, bidder string) (schema.Offer, error) {
	offer, err := s.store.LoadOffer(assetId, bidder)
	if err == schema.ErrNotExist {
		return offer, schema.ErrNotFound
	}
	return offer, err
}

func (s *Deedmarket) Offers(assetId uint64) ([]schema.Offer, error) {
	if !s.store.ExistProperty(assetId) {
		return nil, schema.ErrNotFound
	}
	return s.store.LoadAssetOffers(assetId)
}
