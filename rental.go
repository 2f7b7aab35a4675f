package deedmarket

import (
	"github.com/deedmarket/deedmarket/schema"
	"github.com/shopspring/decimal"
)

// ListForRent sets the asset's monthly rent. The asset must not be listed for
// sale or inside an unexpired rental term.
func (s *Deedmarket) ListForRent(assetId uint64, caller string, monthlyRent decimal.Decimal) error {
	s.assetLocker.Lock(assetId)
	defer s.assetLocker.Unlock(assetId)

	prop, err := s.store.LoadProperty(assetId)
	if err != nil {
		return schema.ErrNotFound
	}
	if !s.isAuthorized(assetId, caller) {
		return schema.ErrNotAuthorized
	}
	if monthlyRent.Sign() <= 0 {
		return schema.ErrInvalidArgument
	}
	if prop.ForSale || s.rented(prop) {
		return schema.ErrStateConflict
	}

	prop.MonthlyRent = monthlyRent
	return s.store.SaveProperty(prop)
}

// RentProperty rents the asset to the caller for a number of fixed 30-day
// months. Exactly monthlyRent×months is pushed to the current title holder;
// overpayment above that is retained, not refunded. forSale is deliberately
// not checked here, so an asset can be rented while still listed for sale.
func (s *Deedmarket) RentProperty(assetId uint64, caller string, months uint64, attached decimal.Decimal) error {
	s.assetLocker.Lock(assetId)
	defer s.assetLocker.Unlock(assetId)

	prop, err := s.store.LoadProperty(assetId)
	if err != nil {
		return schema.ErrNotFound
	}
	if prop.MonthlyRent.Sign() <= 0 {
		return schema.ErrNotFound
	}
	if months == 0 {
		return schema.ErrInvalidArgument
	}
	if s.rented(prop) {
		return schema.ErrStateConflict
	}
	total := prop.MonthlyRent.Mul(decimal.NewFromInt(int64(months)))
	if attached.LessThan(total) {
		return schema.ErrInsufficientPayment
	}
	owner, err := s.titles.OwnerOf(assetId)
	if err != nil {
		return schema.ErrNotFound
	}

	// attach value, mutate state, then push rent
	if err := s.ledger.debit(caller, attached); err != nil {
		return err
	}
	prop.Renter = caller
	prop.RentalEnd = s.clock.Now() + int64(months)*schema.SecondsPerMonth
	if err := s.store.SaveProperty(prop); err != nil {
		// the term was not recorded, return the attached value
		if cErr := s.ledger.credit(caller, attached); cErr != nil {
			log.Error("return attached value failed", "err", cErr, "assetId", assetId, "renter", caller)
		}
		return err
	}
	if err := s.ledger.credit(owner, total); err != nil {
		return err
	}

	s.emit(assetId, schema.EventRented, schema.RentedPayload{Renter: caller, Months: months, TotalPaid: total})
	return nil
}

// ExtendRental adds whole months to the current term. Rent for the extension
// goes to whoever holds title at extension time, which can differ from the
// landlord who originally listed the rental.
func (s *Deedmarket) ExtendRental(assetId uint64, caller string, additionalMonths uint64, attached decimal.Decimal) error {
	s.assetLocker.Lock(assetId)
	defer s.assetLocker.Unlock(assetId)

	prop, err := s.store.LoadProperty(assetId)
	if err != nil {
		return schema.ErrNotFound
	}
	if prop.Renter == "" || caller != prop.Renter {
		return schema.ErrNotAuthorized
	}
	if additionalMonths == 0 {
		return schema.ErrInvalidArgument
	}
	total := prop.MonthlyRent.Mul(decimal.NewFromInt(int64(additionalMonths)))
	if attached.LessThan(total) {
		return schema.ErrInsufficientPayment
	}
	owner, err := s.titles.OwnerOf(assetId)
	if err != nil {
		return schema.ErrNotFound
	}

	if err := s.ledger.debit(caller, attached); err != nil {
		return err
	}
	prop.RentalEnd += int64(additionalMonths) * schema.SecondsPerMonth
	if err := s.store.SaveProperty(prop); err != nil {
		if cErr := s.ledger.credit(caller, attached); cErr != nil {
			log.Error("return attached value failed", "err", cErr, "assetId", assetId, "renter", caller)
		}
		return err
	}
	if err := s.ledger.credit(owner, total); err != nil {
		return err
	}

	s.emit(assetId, schema.EventExtended, schema.ExtendedPayload{AdditionalMonths: additionalMonths, AdditionalPaid: total})
	return nil
}
