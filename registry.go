package deedmarket

import (
	"github.com/deedmarket/deedmarket/schema"
	"github.com/shopspring/decimal"
)

// Mint creates a new property record under the next sequential asset id and
// assigns title to `to`. Only privileged callers may mint.
func (s *Deedmarket) Mint(caller, to, location string, area uint64, category string) (uint64, error) {
	if !s.access.IsPrivileged(caller) {
		return 0, schema.ErrNotAuthorized
	}
	if to == "" || location == "" {
		return 0, schema.ErrInvalidArgument
	}

	id, err := s.store.NextPropertyId()
	if err != nil {
		return 0, err
	}
	prop := schema.Property{
		ID:          id,
		Location:    location,
		Area:        area,
		Category:    category,
		SalePrice:   decimal.Zero,
		MonthlyRent: decimal.Zero,
	}
	if err := s.store.SaveProperty(prop); err != nil {
		return 0, err
	}
	if err := s.titles.Mint(to, id); err != nil {
		return 0, err
	}

	s.emit(id, schema.EventMinted, schema.MintedPayload{Owner: to, Location: location})
	return id, nil
}

func (s *Deedmarket) GetDetails(id uint64) (schema.Property, error) {
	prop, err := s.store.LoadProperty(id)
	if err == schema.ErrNotExist {
		return prop, schema.ErrNotFound
	}
	return prop, err
}

// IsRented reports whether the asset is inside an unexpired rental term.
// Derived from the chain clock at read time; the stored renter field is never
// cleared on expiry.
func (s *Deedmarket) IsRented(id uint64) (bool, error) {
	prop, err := s.store.LoadProperty(id)
	if err == schema.ErrNotExist {
		return false, schema.ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return s.rented(prop), nil
}

func (s *Deedmarket) rented(prop schema.Property) bool {
	return prop.Renter != "" && s.clock.Now() <= prop.RentalEnd
}
