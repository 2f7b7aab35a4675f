package deedmarket

import (
	"github.com/deedmarket/deedmarket/schema"
)

// SetManager appoints a per-asset delegate. Only the title holder may appoint;
// a delegate cannot appoint another delegate. An empty manager clears the
// appointment.
func (s *Deedmarket) SetManager(assetId uint64, caller, manager string) error {
	s.assetLocker.Lock(assetId)
	defer s.assetLocker.Unlock(assetId)

	owner, err := s.titles.OwnerOf(assetId)
	if err != nil {
		return schema.ErrNotFound
	}
	if caller != owner {
		return schema.ErrNotAuthorized
	}
	return s.store.SaveDelegate(assetId, manager)
}

func (s *Deedmarket) Manager(assetId uint64) (string, error) {
	if !s.store.ExistProperty(assetId) {
		return "", schema.ErrNotFound
	}
	return s.store.LoadDelegate(assetId)
}

// isAuthorized is the single gate shared by sale listing, rental listing,
// auction start and offer acceptance: title holder or current delegate.
func (s *Deedmarket) isAuthorized(assetId uint64, caller string) bool {
	owner, err := s.titles.OwnerOf(assetId)
	if err != nil {
		return false
	}
	if caller == owner {
		return true
	}
	delegate, err := s.store.LoadDelegate(assetId)
	if err != nil {
		return false
	}
	return delegate != "" && caller == delegate
}
