package deedmarket

import (
	"github.com/deedmarket/deedmarket/schema"
)

// TitleRegistry is the non-fungible title ledger behind the market: one owner
// per asset id, assigned at mint and moved by transfer. Title transfer is
// atomic from the market's point of view.
type TitleRegistry interface {
	OwnerOf(id uint64) (string, error)
	Mint(to string, id uint64) error
	Transfer(from, to string, id uint64) error
}

// AccessControl gates the privileged mint path.
type AccessControl interface {
	IsPrivileged(caller string) bool
}

// titleBook is the default in-process TitleRegistry, persisted in the KV store.
type titleBook struct {
	store *Store
}

func NewTitleBook(store *Store) TitleRegistry {
	return &titleBook{store: store}
}

func (t *titleBook) OwnerOf(id uint64) (string, error) {
	owner, err := t.store.LoadTitle(id)
	if err == schema.ErrNotExist {
		return "", schema.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return owner, nil
}

func (t *titleBook) Mint(to string, id uint64) error {
	if t.store.ExistTitle(id) {
		return schema.ErrStateConflict
	}
	return t.store.SaveTitle(id, to)
}

func (t *titleBook) Transfer(from, to string, id uint64) error {
	owner, err := t.OwnerOf(id)
	if err != nil {
		return err
	}
	if owner != from {
		return schema.ErrNotAuthorized
	}
	return t.store.SaveTitle(id, to)
}
