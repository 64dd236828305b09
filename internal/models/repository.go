package models

import "context"

// Repository persists items. Implementations return ErrNotFound (possibly
// wrapped) when an id does not exist.
type Repository interface {
	// Migrate creates the schema if needed
	Migrate(ctx context.Context) error

	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id uint64) (*Item, error)
	FindItems(ctx context.Context, query ItemQuery) ([]*Item, error)
	DeleteItem(ctx context.Context, id uint64) error

	// MutateItem loads an item, applies mutate and saves the result as one
	// atomic unit. If mutate returns an error nothing is written.
	MutateItem(ctx context.Context, id uint64, mutate func(*Item) error) (*Item, error)

	Ping(ctx context.Context) error
	Close() error
}
