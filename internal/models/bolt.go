package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// BoltDatabase stores items in an embedded bolt file through bolthold
type BoltDatabase struct {
	store *bolthold.Store
}

// OpenBolt opens (creating if needed) the bolt file at path
func OpenBolt(path string) (*BoltDatabase, error) {
	// JSON keeps nil and zero pointers apart, gob would not
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Encoder: json.Marshal,
		Decoder: json.Unmarshal,
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &BoltDatabase{store: store}, nil
}

// Migrate is a no-op, bolthold creates buckets and indexes on first write
func (db *BoltDatabase) Migrate(ctx context.Context) error {
	return nil
}

// Close closes the bolt file
func (db *BoltDatabase) Close() error {
	return db.store.Close()
}

// Ping checks that the bolt file is still open
func (db *BoltDatabase) Ping(ctx context.Context) error {
	return db.store.Bolt().View(func(tx *bbolt.Tx) error {
		return nil
	})
}

// Item operations

// CreateItem inserts item and fills in its generated id
func (db *BoltDatabase) CreateItem(ctx context.Context, item *Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := db.store.Insert(bolthold.NextSequence(), item); err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// GetItem retrieves an item by id
func (db *BoltDatabase) GetItem(ctx context.Context, id uint64) (*Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var item Item
	if err := db.store.Get(id, &item); err != nil {
		return nil, boltNotFound(id, err)
	}
	return &item, nil
}

// FindItems retrieves the items matching query. Status and kind criteria
// run inside bolthold; the remaining filters and the sort run in memory.
func (db *BoltDatabase) FindItems(ctx context.Context, query ItemQuery) ([]*Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var q *bolthold.Query
	where := func(field string) *bolthold.Criterion {
		if q == nil {
			return bolthold.Where(field)
		}
		return q.And(field)
	}

	if query.Status != "" {
		q = where("Status").Eq(query.Status)
	}
	if query.Kind != "" {
		q = where("Kind").Eq(query.Kind)
	}
	if query.ExcludeStatus != "" {
		q = where("Status").Ne(query.ExcludeStatus)
	}

	var items []*Item
	if err := db.store.Find(&items, q); err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}

	return query.Apply(items), nil
}

// MutateItem applies mutate to the stored item inside a bolt transaction
func (db *BoltDatabase) MutateItem(ctx context.Context, id uint64, mutate func(*Item) error) (*Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var item Item
	err := db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		if err := db.store.TxGet(tx, id, &item); err != nil {
			return boltNotFound(id, err)
		}
		if err := mutate(&item); err != nil {
			return err
		}
		if err := db.store.TxUpdate(tx, id, &item); err != nil {
			return fmt.Errorf("failed to save item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem deletes an item by id
func (db *BoltDatabase) DeleteItem(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		var item Item
		if err := db.store.TxGet(tx, id, &item); err != nil {
			return boltNotFound(id, err)
		}
		if err := db.store.TxDelete(tx, id, &item); err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}
		return nil
	})
}

func boltNotFound(id uint64, err error) error {
	if errors.Is(err, bolthold.ErrNotFound) {
		return fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return fmt.Errorf("failed to load item %d: %w", id, err)
}
