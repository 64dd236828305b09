package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Database stores items in a SQL database through gorm
type Database struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewDatabase opens a gorm connection for dialector
func NewDatabase(dialector gorm.Dialector, logger zerolog.Logger) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{db: db, logger: logger}, nil
}

// OpenSQLite opens (creating if needed) the SQLite database at path
func OpenSQLite(ctx context.Context, path string, logger zerolog.Logger) (*Database, error) {
	db, err := NewDatabase(sqlite.Open(path+"?_busy_timeout=5000&_foreign_keys=on"), logger)
	if err != nil {
		return nil, err
	}
	db.enableSQLiteOptimizations(ctx)
	return db, nil
}

// OpenPostgres connects to the Postgres database described by dsn
func OpenPostgres(dsn string, logger zerolog.Logger) (*Database, error) {
	return NewDatabase(postgres.Open(dsn), logger)
}

// enableSQLiteOptimizations applies database-wide pragmas. Failures are
// logged and otherwise ignored.
func (d *Database) enableSQLiteOptimizations(ctx context.Context) {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if err := d.db.WithContext(ctx).Exec(pragma).Error; err != nil {
			d.logger.Warn().Err(err).Str("pragma", pragma).Msg("Failed to execute pragma")
		}
	}
}

// Migrate creates the items table and its indexes
func (d *Database) Migrate(ctx context.Context) error {
	if err := d.db.WithContext(ctx).AutoMigrate(&Item{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the database is reachable
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Item operations

// CreateItem inserts item and fills in its generated id
func (d *Database) CreateItem(ctx context.Context, item *Item) error {
	if err := d.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// GetItem retrieves an item by id
func (d *Database) GetItem(ctx context.Context, id uint64) (*Item, error) {
	var item Item
	if err := d.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(id, err)
	}
	return &item, nil
}

// FindItems retrieves the items matching query
func (d *Database) FindItems(ctx context.Context, query ItemQuery) ([]*Item, error) {
	tx := d.db.WithContext(ctx).Model(&Item{})

	if query.Genre != "" {
		tx = tx.Where(substringCondition(d.db.Dialector.Name(), "genre"), query.Genre)
	}
	if query.Platform != "" {
		tx = tx.Where("platform = ?", query.Platform)
	}
	if query.Status != "" {
		tx = tx.Where("status = ?", query.Status)
	}
	if query.Kind != "" {
		tx = tx.Where("kind = ?", query.Kind)
	}
	if query.ExcludeStatus != "" {
		tx = tx.Where("status <> ?", query.ExcludeStatus)
	}

	for _, order := range orderClauses(query.Sort) {
		tx = tx.Order(order)
	}

	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}

	items := []*Item{}
	if err := tx.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	return items, nil
}

// MutateItem applies mutate to the stored item inside a transaction
func (d *Database) MutateItem(ctx context.Context, id uint64, mutate func(*Item) error) (*Item, error) {
	var item Item
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return notFound(id, err)
		}
		if err := mutate(&item); err != nil {
			return err
		}
		if err := tx.Save(&item).Error; err != nil {
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
func (d *Database) DeleteItem(ctx context.Context, id uint64) error {
	result := d.db.WithContext(ctx).Delete(&Item{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return nil
}

// notFound translates gorm's missing-record error
func notFound(id uint64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return fmt.Errorf("failed to load item %d: %w", id, err)
}

// substringCondition builds a case-sensitive substring test. LIKE is
// case-insensitive on SQLite, so the engine's position function is used.
func substringCondition(dialect, column string) string {
	if dialect == "postgres" {
		return "strpos(" + column + ", ?) > 0"
	}
	return "instr(" + column + ", ?) > 0"
}

// orderClauses mirrors SortItems in SQL. Null ratings are pushed last
// explicitly since engines disagree on where NULL sorts.
func orderClauses(order SortOrder) []string {
	switch order {
	case SortRatingDesc:
		return []string{"rating IS NULL", "rating DESC", "id ASC"}
	case SortCreatedDesc:
		return []string{"created_at DESC", "id DESC"}
	default:
		return []string{"id ASC"}
	}
}
