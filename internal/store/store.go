// internal/store/store.go
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/almoxdev/estoque-backend/internal/interchange"
	"github.com/almoxdev/estoque-backend/internal/models"
)

// DataStore is the tabular data-store collaborator of the interchange
// subsystem: unfiltered reads, bulk inserts, and bulk id-keyed upserts per
// collection. Nothing in the interchange path needs filtered queries.
type DataStore interface {
	ReadAll(ctx context.Context, c interchange.Collection) ([]interchange.Record, error)
	BulkInsert(ctx context.Context, c interchange.Collection, rows []interchange.Record) error
	BulkUpsert(ctx context.Context, c interchange.Collection, rows []interchange.Record) error
}

// GormStore implements DataStore over PostgreSQL. Loose records are decoded
// into the concrete model type of each collection before touching the
// database, so every write goes through the same column set and defaults as
// the CRUD services.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ReadAll(ctx context.Context, c interchange.Collection) ([]interchange.Record, error) {
	switch c {
	case interchange.Products:
		return readAll[models.Product](ctx, s.db)
	case interchange.StorageLocations:
		return readAll[models.StorageLocation](ctx, s.db)
	case interchange.Invoices:
		return readAll[models.Invoice](ctx, s.db)
	case interchange.ProductEntries:
		return readAll[models.ProductEntry](ctx, s.db)
	case interchange.ProductExits:
		return readAll[models.ProductExit](ctx, s.db)
	case interchange.ShoppingList:
		return readAll[models.ShoppingListItem](ctx, s.db)
	default:
		return nil, fmt.Errorf("unknown collection %q", c)
	}
}

func (s *GormStore) BulkInsert(ctx context.Context, c interchange.Collection, rows []interchange.Record) error {
	return s.write(ctx, c, rows, false)
}

func (s *GormStore) BulkUpsert(ctx context.Context, c interchange.Collection, rows []interchange.Record) error {
	return s.write(ctx, c, rows, true)
}

func (s *GormStore) write(ctx context.Context, c interchange.Collection, rows []interchange.Record, upsert bool) error {
	if len(rows) == 0 {
		return nil
	}

	switch c {
	case interchange.Products:
		return writeRows[models.Product](ctx, s.db, c, rows, upsert)
	case interchange.StorageLocations:
		return writeRows[models.StorageLocation](ctx, s.db, c, rows, upsert)
	case interchange.Invoices:
		return writeRows[models.Invoice](ctx, s.db, c, rows, upsert)
	case interchange.ProductEntries:
		return writeRows[models.ProductEntry](ctx, s.db, c, rows, upsert)
	case interchange.ProductExits:
		return writeRows[models.ProductExit](ctx, s.db, c, rows, upsert)
	case interchange.ShoppingList:
		return writeRows[models.ShoppingListItem](ctx, s.db, c, rows, upsert)
	default:
		return fmt.Errorf("unknown collection %q", c)
	}
}

func readAll[T any](ctx context.Context, db *gorm.DB) ([]interchange.Record, error) {
	var rows []T
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return interchange.RecordsFrom(rows)
}

func writeRows[T any](ctx context.Context, db *gorm.DB, c interchange.Collection, rows []interchange.Record, upsert bool) error {
	typed, err := decodeRows[T](c, rows)
	if err != nil {
		return err
	}

	tx := db.WithContext(ctx)
	if upsert {
		// insert-or-replace keyed by identifier
		tx = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		})
	}
	if err := tx.Create(&typed).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}

// decodeRows converts loose records into the collection's concrete model
// type. Values already look like the model's JSON form: the spreadsheet
// parser hands over strings, which the decimal, uuid and date types all
// accept.
func decodeRows[T any](c interchange.Collection, rows []interchange.Record) ([]T, error) {
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rows for %s: %w", c, err)
	}
	var typed []T
	if err := json.Unmarshal(data, &typed); err != nil {
		return nil, &interchange.FormatError{Msg: fmt.Sprintf("invalid rows for %s: %v", c, err)}
	}
	return typed, nil
}
