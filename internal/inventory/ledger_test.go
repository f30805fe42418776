package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/tmekonnen/stockroom-backend/pkg/errors"
)

func TestReserveAndDecrement(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	ledger := NewLedger()
	itemID := seedItem(t, db, "widget", 10)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.ReserveAndDecrement(ctx, tx, itemID, 4)
	})
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}

	var item models.Item
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		t.Fatalf("load item: %v", err)
	}
	if item.Quantity != 6 {
		t.Fatalf("expected quantity 6, got %d", item.Quantity)
	}
}

func TestReserveAndDecrementInsufficientStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	ledger := NewLedger()
	itemID := seedItem(t, db, "gadget", 3)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.ReserveAndDecrement(ctx, tx, itemID, 5)
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("unexpected error: %v", err)
	}
	details, ok := typed.Details().(ShortfallDetails)
	if !ok {
		t.Fatalf("unexpected details type %T", typed.Details())
	}
	if details.Requested != 5 || details.Available != 3 {
		t.Fatalf("unexpected shortfall details: %+v", details)
	}

	var item models.Item
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		t.Fatalf("load item: %v", err)
	}
	if item.Quantity != 3 {
		t.Fatalf("failed decrement must not change stock, got %d", item.Quantity)
	}
}

func TestReserveAndDecrementExactBoundary(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	ledger := NewLedger()
	itemID := seedItem(t, db, "board", 7)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.ReserveAndDecrement(ctx, tx, itemID, 7)
	})
	if err != nil {
		t.Fatalf("decrement to zero: %v", err)
	}

	var item models.Item
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		t.Fatalf("load item: %v", err)
	}
	if item.Quantity != 0 {
		t.Fatalf("expected quantity 0, got %d", item.Quantity)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return ledger.ReserveAndDecrement(ctx, tx, itemID, 1)
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock at zero, got %v", err)
	}
}

func TestReserveAndDecrementMissingItem(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ledger := NewLedger()

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.ReserveAndDecrement(context.Background(), tx, uuid.New(), 1)
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReserveAndDecrementInvalidQty(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ledger := NewLedger()
	itemID := seedItem(t, db, "roll", 5)

	err := ledger.ReserveAndDecrement(context.Background(), db, itemID, 0)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestIncrementOnDelivery(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	ledger := NewLedger()
	itemID := seedItem(t, db, "crate", 2)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.IncrementOnDelivery(ctx, tx, itemID, 8)
	})
	if err != nil {
		t.Fatalf("increment: %v", err)
	}

	var item models.Item
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		t.Fatalf("load item: %v", err)
	}
	if item.Quantity != 10 {
		t.Fatalf("expected quantity 10, got %d", item.Quantity)
	}
}

func TestIncrementOnDeliveryMissingItem(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ledger := NewLedger()

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.IncrementOnDelivery(context.Background(), tx, uuid.New(), 3)
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func seedItem(t *testing.T, db *gorm.DB, slug string, qty int) uuid.UUID {
	t.Helper()
	category := models.Category{ID: uuid.New(), Name: "General", Slug: "general-" + uuid.NewString()}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	item := models.Item{
		ID:         uuid.New(),
		Name:       slug,
		Slug:       slug + "-" + uuid.NewString(),
		CategoryID: category.ID,
		Quantity:   qty,
		Price:      decimal.NewFromFloat(5.00),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item.ID
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:ledger_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	// Raw DDL because the models carry Postgres column defaults sqlite
	// cannot parse.
	ddl := []string{`
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
)`, `
CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  category_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  price NUMERIC NOT NULL,
  expiring_date DATETIME,
  vendor_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
)`}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return db
}
