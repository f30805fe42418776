package invoices

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

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:invoices_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	// Raw DDL because the models carry Postgres column defaults sqlite cannot parse.
	ddl := []string{`
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT,
  created_at DATETIME,
  updated_at DATETIME
)`, `
CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT,
  category_id TEXT NOT NULL,
  vendor_id TEXT,
  price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  expiring_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME
)`, `
CREATE TABLE IF NOT EXISTS invoices (
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL,
  contact_number TEXT NOT NULL,
  item_id TEXT NOT NULL,
  price_per_item NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  shipping NUMERIC NOT NULL,
  total NUMERIC NOT NULL,
  grand_total NUMERIC NOT NULL,
  created_at DATETIME
)`}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return db
}

func seedItem(t *testing.T, db *gorm.DB, name string) *models.Item {
	t.Helper()
	category := models.Category{ID: uuid.New(), Name: "General", Slug: "general-" + uuid.NewString()}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	item := models.Item{
		ID:         uuid.New(),
		Name:       name,
		Slug:       "item-" + uuid.NewString(),
		CategoryID: category.ID,
		Price:      decimal.RequireFromString("3.25"),
		Quantity:   10,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return &item
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), gormTxRunner{db: db})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, db
}

func assertDecimal(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestCreateInvoiceDerivesTotals(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	ctx := context.Background()
	item := seedItem(t, db, "Cooking Oil 2L")

	created, err := svc.Create(ctx, CreateInvoiceInput{
		CustomerName:  "Lensa Hotels",
		ContactNumber: "+251-91-2223344",
		ItemID:        item.ID,
		PricePerItem:  decimal.RequireFromString("7.99"),
		Quantity:      3,
		Shipping:      decimal.RequireFromString("5.50"),
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	assertDecimal(t, created.Total, "23.97")
	assertDecimal(t, created.GrandTotal, "29.47")
	if created.ItemName == nil || *created.ItemName != "Cooking Oil 2L" {
		t.Fatal("expected item name on DTO")
	}
}

func TestCreateInvoiceUnknownItem(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateInvoiceInput{
		CustomerName:  "Ghost",
		ContactNumber: "+251-91-0000000",
		ItemID:        uuid.New(),
		PricePerItem:  decimal.RequireFromString("1.00"),
		Quantity:      1,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateInvoiceRejectsNegativeShipping(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	item := seedItem(t, db, "Flour 5kg")

	_, err := svc.Create(context.Background(), CreateInvoiceInput{
		CustomerName:  "Any",
		ContactNumber: "+251-91-1112233",
		ItemID:        item.ID,
		PricePerItem:  decimal.RequireFromString("2.00"),
		Quantity:      2,
		Shipping:      decimal.RequireFromString("-1.00"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteInvoice(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	ctx := context.Background()
	item := seedItem(t, db, "Salt 1kg")

	created, err := svc.Create(ctx, CreateInvoiceInput{
		CustomerName:  "Corner Shop",
		ContactNumber: "+251-91-5556677",
		ItemID:        item.ID,
		PricePerItem:  decimal.RequireFromString("0.80"),
		Quantity:      12,
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete invoice: %v", err)
	}
	_, err = svc.Get(ctx, created.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
