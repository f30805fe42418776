package vendors

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
	"github.com/tmekonnen/stockroom-backend/pkg/enums"
	pkgerrors "github.com/tmekonnen/stockroom-backend/pkg/errors"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
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

func TestVendorCRUD(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	vendor, err := svc.Create(ctx, CreateVendorInput{Name: "  Addis Trading  "})
	if err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	if vendor.Name != "Addis Trading" {
		t.Fatalf("expected trimmed name, got %q", vendor.Name)
	}

	phone := "+251-11-1234567"
	updated, err := svc.Update(ctx, vendor.ID, UpdateVendorInput{Phone: &phone})
	if err != nil {
		t.Fatalf("update vendor: %v", err)
	}
	if updated.Phone == nil || *updated.Phone != phone {
		t.Fatal("expected phone to be set")
	}

	if err := svc.Delete(ctx, vendor.ID); err != nil {
		t.Fatalf("delete vendor: %v", err)
	}

	_, err = svc.Get(ctx, vendor.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestDeleteVendorBlockedByPurchases(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	ctx := context.Background()

	vendor, err := svc.Create(ctx, CreateVendorInput{Name: "Blocked Vendor"})
	if err != nil {
		t.Fatalf("create vendor: %v", err)
	}

	purchase := models.Purchase{
		ID:        uuid.New(),
		ItemID:    uuid.New(),
		VendorID:  vendor.ID,
		Quantity:  1,
		UnitPrice: decimal.RequireFromString("1.00"),
		TotalCost: decimal.RequireFromString("1.00"),
		Status:    enums.PurchaseStatusPending,
	}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatalf("seed purchase: %v", err)
	}

	err = svc.Delete(ctx, vendor.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeReferential {
		t.Fatalf("expected referential error, got %v", err)
	}

	if _, err := svc.Get(ctx, vendor.ID); err != nil {
		t.Fatalf("vendor must survive blocked delete: %v", err)
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:vendors_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	ddl := []string{`
CREATE TABLE IF NOT EXISTS vendors (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  address TEXT,
  phone TEXT,
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
)`, `
CREATE TABLE IF NOT EXISTS purchases (
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL,
  vendor_id TEXT NOT NULL,
  order_date DATETIME,
  delivery_date DATETIME,
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  total_cost NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  notes TEXT,
  updated_at DATETIME
)`}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return db
}
