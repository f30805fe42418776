package customers

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

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), gormTxRunner{db: db})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, db
}

func TestCustomerCRUD(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, CreateCustomerInput{
		FirstName: "  Alem  ",
		LastName:  "Bekele",
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if customer.FirstName != "Alem" {
		t.Fatalf("expected trimmed first name, got %q", customer.FirstName)
	}
	if customer.LoyaltyPoints != 0 {
		t.Fatalf("expected zero loyalty points, got %d", customer.LoyaltyPoints)
	}

	points := 40
	updated, err := svc.Update(ctx, customer.ID, UpdateCustomerInput{LoyaltyPoints: &points})
	if err != nil {
		t.Fatalf("update customer: %v", err)
	}
	if updated.LoyaltyPoints != 40 {
		t.Fatalf("expected 40 loyalty points, got %d", updated.LoyaltyPoints)
	}

	if err := svc.Delete(ctx, customer.ID); err != nil {
		t.Fatalf("delete customer: %v", err)
	}

	_, err = svc.Get(ctx, customer.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestCreateCustomerRequiresNames(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateCustomerInput{FirstName: "Alem"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateCustomerRejectsNegativeLoyaltyPoints(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, CreateCustomerInput{FirstName: "Sara", LastName: "Tadesse"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	points := -1
	_, err = svc.Update(ctx, customer.ID, UpdateCustomerInput{LoyaltyPoints: &points})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteCustomerBlockedBySales(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, CreateCustomerInput{FirstName: "Kidist", LastName: "Haile"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	sale := models.Sale{
		ID:            uuid.New(),
		CustomerID:    customer.ID,
		SubTotal:      decimal.RequireFromString("10.00"),
		TaxPercentage: decimal.Zero,
		TaxAmount:     decimal.Zero,
		GrandTotal:    decimal.RequireFromString("10.00"),
		AmountPaid:    decimal.RequireFromString("10.00"),
		AmountChange:  decimal.Zero,
	}
	if err := db.Create(&sale).Error; err != nil {
		t.Fatalf("seed sale: %v", err)
	}

	err = svc.Delete(ctx, customer.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeReferential {
		t.Fatalf("expected referential error, got %v", err)
	}

	if _, err := svc.Get(ctx, customer.ID); err != nil {
		t.Fatalf("customer should still exist: %v", err)
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:customers_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	ddl := []string{`
CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  address TEXT,
  email TEXT,
  phone TEXT,
  loyalty_points INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
)`, `
CREATE TABLE IF NOT EXISTS sales (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  sub_total NUMERIC NOT NULL,
  tax_percentage NUMERIC NOT NULL,
  tax_amount NUMERIC NOT NULL,
  grand_total NUMERIC NOT NULL,
  amount_paid NUMERIC NOT NULL,
  amount_change NUMERIC NOT NULL,
  created_at DATETIME
)`}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return db
}
