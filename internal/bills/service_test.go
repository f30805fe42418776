package bills

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tmekonnen/stockroom-backend/pkg/enums"
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
	dsn := "file:bills_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	// Raw DDL because the models carry Postgres column defaults sqlite cannot parse.
	ddl := `
CREATE TABLE IF NOT EXISTS bills (
  id TEXT PRIMARY KEY,
  institution_name TEXT NOT NULL,
  phone TEXT,
  email TEXT,
  address TEXT,
  description TEXT,
  payment_details TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'unpaid',
  created_at DATETIME,
  updated_at DATETIME
)`
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatalf("create bills table: %v", err)
	}
	return db
}

func newTestService(t *testing.T) Service {
	t.Helper()
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), gormTxRunner{db: db})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestBillLifecycle(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBillInput{
		InstitutionName: "Unity School",
		PaymentDetails:  "Bank transfer, ref 5521",
		Amount:          decimal.RequireFromString("120.00"),
	})
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}
	if created.Status != enums.PaymentStatusUnpaid {
		t.Fatalf("expected new bill to be unpaid, got %s", created.Status)
	}

	partially := enums.PaymentStatusPartiallyPaid
	updated, err := svc.Update(ctx, created.ID, UpdateBillInput{Status: &partially})
	if err != nil {
		t.Fatalf("mark partially paid: %v", err)
	}
	if updated.Status != enums.PaymentStatusPartiallyPaid {
		t.Fatalf("expected partially_paid, got %s", updated.Status)
	}

	paid := enums.PaymentStatusPaid
	if _, err := svc.Update(ctx, created.ID, UpdateBillInput{Status: &paid}); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	amount := decimal.RequireFromString("90.00")
	_, err = svc.Update(ctx, created.ID, UpdateBillInput{Amount: &amount})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict changing paid amount, got %v", err)
	}
}

func TestCreateBillRejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.Create(context.Background(), CreateBillInput{
		InstitutionName: "Any",
		PaymentDetails:  "cash",
		Amount:          decimal.Zero,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListBillsFilteredByStatus(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	paid := enums.PaymentStatusPaid
	if _, err := svc.Create(ctx, CreateBillInput{
		InstitutionName: "Paid Client",
		PaymentDetails:  "cheque 18",
		Amount:          decimal.RequireFromString("45.00"),
		Status:          &paid,
	}); err != nil {
		t.Fatalf("create paid bill: %v", err)
	}
	if _, err := svc.Create(ctx, CreateBillInput{
		InstitutionName: "Unpaid Client",
		PaymentDetails:  "invoice 22",
		Amount:          decimal.RequireFromString("60.00"),
	}); err != nil {
		t.Fatalf("create unpaid bill: %v", err)
	}

	result, err := svc.List(ctx, ListParams{Status: "paid"})
	if err != nil {
		t.Fatalf("list bills: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].InstitutionName != "Paid Client" {
		t.Fatalf("expected only the paid bill, got %d items", len(result.Items))
	}

	if _, err := svc.List(ctx, ListParams{Status: "bogus"}); err == nil {
		t.Fatal("expected error for unknown status filter")
	}
}
