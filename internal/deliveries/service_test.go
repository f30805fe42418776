package deliveries

import (
	"context"
	"testing"
	"time"

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
	dsn := "file:deliveries_" + uuid.NewString() + "?mode=memory&cache=shared"
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
CREATE TABLE IF NOT EXISTS deliveries (
  id TEXT PRIMARY KEY,
  item_id TEXT,
  customer_name TEXT NOT NULL,
  phone TEXT,
  location TEXT,
  date DATETIME NOT NULL,
  is_delivered BOOLEAN NOT NULL DEFAULT 0,
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

func seedItem(t *testing.T, db *gorm.DB, name string, quantity int) *models.Item {
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
		Price:      decimal.RequireFromString("4.50"),
		Quantity:   quantity,
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

func TestCreateDeliveryAndMarkDelivered(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	ctx := context.Background()
	item := seedItem(t, db, "Sugar 1kg", 9)

	created, err := svc.Create(ctx, CreateDeliveryInput{
		ItemID:       &item.ID,
		CustomerName: "Hanna Bekele",
		Date:         time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create delivery: %v", err)
	}
	if created.IsDelivered {
		t.Fatal("expected new delivery to be pending")
	}
	if created.ItemName == nil || *created.ItemName != "Sugar 1kg" {
		t.Fatal("expected item name on DTO")
	}

	delivered := true
	updated, err := svc.Update(ctx, created.ID, UpdateDeliveryInput{IsDelivered: &delivered})
	if err != nil {
		t.Fatalf("mark delivered: %v", err)
	}
	if !updated.IsDelivered {
		t.Fatal("expected delivery to be marked delivered")
	}

	// The delivery record never touches stock.
	var quantity int
	if err := db.Raw("SELECT quantity FROM items WHERE id = ?", item.ID).Row().Scan(&quantity); err != nil {
		t.Fatalf("read quantity: %v", err)
	}
	if quantity != 9 {
		t.Fatalf("expected stock unchanged at 9, got %d", quantity)
	}
}

func TestCreateDeliveryUnknownItem(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	missing := uuid.New()
	_, err := svc.Create(context.Background(), CreateDeliveryInput{
		ItemID:       &missing,
		CustomerName: "Ghost",
		Date:         time.Now(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteDelivery(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateDeliveryInput{
		CustomerName: "Walk In",
		Date:         time.Now(),
	})
	if err != nil {
		t.Fatalf("create delivery: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete delivery: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err == nil {
		t.Fatal("expected second delete to fail")
	}
}
