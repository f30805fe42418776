package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a stocked product. Quantity is owned by the stock ledger; no other
// code path writes it.
type Item struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string          `gorm:"column:name;not null"`
	Slug         string          `gorm:"column:slug;not null;uniqueIndex"`
	Description  string          `gorm:"column:description;not null;default:''"`
	CategoryID   uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	Category     *Category       `gorm:"foreignKey:CategoryID"`
	Quantity     int             `gorm:"column:quantity;not null;default:0"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	ExpiringDate *time.Time      `gorm:"column:expiring_date"`
	VendorID     *uuid.UUID      `gorm:"column:vendor_id;type:uuid"`
	Vendor       *Vendor         `gorm:"foreignKey:VendorID"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
