package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tmekonnen/stockroom-backend/pkg/enums"
)

// Purchase is a replenishment order placed with a vendor. DeliveryDate stays
// nil until the first transition into delivered and is set at most once.
type Purchase struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID       uuid.UUID            `gorm:"column:item_id;type:uuid;not null;index"`
	Item         *Item                `gorm:"foreignKey:ItemID"`
	VendorID     uuid.UUID            `gorm:"column:vendor_id;type:uuid;not null;index"`
	Vendor       *Vendor              `gorm:"foreignKey:VendorID"`
	OrderDate    time.Time            `gorm:"column:order_date;autoCreateTime"`
	DeliveryDate *time.Time           `gorm:"column:delivery_date"`
	Quantity     int                  `gorm:"column:quantity;not null"`
	UnitPrice    decimal.Decimal      `gorm:"column:unit_price;type:numeric(10,2);not null"`
	TotalCost    decimal.Decimal      `gorm:"column:total_cost;type:numeric(10,2);not null"`
	Status       enums.PurchaseStatus `gorm:"column:status;type:text;not null;default:'pending';index"`
	Notes        *string              `gorm:"column:notes"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
