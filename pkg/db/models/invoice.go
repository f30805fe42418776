package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is a payment request issued to a customer. Total and GrandTotal are
// derived at creation time.
type Invoice struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName  string          `gorm:"column:customer_name;not null"`
	ContactNumber string          `gorm:"column:contact_number;not null"`
	ItemID        uuid.UUID       `gorm:"column:item_id;type:uuid;not null"`
	Item          *Item           `gorm:"foreignKey:ItemID"`
	PricePerItem  decimal.Decimal `gorm:"column:price_per_item;type:numeric(10,2);not null"`
	Quantity      int             `gorm:"column:quantity;not null"`
	Shipping      decimal.Decimal `gorm:"column:shipping;type:numeric(10,2);not null"`
	Total         decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null"`
	GrandTotal    decimal.Decimal `gorm:"column:grand_total;type:numeric(10,2);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}
