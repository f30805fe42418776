package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a committed customer transaction. All monetary fields are derived
// once at creation time and never recomputed afterwards.
type Sale struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID    uuid.UUID       `gorm:"column:customer_id;type:uuid;not null"`
	Customer      *Customer       `gorm:"foreignKey:CustomerID"`
	SubTotal      decimal.Decimal `gorm:"column:sub_total;type:numeric(10,2);not null"`
	TaxPercentage decimal.Decimal `gorm:"column:tax_percentage;type:numeric(5,2);not null"`
	TaxAmount     decimal.Decimal `gorm:"column:tax_amount;type:numeric(10,2);not null"`
	GrandTotal    decimal.Decimal `gorm:"column:grand_total;type:numeric(10,2);not null"`
	AmountPaid    decimal.Decimal `gorm:"column:amount_paid;type:numeric(10,2);not null"`
	AmountChange  decimal.Decimal `gorm:"column:amount_change;type:numeric(10,2);not null"`
	Details       []SaleDetail    `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}
