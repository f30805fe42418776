package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tmekonnen/stockroom-backend/pkg/enums"
)

// Bill is an institutional invoice with payment tracking.
type Bill struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	InstitutionName string              `gorm:"column:institution_name;not null"`
	Phone           *string             `gorm:"column:phone"`
	Email           *string             `gorm:"column:email"`
	Address         *string             `gorm:"column:address"`
	Description     *string             `gorm:"column:description"`
	PaymentDetails  string              `gorm:"column:payment_details;not null"`
	Amount          decimal.Decimal     `gorm:"column:amount;type:numeric(10,2);not null"`
	Status          enums.PaymentStatus `gorm:"column:status;type:text;not null;default:'unpaid'"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
