package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a buyer referenced by sales.
type Customer struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName     string    `gorm:"column:first_name;not null"`
	LastName      string    `gorm:"column:last_name;not null"`
	Address       *string   `gorm:"column:address"`
	Email         *string   `gorm:"column:email"`
	Phone         *string   `gorm:"column:phone"`
	LoyaltyPoints int       `gorm:"column:loyalty_points;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
