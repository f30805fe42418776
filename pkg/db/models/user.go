package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tmekonnen/stockroom-backend/pkg/enums"
)

// User is a staff account that can operate the system.
type User struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string            `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string            `gorm:"column:password_hash;not null"`
	FirstName    string            `gorm:"column:first_name;not null"`
	LastName     string            `gorm:"column:last_name;not null"`
	Phone        *string           `gorm:"column:phone"`
	Role         enums.StaffRole   `gorm:"column:role;type:text;not null;default:'operative'"`
	Status       enums.StaffStatus `gorm:"column:status;type:text;not null;default:'active'"`
	LastLoginAt  *time.Time        `gorm:"column:last_login_at"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
