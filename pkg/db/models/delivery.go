package models

import (
	"time"

	"github.com/google/uuid"
)

// Delivery records the hand-off of an item to a customer. It has no effect on
// stock quantities.
type Delivery struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID       *uuid.UUID `gorm:"column:item_id;type:uuid"`
	Item         *Item      `gorm:"foreignKey:ItemID"`
	CustomerName string     `gorm:"column:customer_name;not null"`
	Phone        *string    `gorm:"column:phone"`
	Location     *string    `gorm:"column:location"`
	Date         time.Time  `gorm:"column:date;not null;index"`
	IsDelivered  bool       `gorm:"column:is_delivered;not null;default:false"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
