package deliveries

import (
	"time"

	"github.com/google/uuid"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
)

// CreateDeliveryInput holds creation-time data for a delivery record.
type CreateDeliveryInput struct {
	ItemID       *uuid.UUID
	CustomerName string
	Phone        *string
	Location     *string
	Date         time.Time
	IsDelivered  *bool
}

// UpdateDeliveryInput carries partial updates; nil fields are left untouched.
type UpdateDeliveryInput struct {
	ItemID       *uuid.UUID
	CustomerName *string
	Phone        *string
	Location     *string
	Date         *time.Time
	IsDelivered  *bool
}

// DeliveryDTO exposes a delivery in API responses.
type DeliveryDTO struct {
	ID           uuid.UUID  `json:"id"`
	ItemID       *uuid.UUID `json:"item_id,omitempty"`
	ItemName     *string    `json:"item_name,omitempty"`
	CustomerName string     `json:"customer_name"`
	Phone        *string    `json:"phone,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Date         time.Time  `json:"date"`
	IsDelivered  bool       `json:"is_delivered"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ListParams carries pagination inputs for delivery listings.
type ListParams struct {
	Limit  int
	Cursor string
}

// ListResult wraps returned deliveries and the cursor for the next page.
type ListResult struct {
	Items  []DeliveryDTO `json:"items"`
	Cursor string        `json:"cursor"`
}

// FromModel maps the persisted delivery into a DTO.
func FromModel(m *models.Delivery) *DeliveryDTO {
	if m == nil {
		return nil
	}
	dto := &DeliveryDTO{
		ID:           m.ID,
		ItemID:       m.ItemID,
		CustomerName: m.CustomerName,
		Phone:        m.Phone,
		Location:     m.Location,
		Date:         m.Date,
		IsDelivered:  m.IsDelivered,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Item != nil {
		name := m.Item.Name
		dto.ItemName = &name
	}
	return dto
}
