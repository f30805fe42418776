package purchases

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
	"github.com/tmekonnen/stockroom-backend/pkg/enums"
)

// CreatePurchaseInput holds creation-time data for a replenishment order.
type CreatePurchaseInput struct {
	ItemID       uuid.UUID
	VendorID     uuid.UUID
	Quantity     int
	UnitPrice    decimal.Decimal
	Status       *enums.PurchaseStatus
	DeliveryDate *time.Time
	Notes        *string
}

// UpdatePurchaseInput carries partial updates; nil fields are left untouched.
type UpdatePurchaseInput struct {
	Quantity     *int
	UnitPrice    *decimal.Decimal
	Status       *enums.PurchaseStatus
	DeliveryDate *time.Time
	Notes        *string
}

// ListParams carries pagination inputs for purchase listings.
type ListParams struct {
	Limit  int
	Cursor string
	Status *enums.PurchaseStatus
}

// ListResult wraps returned purchases and the cursor for the next page.
type ListResult struct {
	Items  []PurchaseDTO `json:"items"`
	Cursor string        `json:"cursor"`
}

// PurchaseDTO exposes a purchase in API responses.
type PurchaseDTO struct {
	ID           uuid.UUID            `json:"id"`
	ItemID       uuid.UUID            `json:"item_id"`
	VendorID     uuid.UUID            `json:"vendor_id"`
	OrderDate    time.Time            `json:"order_date"`
	DeliveryDate *time.Time           `json:"delivery_date,omitempty"`
	Quantity     int                  `json:"quantity"`
	UnitPrice    decimal.Decimal      `json:"unit_price"`
	TotalCost    decimal.Decimal      `json:"total_cost"`
	Status       enums.PurchaseStatus `json:"status"`
	Notes        *string              `json:"notes,omitempty"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// FromModel maps the persisted purchase into a DTO.
func FromModel(m *models.Purchase) *PurchaseDTO {
	if m == nil {
		return nil
	}
	return &PurchaseDTO{
		ID:           m.ID,
		ItemID:       m.ItemID,
		VendorID:     m.VendorID,
		OrderDate:    m.OrderDate,
		DeliveryDate: m.DeliveryDate,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		TotalCost:    m.TotalCost,
		Status:       m.Status,
		Notes:        m.Notes,
		UpdatedAt:    m.UpdatedAt,
	}
}
