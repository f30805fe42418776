package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
)

// CreateCategoryInput holds creation-time data for a category.
type CreateCategoryInput struct {
	Name string
	Slug string
}

// UpdateCategoryInput carries partial category updates.
type UpdateCategoryInput struct {
	Name *string
	Slug *string
}

// CategoryDTO exposes a category in API responses.
type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateItemInput holds creation-time data for a stocked item. Quantity seeds
// the opening stock level; later movements go through the stock ledger.
type CreateItemInput struct {
	Name         string
	Slug         string
	Description  string
	CategoryID   uuid.UUID
	Quantity     int
	Price        decimal.Decimal
	ExpiringDate *time.Time
	VendorID     *uuid.UUID
}

// UpdateItemInput carries partial item updates. Quantity is deliberately
// absent; only the stock ledger writes it.
type UpdateItemInput struct {
	Name         *string
	Slug         *string
	Description  *string
	CategoryID   *uuid.UUID
	Price        *decimal.Decimal
	ExpiringDate *time.Time
	VendorID     *uuid.UUID
}

// ItemDTO exposes an item in API responses.
type ItemDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description"`
	CategoryID   uuid.UUID       `json:"category_id"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	ExpiringDate *time.Time      `json:"expiring_date,omitempty"`
	VendorID     *uuid.UUID      `json:"vendor_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ListParams carries pagination inputs for item listings.
type ListParams struct {
	Limit      int
	Cursor     string
	CategoryID *uuid.UUID
}

// ItemListResult wraps returned items and the cursor for the next page.
type ItemListResult struct {
	Items  []ItemDTO `json:"items"`
	Cursor string    `json:"cursor"`
}

// CategoryFromModel maps the persisted category into a DTO.
func CategoryFromModel(m *models.Category) *CategoryDTO {
	if m == nil {
		return nil
	}
	return &CategoryDTO{
		ID:        m.ID,
		Name:      m.Name,
		Slug:      m.Slug,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ItemFromModel maps the persisted item into a DTO.
func ItemFromModel(m *models.Item) *ItemDTO {
	if m == nil {
		return nil
	}
	return &ItemDTO{
		ID:           m.ID,
		Name:         m.Name,
		Slug:         m.Slug,
		Description:  m.Description,
		CategoryID:   m.CategoryID,
		Quantity:     m.Quantity,
		Price:        m.Price,
		ExpiringDate: m.ExpiringDate,
		VendorID:     m.VendorID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
