package invoices

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
)

// CreateInvoiceInput holds the data needed to issue an invoice.
// Total and grand total are derived, never accepted from the caller.
type CreateInvoiceInput struct {
	CustomerName  string
	ContactNumber string
	ItemID        uuid.UUID
	PricePerItem  decimal.Decimal
	Quantity      int
	Shipping      decimal.Decimal
}

// InvoiceDTO exposes an invoice in API responses.
type InvoiceDTO struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customer_name"`
	ContactNumber string          `json:"contact_number"`
	ItemID        uuid.UUID       `json:"item_id"`
	ItemName      *string         `json:"item_name,omitempty"`
	PricePerItem  decimal.Decimal `json:"price_per_item"`
	Quantity      int             `json:"quantity"`
	Shipping      decimal.Decimal `json:"shipping"`
	Total         decimal.Decimal `json:"total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ListParams carries pagination inputs for invoice listings.
type ListParams struct {
	Limit  int
	Cursor string
}

// ListResult wraps returned invoices and the cursor for the next page.
type ListResult struct {
	Items  []InvoiceDTO `json:"items"`
	Cursor string       `json:"cursor"`
}

// FromModel maps the persisted invoice into a DTO.
func FromModel(m *models.Invoice) *InvoiceDTO {
	if m == nil {
		return nil
	}
	dto := &InvoiceDTO{
		ID:            m.ID,
		CustomerName:  m.CustomerName,
		ContactNumber: m.ContactNumber,
		ItemID:        m.ItemID,
		PricePerItem:  m.PricePerItem,
		Quantity:      m.Quantity,
		Shipping:      m.Shipping,
		Total:         m.Total,
		GrandTotal:    m.GrandTotal,
		CreatedAt:     m.CreatedAt,
	}
	if m.Item != nil {
		name := m.Item.Name
		dto.ItemName = &name
	}
	return dto
}
