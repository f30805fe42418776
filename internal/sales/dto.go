package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
)

// SaleLineInput is one requested line of a new sale. Price overrides the
// catalog price for this line when set; left nil, the item price is
// snapshotted at sale time.
type SaleLineInput struct {
	ItemID   uuid.UUID
	Quantity int
	Price    *decimal.Decimal
}

// CreateSaleInput holds creation-time data for a sale.
type CreateSaleInput struct {
	CustomerID    uuid.UUID
	TaxPercentage decimal.Decimal
	AmountPaid    decimal.Decimal
	Lines         []SaleLineInput
}

// ListParams carries pagination inputs for sale listings.
type ListParams struct {
	Limit  int
	Cursor string
}

// ListResult wraps returned sales and the cursor for the next page.
type ListResult struct {
	Items  []SaleDTO `json:"items"`
	Cursor string    `json:"cursor"`
}

// SaleDetailDTO exposes one sale line in API responses.
type SaleDetailDTO struct {
	ID       uuid.UUID       `json:"id"`
	ItemID   uuid.UUID       `json:"item_id"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// SaleDTO exposes a committed sale in API responses.
type SaleDTO struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	AmountChange  decimal.Decimal `json:"amount_change"`
	Details       []SaleDetailDTO `json:"details"`
	CreatedAt     time.Time       `json:"created_at"`
}

// FromModel maps the persisted sale into a DTO.
func FromModel(m *models.Sale) *SaleDTO {
	if m == nil {
		return nil
	}

	details := make([]SaleDetailDTO, 0, len(m.Details))
	for _, d := range m.Details {
		details = append(details, SaleDetailDTO{
			ID:       d.ID,
			ItemID:   d.ItemID,
			Price:    d.Price,
			Quantity: d.Quantity,
			Total:    d.Total,
		})
	}

	return &SaleDTO{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		SubTotal:      m.SubTotal,
		TaxPercentage: m.TaxPercentage,
		TaxAmount:     m.TaxAmount,
		GrandTotal:    m.GrandTotal,
		AmountPaid:    m.AmountPaid,
		AmountChange:  m.AmountChange,
		Details:       details,
		CreatedAt:     m.CreatedAt,
	}
}
