package bills

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
	"github.com/tmekonnen/stockroom-backend/pkg/enums"
)

// CreateBillInput holds creation-time data for an institutional bill.
type CreateBillInput struct {
	InstitutionName string
	Phone           *string
	Email           *string
	Address         *string
	Description     *string
	PaymentDetails  string
	Amount          decimal.Decimal
	Status          *enums.PaymentStatus
}

// UpdateBillInput carries partial updates; nil fields are left untouched.
type UpdateBillInput struct {
	InstitutionName *string
	Phone           *string
	Email           *string
	Address         *string
	Description     *string
	PaymentDetails  *string
	Amount          *decimal.Decimal
	Status          *enums.PaymentStatus
}

// BillDTO exposes a bill in API responses.
type BillDTO struct {
	ID              uuid.UUID           `json:"id"`
	InstitutionName string              `json:"institution_name"`
	Phone           *string             `json:"phone,omitempty"`
	Email           *string             `json:"email,omitempty"`
	Address         *string             `json:"address,omitempty"`
	Description     *string             `json:"description,omitempty"`
	PaymentDetails  string              `json:"payment_details"`
	Amount          decimal.Decimal     `json:"amount"`
	Status          enums.PaymentStatus `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ListParams carries pagination and filter inputs for bill listings.
type ListParams struct {
	Limit  int
	Cursor string
	Status string
}

// ListResult wraps returned bills and the cursor for the next page.
type ListResult struct {
	Items  []BillDTO `json:"items"`
	Cursor string    `json:"cursor"`
}

// FromModel maps the persisted bill into a DTO.
func FromModel(m *models.Bill) *BillDTO {
	if m == nil {
		return nil
	}
	return &BillDTO{
		ID:              m.ID,
		InstitutionName: m.InstitutionName,
		Phone:           m.Phone,
		Email:           m.Email,
		Address:         m.Address,
		Description:     m.Description,
		PaymentDetails:  m.PaymentDetails,
		Amount:          m.Amount,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
