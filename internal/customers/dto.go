package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
)

// CreateCustomerInput holds creation-time data for a customer.
type CreateCustomerInput struct {
	FirstName string
	LastName  string
	Address   *string
	Email     *string
	Phone     *string
}

// UpdateCustomerInput carries partial updates; nil fields are left untouched.
type UpdateCustomerInput struct {
	FirstName     *string
	LastName      *string
	Address       *string
	Email         *string
	Phone         *string
	LoyaltyPoints *int
}

// CustomerDTO exposes a customer in API responses.
type CustomerDTO struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Address       *string   `json:"address,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	LoyaltyPoints int       `json:"loyalty_points"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListParams carries pagination inputs for customer listings.
type ListParams struct {
	Limit  int
	Cursor string
}

// ListResult wraps returned customers and the cursor for the next page.
type ListResult struct {
	Items  []CustomerDTO `json:"items"`
	Cursor string        `json:"cursor"`
}

// FromModel maps the persisted customer into a DTO.
func FromModel(m *models.Customer) *CustomerDTO {
	if m == nil {
		return nil
	}
	return &CustomerDTO{
		ID:            m.ID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Address:       m.Address,
		Email:         m.Email,
		Phone:         m.Phone,
		LoyaltyPoints: m.LoyaltyPoints,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
