package vendors

import (
	"time"

	"github.com/google/uuid"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
)

// CreateVendorInput holds creation-time data for a vendor.
type CreateVendorInput struct {
	Name    string
	Address *string
	Phone   *string
}

// UpdateVendorInput carries partial updates; nil fields are left untouched.
type UpdateVendorInput struct {
	Name    *string
	Address *string
	Phone   *string
}

// VendorDTO exposes a vendor in API responses.
type VendorDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModel maps the persisted vendor into a DTO.
func FromModel(m *models.Vendor) *VendorDTO {
	if m == nil {
		return nil
	}
	return &VendorDTO{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		Phone:     m.Phone,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
