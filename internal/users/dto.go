package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
	"github.com/tmekonnen/stockroom-backend/pkg/enums"
)

// CreateUserInput holds the data needed to register a staff account.
type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
	Role      enums.StaffRole
}

// UpdateUserInput carries partial updates; nil fields are left untouched.
// Email and password are immutable through this path.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Role      *enums.StaffRole
	Status    *enums.StaffStatus
}

// UserDTO is the transport shape that omits the password hash.
type UserDTO struct {
	ID          uuid.UUID         `json:"id"`
	Email       string            `json:"email"`
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	Phone       *string           `json:"phone,omitempty"`
	Role        enums.StaffRole   `json:"role"`
	Status      enums.StaffStatus `json:"status"`
	LastLoginAt *time.Time        `json:"last_login_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ListParams carries pagination inputs for staff listings.
type ListParams struct {
	Limit  int
	Cursor string
}

// ListResult wraps returned staff accounts and the cursor for the next page.
type ListResult struct {
	Items  []UserDTO `json:"items"`
	Cursor string    `json:"cursor"`
}

// FromModel maps the persisted user into a DTO.
func FromModel(m *models.User) *UserDTO {
	if m == nil {
		return nil
	}
	return &UserDTO{
		ID:          m.ID,
		Email:       m.Email,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Phone:       m.Phone,
		Role:        m.Role,
		Status:      m.Status,
		LastLoginAt: m.LastLoginAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
