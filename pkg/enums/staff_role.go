package enums

import "fmt"

// StaffRole describes the permission tier of a staff account.
type StaffRole string

const (
	StaffRoleAdmin     StaffRole = "admin"
	StaffRoleExecutive StaffRole = "executive"
	StaffRoleOperative StaffRole = "operative"
)

var validStaffRoles = []StaffRole{
	StaffRoleAdmin,
	StaffRoleExecutive,
	StaffRoleOperative,
}

// String implements fmt.Stringer.
func (s StaffRole) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StaffRole.
func (s StaffRole) IsValid() bool {
	for _, candidate := range validStaffRoles {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsPrivileged reports whether the role may mutate records owned by others.
func (s StaffRole) IsPrivileged() bool {
	return s == StaffRoleAdmin || s == StaffRoleExecutive
}

// ParseStaffRole converts raw input into a StaffRole.
func ParseStaffRole(value string) (StaffRole, error) {
	for _, candidate := range validStaffRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid staff role %q", value)
}
