package enums

import "fmt"

// StaffStatus tracks whether an account can sign in.
type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "active"
	StaffStatusInactive StaffStatus = "inactive"
	StaffStatusOnLeave  StaffStatus = "on_leave"
)

var validStaffStatuses = []StaffStatus{
	StaffStatusActive,
	StaffStatusInactive,
	StaffStatusOnLeave,
}

// String implements fmt.Stringer.
func (s StaffStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StaffStatus.
func (s StaffStatus) IsValid() bool {
	for _, candidate := range validStaffStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStaffStatus converts raw input into a StaffStatus.
func ParseStaffStatus(value string) (StaffStatus, error) {
	for _, candidate := range validStaffStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid staff status %q", value)
}
