package enums

import "fmt"

// PurchaseStatus tracks the delivery lifecycle of a purchase order.
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusShipped   PurchaseStatus = "shipped"
	PurchaseStatusDelivered PurchaseStatus = "delivered"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

var validPurchaseStatuses = []PurchaseStatus{
	PurchaseStatusPending,
	PurchaseStatusShipped,
	PurchaseStatusDelivered,
	PurchaseStatusCancelled,
}

// String implements fmt.Stringer.
func (p PurchaseStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PurchaseStatus.
func (p PurchaseStatus) IsValid() bool {
	for _, candidate := range validPurchaseStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (p PurchaseStatus) IsTerminal() bool {
	return p == PurchaseStatusDelivered || p == PurchaseStatusCancelled
}

// CanTransitionTo reports whether the status machine allows moving to target.
// Pending may move to shipped, delivered, or cancelled; shipped may move to
// delivered or cancelled; delivered and cancelled are terminal.
func (p PurchaseStatus) CanTransitionTo(target PurchaseStatus) bool {
	if p == target {
		return true
	}
	switch p {
	case PurchaseStatusPending:
		return target == PurchaseStatusShipped ||
			target == PurchaseStatusDelivered ||
			target == PurchaseStatusCancelled
	case PurchaseStatusShipped:
		return target == PurchaseStatusDelivered || target == PurchaseStatusCancelled
	default:
		return false
	}
}

// ParsePurchaseStatus converts raw input into a PurchaseStatus.
func ParsePurchaseStatus(value string) (PurchaseStatus, error) {
	for _, candidate := range validPurchaseStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid purchase status %q", value)
}
