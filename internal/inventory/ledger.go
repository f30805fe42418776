package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/tmekonnen/stockroom-backend/pkg/errors"
)

// Ledger is the only writer of item stock quantities. Every movement runs as
// a single conditional UPDATE so concurrent callers cannot drive a quantity
// below zero.
type Ledger interface {
	ReserveAndDecrement(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, qty int) error
	IncrementOnDelivery(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, qty int) error
}

// ShortfallDetails describes a rejected decrement for API consumers.
type ShortfallDetails struct {
	ItemID    uuid.UUID `json:"item_id"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

type ledgerImpl struct{}

// NewLedger exposes the default stock ledger implementation.
func NewLedger() Ledger {
	return ledgerImpl{}
}

func (ledgerImpl) ReserveAndDecrement(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock decrement")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE items
		SET quantity = quantity - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND quantity >= ?
	`, qty, itemID, qty)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "decrement stock")
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// No row changed: either the item is missing or stock was short. Read the
	// current quantity inside the same transaction to tell which.
	var available int
	row := tx.WithContext(ctx).Raw(`SELECT quantity FROM items WHERE id = ?`, itemID).Row()
	if err := row.Scan(&available); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "item not found")
	}

	return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
		WithDetails(ShortfallDetails{ItemID: itemID, Requested: qty, Available: available})
}

func (ledgerImpl) IncrementOnDelivery(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock increment")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE items
		SET quantity = quantity + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, itemID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "increment stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return nil
}
