package purchases

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
	"github.com/tmekonnen/stockroom-backend/pkg/enums"
	pkgerrors "github.com/tmekonnen/stockroom-backend/pkg/errors"
	"github.com/tmekonnen/stockroom-backend/pkg/money"
	"github.com/tmekonnen/stockroom-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type stockLedger interface {
	IncrementOnDelivery(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, qty int) error
}

// Service executes purchase lifecycle operations.
type Service interface {
	CreatePurchase(ctx context.Context, input CreatePurchaseInput) (*PurchaseDTO, error)
	UpdatePurchase(ctx context.Context, id uuid.UUID, input UpdatePurchaseInput) (*PurchaseDTO, error)
	GetPurchase(ctx context.Context, id uuid.UUID) (*PurchaseDTO, error)
	ListPurchases(ctx context.Context, params ListParams) (*ListResult, error)
	DeletePurchase(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	tx     txRunner
	ledger stockLedger
	now    func() time.Time
}

// NewService builds the purchases service.
func NewService(repo Repository, tx txRunner, ledger stockLedger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("purchases repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("stock ledger required")
	}
	return &service{repo: repo, tx: tx, ledger: ledger, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *service) CreatePurchase(ctx context.Context, input CreatePurchaseInput) (*PurchaseDTO, error) {
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if !money.IsPositive(input.UnitPrice) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price must be positive")
	}

	status := enums.PurchaseStatusPending
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid purchase status %q", *input.Status))
		}
		status = *input.Status
	}
	if input.DeliveryDate != nil && status != enums.PurchaseStatusDelivered {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery date only applies to delivered purchases")
	}

	orderDate := s.now()
	var created *models.Purchase
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindItemByID(ctx, input.ItemID); err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
		}
		if _, err := repo.FindVendorByID(ctx, input.VendorID); err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
		}

		initial := status
		if initial == enums.PurchaseStatusDelivered {
			initial = enums.PurchaseStatusPending
		}
		purchase := &models.Purchase{
			ID:        uuid.New(),
			ItemID:    input.ItemID,
			VendorID:  input.VendorID,
			OrderDate: orderDate,
			Quantity:  input.Quantity,
			UnitPrice: money.Round2(input.UnitPrice),
			TotalCost: money.LineTotal(input.UnitPrice, input.Quantity),
			Status:    initial,
			Notes:     input.Notes,
		}
		if _, err := repo.Create(ctx, purchase); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create purchase")
		}

		if status == enums.PurchaseStatusDelivered {
			if err := s.deliver(ctx, tx, purchase, input.DeliveryDate); err != nil {
				return err
			}
		}

		loaded, err := repo.FindByID(ctx, purchase.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load created purchase")
		}
		created = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(created), nil
}

func (s *service) UpdatePurchase(ctx context.Context, id uuid.UUID, input UpdatePurchaseInput) (*PurchaseDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase id required")
	}
	if input.Quantity != nil && *input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.UnitPrice != nil && !money.IsPositive(*input.UnitPrice) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price must be positive")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid purchase status %q", *input.Status))
	}

	var updated *models.Purchase
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		purchase, err := repo.FindByID(ctx, id)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "purchase not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase")
		}

		target := purchase.Status
		if input.Status != nil {
			target = *input.Status
			if !purchase.Status.CanTransitionTo(target) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "status transition disallowed").
					WithDetails(map[string]any{"from": purchase.Status, "to": target})
			}
		}

		lineChanged := input.Quantity != nil || input.UnitPrice != nil
		if lineChanged && purchase.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "quantity and unit price are immutable after delivery or cancellation")
		}
		if input.DeliveryDate != nil {
			if purchase.Status == enums.PurchaseStatusDelivered {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "delivery date is set at most once")
			}
			if target != enums.PurchaseStatusDelivered {
				return pkgerrors.New(pkgerrors.CodeValidation, "delivery date only applies to delivered purchases")
			}
		}

		fields := map[string]any{}
		if input.Quantity != nil {
			purchase.Quantity = *input.Quantity
			fields["quantity"] = *input.Quantity
		}
		if input.UnitPrice != nil {
			purchase.UnitPrice = money.Round2(*input.UnitPrice)
			fields["unit_price"] = purchase.UnitPrice
		}
		if lineChanged {
			purchase.TotalCost = money.LineTotal(purchase.UnitPrice, purchase.Quantity)
			fields["total_cost"] = purchase.TotalCost
		}
		if input.Notes != nil {
			fields["notes"] = *input.Notes
		}
		if input.Status != nil && target != purchase.Status && target != enums.PurchaseStatusDelivered {
			fields["status"] = target
		}

		if err := repo.Updates(ctx, purchase.ID, fields); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update purchase")
		}

		if target == enums.PurchaseStatusDelivered && purchase.Status != enums.PurchaseStatusDelivered {
			if err := s.deliver(ctx, tx, purchase, input.DeliveryDate); err != nil {
				return err
			}
		}

		loaded, err := repo.FindByID(ctx, purchase.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load updated purchase")
		}
		updated = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

// deliver performs the one-shot transition into delivered. The conditional
// status update gates the stock increment: when another writer already
// delivered the purchase, zero rows change and no increment runs.
func (s *service) deliver(ctx context.Context, tx *gorm.DB, purchase *models.Purchase, deliveryDate *time.Time) error {
	when := s.now()
	if deliveryDate != nil {
		when = deliveryDate.UTC()
	}
	if when.Before(purchase.OrderDate) {
		return pkgerrors.New(pkgerrors.CodeInvalidDate, "delivery date precedes order date").
			WithDetails(map[string]any{"order_date": purchase.OrderDate, "delivery_date": when})
	}

	transitioned, err := s.repo.WithTx(tx).MarkDelivered(ctx, purchase.ID, when)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark purchase delivered")
	}
	if !transitioned {
		return nil
	}
	return s.ledger.IncrementOnDelivery(ctx, tx, purchase.ItemID, purchase.Quantity)
}

func (s *service) GetPurchase(ctx context.Context, id uuid.UUID) (*PurchaseDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase id required")
	}
	purchase, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase")
	}
	return FromModel(purchase), nil
}

func (s *service) ListPurchases(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Status != nil && !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid purchase status %q", *params.Status))
	}

	query := listPurchasesParams{Limit: params.Limit, Status: params.Status}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchases")
	}

	items := make([]PurchaseDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: items, Cursor: cursor}, nil
}

// DeletePurchase removes the purchase row. Stock credited by a delivered
// purchase stays credited.
func (s *service) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "purchase id required")
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete purchase")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "purchase not found")
	}
	return nil
}
