package sales

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/tmekonnen/stockroom-backend/pkg/errors"
	"github.com/tmekonnen/stockroom-backend/pkg/money"
	"github.com/tmekonnen/stockroom-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type stockLedger interface {
	ReserveAndDecrement(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, qty int) error
}

// Service executes sale transactions and reads.
type Service interface {
	CreateSale(ctx context.Context, input CreateSaleInput) (*SaleDTO, error)
	GetSale(ctx context.Context, id uuid.UUID) (*SaleDTO, error)
	ListSales(ctx context.Context, params ListParams) (*ListResult, error)
	DeleteSale(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	tx     txRunner
	ledger stockLedger
}

// NewService builds the sales service.
func NewService(repo Repository, tx txRunner, ledger stockLedger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("stock ledger required")
	}
	return &service{repo: repo, tx: tx, ledger: ledger}, nil
}

func (s *service) CreateSale(ctx context.Context, input CreateSaleInput) (*SaleDTO, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale requires at least one line")
	}
	if money.IsNegative(input.TaxPercentage) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax percentage must not be negative")
	}
	if money.IsNegative(input.AmountPaid) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount paid must not be negative")
	}

	lines, err := mergeLines(input.Lines)
	if err != nil {
		return nil, err
	}

	var created *models.Sale
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindCustomerByID(ctx, input.CustomerID); err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
		}

		details := make([]models.SaleDetail, 0, len(lines))
		lineTotals := make([]decimal.Decimal, 0, len(lines))
		for _, line := range lines {
			item, err := repo.FindItemByID(ctx, line.ItemID)
			if err != nil {
				if stdErrors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "item not found").
						WithDetails(map[string]any{"item_id": line.ItemID})
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
			}

			if err := s.ledger.ReserveAndDecrement(ctx, tx, item.ID, line.Quantity); err != nil {
				return err
			}

			price := item.Price
			if line.Price != nil {
				price = *line.Price
			}
			total := money.LineTotal(price, line.Quantity)
			details = append(details, models.SaleDetail{
				ID:       uuid.New(),
				ItemID:   item.ID,
				Price:    price,
				Quantity: line.Quantity,
				Total:    total,
			})
			lineTotals = append(lineTotals, total)
		}

		totals := computeTotals(lineTotals, input.TaxPercentage, input.AmountPaid)

		sale := &models.Sale{
			ID:            uuid.New(),
			CustomerID:    input.CustomerID,
			SubTotal:      totals.SubTotal,
			TaxPercentage: input.TaxPercentage,
			TaxAmount:     totals.TaxAmount,
			GrandTotal:    totals.GrandTotal,
			AmountPaid:    money.Round2(input.AmountPaid),
			AmountChange:  totals.AmountChange,
		}
		if _, err := repo.CreateSale(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sale")
		}

		for i := range details {
			details[i].SaleID = sale.ID
		}
		if err := repo.CreateSaleDetails(ctx, details); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sale details")
		}

		created, err = repo.FindSaleByID(ctx, sale.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load created sale")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(created), nil
}

func (s *service) GetSale(ctx context.Context, id uuid.UUID) (*SaleDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale id required")
	}
	sale, err := s.repo.FindSaleByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	return FromModel(sale), nil
}

func (s *service) ListSales(ctx context.Context, params ListParams) (*ListResult, error) {
	var cursor *pagination.Cursor
	if params.Cursor != "" {
		parsed, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		cursor = parsed
	}

	rows, next, err := s.repo.ListSales(ctx, params.Limit, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}

	items := make([]SaleDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}

	nextCursor := ""
	if next != nil {
		nextCursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: items, Cursor: nextCursor}, nil
}

// DeleteSale removes the sale and its detail rows. Stock is intentionally not
// restored; deletion is an administrative correction of the historical record,
// not a reversal of the goods movement.
func (s *service) DeleteSale(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "sale id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		affected, err := s.repo.WithTx(tx).DeleteSale(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete sale")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil
	})
}

// mergeLines collapses duplicate item references so one conditional decrement
// covers the combined quantity.
func mergeLines(lines []SaleLineInput) ([]SaleLineInput, error) {
	merged := make([]SaleLineInput, 0, len(lines))
	index := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		if line.ItemID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item id required")
		}
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive").
				WithDetails(map[string]any{"item_id": line.ItemID})
		}
		if line.Price != nil && !money.IsPositive(*line.Price) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line price must be positive").
				WithDetails(map[string]any{"item_id": line.ItemID})
		}
		if at, ok := index[line.ItemID]; ok {
			if !samePrice(merged[at].Price, line.Price) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "conflicting prices for the same item").
					WithDetails(map[string]any{"item_id": line.ItemID})
			}
			merged[at].Quantity += line.Quantity
			continue
		}
		index[line.ItemID] = len(merged)
		merged = append(merged, line)
	}
	return merged, nil
}

func samePrice(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
