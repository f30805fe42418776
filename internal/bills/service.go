package bills

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"

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

// Service manages institutional bills and their payment status.
type Service interface {
	Create(ctx context.Context, input CreateBillInput) (*BillDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*BillDTO, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateBillInput) (*BillDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the bills service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bills repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateBillInput) (*BillDTO, error) {
	institutionName := strings.TrimSpace(input.InstitutionName)
	paymentDetails := strings.TrimSpace(input.PaymentDetails)
	if institutionName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "institution name required")
	}
	if paymentDetails == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment details required")
	}
	if !money.IsPositive(input.Amount) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	status := enums.PaymentStatusUnpaid
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment status")
		}
		status = *input.Status
	}

	bill := &models.Bill{
		ID:              uuid.New(),
		InstitutionName: institutionName,
		Phone:           input.Phone,
		Email:           input.Email,
		Address:         input.Address,
		Description:     input.Description,
		PaymentDetails:  paymentDetails,
		Amount:          money.Round2(input.Amount),
		Status:          status,
	}
	if _, err := s.repo.Create(ctx, bill); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create bill")
	}
	return FromModel(bill), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*BillDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bill id required")
	}
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bill not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bill")
	}
	return FromModel(bill), nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listBillsParams{Limit: params.Limit}
	if params.Cursor != "" {
		parsed, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = parsed
	}
	if params.Status != "" {
		status, err := enums.ParsePaymentStatus(params.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		query.Status = &status
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bills")
	}

	items := make([]BillDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}

	nextCursor := ""
	if next != nil {
		nextCursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: items, Cursor: nextCursor}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateBillInput) (*BillDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bill id required")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment status")
	}
	if input.Amount != nil && !money.IsPositive(*input.Amount) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	fields := map[string]any{}
	if input.InstitutionName != nil {
		name := strings.TrimSpace(*input.InstitutionName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "institution name required")
		}
		fields["institution_name"] = name
	}
	if input.Phone != nil {
		fields["phone"] = *input.Phone
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.Address != nil {
		fields["address"] = *input.Address
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.PaymentDetails != nil {
		details := strings.TrimSpace(*input.PaymentDetails)
		if details == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment details required")
		}
		fields["payment_details"] = details
	}
	if input.Amount != nil {
		fields["amount"] = money.Round2(*input.Amount)
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}

	var updated *models.Bill
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.FindByID(ctx, id)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "bill not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bill")
		}
		// Amount is frozen once the bill has been settled in full.
		if input.Amount != nil && current.Status == enums.PaymentStatusPaid {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot change the amount of a paid bill")
		}
		if err := repo.Updates(ctx, id, fields); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update bill")
		}
		loaded, err := repo.FindByID(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load updated bill")
		}
		updated = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "bill id required")
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete bill")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "bill not found")
	}
	return nil
}
