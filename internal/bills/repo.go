package bills

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
	"github.com/tmekonnen/stockroom-backend/pkg/enums"
	"github.com/tmekonnen/stockroom-backend/pkg/pagination"
)

type listBillsParams struct {
	Limit  int
	Cursor *pagination.Cursor
	Status *enums.PaymentStatus
}

// Repository persists institutional bills.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, bill *models.Bill) (*models.Bill, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Bill, error)
	List(ctx context.Context, params listBillsParams) ([]models.Bill, *pagination.Cursor, error)
	Updates(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bills repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, bill *models.Bill) (*models.Bill, error) {
	if err := r.db.WithContext(ctx).Create(bill).Error; err != nil {
		return nil, err
	}
	return bill, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Bill, error) {
	var bill models.Bill
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&bill).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *repository) List(ctx context.Context, params listBillsParams) ([]models.Bill, *pagination.Cursor, error) {
	buffered := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Bill{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.Bill
	if err := query.Order("created_at DESC, id DESC").Limit(buffered).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		next := rows[normalized]
		rows = rows[:normalized]
		return rows, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return rows, nil, nil
}

func (r *repository) Updates(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Bill{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Bill{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
