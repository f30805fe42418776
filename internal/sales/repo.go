package sales

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
	"github.com/tmekonnen/stockroom-backend/pkg/pagination"
)

// Repository persists sales and their detail lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	CreateSaleDetails(ctx context.Context, details []models.SaleDetail) error
	FindSaleByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	ListSales(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Sale, *pagination.Cursor, error)
	DeleteSale(ctx context.Context, id uuid.UUID) (int64, error)
	FindCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sales repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *repository) CreateSaleDetails(ctx context.Context, details []models.SaleDetail) error {
	if len(details) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&details).Error
}

func (r *repository) FindSaleByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Details").
		Where("id = ?", id).
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *repository) ListSales(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Sale, *pagination.Cursor, error) {
	buffered := pagination.LimitWithBuffer(limit)
	normalized := pagination.NormalizeLimit(limit)

	query := r.db.WithContext(ctx).Model(&models.Sale{}).Preload("Details")
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var sales []models.Sale
	if err := query.Order("created_at DESC, id DESC").Limit(buffered).Find(&sales).Error; err != nil {
		return nil, nil, err
	}

	if len(sales) > normalized {
		next := sales[normalized]
		sales = sales[:normalized]
		return sales, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return sales, nil, nil
}

func (r *repository) DeleteSale(ctx context.Context, id uuid.UUID) (int64, error) {
	// sqlite and postgres both cascade detail rows via the FK; delete details
	// explicitly so the behavior does not depend on FK enforcement being on.
	if err := r.db.WithContext(ctx).Where("sale_id = ?", id).Delete(&models.SaleDetail{}).Error; err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Sale{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) FindCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
