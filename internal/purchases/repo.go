package purchases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
	"github.com/tmekonnen/stockroom-backend/pkg/enums"
	"github.com/tmekonnen/stockroom-backend/pkg/pagination"
)

type listPurchasesParams struct {
	Limit  int
	Cursor *pagination.Cursor
	Status *enums.PurchaseStatus
}

// Repository persists purchase orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, purchase *models.Purchase) (*models.Purchase, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error)
	List(ctx context.Context, params listPurchasesParams) ([]models.Purchase, *pagination.Cursor, error)
	Updates(ctx context.Context, id uuid.UUID, fields map[string]any) error
	MarkDelivered(ctx context.Context, id uuid.UUID, deliveryDate time.Time) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindVendorByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a purchases repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, purchase *models.Purchase) (*models.Purchase, error) {
	if err := r.db.WithContext(ctx).Create(purchase).Error; err != nil {
		return nil, err
	}
	return purchase, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *repository) List(ctx context.Context, params listPurchasesParams) ([]models.Purchase, *pagination.Cursor, error) {
	buffered := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Purchase{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Cursor != nil {
		query = query.Where("(order_date, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var purchases []models.Purchase
	if err := query.Order("order_date DESC, id DESC").Limit(buffered).Find(&purchases).Error; err != nil {
		return nil, nil, err
	}

	if len(purchases) > normalized {
		next := purchases[normalized]
		purchases = purchases[:normalized]
		return purchases, &pagination.Cursor{CreatedAt: next.OrderDate, ID: next.ID}, nil
	}
	return purchases, nil, nil
}

func (r *repository) Updates(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Purchase{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// MarkDelivered flips the status to delivered with a conditional update so the
// transition, and the stock increment it gates, can fire at most once.
func (r *repository) MarkDelivered(ctx context.Context, id uuid.UUID, deliveryDate time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE purchases
		SET status = ?,
			delivery_date = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status <> ?
	`, enums.PurchaseStatusDelivered, deliveryDate, id, enums.PurchaseStatusDelivered)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Purchase{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) FindVendorByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
