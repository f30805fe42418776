package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmekonnen/stockroom-backend/pkg/db/models"
	"github.com/tmekonnen/stockroom-backend/pkg/pagination"
)

type listItemsParams struct {
	Limit      int
	Cursor     *pagination.Cursor
	CategoryID *uuid.UUID
}

// Repository persists catalog categories and items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteCategory(ctx context.Context, id uuid.UUID) (int64, error)
	CountItemsByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	CreateItem(ctx context.Context, item *models.Item) (*models.Item, error)
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	ListItems(ctx context.Context, params listItemsParams) ([]models.Item, *pagination.Cursor, error)
	UpdateItem(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteItem(ctx context.Context, id uuid.UUID) (int64, error)
	CountItemReferences(ctx context.Context, itemID uuid.UUID) (int64, error)
	FindVendorByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) UpdateCategory(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repository) DeleteCategory(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) CountItemsByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListItems(ctx context.Context, params listItemsParams) ([]models.Item, *pagination.Cursor, error) {
	buffered := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Item{})
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var items []models.Item
	if err := query.Order("created_at DESC, id DESC").Limit(buffered).Find(&items).Error; err != nil {
		return nil, nil, err
	}

	if len(items) > normalized {
		next := items[normalized]
		items = items[:normalized]
		return items, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return items, nil, nil
}

func (r *repository) UpdateItem(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repository) DeleteItem(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Item{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// CountItemReferences reports how many transaction rows still point at the
// item. A non-zero count blocks deletion.
func (r *repository) CountItemReferences(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var detailCount int64
	if err := r.db.WithContext(ctx).
		Model(&models.SaleDetail{}).
		Where("item_id = ?", itemID).
		Count(&detailCount).Error; err != nil {
		return 0, err
	}

	var purchaseCount int64
	if err := r.db.WithContext(ctx).
		Model(&models.Purchase{}).
		Where("item_id = ?", itemID).
		Count(&purchaseCount).Error; err != nil {
		return 0, err
	}

	return detailCount + purchaseCount, nil
}

func (r *repository) FindVendorByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}
