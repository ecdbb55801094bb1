package repository

import (
	"context"
	"errors"

	"github.com/pandamarket/backend/internal/entity"
	"github.com/pandamarket/backend/pkg/xcontext"
)

type ProductFilter struct {
	Offset  int
	Limit   int
	OrderBy string
	UserID  string
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Product, error)
	GetList(ctx context.Context, filter ProductFilter) ([]entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
	DeleteByID(ctx context.Context, id string) error
}

type productRepository struct{}

func NewProductRepository() *productRepository {
	return &productRepository{}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return xcontext.DB(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var result entity.Product
	err := xcontext.DB(ctx).Preload("User").Take(&result, "products.id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	var result []entity.Product
	err := xcontext.DB(ctx).Preload("User").Find(&result, "products.id IN (?)", ids).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *productRepository) GetList(ctx context.Context, filter ProductFilter) ([]entity.Product, error) {
	tx := xcontext.DB(ctx).Preload("User").
		Offset(filter.Offset).
		Limit(filter.Limit)

	if filter.UserID != "" {
		tx = tx.Where("products.user_id=?", filter.UserID)
	}

	switch filter.OrderBy {
	case "favorite":
		tx = tx.
			Joins("LEFT JOIN favorites ON favorites.product_id = products.id").
			Group("products.id").
			Order("COUNT(favorites.user_id) DESC")
	default:
		tx = tx.Order("products.created_at DESC")
	}

	var result []entity.Product
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *productRepository) Count(ctx context.Context, filter ProductFilter) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Product{})
	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// UpdateByID takes a column map instead of a struct because struct updates
// skip zero values and a zero price is a valid price.
func (r *productRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	if len(data) == 0 {
		return nil
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Product{}).
		Where("id=?", id).
		Updates(data)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of rows effected is invalid")
	}

	return nil
}

func (r *productRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).
		Where("id=?", id).
		Delete(&entity.Product{}).Error
}
