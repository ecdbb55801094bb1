package repository

import (
	"context"

	"github.com/pandamarket/backend/internal/entity"
	"github.com/pandamarket/backend/pkg/xcontext"
)

type FavoriteRepository interface {
	Create(ctx context.Context, favorite *entity.Favorite) error
	Get(ctx context.Context, userID, productID string) (*entity.Favorite, error)
	Delete(ctx context.Context, userID, productID string) error
	CountByProductID(ctx context.Context, productID string) (int64, error)
	GetListByProductID(ctx context.Context, productID string) ([]entity.Favorite, error)
	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.Favorite, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
}

type favoriteRepository struct{}

func NewFavoriteRepository() *favoriteRepository {
	return &favoriteRepository{}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	return xcontext.DB(ctx).Create(favorite).Error
}

func (r *favoriteRepository) Get(ctx context.Context, userID, productID string) (*entity.Favorite, error) {
	var result entity.Favorite
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND product_id=?", userID, productID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, productID string) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND product_id=?", userID, productID).
		Delete(&entity.Favorite{}).Error
}

func (r *favoriteRepository) CountByProductID(ctx context.Context, productID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Favorite{}).
		Where("product_id=?", productID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *favoriteRepository) GetListByProductID(ctx context.Context, productID string) ([]entity.Favorite, error) {
	var result []entity.Favorite
	err := xcontext.DB(ctx).
		Find(&result, "product_id=?", productID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *favoriteRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Favorite, error) {
	var result []entity.Favorite
	err := xcontext.DB(ctx).
		Preload("Product").
		Preload("Product.User").
		Where("user_id=?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *favoriteRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Favorite{}).
		Where("user_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
