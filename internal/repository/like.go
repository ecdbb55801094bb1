package repository

import (
	"context"

	"github.com/pandamarket/backend/internal/entity"
	"github.com/pandamarket/backend/pkg/xcontext"
)

type LikeRepository interface {
	Create(ctx context.Context, like *entity.Like) error
	Get(ctx context.Context, userID, articleID string) (*entity.Like, error)
	Delete(ctx context.Context, userID, articleID string) error
	CountByArticleID(ctx context.Context, articleID string) (int64, error)
}

type likeRepository struct{}

func NewLikeRepository() *likeRepository {
	return &likeRepository{}
}

func (r *likeRepository) Create(ctx context.Context, like *entity.Like) error {
	return xcontext.DB(ctx).Create(like).Error
}

func (r *likeRepository) Get(ctx context.Context, userID, articleID string) (*entity.Like, error) {
	var result entity.Like
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND article_id=?", userID, articleID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, articleID string) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND article_id=?", userID, articleID).
		Delete(&entity.Like{}).Error
}

func (r *likeRepository) CountByArticleID(ctx context.Context, articleID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Like{}).
		Where("article_id=?", articleID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
