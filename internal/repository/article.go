package repository

import (
	"context"
	"errors"

	"github.com/pandamarket/backend/internal/entity"
	"github.com/pandamarket/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ArticleFilter struct {
	Offset  int
	Limit   int
	OrderBy string
}

type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Article, error)
	GetList(ctx context.Context, filter ArticleFilter) ([]entity.Article, error)
	Count(ctx context.Context) (int64, error)
	UpdateByID(ctx context.Context, id string, data *entity.Article) error
	DeleteByID(ctx context.Context, id string) error
}

type articleRepository struct{}

func NewArticleRepository() *articleRepository {
	return &articleRepository{}
}

func (r *articleRepository) Create(ctx context.Context, article *entity.Article) error {
	return xcontext.DB(ctx).Create(article).Error
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	var result entity.Article
	err := xcontext.DB(ctx).Preload("User").Take(&result, "articles.id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *articleRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Article, error) {
	var result []entity.Article
	err := xcontext.DB(ctx).Preload("User").Find(&result, "articles.id IN (?)", ids).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *articleRepository) GetList(ctx context.Context, filter ArticleFilter) ([]entity.Article, error) {
	tx := xcontext.DB(ctx).Preload("User").
		Offset(filter.Offset).
		Limit(filter.Limit)

	switch filter.OrderBy {
	case "like":
		tx = tx.
			Joins("LEFT JOIN likes ON likes.article_id = articles.id").
			Group("articles.id").
			Order("COUNT(likes.user_id) DESC")
	default:
		tx = tx.Order("articles.created_at DESC")
	}

	var result []entity.Article
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *articleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.Article{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *articleRepository) UpdateByID(ctx context.Context, id string, data *entity.Article) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Article{}).
		Where("id=?", id).
		Updates(data)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of rows effected is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *articleRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).
		Where("id=?", id).
		Delete(&entity.Article{}).Error
}
