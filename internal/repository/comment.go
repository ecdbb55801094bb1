package repository

import (
	"context"
	"errors"

	"github.com/pandamarket/backend/internal/entity"
	"github.com/pandamarket/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommentFilter struct {
	ArticleID string
	ProductID string

	// Cursor is the id of the last comment of the previous page, zero for
	// the first page.
	Cursor int64
	Limit  int
}

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id int64) (*entity.Comment, error)
	GetList(ctx context.Context, filter CommentFilter) ([]entity.Comment, error)
	UpdateContentByID(ctx context.Context, id int64, content string) error
	DeleteByID(ctx context.Context, id int64) error
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return xcontext.DB(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*entity.Comment, error) {
	var result entity.Comment
	err := xcontext.DB(ctx).Preload("User").Take(&result, "comments.id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *commentRepository) GetList(ctx context.Context, filter CommentFilter) ([]entity.Comment, error) {
	tx := xcontext.DB(ctx).Preload("User").
		Order("comments.id DESC").
		Limit(filter.Limit)

	if filter.ArticleID != "" {
		tx = tx.Where("comments.article_id=?", filter.ArticleID)
	}

	if filter.ProductID != "" {
		tx = tx.Where("comments.product_id=?", filter.ProductID)
	}

	if filter.Cursor != 0 {
		tx = tx.Where("comments.id < ?", filter.Cursor)
	}

	var result []entity.Comment
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) UpdateContentByID(ctx context.Context, id int64, content string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Where("id=?", id).
		Update("content", content)
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

func (r *commentRepository) DeleteByID(ctx context.Context, id int64) error {
	return xcontext.DB(ctx).
		Where("id=?", id).
		Delete(&entity.Comment{}).Error
}
