package domain

import (
	"context"
	"errors"

	"github.com/pandamarket/backend/internal/entity"
	"github.com/pandamarket/backend/internal/model"
	"github.com/pandamarket/backend/internal/repository"
	"github.com/pandamarket/backend/pkg/errorx"
	"github.com/pandamarket/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommentDomain interface {
	Update(ctx context.Context, req *model.UpdateCommentRequest) (*model.UpdateCommentResponse, error)
	Delete(ctx context.Context, req *model.DeleteCommentRequest) (*model.DeleteCommentResponse, error)
}

type commentDomain struct {
	commentRepo repository.CommentRepository
}

func NewCommentDomain(commentRepo repository.CommentRepository) *commentDomain {
	return &commentDomain{commentRepo: commentRepo}
}

func (d *commentDomain) Update(
	ctx context.Context, req *model.UpdateCommentRequest,
) (*model.UpdateCommentResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Content must not be empty")
	}

	comment, err := d.getOwned(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.commentRepo.UpdateContentByID(ctx, comment.ID, req.Content); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update comment: %v", err)
		return nil, errorx.Unknown
	}

	comment.Content = req.Content
	return &model.UpdateCommentResponse{Comment: model.ConvertComment(comment)}, nil
}

func (d *commentDomain) Delete(
	ctx context.Context, req *model.DeleteCommentRequest,
) (*model.DeleteCommentResponse, error) {
	comment, err := d.getOwned(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.commentRepo.DeleteByID(ctx, comment.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCommentResponse{}, nil
}

func (d *commentDomain) getOwned(ctx context.Context, id int64) (*entity.Comment, error) {
	comment, err := d.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	if comment.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return comment, nil
}
