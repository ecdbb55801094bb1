package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pandamarket/backend/internal/common"
	"github.com/pandamarket/backend/internal/domain/notification/engine"
	"github.com/pandamarket/backend/internal/domain/search"
	"github.com/pandamarket/backend/internal/entity"
	"github.com/pandamarket/backend/internal/model"
	"github.com/pandamarket/backend/internal/repository"
	"github.com/pandamarket/backend/pkg/errorx"
	"github.com/pandamarket/backend/pkg/idutil"
	"github.com/pandamarket/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type ArticleDomain interface {
	Create(ctx context.Context, req *model.CreateArticleRequest) (*model.CreateArticleResponse, error)
	Get(ctx context.Context, req *model.GetArticleRequest) (*model.GetArticleResponse, error)
	GetList(ctx context.Context, req *model.GetArticlesRequest) (*model.GetArticlesResponse, error)
	Update(ctx context.Context, req *model.UpdateArticleRequest) (*model.UpdateArticleResponse, error)
	Delete(ctx context.Context, req *model.DeleteArticleRequest) (*model.DeleteArticleResponse, error)
	Like(ctx context.Context, req *model.LikeArticleRequest) (*model.LikeArticleResponse, error)
	Unlike(ctx context.Context, req *model.UnlikeArticleRequest) (*model.UnlikeArticleResponse, error)
	CreateComment(ctx context.Context, req *model.CreateCommentRequest) (*model.CreateCommentResponse, error)
	GetComments(ctx context.Context, req *model.GetCommentsRequest) (*model.GetCommentsResponse, error)
}

type articleDomain struct {
	articleRepo repository.ArticleRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	userRepo    repository.UserRepository
	searchIndex search.Index
	resolver    *engine.Resolver
	notifier    *engine.Notifier
}

func NewArticleDomain(
	articleRepo repository.ArticleRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
	searchIndex search.Index,
	resolver *engine.Resolver,
	notifier *engine.Notifier,
) *articleDomain {
	return &articleDomain{
		articleRepo: articleRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
		searchIndex: searchIndex,
		resolver:    resolver,
		notifier:    notifier,
	}
}

func (d *articleDomain) Create(
	ctx context.Context, req *model.CreateArticleRequest,
) (*model.CreateArticleResponse, error) {
	if req.Title == "" || req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Title and content must not be empty")
	}

	article := &entity.Article{
		Base:    entity.Base{ID: uuid.NewString()},
		UserID:  xcontext.RequestUserID(ctx),
		Title:   req.Title,
		Content: req.Content,
	}

	if err := d.articleRepo.Create(ctx, article); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create article: %v", err)
		return nil, errorx.Unknown
	}

	d.index(ctx, article)

	article, err := d.articleRepo.GetByID(ctx, article.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get article after create: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateArticleResponse{Article: model.ConvertArticle(article, 0, false)}, nil
}

func (d *articleDomain) Get(
	ctx context.Context, req *model.GetArticleRequest,
) (*model.GetArticleResponse, error) {
	article, err := d.articleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found article")
		}

		xcontext.Logger(ctx).Errorf("Cannot get article: %v", err)
		return nil, errorx.Unknown
	}

	converted, err := d.convert(ctx, article)
	if err != nil {
		return nil, err
	}

	return &model.GetArticleResponse{Article: converted}, nil
}

func (d *articleDomain) GetList(
	ctx context.Context, req *model.GetArticlesRequest,
) (*model.GetArticlesResponse, error) {
	offset, limit, err := common.Paginate(ctx, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	var articles []entity.Article
	var totalCount int64
	if req.Keyword != "" {
		ids, err := d.searchIndex.Search(search.ArticleDoc, req.Keyword, offset, limit)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot search articles: %v", err)
			return nil, errorx.Unknown
		}

		articles, err = d.articleRepo.GetByIDs(ctx, ids)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get articles: %v", err)
			return nil, errorx.Unknown
		}

		articles = orderByIDs(articles, ids, func(a *entity.Article) string { return a.ID })
		totalCount = int64(offset + len(articles))
	} else {
		articles, err = d.articleRepo.GetList(ctx, repository.ArticleFilter{
			Offset:  offset,
			Limit:   limit,
			OrderBy: req.OrderBy,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get articles: %v", err)
			return nil, errorx.Unknown
		}

		totalCount, err = d.articleRepo.Count(ctx)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count articles: %v", err)
			return nil, errorx.Unknown
		}
	}

	converted := make([]model.Article, 0, len(articles))
	for i := range articles {
		c, err := d.convert(ctx, &articles[i])
		if err != nil {
			return nil, err
		}

		converted = append(converted, c)
	}

	return &model.GetArticlesResponse{Articles: converted, TotalCount: totalCount}, nil
}

func (d *articleDomain) Update(
	ctx context.Context, req *model.UpdateArticleRequest,
) (*model.UpdateArticleResponse, error) {
	article, err := d.getOwned(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	err = d.articleRepo.UpdateByID(ctx, article.ID, &entity.Article{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update article: %v", err)
		return nil, errorx.Unknown
	}

	article, err = d.articleRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get article after update: %v", err)
		return nil, errorx.Unknown
	}

	d.index(ctx, article)

	converted, err := d.convert(ctx, article)
	if err != nil {
		return nil, err
	}

	return &model.UpdateArticleResponse{Article: converted}, nil
}

func (d *articleDomain) Delete(
	ctx context.Context, req *model.DeleteArticleRequest,
) (*model.DeleteArticleResponse, error) {
	article, err := d.getOwned(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.articleRepo.DeleteByID(ctx, article.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete article: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.searchIndex.Delete(search.ArticleDoc, article.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot remove article from index: %v", err)
	}

	return &model.DeleteArticleResponse{}, nil
}

func (d *articleDomain) Like(
	ctx context.Context, req *model.LikeArticleRequest,
) (*model.LikeArticleResponse, error) {
	article, err := d.articleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found article")
		}

		xcontext.Logger(ctx).Errorf("Cannot get article: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	_, err = d.likeRepo.Get(ctx, userID, article.ID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already liked this article")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get like: %v", err)
		return nil, errorx.Unknown
	}

	err = d.likeRepo.Create(ctx, &entity.Like{UserID: userID, ArticleID: article.ID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create like: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LikeArticleResponse{}, nil
}

func (d *articleDomain) Unlike(
	ctx context.Context, req *model.UnlikeArticleRequest,
) (*model.UnlikeArticleResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	_, err := d.likeRepo.Get(ctx, userID, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "You have not liked this article")
		}

		xcontext.Logger(ctx).Errorf("Cannot get like: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.likeRepo.Delete(ctx, userID, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete like: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnlikeArticleResponse{}, nil
}

func (d *articleDomain) CreateComment(
	ctx context.Context, req *model.CreateCommentRequest,
) (*model.CreateCommentResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Content must not be empty")
	}

	article, err := d.articleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found article")
		}

		xcontext.Logger(ctx).Errorf("Cannot get article: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	commenter, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get commenter: %v", err)
		return nil, errorx.Unknown
	}

	comment := &entity.Comment{
		SnowflakeBase: entity.SnowflakeBase{ID: idutil.NextID()},
		UserID:        userID,
		ArticleID:     sql.NullString{String: article.ID, Valid: true},
		Content:       req.Content,
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	recipients := d.resolver.CommentRecipients(article.UserID, userID)
	d.notifier.NotifyAll(ctx, recipients,
		fmt.Sprintf("%s commented on %q.", commenter.Nickname, article.Title))

	comment.User = *commenter
	return &model.CreateCommentResponse{Comment: model.ConvertComment(comment)}, nil
}

func (d *articleDomain) GetComments(
	ctx context.Context, req *model.GetCommentsRequest,
) (*model.GetCommentsResponse, error) {
	limit, err := commentLimit(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	comments, err := d.commentRepo.GetList(ctx, repository.CommentFilter{
		ArticleID: req.ID,
		Cursor:    req.Cursor,
		Limit:     limit + 1,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	return convertCommentPage(comments, limit), nil
}

func (d *articleDomain) getOwned(ctx context.Context, id string) (*entity.Article, error) {
	article, err := d.articleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found article")
		}

		xcontext.Logger(ctx).Errorf("Cannot get article: %v", err)
		return nil, errorx.Unknown
	}

	if article.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return article, nil
}

func (d *articleDomain) convert(ctx context.Context, article *entity.Article) (model.Article, error) {
	likeCount, err := d.likeRepo.CountByArticleID(ctx, article.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count likes: %v", err)
		return model.Article{}, errorx.Unknown
	}

	isLiked := false
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		if _, err := d.likeRepo.Get(ctx, userID, article.ID); err == nil {
			isLiked = true
		}
	}

	return model.ConvertArticle(article, likeCount, isLiked), nil
}

// index failures do not fail the mutation, the row is the source of truth
// and the index can be rebuilt.
func (d *articleDomain) index(ctx context.Context, article *entity.Article) {
	err := d.searchIndex.Index(search.ArticleDoc, article.ID, search.ArticleData{
		Title:   article.Title,
		Content: article.Content,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index article %s: %v", article.ID, err)
	}
}

// orderByIDs restores the relevance order of search results, which the
// database query does not preserve.
func orderByIDs[T any](items []T, ids []string, idOf func(*T) string) []T {
	position := make(map[string]int, len(ids))
	for i, id := range ids {
		position[id] = i
	}

	slices.SortStableFunc(items, func(a, b T) bool {
		return position[idOf(&a)] < position[idOf(&b)]
	})

	return items
}

func commentLimit(ctx context.Context, limit int) (int, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if limit < 0 {
		return 0, errorx.New(errorx.BadRequest, "Invalid limit")
	}

	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	if limit > cfg.MaxLimit {
		return 0, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", cfg.MaxLimit)
	}

	return limit, nil
}

// convertCommentPage trims the one extra row fetched to probe for a next
// page and derives the cursor from the last visible comment.
func convertCommentPage(comments []entity.Comment, limit int) *model.GetCommentsResponse {
	nextCursor := int64(0)
	if len(comments) > limit {
		comments = comments[:limit]
		nextCursor = comments[len(comments)-1].ID
	}

	converted := make([]model.Comment, 0, len(comments))
	for i := range comments {
		converted = append(converted, model.ConvertComment(&comments[i]))
	}

	return &model.GetCommentsResponse{Comments: converted, NextCursor: nextCursor}
}
