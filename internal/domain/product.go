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
	"gorm.io/gorm"
)

type ProductDomain interface {
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.CreateProductResponse, error)
	Get(ctx context.Context, req *model.GetProductRequest) (*model.GetProductResponse, error)
	GetList(ctx context.Context, req *model.GetProductsRequest) (*model.GetProductsResponse, error)
	Update(ctx context.Context, req *model.UpdateProductRequest) (*model.UpdateProductResponse, error)
	Delete(ctx context.Context, req *model.DeleteProductRequest) (*model.DeleteProductResponse, error)
	Favorite(ctx context.Context, req *model.FavoriteProductRequest) (*model.FavoriteProductResponse, error)
	Unfavorite(ctx context.Context, req *model.UnfavoriteProductRequest) (*model.UnfavoriteProductResponse, error)
	CreateComment(ctx context.Context, req *model.CreateCommentRequest) (*model.CreateCommentResponse, error)
	GetComments(ctx context.Context, req *model.GetCommentsRequest) (*model.GetCommentsResponse, error)
}

type productDomain struct {
	productRepo  repository.ProductRepository
	commentRepo  repository.CommentRepository
	favoriteRepo repository.FavoriteRepository
	userRepo     repository.UserRepository
	searchIndex  search.Index
	resolver     *engine.Resolver
	notifier     *engine.Notifier
}

func NewProductDomain(
	productRepo repository.ProductRepository,
	commentRepo repository.CommentRepository,
	favoriteRepo repository.FavoriteRepository,
	userRepo repository.UserRepository,
	searchIndex search.Index,
	resolver *engine.Resolver,
	notifier *engine.Notifier,
) *productDomain {
	return &productDomain{
		productRepo:  productRepo,
		commentRepo:  commentRepo,
		favoriteRepo: favoriteRepo,
		userRepo:     userRepo,
		searchIndex:  searchIndex,
		resolver:     resolver,
		notifier:     notifier,
	}
}

func (d *productDomain) Create(
	ctx context.Context, req *model.CreateProductRequest,
) (*model.CreateProductResponse, error) {
	if req.Name == "" || req.Description == "" {
		return nil, errorx.New(errorx.BadRequest, "Name and description must not be empty")
	}

	if req.Price < 0 {
		return nil, errorx.New(errorx.BadRequest, "Price must not be negative")
	}

	product := &entity.Product{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      xcontext.RequestUserID(ctx),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Tags:        req.Tags,
		Images:      req.Images,
	}

	if err := d.productRepo.Create(ctx, product); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create product: %v", err)
		return nil, errorx.Unknown
	}

	d.index(ctx, product)

	product, err := d.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get product after create: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateProductResponse{Product: model.ConvertProduct(product, 0, false)}, nil
}

func (d *productDomain) Get(
	ctx context.Context, req *model.GetProductRequest,
) (*model.GetProductResponse, error) {
	product, err := d.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found product")
		}

		xcontext.Logger(ctx).Errorf("Cannot get product: %v", err)
		return nil, errorx.Unknown
	}

	converted, err := d.convert(ctx, product)
	if err != nil {
		return nil, err
	}

	return &model.GetProductResponse{Product: converted}, nil
}

func (d *productDomain) GetList(
	ctx context.Context, req *model.GetProductsRequest,
) (*model.GetProductsResponse, error) {
	offset, limit, err := common.Paginate(ctx, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	var products []entity.Product
	var totalCount int64
	if req.Keyword != "" {
		ids, err := d.searchIndex.Search(search.ProductDoc, req.Keyword, offset, limit)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot search products: %v", err)
			return nil, errorx.Unknown
		}

		products, err = d.productRepo.GetByIDs(ctx, ids)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get products: %v", err)
			return nil, errorx.Unknown
		}

		products = orderByIDs(products, ids, func(p *entity.Product) string { return p.ID })
		totalCount = int64(offset + len(products))
	} else {
		filter := repository.ProductFilter{Offset: offset, Limit: limit, OrderBy: req.OrderBy}
		products, err = d.productRepo.GetList(ctx, filter)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get products: %v", err)
			return nil, errorx.Unknown
		}

		totalCount, err = d.productRepo.Count(ctx, filter)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count products: %v", err)
			return nil, errorx.Unknown
		}
	}

	converted := make([]model.Product, 0, len(products))
	for i := range products {
		c, err := d.convert(ctx, &products[i])
		if err != nil {
			return nil, err
		}

		converted = append(converted, c)
	}

	return &model.GetProductsResponse{Products: converted, TotalCount: totalCount}, nil
}

func (d *productDomain) Update(
	ctx context.Context, req *model.UpdateProductRequest,
) (*model.UpdateProductResponse, error) {
	product, err := d.getOwned(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	data := map[string]any{}
	if req.Name != "" {
		data["name"] = req.Name
	}

	if req.Description != "" {
		data["description"] = req.Description
	}

	if req.Tags != nil {
		data["tags"] = entity.Array[string](req.Tags)
	}

	if req.Images != nil {
		data["images"] = entity.Array[string](req.Images)
	}

	priceChanged := false
	oldPrice := product.Price
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, errorx.New(errorx.BadRequest, "Price must not be negative")
		}

		if *req.Price != product.Price {
			data["price"] = *req.Price
			priceChanged = true
		}
	}

	if err := d.productRepo.UpdateByID(ctx, product.ID, data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update product: %v", err)
		return nil, errorx.Unknown
	}

	product, err = d.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get product after update: %v", err)
		return nil, errorx.Unknown
	}

	d.index(ctx, product)

	// The update already succeeded, notifying watchers must not fail it.
	if priceChanged {
		d.notifyPriceChange(ctx, product, oldPrice)
	}

	converted, err := d.convert(ctx, product)
	if err != nil {
		return nil, err
	}

	return &model.UpdateProductResponse{Product: converted}, nil
}

func (d *productDomain) Delete(
	ctx context.Context, req *model.DeleteProductRequest,
) (*model.DeleteProductResponse, error) {
	product, err := d.getOwned(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.productRepo.DeleteByID(ctx, product.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete product: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.searchIndex.Delete(search.ProductDoc, product.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot remove product from index: %v", err)
	}

	return &model.DeleteProductResponse{}, nil
}

func (d *productDomain) Favorite(
	ctx context.Context, req *model.FavoriteProductRequest,
) (*model.FavoriteProductResponse, error) {
	product, err := d.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found product")
		}

		xcontext.Logger(ctx).Errorf("Cannot get product: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	_, err = d.favoriteRepo.Get(ctx, userID, product.ID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already favorited this product")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get favorite: %v", err)
		return nil, errorx.Unknown
	}

	err = d.favoriteRepo.Create(ctx, &entity.Favorite{UserID: userID, ProductID: product.ID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create favorite: %v", err)
		return nil, errorx.Unknown
	}

	return &model.FavoriteProductResponse{}, nil
}

func (d *productDomain) Unfavorite(
	ctx context.Context, req *model.UnfavoriteProductRequest,
) (*model.UnfavoriteProductResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	_, err := d.favoriteRepo.Get(ctx, userID, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "You have not favorited this product")
		}

		xcontext.Logger(ctx).Errorf("Cannot get favorite: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.favoriteRepo.Delete(ctx, userID, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete favorite: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnfavoriteProductResponse{}, nil
}

func (d *productDomain) CreateComment(
	ctx context.Context, req *model.CreateCommentRequest,
) (*model.CreateCommentResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Content must not be empty")
	}

	product, err := d.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found product")
		}

		xcontext.Logger(ctx).Errorf("Cannot get product: %v", err)
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
		ProductID:     sql.NullString{String: product.ID, Valid: true},
		Content:       req.Content,
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	recipients := d.resolver.CommentRecipients(product.UserID, userID)
	d.notifier.NotifyAll(ctx, recipients,
		fmt.Sprintf("%s commented on %q.", commenter.Nickname, product.Name))

	comment.User = *commenter
	return &model.CreateCommentResponse{Comment: model.ConvertComment(comment)}, nil
}

func (d *productDomain) GetComments(
	ctx context.Context, req *model.GetCommentsRequest,
) (*model.GetCommentsResponse, error) {
	limit, err := commentLimit(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	comments, err := d.commentRepo.GetList(ctx, repository.CommentFilter{
		ProductID: req.ID,
		Cursor:    req.Cursor,
		Limit:     limit + 1,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	return convertCommentPage(comments, limit), nil
}

func (d *productDomain) notifyPriceChange(ctx context.Context, product *entity.Product, oldPrice int64) {
	actorID := xcontext.RequestUserID(ctx)
	recipients, err := d.resolver.PriceChangeRecipients(ctx, product.ID, actorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot resolve price change recipients: %v", err)
		return
	}

	d.notifier.NotifyAll(ctx, recipients,
		fmt.Sprintf("The price of %q changed from %d to %d.", product.Name, oldPrice, product.Price))
}

func (d *productDomain) getOwned(ctx context.Context, id string) (*entity.Product, error) {
	product, err := d.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found product")
		}

		xcontext.Logger(ctx).Errorf("Cannot get product: %v", err)
		return nil, errorx.Unknown
	}

	if product.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return product, nil
}

func (d *productDomain) convert(ctx context.Context, product *entity.Product) (model.Product, error) {
	favoriteCount, err := d.favoriteRepo.CountByProductID(ctx, product.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count favorites: %v", err)
		return model.Product{}, errorx.Unknown
	}

	isFavorited := false
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		if _, err := d.favoriteRepo.Get(ctx, userID, product.ID); err == nil {
			isFavorited = true
		}
	}

	return model.ConvertProduct(product, favoriteCount, isFavorited), nil
}

func (d *productDomain) index(ctx context.Context, product *entity.Product) {
	err := d.searchIndex.Index(search.ProductDoc, product.ID, search.ProductData{
		Name:        product.Name,
		Description: product.Description,
		Tags:        product.Tags,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index product %s: %v", product.ID, err)
	}
}
