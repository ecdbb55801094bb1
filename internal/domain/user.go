package domain

import (
	"context"
	"errors"

	"github.com/pandamarket/backend/internal/common"
	"github.com/pandamarket/backend/internal/entity"
	"github.com/pandamarket/backend/internal/model"
	"github.com/pandamarket/backend/internal/repository"
	"github.com/pandamarket/backend/pkg/crypto"
	"github.com/pandamarket/backend/pkg/errorx"
	"github.com/pandamarket/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
	UpdateMe(ctx context.Context, req *model.UpdateMeRequest) (*model.UpdateMeResponse, error)
	UpdatePassword(ctx context.Context, req *model.UpdatePasswordRequest) (*model.UpdatePasswordResponse, error)
	GetMyProducts(ctx context.Context, req *model.GetMyProductsRequest) (*model.GetMyProductsResponse, error)
	GetMyFavorites(ctx context.Context, req *model.GetMyFavoritesRequest) (*model.GetMyFavoritesResponse, error)
}

type userDomain struct {
	userRepo     repository.UserRepository
	productRepo  repository.ProductRepository
	favoriteRepo repository.FavoriteRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	favoriteRepo repository.FavoriteRepository,
) *userDomain {
	return &userDomain{
		userRepo:     userRepo,
		productRepo:  productRepo,
		favoriteRepo: favoriteRepo,
	}
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) UpdateMe(
	ctx context.Context, req *model.UpdateMeRequest,
) (*model.UpdateMeResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	err := d.userRepo.UpdateByID(ctx, userID, &entity.User{
		Nickname:  req.Nickname,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user after update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateMeResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) UpdatePassword(
	ctx context.Context, req *model.UpdatePasswordRequest,
) (*model.UpdatePasswordResponse, error) {
	if len(req.NewPassword) < minPasswordLength {
		return nil, errorx.New(errorx.BadRequest,
			"Password must contain at least %d characters", minPasswordLength)
	}

	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if err := crypto.ComparePassword(user.HashedPassword, req.CurrentPassword); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Current password is not correct")
	}

	hashedPassword, err := crypto.HashPassword(req.NewPassword)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	err = d.userRepo.UpdateByID(ctx, userID, &entity.User{HashedPassword: hashedPassword})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update password: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdatePasswordResponse{}, nil
}

func (d *userDomain) GetMyProducts(
	ctx context.Context, req *model.GetMyProductsRequest,
) (*model.GetMyProductsResponse, error) {
	offset, limit, err := common.Paginate(ctx, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	filter := repository.ProductFilter{Offset: offset, Limit: limit, UserID: userID}

	products, err := d.productRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get products: %v", err)
		return nil, errorx.Unknown
	}

	totalCount, err := d.productRepo.Count(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count products: %v", err)
		return nil, errorx.Unknown
	}

	converted := make([]model.Product, 0, len(products))
	for i := range products {
		favoriteCount, err := d.favoriteRepo.CountByProductID(ctx, products[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count favorites: %v", err)
			return nil, errorx.Unknown
		}

		converted = append(converted, model.ConvertProduct(&products[i], favoriteCount, false))
	}

	return &model.GetMyProductsResponse{Products: converted, TotalCount: totalCount}, nil
}

func (d *userDomain) GetMyFavorites(
	ctx context.Context, req *model.GetMyFavoritesRequest,
) (*model.GetMyFavoritesResponse, error) {
	offset, limit, err := common.Paginate(ctx, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	favorites, err := d.favoriteRepo.GetListByUserID(ctx, userID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get favorites: %v", err)
		return nil, errorx.Unknown
	}

	totalCount, err := d.favoriteRepo.CountByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count favorites: %v", err)
		return nil, errorx.Unknown
	}

	products := make([]model.Product, 0, len(favorites))
	for i := range favorites {
		favoriteCount, err := d.favoriteRepo.CountByProductID(ctx, favorites[i].ProductID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count favorites: %v", err)
			return nil, errorx.Unknown
		}

		products = append(products, model.ConvertProduct(&favorites[i].Product, favoriteCount, true))
	}

	return &model.GetMyFavoritesResponse{Products: products, TotalCount: totalCount}, nil
}
