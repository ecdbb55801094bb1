package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pandamarket/backend/internal/entity"
	"github.com/pandamarket/backend/internal/model"
	"github.com/pandamarket/backend/internal/repository"
	"github.com/pandamarket/backend/pkg/crypto"
	"github.com/pandamarket/backend/pkg/errorx"
	"github.com/pandamarket/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type AuthDomain interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
	Logout(ctx context.Context, req *model.LogoutRequest) (*model.LogoutResponse, error)
}

type authDomain struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
) *authDomain {
	return &authDomain{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if req.Email == "" || req.Nickname == "" {
		return nil, errorx.New(errorx.BadRequest, "Email and nickname must not be empty")
	}

	if len(req.Password) < minPasswordLength {
		return nil, errorx.New(errorx.BadRequest,
			"Password must contain at least %d characters", minPasswordLength)
	}

	_, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This email is already registered")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	hashedPassword, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Nickname:       req.Nickname,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{User: model.ConvertUser(user)}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if err := crypto.ComparePassword(user.HashedPassword, req.Password); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid email or password")
	}

	accessToken, refreshToken, err := d.issueTokens(ctx, user, "", 0)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		User:         model.ConvertUser(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (d *authDomain) Refresh(
	ctx context.Context, req *model.RefreshTokenRequest,
) (*model.RefreshTokenResponse, error) {
	tokenStr := req.RefreshToken
	if tokenStr == "" {
		tokenStr = refreshTokenFromCookie(ctx)
	}

	if tokenStr == "" {
		return nil, errorx.New(errorx.Unauthenticated, "No refresh token provided")
	}

	var claims model.RefreshToken
	if err := xcontext.TokenEngine(ctx).Verify(tokenStr, &claims); err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
	}

	stored, err := d.refreshTokenRepo.Get(ctx, claims.Family)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get refresh token: %v", err)
		return nil, errorx.Unknown
	}

	if time.Now().After(stored.Expiration) {
		return nil, errorx.New(errorx.Unauthenticated, "The refresh token is expired")
	}

	// A counter mismatch means an old token of this family was replayed.
	// The whole family is revoked and the user has to login again.
	if stored.Counter != claims.Counter {
		if err := d.refreshTokenRepo.Delete(ctx, claims.Family); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot revoke refresh token family: %v", err)
		}

		return nil, errorx.New(errorx.Unauthenticated,
			"Your refresh token may have been stolen, please login again")
	}

	if err := d.refreshTokenRepo.Rotate(ctx, claims.Family, claims.Counter); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
		}

		xcontext.Logger(ctx).Errorf("Cannot rotate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user of refresh token: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, refreshToken, err := d.issueTokens(ctx, user, claims.Family, claims.Counter+1)
	if err != nil {
		return nil, err
	}

	return &model.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (d *authDomain) Logout(
	ctx context.Context, req *model.LogoutRequest,
) (*model.LogoutResponse, error) {
	if tokenStr := refreshTokenFromCookie(ctx); tokenStr != "" {
		var claims model.RefreshToken
		if err := xcontext.TokenEngine(ctx).Verify(tokenStr, &claims); err == nil {
			if err := d.refreshTokenRepo.Delete(ctx, claims.Family); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot delete refresh token family: %v", err)
			}
		}
	}

	return &model.LogoutResponse{}, nil
}

// issueTokens generates a fresh access token and a refresh token. With an
// empty family a new rotation family is begun, otherwise the given step of
// the existing family is issued.
func (d *authDomain) issueTokens(
	ctx context.Context, user *entity.User, family string, counter uint64,
) (string, string, error) {
	cfg := xcontext.Configs(ctx).Auth
	engine := xcontext.TokenEngine(ctx)

	accessToken, err := engine.Generate(cfg.AccessToken.Expiration.Duration, model.AccessToken{
		ID:       user.ID,
		Nickname: user.Nickname,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", "", errorx.Unknown
	}

	if family == "" {
		family, err = crypto.GenerateRandomString()
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot generate token family: %v", err)
			return "", "", errorx.Unknown
		}

		err = d.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
			Family:     family,
			UserID:     user.ID,
			Counter:    0,
			Expiration: time.Now().Add(cfg.RefreshToken.Expiration.Duration),
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create refresh token: %v", err)
			return "", "", errorx.Unknown
		}
	}

	refreshToken, err := engine.Generate(cfg.RefreshToken.Expiration.Duration, model.RefreshToken{
		Family:  family,
		Counter: counter,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return "", "", errorx.Unknown
	}

	return accessToken, refreshToken, nil
}

func refreshTokenFromCookie(ctx context.Context) string {
	cookie, err := xcontext.HTTPRequest(ctx).Cookie(xcontext.Configs(ctx).Auth.RefreshToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
