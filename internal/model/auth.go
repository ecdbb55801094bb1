package model

import (
	"context"
	"net/http"

	"github.com/pandamarket/backend/pkg/xcontext"
)

// AccessToken is the payload carried inside an access token.
type AccessToken struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// RefreshToken is the payload carried inside a refresh token. The family
// identifies the login, the counter identifies the rotation step.
type RefreshToken struct {
	Family  string `json:"family"`
	Counter uint64 `json:"counter"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type RegisterResponse struct {
	User User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (r *LoginResponse) Cookies(ctx context.Context) []*http.Cookie {
	return tokenCookies(ctx, r.AccessToken, r.RefreshToken)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenResponse) Cookies(ctx context.Context) []*http.Cookie {
	return tokenCookies(ctx, r.AccessToken, r.RefreshToken)
}

type LogoutRequest struct{}

type LogoutResponse struct{}

func (r *LogoutResponse) Cookies(ctx context.Context) []*http.Cookie {
	cookies := tokenCookies(ctx, "", "")
	for _, c := range cookies {
		c.MaxAge = -1
	}

	return cookies
}

func tokenCookies(ctx context.Context, accessToken, refreshToken string) []*http.Cookie {
	cfg := xcontext.Configs(ctx).Auth
	return []*http.Cookie{
		{
			Name:     cfg.AccessToken.Name,
			Value:    accessToken,
			Path:     "/",
			MaxAge:   int(cfg.AccessToken.Expiration.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		{
			Name:     cfg.RefreshToken.Name,
			Value:    refreshToken,
			Path:     "/auth/refresh",
			MaxAge:   int(cfg.RefreshToken.Expiration.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}
