package middleware

import (
	"context"
	"strings"

	"github.com/pandamarket/backend/internal/model"
	"github.com/pandamarket/backend/pkg/errorx"
	"github.com/pandamarket/backend/pkg/router"
	"github.com/pandamarket/backend/pkg/xcontext"
)

type AuthVerifier struct {
	useAccessToken bool
	optional       bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.useAccessToken = true
	return a
}

// WithOptional lets unauthenticated requests through without a user id in
// context instead of rejecting them.
func (a *AuthVerifier) WithOptional() *AuthVerifier {
	a.optional = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if !a.useAccessToken {
			return nil, nil
		}

		tokenStr := getAccessToken(ctx)
		if tokenStr == "" {
			if a.optional {
				return nil, nil
			}

			return nil, errorx.New(errorx.Unauthenticated, "You need to login before")
		}

		var accessToken model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(tokenStr, &accessToken); err != nil {
			if a.optional {
				return nil, nil
			}

			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

// getAccessToken accepts the token either as a bearer header or as the
// cookie issued at login.
func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if auth := req.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
