package domain

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pandamarket/backend/internal/model"
	"github.com/pandamarket/backend/internal/repository"
	"github.com/pandamarket/backend/pkg/errorx"
	"github.com/pandamarket/backend/pkg/testutil"
	"github.com/pandamarket/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_authDomain_Register_and_Login(t *testing.T) {
	ctx := testutil.MockContext()
	authDomain := NewAuthDomain(repository.NewUserRepository(), repository.NewRefreshTokenRepository())

	registerResp, err := authDomain.Register(ctx, &model.RegisterRequest{
		Email:    "panda@example.com",
		Password: "correct-horse",
		Nickname: "Panda",
	})
	require.NoError(t, err)
	require.Equal(t, "Panda", registerResp.User.Nickname)

	_, err = authDomain.Register(ctx, &model.RegisterRequest{
		Email:    "panda@example.com",
		Password: "another-pass",
		Nickname: "Impostor",
	})
	require.Equal(t, errorx.New(errorx.AlreadyExists, "This email is already registered"), err)

	_, err = authDomain.Register(ctx, &model.RegisterRequest{
		Email:    "short@example.com",
		Password: "short",
		Nickname: "Short",
	})
	require.Equal(t, errorx.New(errorx.BadRequest,
		"Password must contain at least 8 characters"), err)

	loginResp, err := authDomain.Login(ctx, &model.LoginRequest{
		Email:    "panda@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, loginResp.AccessToken)
	require.NotEmpty(t, loginResp.RefreshToken)
	require.Equal(t, registerResp.User.ID, loginResp.User.ID)

	_, err = authDomain.Login(ctx, &model.LoginRequest{
		Email:    "panda@example.com",
		Password: "wrong-pass",
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid email or password"), err)

	_, err = authDomain.Login(ctx, &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid email or password"), err)
}

func Test_authDomain_Refresh_rotates_token(t *testing.T) {
	ctx := testutil.MockContext()
	authDomain := NewAuthDomain(repository.NewUserRepository(), repository.NewRefreshTokenRepository())

	_, err := authDomain.Register(ctx, &model.RegisterRequest{
		Email:    "panda@example.com",
		Password: "correct-horse",
		Nickname: "Panda",
	})
	require.NoError(t, err)

	loginResp, err := authDomain.Login(ctx, &model.LoginRequest{
		Email:    "panda@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	refreshResp, err := authDomain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: loginResp.RefreshToken,
	})
	require.NoError(t, err)
	require.NotEmpty(t, refreshResp.AccessToken)
	require.NotEmpty(t, refreshResp.RefreshToken)
	require.NotEqual(t, loginResp.RefreshToken, refreshResp.RefreshToken)

	// Replaying the already rotated token means it leaked. The whole
	// family is revoked.
	_, err = authDomain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: loginResp.RefreshToken,
	})
	require.Equal(t, errorx.New(errorx.Unauthenticated,
		"Your refresh token may have been stolen, please login again"), err)

	// After the revocation even the newest token of the family is dead.
	_, err = authDomain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: refreshResp.RefreshToken,
	})
	require.Equal(t, errorx.New(errorx.Unauthenticated, "Invalid refresh token"), err)
}

func Test_authDomain_Logout_revokes_family(t *testing.T) {
	ctx := testutil.MockContext()
	authDomain := NewAuthDomain(repository.NewUserRepository(), repository.NewRefreshTokenRepository())

	_, err := authDomain.Register(ctx, &model.RegisterRequest{
		Email:    "panda@example.com",
		Password: "correct-horse",
		Nickname: "Panda",
	})
	require.NoError(t, err)

	loginResp, err := authDomain.Login(ctx, &model.LoginRequest{
		Email:    "panda@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	httpReq := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	httpReq.AddCookie(&http.Cookie{
		Name:  xcontext.Configs(ctx).Auth.RefreshToken.Name,
		Value: loginResp.RefreshToken,
	})

	_, err = authDomain.Logout(xcontext.WithHTTPRequest(ctx, httpReq), &model.LogoutRequest{})
	require.NoError(t, err)

	_, err = authDomain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: loginResp.RefreshToken,
	})
	require.Equal(t, errorx.New(errorx.Unauthenticated, "Invalid refresh token"), err)
}
