package domain

import (
	"testing"

	"github.com/pandamarket/backend/internal/model"
	"github.com/pandamarket/backend/internal/repository"
	"github.com/pandamarket/backend/pkg/errorx"
	"github.com/pandamarket/backend/pkg/testutil"
	"github.com/pandamarket/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newUserDomainForTest() UserDomain {
	return NewUserDomain(
		repository.NewUserRepository(),
		repository.NewProductRepository(),
		repository.NewFavoriteRepository(),
	)
}

func Test_userDomain_GetMe_and_UpdateMe(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	userDomain := newUserDomainForTest()

	meCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	getResp, err := userDomain.GetMe(meCtx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Email, getResp.User.Email)
	require.Equal(t, testutil.User1.Nickname, getResp.User.Nickname)

	updateResp, err := userDomain.UpdateMe(meCtx, &model.UpdateMeRequest{
		Nickname:  "Renamed One",
		AvatarURL: "https://storage.example.com/avatar.png",
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed One", updateResp.User.Nickname)
	require.Equal(t, "https://storage.example.com/avatar.png", updateResp.User.AvatarURL)
}

func Test_userDomain_UpdatePassword(t *testing.T) {
	ctx := testutil.MockContext()

	authDomain := NewAuthDomain(repository.NewUserRepository(), repository.NewRefreshTokenRepository())
	userDomain := newUserDomainForTest()

	registerResp, err := authDomain.Register(ctx, &model.RegisterRequest{
		Email:    "panda@example.com",
		Password: "old-password",
		Nickname: "Panda",
	})
	require.NoError(t, err)

	meCtx := xcontext.WithRequestUserID(ctx, registerResp.User.ID)

	_, err = userDomain.UpdatePassword(meCtx, &model.UpdatePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "new-password",
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Current password is not correct"), err)

	_, err = userDomain.UpdatePassword(meCtx, &model.UpdatePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "new-password",
	})
	require.NoError(t, err)

	_, err = authDomain.Login(ctx, &model.LoginRequest{
		Email:    "panda@example.com",
		Password: "new-password",
	})
	require.NoError(t, err)

	_, err = authDomain.Login(ctx, &model.LoginRequest{
		Email:    "panda@example.com",
		Password: "old-password",
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid email or password"), err)
}

func Test_userDomain_GetMyFavorites(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	userDomain := newUserDomainForTest()

	meCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	resp, err := userDomain.GetMyFavorites(meCtx, &model.GetMyFavoritesRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 1, resp.TotalCount)
	require.Len(t, resp.Products, 1)
	require.Equal(t, testutil.Product1.ID, resp.Products[0].ID)
	require.EqualValues(t, 2, resp.Products[0].FavoriteCount)
	require.True(t, resp.Products[0].IsFavorited)
}

func Test_userDomain_GetMyProducts(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	userDomain := newUserDomainForTest()

	meCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	resp, err := userDomain.GetMyProducts(meCtx, &model.GetMyProductsRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 1, resp.TotalCount)
	require.Len(t, resp.Products, 1)
	require.Equal(t, testutil.Product1.Name, resp.Products[0].Name)
}
