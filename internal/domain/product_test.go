package domain

import (
	"context"
	"fmt"
	"testing"

	"github.com/pandamarket/backend/internal/domain/notification/engine"
	"github.com/pandamarket/backend/internal/domain/notification/proxy"
	"github.com/pandamarket/backend/internal/domain/search"
	"github.com/pandamarket/backend/internal/model"
	"github.com/pandamarket/backend/internal/repository"
	"github.com/pandamarket/backend/pkg/errorx"
	"github.com/pandamarket/backend/pkg/testutil"
	"github.com/pandamarket/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newProductDomainForTest(ctx context.Context) (ProductDomain, repository.NotificationRepository) {
	notificationRepo := repository.NewNotificationRepository(&testutil.MockRedisClient{})
	productDomain := NewProductDomain(
		repository.NewProductRepository(),
		repository.NewCommentRepository(),
		repository.NewFavoriteRepository(),
		repository.NewUserRepository(),
		search.NewBleveIndex(ctx),
		engine.NewResolver(repository.NewFavoriteRepository()),
		engine.NewNotifier(notificationRepo, engine.NewDispatcher(proxy.NewRegistry())),
	)

	return productDomain, notificationRepo
}

func Test_productDomain_Update_price_change_notifies_favoriters(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	productDomain, notificationRepo := newProductDomainForTest(ctx)

	ownerCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	newPrice := int64(45000)
	resp, err := productDomain.Update(ownerCtx, &model.UpdateProductRequest{
		ID:    testutil.Product1.ID,
		Price: &newPrice,
	})
	require.NoError(t, err)
	require.Equal(t, newPrice, resp.Product.Price)

	expected := fmt.Sprintf("The price of %q changed from %d to %d.",
		testutil.Product1.Name, testutil.Product1.Price, newPrice)

	// Product1 is favorited by user2 and user3, both hear about it.
	for _, userID := range []string{testutil.User2.ID, testutil.User3.ID} {
		notifications, err := notificationRepo.GetListByUserID(ctx, userID, 0, 10)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		require.Equal(t, expected, notifications[0].Message)
	}

	// The acting owner hears nothing.
	notifications, err := notificationRepo.GetListByUserID(ctx, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	require.Empty(t, notifications)
}

func Test_productDomain_Update_price_to_zero_persists_and_notifies(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	productDomain, notificationRepo := newProductDomainForTest(ctx)

	// Zero is a valid price, the update must not be dropped as an empty value.
	ownerCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	freePrice := int64(0)
	resp, err := productDomain.Update(ownerCtx, &model.UpdateProductRequest{
		ID:    testutil.Product1.ID,
		Price: &freePrice,
	})
	require.NoError(t, err)
	require.EqualValues(t, 0, resp.Product.Price)

	getResp, err := productDomain.Get(ctx, &model.GetProductRequest{ID: testutil.Product1.ID})
	require.NoError(t, err)
	require.EqualValues(t, 0, getResp.Product.Price)

	expected := fmt.Sprintf("The price of %q changed from %d to %d.",
		testutil.Product1.Name, testutil.Product1.Price, freePrice)

	notifications, err := notificationRepo.GetListByUserID(ctx, testutil.User2.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, expected, notifications[0].Message)
}

func Test_productDomain_Update_same_price_stays_silent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	productDomain, notificationRepo := newProductDomainForTest(ctx)

	ownerCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	samePrice := testutil.Product1.Price
	_, err := productDomain.Update(ownerCtx, &model.UpdateProductRequest{
		ID:    testutil.Product1.ID,
		Name:  "Mechanical keyboard, renamed",
		Price: &samePrice,
	})
	require.NoError(t, err)

	notifications, err := notificationRepo.GetListByUserID(ctx, testutil.User2.ID, 0, 10)
	require.NoError(t, err)
	require.Empty(t, notifications)
}

func Test_productDomain_Favorite_and_Unfavorite(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	productDomain, _ := newProductDomainForTest(ctx)

	// user2 favorited Product1 in the fixture already.
	favoriterCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err := productDomain.Favorite(favoriterCtx, &model.FavoriteProductRequest{
		ID: testutil.Product1.ID,
	})
	require.Equal(t, errorx.New(errorx.AlreadyExists, "You already favorited this product"), err)

	getResp, err := productDomain.Get(favoriterCtx, &model.GetProductRequest{
		ID: testutil.Product1.ID,
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, getResp.Product.FavoriteCount)
	require.True(t, getResp.Product.IsFavorited)

	_, err = productDomain.Unfavorite(favoriterCtx, &model.UnfavoriteProductRequest{
		ID: testutil.Product1.ID,
	})
	require.NoError(t, err)

	_, err = productDomain.Unfavorite(favoriterCtx, &model.UnfavoriteProductRequest{
		ID: testutil.Product1.ID,
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "You have not favorited this product"), err)

	getResp, err = productDomain.Get(favoriterCtx, &model.GetProductRequest{
		ID: testutil.Product1.ID,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, getResp.Product.FavoriteCount)
	require.False(t, getResp.Product.IsFavorited)
}

func Test_productDomain_CreateComment_notifies_the_owner(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	productDomain, notificationRepo := newProductDomainForTest(ctx)

	commenterCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err := productDomain.CreateComment(commenterCtx, &model.CreateCommentRequest{
		ID:      testutil.Product1.ID,
		Content: "Would you take 40000?",
	})
	require.NoError(t, err)

	notifications, err := notificationRepo.GetListByUserID(ctx, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t,
		fmt.Sprintf("%s commented on %q.", testutil.User3.Nickname, testutil.Product1.Name),
		notifications[0].Message)
}

func Test_productDomain_Create_rejects_negative_price(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	productDomain, _ := newProductDomainForTest(ctx)

	sellerCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err := productDomain.Create(sellerCtx, &model.CreateProductRequest{
		Name:        "Broken lamp",
		Description: "You pay me to take it.",
		Price:       -1000,
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Price must not be negative"), err)
}
