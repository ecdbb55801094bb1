package domain

import (
	"context"
	"testing"

	"github.com/pandamarket/backend/internal/domain/notification/engine"
	"github.com/pandamarket/backend/internal/domain/notification/proxy"
	"github.com/pandamarket/backend/internal/model"
	"github.com/pandamarket/backend/internal/repository"
	"github.com/pandamarket/backend/pkg/errorx"
	"github.com/pandamarket/backend/pkg/testutil"
	"github.com/pandamarket/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newNotificationDomainForTest(redisClient *testutil.MockRedisClient) NotificationDomain {
	notificationRepo := repository.NewNotificationRepository(redisClient)
	return NewNotificationDomain(
		notificationRepo,
		repository.NewUserRepository(),
		engine.NewNotifier(notificationRepo, engine.NewDispatcher(proxy.NewRegistry())),
	)
}

func Test_notificationDomain_Send_and_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	notificationDomain := newNotificationDomainForTest(&testutil.MockRedisClient{})

	sendResp, err := notificationDomain.Send(ctx, &model.SendNotificationRequest{
		UserID:  testutil.User2.ID,
		Message: "Welcome to the market.",
	})
	require.NoError(t, err)
	require.NotZero(t, sendResp.Notification.ID)
	require.False(t, sendResp.Notification.IsRead)

	_, err = notificationDomain.Send(ctx, &model.SendNotificationRequest{
		UserID:  "no-such-user",
		Message: "Hello?",
	})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found user"), err)

	_, err = notificationDomain.Send(ctx, &model.SendNotificationRequest{
		UserID: testutil.User2.ID,
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Message must not be empty"), err)

	receiverCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	listResp, err := notificationDomain.GetList(receiverCtx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, listResp.Notifications, 1)
	require.Equal(t, "Welcome to the market.", listResp.Notifications[0].Message)

	// Another user sees nothing of it.
	otherCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	listResp, err = notificationDomain.GetList(otherCtx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Empty(t, listResp.Notifications)
}

func Test_notificationDomain_GetList_guards_pagination(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	notificationDomain := newNotificationDomainForTest(&testutil.MockRedisClient{})

	receiverCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err := notificationDomain.GetList(receiverCtx, &model.GetNotificationsRequest{Offset: -1})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid pagination parameters"), err)

	maxLimit := xcontext.Configs(ctx).ApiServer.MaxLimit
	_, err = notificationDomain.GetList(receiverCtx, &model.GetNotificationsRequest{
		Limit: maxLimit + 1,
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", maxLimit), err)

	// An omitted limit falls back to the configured default.
	defaultLimit := xcontext.Configs(ctx).ApiServer.DefaultLimit
	for i := 0; i < defaultLimit+2; i++ {
		_, err := notificationDomain.Send(ctx, &model.SendNotificationRequest{
			UserID:  testutil.User2.ID,
			Message: "restock",
		})
		require.NoError(t, err)
	}

	listResp, err := notificationDomain.GetList(receiverCtx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, listResp.Notifications, defaultLimit)
}

func Test_notificationDomain_MarkRead_ownership(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	notificationDomain := newNotificationDomainForTest(&testutil.MockRedisClient{})

	sendResp, err := notificationDomain.Send(ctx, &model.SendNotificationRequest{
		UserID:  testutil.User2.ID,
		Message: "Your item sold.",
	})
	require.NoError(t, err)

	// Someone else marking it reads like a missing notification.
	strangerCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = notificationDomain.MarkRead(strangerCtx, &model.MarkNotificationReadRequest{
		ID: sendResp.Notification.ID,
	})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found notification"), err)

	ownerCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	markResp, err := notificationDomain.MarkRead(ownerCtx, &model.MarkNotificationReadRequest{
		ID: sendResp.Notification.ID,
	})
	require.NoError(t, err)
	require.True(t, markResp.Notification.IsRead)

	// Marking again is a no-op, not an error.
	markResp, err = notificationDomain.MarkRead(ownerCtx, &model.MarkNotificationReadRequest{
		ID: sendResp.Notification.ID,
	})
	require.NoError(t, err)
	require.True(t, markResp.Notification.IsRead)
}

func Test_notificationDomain_GetUnreadCount(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	notificationDomain := newNotificationDomainForTest(&testutil.MockRedisClient{})

	receiverCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	countResp, err := notificationDomain.GetUnreadCount(receiverCtx, &model.GetUnreadNotificationCountRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 0, countResp.UnreadCount)

	for _, message := range []string{"one", "two", "three"} {
		_, err := notificationDomain.Send(ctx, &model.SendNotificationRequest{
			UserID:  testutil.User2.ID,
			Message: message,
		})
		require.NoError(t, err)
	}

	countResp, err = notificationDomain.GetUnreadCount(receiverCtx, &model.GetUnreadNotificationCountRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 3, countResp.UnreadCount)
}

func Test_notificationDomain_GetUnreadCount_prefers_cache(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	redisClient := &testutil.MockRedisClient{
		GetFunc: func(ctx context.Context, key string) (string, error) {
			return "42", nil
		},
	}

	notificationDomain := newNotificationDomainForTest(redisClient)

	receiverCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	countResp, err := notificationDomain.GetUnreadCount(receiverCtx, &model.GetUnreadNotificationCountRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 42, countResp.UnreadCount)
}
