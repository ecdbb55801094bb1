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

func newArticleDomainForTest(ctx context.Context) (ArticleDomain, repository.NotificationRepository) {
	notificationRepo := repository.NewNotificationRepository(&testutil.MockRedisClient{})
	articleDomain := NewArticleDomain(
		repository.NewArticleRepository(),
		repository.NewCommentRepository(),
		repository.NewLikeRepository(),
		repository.NewUserRepository(),
		search.NewBleveIndex(ctx),
		engine.NewResolver(repository.NewFavoriteRepository()),
		engine.NewNotifier(notificationRepo, engine.NewDispatcher(proxy.NewRegistry())),
	)

	return articleDomain, notificationRepo
}

func Test_articleDomain_CreateComment_notifies_the_owner(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	articleDomain, notificationRepo := newArticleDomainForTest(ctx)

	commenterCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	resp, err := articleDomain.CreateComment(commenterCtx, &model.CreateCommentRequest{
		ID:      testutil.Article1.ID,
		Content: "Is this still available?",
	})
	require.NoError(t, err)
	require.Equal(t, "Is this still available?", resp.Comment.Content)
	require.Equal(t, testutil.User2.Nickname, resp.Comment.User.Nickname)

	notifications, err := notificationRepo.GetListByUserID(ctx, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t,
		fmt.Sprintf("%s commented on %q.", testutil.User2.Nickname, testutil.Article1.Title),
		notifications[0].Message)
	require.False(t, notifications[0].IsRead)
}

func Test_articleDomain_CreateComment_own_article_stays_silent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	articleDomain, notificationRepo := newArticleDomainForTest(ctx)

	ownerCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err := articleDomain.CreateComment(ownerCtx, &model.CreateCommentRequest{
		ID:      testutil.Article1.ID,
		Content: "Bumping my own post.",
	})
	require.NoError(t, err)

	notifications, err := notificationRepo.GetListByUserID(ctx, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	require.Empty(t, notifications)
}

func Test_articleDomain_Like_and_Unlike(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	articleDomain, _ := newArticleDomainForTest(ctx)

	likerCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err := articleDomain.Like(likerCtx, &model.LikeArticleRequest{ID: testutil.Article1.ID})
	require.NoError(t, err)

	_, err = articleDomain.Like(likerCtx, &model.LikeArticleRequest{ID: testutil.Article1.ID})
	require.Equal(t, errorx.New(errorx.AlreadyExists, "You already liked this article"), err)

	getResp, err := articleDomain.Get(likerCtx, &model.GetArticleRequest{ID: testutil.Article1.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, getResp.Article.LikeCount)
	require.True(t, getResp.Article.IsLiked)

	_, err = articleDomain.Unlike(likerCtx, &model.UnlikeArticleRequest{ID: testutil.Article1.ID})
	require.NoError(t, err)

	_, err = articleDomain.Unlike(likerCtx, &model.UnlikeArticleRequest{ID: testutil.Article1.ID})
	require.Equal(t, errorx.New(errorx.BadRequest, "You have not liked this article"), err)

	getResp, err = articleDomain.Get(likerCtx, &model.GetArticleRequest{ID: testutil.Article1.ID})
	require.NoError(t, err)
	require.EqualValues(t, 0, getResp.Article.LikeCount)
	require.False(t, getResp.Article.IsLiked)
}

func Test_articleDomain_Update_requires_ownership(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	articleDomain, _ := newArticleDomainForTest(ctx)

	strangerCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err := articleDomain.Update(strangerCtx, &model.UpdateArticleRequest{
		ID:    testutil.Article1.ID,
		Title: "Hijacked",
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)

	_, err = articleDomain.Update(strangerCtx, &model.UpdateArticleRequest{
		ID:    "no-such-article",
		Title: "Hijacked",
	})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found article"), err)
}

func Test_articleDomain_GetComments_pagination(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	articleDomain, _ := newArticleDomainForTest(ctx)

	commenterCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	for i := 0; i < 3; i++ {
		_, err := articleDomain.CreateComment(commenterCtx, &model.CreateCommentRequest{
			ID:      testutil.Article1.ID,
			Content: fmt.Sprintf("comment %d", i),
		})
		require.NoError(t, err)
	}

	firstPage, err := articleDomain.GetComments(ctx, &model.GetCommentsRequest{
		ID:    testutil.Article1.ID,
		Limit: 2,
	})
	require.NoError(t, err)
	require.Len(t, firstPage.Comments, 2)
	require.NotZero(t, firstPage.NextCursor)

	// Newest first.
	require.Equal(t, "comment 2", firstPage.Comments[0].Content)
	require.Equal(t, "comment 1", firstPage.Comments[1].Content)

	secondPage, err := articleDomain.GetComments(ctx, &model.GetCommentsRequest{
		ID:     testutil.Article1.ID,
		Cursor: firstPage.NextCursor,
		Limit:  2,
	})
	require.NoError(t, err)
	require.Len(t, secondPage.Comments, 1)
	require.Equal(t, "comment 0", secondPage.Comments[0].Content)
	require.Zero(t, secondPage.NextCursor)
}

func Test_articleDomain_GetList_by_keyword(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	articleDomain, _ := newArticleDomainForTest(ctx)

	authorCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err := articleDomain.Create(authorCtx, &model.CreateArticleRequest{
		Title:   "Trading a guitar",
		Content: "Acoustic, some scratches.",
	})
	require.NoError(t, err)

	resp, err := articleDomain.GetList(ctx, &model.GetArticlesRequest{Keyword: "guitar"})
	require.NoError(t, err)
	require.Len(t, resp.Articles, 1)
	require.Equal(t, "Trading a guitar", resp.Articles[0].Title)
}
