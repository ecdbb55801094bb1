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

func Test_commentDomain_Update_and_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	articleDomain, _ := newArticleDomainForTest(ctx)
	commentDomain := NewCommentDomain(repository.NewCommentRepository())

	commenterCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	createResp, err := articleDomain.CreateComment(commenterCtx, &model.CreateCommentRequest{
		ID:      testutil.Article1.ID,
		Content: "First version.",
	})
	require.NoError(t, err)

	updateResp, err := commentDomain.Update(commenterCtx, &model.UpdateCommentRequest{
		ID:      createResp.Comment.ID,
		Content: "Second version.",
	})
	require.NoError(t, err)
	require.Equal(t, "Second version.", updateResp.Comment.Content)

	strangerCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = commentDomain.Update(strangerCtx, &model.UpdateCommentRequest{
		ID:      createResp.Comment.ID,
		Content: "Hijacked.",
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)

	_, err = commentDomain.Delete(strangerCtx, &model.DeleteCommentRequest{
		ID: createResp.Comment.ID,
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)

	_, err = commentDomain.Delete(commenterCtx, &model.DeleteCommentRequest{
		ID: createResp.Comment.ID,
	})
	require.NoError(t, err)

	_, err = commentDomain.Delete(commenterCtx, &model.DeleteCommentRequest{
		ID: createResp.Comment.ID,
	})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found comment"), err)
}
