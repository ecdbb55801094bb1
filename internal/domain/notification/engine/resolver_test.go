package engine

import (
	"testing"

	"github.com/pandamarket/backend/internal/repository"
	"github.com/pandamarket/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_Resolver_CommentRecipients(t *testing.T) {
	resolver := NewResolver(repository.NewFavoriteRepository())

	require.Equal(t, []string{"owner"}, resolver.CommentRecipients("owner", "commenter"))

	// Nobody is notified about their own comment.
	require.Empty(t, resolver.CommentRecipients("owner", "owner"))
}

func Test_Resolver_PriceChangeRecipients_excludes_the_actor(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	resolver := NewResolver(repository.NewFavoriteRepository())

	recipients, err := resolver.PriceChangeRecipients(ctx, testutil.Product1.ID, testutil.User1.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{testutil.User2.ID, testutil.User3.ID}, recipients)

	// A favoriter changing the price does not notify themselves.
	recipients, err = resolver.PriceChangeRecipients(ctx, testutil.Product1.ID, testutil.User2.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{testutil.User3.ID}, recipients)
}
