package repository_test

import (
	"testing"
	"time"

	"github.com/pandamarket/backend/internal/entity"
	"github.com/pandamarket/backend/internal/repository"
	"github.com/pandamarket/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_refreshTokenRepository_Rotate(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewRefreshTokenRepository()

	require.NoError(t, repo.Create(ctx, &entity.RefreshToken{
		Family:     "family1",
		UserID:     "user1",
		Counter:    0,
		Expiration: time.Now().Add(time.Hour),
	}))

	require.NoError(t, repo.Rotate(ctx, "family1", 0))

	stored, err := repo.Get(ctx, "family1")
	require.NoError(t, err)
	require.EqualValues(t, 1, stored.Counter)

	// Rotating with a stale counter loses the race.
	require.ErrorIs(t, repo.Rotate(ctx, "family1", 0), gorm.ErrRecordNotFound)

	require.NoError(t, repo.Rotate(ctx, "family1", 1))
	stored, err = repo.Get(ctx, "family1")
	require.NoError(t, err)
	require.EqualValues(t, 2, stored.Counter)
}

func Test_refreshTokenRepository_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewRefreshTokenRepository()

	require.NoError(t, repo.Create(ctx, &entity.RefreshToken{
		Family:     "family1",
		UserID:     "user1",
		Expiration: time.Now().Add(time.Hour),
	}))

	require.NoError(t, repo.Delete(ctx, "family1"))

	_, err := repo.Get(ctx, "family1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
