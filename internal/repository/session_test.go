package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
	"github.com/rocketscienceinc/minesweeper-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoFactory func(t *testing.T) (context.Context, SessionRepository)

func redisRepo(t *testing.T) (context.Context, SessionRepository) {
	ctx, st := suite.New(t)
	return ctx, NewSessionRepository(st.Redis)
}

func memoryRepo(_ *testing.T) (context.Context, SessionRepository) {
	return context.Background(), NewMemorySessionRepository()
}

func TestSessionRepository_Redis(t *testing.T) {
	testSessionRepository(t, redisRepo)
}

func TestSessionRepository_Memory(t *testing.T) {
	testSessionRepository(t, memoryRepo)
}

func testSessionRepository(t *testing.T, newRepo repoFactory) {
	t.Helper()

	t.Run("Register_Success", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a connected player
		player := &entity.Player{
			ID:          "p1",
			RemoteAddr:  "127.0.0.1:5000",
			Transport:   entity.TransportTCP,
			ConnectedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		}

		// When: the player is registered
		err := repo.Register(ctx, player)
		require.NoError(t, err)

		// Then: the player can be read back and is counted
		stored, err := repo.GetByID(ctx, player.ID)
		require.NoError(t, err)
		assert.Equal(t, player.ID, stored.ID)
		assert.Equal(t, player.RemoteAddr, stored.RemoteAddr)
		assert.Equal(t, player.Transport, stored.Transport)
		assert.True(t, player.ConnectedAt.Equal(stored.ConnectedAt))

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Register_Twice", func(t *testing.T) {
		ctx, repo := newRepo(t)

		player := &entity.Player{ID: "p1"}
		require.NoError(t, repo.Register(ctx, player))

		// When: the same player is registered again
		require.NoError(t, repo.Register(ctx, player))

		// Then: it is counted once
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Unregister_Success", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: two connected players
		require.NoError(t, repo.Register(ctx, &entity.Player{ID: "p1"}))
		require.NoError(t, repo.Register(ctx, &entity.Player{ID: "p2"}))

		// When: one disconnects
		err := repo.Unregister(ctx, "p1")
		require.NoError(t, err)

		// Then: only the other one is left
		_, err = repo.GetByID(ctx, "p1")
		require.ErrorIs(t, err, apperror.ErrPlayerNotFound)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Unregister_NotFound", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// When: an unknown player is unregistered
		err := repo.Unregister(ctx, "9999999")

		// Then: nothing fails
		require.NoError(t, err)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, repo := newRepo(t)

		player, err := repo.GetByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrPlayerNotFound)
		assert.Nil(t, player)
	})

	t.Run("Count_Empty", func(t *testing.T) {
		ctx, repo := newRepo(t)

		count, err := repo.Count(ctx)

		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
