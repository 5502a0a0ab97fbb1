package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
)

const welcomeFormat = "Welcome to Minesweeper. There are %d players, including you, at this time."

type sessionRepo interface {
	Register(ctx context.Context, player *entity.Player) error
	Unregister(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	Count(ctx context.Context) (int64, error)
}

// Lobby greets connecting players and keeps the session registry up to date.
// Registry failures are logged and never keep anybody from playing.
type Lobby struct {
	logger   *slog.Logger
	sessions sessionRepo
	now      func() time.Time
}

func NewLobby(logger *slog.Logger, sessions sessionRepo) *Lobby {
	return &Lobby{
		logger:   logger,
		sessions: sessions,
		now:      time.Now,
	}
}

// Join - registers a new player and returns it with the welcome banner.
func (that *Lobby) Join(ctx context.Context, remoteAddr, transport string) (*entity.Player, string) {
	log := that.logger.With("method", "Join")

	player := &entity.Player{
		ID:          uuid.NewString(),
		RemoteAddr:  remoteAddr,
		Transport:   transport,
		ConnectedAt: that.now(),
	}

	if err := that.sessions.Register(ctx, player); err != nil {
		log.Error("failed to register player", "player_id", player.ID, "error", err)
	}

	count, err := that.sessions.Count(ctx)
	if err != nil || count < 1 {
		if err != nil {
			log.Error("failed to count players", "error", err)
		}
		count = 1
	}

	log.Info("player joined", "player_id", player.ID, "transport", transport, "remote_addr", remoteAddr, "players", count)

	return player, fmt.Sprintf(welcomeFormat, count)
}

// Leave - removes the player from the registry. Runs even if ctx is already canceled.
// A player whose registration failed on Join is not in the registry and is skipped.
func (that *Lobby) Leave(ctx context.Context, player *entity.Player) {
	log := that.logger.With("method", "Leave", "player_id", player.ID)

	ctx = context.WithoutCancel(ctx)

	stored, err := that.sessions.GetByID(ctx, player.ID)
	if errors.Is(err, apperror.ErrPlayerNotFound) {
		log.Warn("player was never registered")
		return
	}

	if err != nil {
		log.Error("failed to get player", "error", err)
	}

	if err = that.sessions.Unregister(ctx, player.ID); err != nil {
		log.Error("failed to unregister player", "error", err)
		return
	}

	connectedAt := player.ConnectedAt
	if stored != nil {
		connectedAt = stored.ConnectedAt
	}

	log.Info("player left", "connected_for", that.now().Sub(connectedAt).String())
}
