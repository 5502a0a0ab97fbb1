package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
)

// memorySession is used when no Redis is configured.
type memorySession struct {
	mu      sync.RWMutex
	players map[string]entity.Player
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySession{
		players: make(map[string]entity.Player),
	}
}

func (that *memorySession) Register(_ context.Context, player *entity.Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.players[player.ID] = *player

	return nil
}

func (that *memorySession) Unregister(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.players, id)

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*entity.Player, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	player, ok := that.players[id]
	if !ok {
		return nil, apperror.ErrPlayerNotFound
	}

	return &player, nil
}

func (that *memorySession) Count(_ context.Context) (int64, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return int64(len(that.players)), nil
}
