package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
)

const (
	playerKeyPrefix = "player:"
	playersSetKey   = "players"
)

// SessionRepository keeps track of the players currently connected to the server.
type SessionRepository interface {
	Register(ctx context.Context, player *entity.Player) error
	Unregister(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	Count(ctx context.Context) (int64, error)
}

type dbSession struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &dbSession{
		client: client,
	}
}

func (that *dbSession) Register(ctx context.Context, player *entity.Player) error {
	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, playerKeyPrefix+player.ID, playerJSON, 0)
		pipe.SAdd(ctx, playersSetKey, player.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to register player: %w", err)
	}

	return nil
}

func (that *dbSession) Unregister(ctx context.Context, id string) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, playerKeyPrefix+id)
		pipe.SRem(ctx, playersSetKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to unregister player: %w", err)
	}

	return nil
}

func (that *dbSession) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	response, err := that.client.Get(ctx, playerKeyPrefix+id).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrPlayerNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}

	var player entity.Player
	if err = json.Unmarshal([]byte(response), &player); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &player, nil
}

func (that *dbSession) Count(ctx context.Context) (int64, error) {
	count, err := that.client.SCard(ctx, playersSetKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}

	return count, nil
}
