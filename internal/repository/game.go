package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

var ErrGameNotFound = apperror.ErrGameNotFound

const (
	defaultLockTTL      = 5 * time.Second
	defaultLockAttempts = 10
	defaultLockDelay    = 50 * time.Millisecond

	maxLockDelayFactor = 10
)

// unlockScript deletes the lock only when it still holds the caller's token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	ListByPlayer(ctx context.Context, playerID string) ([]*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error

	// Lock makes the caller the single writer of a game until the returned
	// unlock func is called or the lock TTL expires.
	Lock(ctx context.Context, id string) (func(ctx context.Context) error, error)
}

type LockOptions struct {
	TTL      time.Duration
	Attempts uint
	Delay    time.Duration
}

type dbGame struct {
	client *redis.Client
	lock   LockOptions
}

func NewGameRepository(client *redis.Client, lock LockOptions) GameRepository {
	if lock.TTL <= 0 {
		lock.TTL = defaultLockTTL
	}
	if lock.Attempts == 0 {
		lock.Attempts = defaultLockAttempts
	}
	if lock.Delay <= 0 {
		lock.Delay = defaultLockDelay
	}

	return &dbGame{
		client: client,
		lock:   lock,
	}
}

func gameKey(id string) string {
	return "game:" + id
}

func gameLockKey(id string) string {
	return "game:" + id + ":lock"
}

func playerGamesKey(playerID string) string {
	return "player:" + playerID + ":games"
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, gameKey(game.ID), gameJSON, 0)
		pipe.SAdd(ctx, playerGamesKey(game.PlayerID), game.ID)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal(response, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) ListByPlayer(ctx context.Context, playerID string) ([]*entity.Game, error) {
	ids, err := that.client.SMembers(ctx, playerGamesKey(playerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player games: %w", err)
	}

	games := make([]*entity.Game, 0, len(ids))
	for _, id := range ids {
		game, err := that.GetByID(ctx, id)
		if errors.Is(err, ErrGameNotFound) {
			continue
		}

		if err != nil {
			return nil, err
		}

		games = append(games, game)
	}

	return games, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	game, err := that.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, gameKey(id))
		pipe.SRem(ctx, playerGamesKey(game.PlayerID), id)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	return nil
}

func (that *dbGame) Lock(ctx context.Context, id string) (func(ctx context.Context) error, error) {
	key := gameLockKey(id)
	token := uuid.NewString()

	err := retry.Do(
		func() error {
			acquired, err := that.client.SetNX(ctx, key, token, that.lock.TTL).Result()
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to acquire game lock: %w", err))
			}

			if !acquired {
				return apperror.ErrGameLocked
			}

			return nil
		},
		retry.Context(ctx),
		retry.Attempts(that.lock.Attempts),
		retry.Delay(that.lock.Delay),
		retry.MaxDelay(maxLockDelayFactor*that.lock.Delay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", id, err)
	}

	return func(ctx context.Context) error {
		if err := unlockScript.Run(ctx, that.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("failed to release game lock: %w", err)
		}

		return nil
	}, nil
}
