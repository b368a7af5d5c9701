package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type GameService interface {
	CreateGame(ctx context.Context, playerID string) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, gameID string) error

	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	GetActiveGamesByPlayer(ctx context.Context, playerID string) ([]*entity.Game, error)

	LockGame(ctx context.Context, id string) (func(ctx context.Context) error, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error

	GetByID(ctx context.Context, id string) (*entity.Game, error)
	ListByPlayer(ctx context.Context, playerID string) ([]*entity.Game, error)

	DeleteByID(ctx context.Context, id string) error

	Lock(ctx context.Context, id string) (func(ctx context.Context) error, error)
}

type gameService struct {
	gameRepo gameRepo
	now      func() time.Time
}

func NewGameService(gameRepo gameRepo) GameService {
	return &gameService{
		gameRepo: gameRepo,
		now:      time.Now,
	}
}

func (that *gameService) CreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString(), playerID, that.now())

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game in storage: %w", err)
	}

	return game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) GetActiveGamesByPlayer(ctx context.Context, playerID string) ([]*entity.Game, error) {
	games, err := that.gameRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve player games from storage: %w", err)
	}

	return lo.Filter(games, func(game *entity.Game, _ int) bool {
		return game.IsActive()
	}), nil
}

func (that *gameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *gameService) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

func (that *gameService) LockGame(ctx context.Context, id string) (func(ctx context.Context) error, error) {
	unlock, err := that.gameRepo.Lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lock game: %w", err)
	}

	return unlock, nil
}
