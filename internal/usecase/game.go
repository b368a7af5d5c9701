package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

const (
	msgNewGame   = "Good luck playing Tic Tac Toe!"
	msgYourMove  = "Time to make a move!"
	msgCancelled = "cancelled"
	msgMarks     = "Marks: %s"
)

// GameState is a game as shown to its player.
type GameState struct {
	Game     *entity.Game
	UserName string
	Message  string
}

type GameUseCase interface {
	NewGame(ctx context.Context, userName string) (*GameState, error)
	GetGame(ctx context.Context, gameID string) (*GameState, error)
	GetHistory(ctx context.Context, gameID string) (*GameState, error)
	ListUserGames(ctx context.Context, userName string) ([]*GameState, error)

	MakeMove(ctx context.Context, gameID string, position int) (*GameState, error)
	CancelGame(ctx context.Context, gameID string) (*GameState, error)
}

type userService interface {
	CreateUser(ctx context.Context, name, email string) (*entity.User, error)
	GetUserByName(ctx context.Context, name string) (*entity.User, error)
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
}

type gameService interface {
	CreateGame(ctx context.Context, playerID string) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	GetActiveGamesByPlayer(ctx context.Context, playerID string) ([]*entity.Game, error)
}

type gamePlayService interface {
	MakeMove(ctx context.Context, gameID string, position int) (*entity.Game, *tictactoe.Result, error)
	CancelGame(ctx context.Context, gameID string) (*entity.Game, error)
}

type gameUseCase struct {
	logger *slog.Logger

	userService     userService
	gameService     gameService
	gamePlayService gamePlayService
}

func NewGameUseCase(logger *slog.Logger, userService userService, gameService gameService, gamePlayService gamePlayService) GameUseCase {
	return &gameUseCase{
		logger:          logger,
		userService:     userService,
		gameService:     gameService,
		gamePlayService: gamePlayService,
	}
}

func (that *gameUseCase) NewGame(ctx context.Context, userName string) (*GameState, error) {
	user, err := that.userService.GetUserByName(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	game, err := that.gameService.CreateGame(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "method", "NewGame", "gameID", game.ID, "user", user.Name)

	return &GameState{Game: game, UserName: user.Name, Message: msgNewGame}, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, gameID string) (*GameState, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if game.IsOver() {
		return nil, fmt.Errorf("%w: game %s", apperror.ErrGameAlreadyOver, gameID)
	}

	return that.state(ctx, game, msgYourMove)
}

func (that *gameUseCase) GetHistory(ctx context.Context, gameID string) (*GameState, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return that.state(ctx, game, fmt.Sprintf(msgMarks, game.Board))
}

func (that *gameUseCase) ListUserGames(ctx context.Context, userName string) ([]*GameState, error) {
	user, err := that.userService.GetUserByName(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	games, err := that.gameService.GetActiveGamesByPlayer(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user games: %w", err)
	}

	states := make([]*GameState, 0, len(games))
	for _, game := range games {
		states = append(states, &GameState{
			Game:     game,
			UserName: user.Name,
			Message:  fmt.Sprintf(msgMarks, game.Board),
		})
	}

	return states, nil
}

func (that *gameUseCase) MakeMove(ctx context.Context, gameID string, position int) (*GameState, error) {
	game, result, err := that.gamePlayService.MakeMove(ctx, gameID, position)
	if err != nil && !errors.Is(err, apperror.ErrGameAlreadyOver) {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	return that.state(ctx, game, result.Message)
}

func (that *gameUseCase) CancelGame(ctx context.Context, gameID string) (*GameState, error) {
	game, err := that.gamePlayService.CancelGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel game: %w", err)
	}

	return that.state(ctx, game, msgCancelled)
}

func (that *gameUseCase) state(ctx context.Context, game *entity.Game, message string) (*GameState, error) {
	user, err := that.userService.GetUserByID(ctx, game.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game owner: %w", err)
	}

	return &GameState{Game: game, UserName: user.Name, Message: message}, nil
}
