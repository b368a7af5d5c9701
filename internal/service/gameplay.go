package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

type GamePlayService interface {
	// MakeMove applies a human move and the opponent's answer under the game
	// lock. A finished game yields apperror.ErrGameAlreadyOver together with the
	// game and a result describing its final board.
	MakeMove(ctx context.Context, gameID string, position int) (*entity.Game, *tictactoe.Result, error)
	CancelGame(ctx context.Context, gameID string) (*entity.Game, error)
}

type moveEngine interface {
	ApplyHumanMove(game *entity.Game, position int) (*tictactoe.Result, error)
}

type gamePlayService struct {
	logger *slog.Logger

	engine        moveEngine
	gameService   GameService
	scoreRecorder ScoreRecorder
	now           func() time.Time
}

func NewGamePlayService(logger *slog.Logger, engine moveEngine, gameService GameService, scoreRecorder ScoreRecorder) GamePlayService {
	return &gamePlayService{
		logger:        logger,
		engine:        engine,
		gameService:   gameService,
		scoreRecorder: scoreRecorder,
		now:           time.Now,
	}
}

func (that *gamePlayService) MakeMove(ctx context.Context, gameID string, position int) (*entity.Game, *tictactoe.Result, error) {
	log := that.logger.With("method", "MakeMove", "gameID", gameID)

	unlock, err := that.gameService.LockGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	defer that.unlock(ctx, log, unlock)

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	result, err := that.engine.ApplyHumanMove(game, position)
	if errors.Is(err, apperror.ErrGameAlreadyOver) {
		return game, result, err
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to apply move: %w", err)
	}

	if result.Rejected {
		log.Debug("move rejected", "position", position, "message", result.Message)
		return game, result, nil
	}

	// a finished game is persisted only after its score
	if result.Score != nil {
		err = that.scoreRecorder.RecordScore(ctx, result.Score.GameID, result.Score.PlayerID, result.Score.Date, result.Score.Result)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to record score: %w", err)
		}

		log.Info("game finished", "outcome", game.Outcome.String(), "result", result.Score.Result)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, result, nil
}

func (that *gamePlayService) CancelGame(ctx context.Context, gameID string) (*entity.Game, error) {
	log := that.logger.With("method", "CancelGame", "gameID", gameID)

	unlock, err := that.gameService.LockGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer that.unlock(ctx, log, unlock)

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.Cancel(that.now()); err != nil {
		return nil, err
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	log.Info("game cancelled")

	return game, nil
}

func (that *gamePlayService) unlock(ctx context.Context, log *slog.Logger, unlock func(ctx context.Context) error) {
	if err := unlock(context.WithoutCancel(ctx)); err != nil {
		log.Error("failed to unlock game", "error", err)
	}
}
