package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type UserUseCase interface {
	CreateUser(ctx context.Context, name, email string) (*entity.User, error)

	ListScores(ctx context.Context) ([]*entity.ScoreEntry, error)
	ListUserScores(ctx context.Context, userName string) ([]*entity.ScoreEntry, error)
	Rankings(ctx context.Context) ([]*entity.Ranking, error)
}

type scoreService interface {
	ListScores(ctx context.Context) ([]*entity.ScoreEntry, error)
	ListScoresByPlayer(ctx context.Context, playerID string) ([]*entity.ScoreEntry, error)
	Rankings(ctx context.Context) ([]*entity.Ranking, error)
}

type userUseCase struct {
	logger *slog.Logger

	userService  userService
	scoreService scoreService
}

func NewUserUseCase(logger *slog.Logger, userService userService, scoreService scoreService) UserUseCase {
	return &userUseCase{
		logger:       logger,
		userService:  userService,
		scoreService: scoreService,
	}
}

func (that *userUseCase) CreateUser(ctx context.Context, name, email string) (*entity.User, error) {
	user, err := that.userService.CreateUser(ctx, name, email)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	that.logger.Info("user created", "method", "CreateUser", "user", user.Name)

	return user, nil
}

func (that *userUseCase) ListScores(ctx context.Context) ([]*entity.ScoreEntry, error) {
	scores, err := that.scoreService.ListScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}

	return scores, nil
}

func (that *userUseCase) ListUserScores(ctx context.Context, userName string) ([]*entity.ScoreEntry, error) {
	user, err := that.userService.GetUserByName(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	scores, err := that.scoreService.ListScoresByPlayer(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user scores: %w", err)
	}

	return scores, nil
}

func (that *userUseCase) Rankings(ctx context.Context) ([]*entity.Ranking, error) {
	rankings, err := that.scoreService.Rankings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rankings: %w", err)
	}

	return rankings, nil
}
