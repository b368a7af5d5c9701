package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// ScoreRecorder is the sink for the score a finished game produces.
type ScoreRecorder interface {
	RecordScore(ctx context.Context, gameID, playerID string, date time.Time, result entity.Result) error
}

type ScoreService interface {
	ScoreRecorder

	ListScores(ctx context.Context) ([]*entity.ScoreEntry, error)
	ListScoresByPlayer(ctx context.Context, playerID string) ([]*entity.ScoreEntry, error)
	Rankings(ctx context.Context) ([]*entity.Ranking, error)
}

type scoreRepo interface {
	Save(ctx context.Context, score *entity.Score) error
	List(ctx context.Context) ([]*entity.ScoreEntry, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.ScoreEntry, error)
	Rankings(ctx context.Context) ([]*entity.Ranking, error)
}

type scoreService struct {
	scoreRepo scoreRepo
}

func NewScoreService(scoreRepo scoreRepo) ScoreService {
	return &scoreService{
		scoreRepo: scoreRepo,
	}
}

func (that *scoreService) RecordScore(ctx context.Context, gameID, playerID string, date time.Time, result entity.Result) error {
	if !result.Valid() {
		return fmt.Errorf("%w: unknown score result %q", apperror.ErrInvalidRequest, result)
	}

	if err := that.scoreRepo.Save(ctx, entity.NewScore(gameID, playerID, date, result)); err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}

	return nil
}

func (that *scoreService) ListScores(ctx context.Context) ([]*entity.ScoreEntry, error) {
	scores, err := that.scoreRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}

	return scores, nil
}

func (that *scoreService) ListScoresByPlayer(ctx context.Context, playerID string) ([]*entity.ScoreEntry, error) {
	scores, err := that.scoreRepo.ListByUser(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list player scores: %w", err)
	}

	return scores, nil
}

func (that *scoreService) Rankings(ctx context.Context) ([]*entity.Ranking, error) {
	rankings, err := that.scoreRepo.Rankings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rankings: %w", err)
	}

	return rankings, nil
}
