package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type ScoreRepository interface {
	// Save stores a score once per game; saving the same game again is a no-op.
	Save(ctx context.Context, score *entity.Score) error
	List(ctx context.Context) ([]*entity.ScoreEntry, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.ScoreEntry, error)
	Rankings(ctx context.Context) ([]*entity.Ranking, error)
}

type scoreRepository struct {
	conn *sql.DB
}

func NewScoreRepository(conn *sql.DB) ScoreRepository {
	return &scoreRepository{
		conn: conn,
	}
}

const selectScores = `
SELECT s.game_id, s.user_id, u.name, s.date, s.result
FROM scores s
JOIN users u ON u.id = s.user_id
`

func (that *scoreRepository) Save(ctx context.Context, score *entity.Score) error {
	query := `INSERT OR IGNORE INTO scores (user_id, game_id, date, result) VALUES (?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		score.PlayerID, score.GameID, score.Date.Format(entity.DateLayout), string(score.Result),
	)
	if err != nil {
		return fmt.Errorf("can't save score: %w", err)
	}

	return nil
}

func (that *scoreRepository) List(ctx context.Context) ([]*entity.ScoreEntry, error) {
	return that.query(ctx, selectScores+`ORDER BY s.date DESC, s.id DESC`)
}

func (that *scoreRepository) ListByUser(ctx context.Context, userID string) ([]*entity.ScoreEntry, error) {
	return that.query(ctx, selectScores+`WHERE s.user_id = ? ORDER BY s.date DESC, s.id DESC`, userID)
}

func (that *scoreRepository) query(ctx context.Context, query string, args ...any) ([]*entity.ScoreEntry, error) {
	rows, err := that.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("can't query scores: %w", err)
	}
	defer rows.Close()

	var entries []*entity.ScoreEntry
	for rows.Next() {
		var (
			entry  entity.ScoreEntry
			date   string
			result string
		)

		if err = rows.Scan(&entry.GameID, &entry.PlayerID, &entry.UserName, &date, &result); err != nil {
			return nil, fmt.Errorf("can't scan score: %w", err)
		}

		entry.Date, err = time.Parse(entity.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("can't parse score date %q: %w", date, err)
		}
		entry.Result = entity.Result(result)

		entries = append(entries, &entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate scores: %w", err)
	}

	return entries, nil
}

func (that *scoreRepository) Rankings(ctx context.Context) ([]*entity.Ranking, error) {
	query := `
SELECT u.id, u.name, u.email,
	COALESCE(SUM(CASE WHEN s.result = 'won' THEN 1 ELSE 0 END), 0) AS wins,
	COALESCE(SUM(CASE WHEN s.result = 'lost' THEN 1 ELSE 0 END), 0) AS losses,
	COALESCE(SUM(CASE WHEN s.result = 'tied' THEN 1 ELSE 0 END), 0) AS ties
FROM users u
LEFT JOIN scores s ON s.user_id = u.id
GROUP BY u.id, u.name, u.email
ORDER BY wins DESC, losses ASC, u.name ASC`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't query rankings: %w", err)
	}
	defer rows.Close()

	var rankings []*entity.Ranking
	for rows.Next() {
		var ranking entity.Ranking

		err = rows.Scan(
			&ranking.User.ID, &ranking.User.Name, &ranking.User.Email,
			&ranking.Wins, &ranking.Losses, &ranking.Ties,
		)
		if err != nil {
			return nil, fmt.Errorf("can't scan ranking: %w", err)
		}

		rankings = append(rankings, &ranking)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate rankings: %w", err)
	}

	return rankings, nil
}
