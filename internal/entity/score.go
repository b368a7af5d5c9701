package entity

import "time"

// Result is the human player's result of a finished game.
type Result string

const (
	ResultWon  Result = "won"
	ResultLost Result = "lost"
	ResultTied Result = "tied"
)

const DateLayout = "2006-01-02"

func (that Result) Valid() bool {
	switch that {
	case ResultWon, ResultLost, ResultTied:
		return true
	default:
		return false
	}
}

// Score is the immutable ledger record written once per finished game.
type Score struct {
	GameID   string    `json:"game_id"`
	PlayerID string    `json:"player_id"`
	Date     time.Time `json:"date"`
	Result   Result    `json:"result"`
}

func NewScore(gameID, playerID string, at time.Time, result Result) *Score {
	year, month, day := at.Date()

	return &Score{
		GameID:   gameID,
		PlayerID: playerID,
		Date:     time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Result:   result,
	}
}

func (that *Score) Won() bool {
	return that.Result == ResultWon
}

// ScoreEntry is a ledger row joined with the owning user's name.
type ScoreEntry struct {
	Score
	UserName string `json:"user_name"`
}
