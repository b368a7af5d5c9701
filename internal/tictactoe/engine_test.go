package tictactoe

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

var fixedNow = time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)

// scriptedOpponent replays a fixed list of cells.
type scriptedOpponent struct {
	t     *testing.T
	cells []int
	calls int
}

func (that *scriptedOpponent) ChooseCell(_ entity.Board) (int, error) {
	if that.calls >= len(that.cells) {
		that.t.Fatalf("opponent asked for an unexpected move #%d", that.calls+1)
	}

	cell := that.cells[that.calls]
	that.calls++

	return cell, nil
}

func newTestEngine(opponent Opponent) *Engine {
	return NewEngine(opponent, WithClock(func() time.Time { return fixedNow }))
}

func gameWithBoard(t *testing.T, marks string) *entity.Game {
	t.Helper()

	board, err := entity.ParseBoard(marks)
	require.NoError(t, err)

	game := entity.NewGame("g1", "p1", fixedNow)
	game.Board = board

	return game
}

func TestEngine_ApplyHumanMove(t *testing.T) {
	t.Run("Human move followed by a random opponent reply", func(t *testing.T) {
		// Given: an empty board and a seeded opponent
		engine := newTestEngine(NewRandomOpponent(rand.NewSource(42)))
		game := entity.NewGame("g1", "p1", fixedNow)

		// When: the human marks field 0
		result, err := engine.ApplyHumanMove(game, 0)
		require.NoError(t, err)

		// Then: the game continues with start + two half-moves in the history
		assert.Equal(t, entity.OutcomeInProgress, result.Outcome)
		assert.False(t, result.Rejected)
		assert.Nil(t, result.Score)
		require.Len(t, game.History, 3)
		assert.Equal(t, "Human marks field 0", game.History[1].Description)
		assert.Contains(t, game.History[2].Description, "Opponent marks field ")

		assert.Equal(t, entity.CellHuman, game.Board[0])
		assert.Len(t, game.Board.EmptyCells(), 7)
		assert.Equal(t, game.Board.String(), result.Message)
		assert.Equal(t, game.Board, result.Board)
	})

	t.Run("Human completes a line before the opponent moves", func(t *testing.T) {
		// Given: X holds 0 and 1, O holds 3 and 4
		opponent := &scriptedOpponent{t: t}
		engine := newTestEngine(opponent)
		game := gameWithBoard(t, "XX0OO0000")

		// When: the human marks field 2
		result, err := engine.ApplyHumanMove(game, 2)
		require.NoError(t, err)

		// Then: the human wins and the opponent never moves
		assert.Equal(t, entity.OutcomeHumanWin, result.Outcome)
		assert.Equal(t, entity.OutcomeHumanWin, game.Outcome)
		assert.Equal(t, "You Win XXXOO0000!", result.Message)
		assert.Equal(t, 0, opponent.calls)

		expectedHistory := []entity.MoveRecord{
			{Board: "000000000", Description: "Start"},
			{Board: "XXXOO0000", Description: "Human marks field 2"},
			{Board: "XXXOO0000", Description: "You win!"},
		}
		assert.Equal(t, expectedHistory, game.History)

		require.NotNil(t, result.Score)
		assert.Equal(t, "g1", result.Score.GameID)
		assert.Equal(t, "p1", result.Score.PlayerID)
		assert.Equal(t, entity.ResultWon, result.Score.Result)
		assert.Equal(t, "2026-10-19", result.Score.Date.Format(entity.DateLayout))
	})

	t.Run("Human fills the last cell without a line", func(t *testing.T) {
		// Given: eight cells filled, no winner
		opponent := &scriptedOpponent{t: t}
		engine := newTestEngine(opponent)
		game := gameWithBoard(t, "XOXXOOOX0")

		// When: the human marks the last field
		result, err := engine.ApplyHumanMove(game, 8)
		require.NoError(t, err)

		// Then: the game is a tie and the opponent is not asked
		assert.Equal(t, entity.OutcomeTie, result.Outcome)
		assert.Equal(t, "It's a Tie XOXXOOOXX!", result.Message)
		assert.Equal(t, 0, opponent.calls)
		require.NotNil(t, result.Score)
		assert.Equal(t, entity.ResultTied, result.Score.Result)
		assert.Equal(t, "It's a tie!", game.History[len(game.History)-1].Description)
	})

	t.Run("Opponent completes a line", func(t *testing.T) {
		// Given: O holds 3 and 4 and will answer on 5
		engine := newTestEngine(&scriptedOpponent{t: t, cells: []int{5}})
		game := gameWithBoard(t, "X0XOO0000")

		// When: the human marks field 8
		result, err := engine.ApplyHumanMove(game, 8)
		require.NoError(t, err)

		// Then: the human loses
		assert.Equal(t, entity.OutcomeOpponentWin, result.Outcome)
		assert.Equal(t, "You Lose X0XOOO00X!", result.Message)
		require.NotNil(t, result.Score)
		assert.Equal(t, entity.ResultLost, result.Score.Result)

		expectedHistory := []entity.MoveRecord{
			{Board: "000000000", Description: "Start"},
			{Board: "X0XOO000X", Description: "Human marks field 8"},
			{Board: "X0XOOO00X", Description: "Opponent marks field 5"},
			{Board: "X0XOOO00X", Description: "You lose!"},
		}
		assert.Equal(t, expectedHistory, game.History)
	})

	t.Run("Opponent fills the last cell without a line", func(t *testing.T) {
		// Given: two free cells, neither move completes a line
		engine := newTestEngine(NewRandomOpponent(rand.NewSource(7)))
		game := gameWithBoard(t, "0OXXOO0XX")

		// When: the human marks field 0
		result, err := engine.ApplyHumanMove(game, 0)
		require.NoError(t, err)

		// Then: the opponent takes 6 and the game is a tie
		assert.Equal(t, entity.OutcomeTie, result.Outcome)
		assert.Equal(t, "XOXXOOOXX", result.Board.String())
		require.NotNil(t, result.Score)
		assert.Equal(t, entity.ResultTied, result.Score.Result)
		assert.Equal(t, "Opponent marks field 6", game.History[2].Description)
	})

	t.Run("Out of range position is rejected without changes", func(t *testing.T) {
		engine := newTestEngine(&scriptedOpponent{t: t})
		game := gameWithBoard(t, "X000O0000")

		for _, position := range []int{9, -1, 100} {
			// When: the human marks an illegal field
			result, err := engine.ApplyHumanMove(game, position)
			require.NoError(t, err)

			// Then: the move is reported and nothing changes
			assert.True(t, result.Rejected)
			assert.Equal(t, entity.OutcomeInProgress, result.Outcome)
			assert.Equal(t, "This move is illegal. Please choose a field from 0 to 8", result.Message)
			assert.Nil(t, result.Score)
		}

		assert.Equal(t, "X000O0000", game.Board.String())
		assert.Len(t, game.History, 1)
	})

	t.Run("Occupied field is rejected without changes", func(t *testing.T) {
		engine := newTestEngine(&scriptedOpponent{t: t})
		game := gameWithBoard(t, "X000O0000")

		result, err := engine.ApplyHumanMove(game, 0)
		require.NoError(t, err)
		assert.True(t, result.Rejected)
		assert.Equal(t, "This field is already marked X", result.Message)

		result, err = engine.ApplyHumanMove(game, 4)
		require.NoError(t, err)
		assert.Equal(t, "This field is already marked O", result.Message)

		assert.Equal(t, "X000O0000", game.Board.String())
		assert.Len(t, game.History, 1)
	})

	t.Run("Finished game refuses further moves", func(t *testing.T) {
		// Given: a game the human already won
		engine := newTestEngine(&scriptedOpponent{t: t})
		game := gameWithBoard(t, "XX0OO0000")
		_, err := engine.ApplyHumanMove(game, 2)
		require.NoError(t, err)

		board, historyLen := game.Board, len(game.History)

		// When: another move is attempted
		result, err := engine.ApplyHumanMove(game, 5)

		// Then: ErrGameAlreadyOver, no score and no mutation
		require.ErrorIs(t, err, apperror.ErrGameAlreadyOver)
		assert.Equal(t, "Game already over! Marks: XXXOO0000", result.Message)
		assert.Nil(t, result.Score)
		assert.Equal(t, board, game.Board)
		assert.Len(t, game.History, historyLen)
	})

	t.Run("Cancelled game refuses further moves", func(t *testing.T) {
		engine := newTestEngine(&scriptedOpponent{t: t})
		game := entity.NewGame("g1", "p1", fixedNow)
		require.NoError(t, game.Cancel(fixedNow))

		_, err := engine.ApplyHumanMove(game, 0)

		require.ErrorIs(t, err, apperror.ErrGameAlreadyOver)
		assert.Equal(t, "000000000", game.Board.String())
	})
}

func TestEngine_ExactlyOneScorePerGame(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		// Given: a fresh game played with random human moves
		engine := newTestEngine(NewRandomOpponent(rand.NewSource(seed)))
		human := rand.New(rand.NewSource(seed + 1000)) //nolint: gosec // test only
		game := entity.NewGame("g1", "p1", fixedNow)

		scores := 0
		for i := 0; i < 20; i++ {
			free := game.Board.EmptyCells()
			position := 9
			if len(free) > 0 {
				position = free[human.Intn(len(free))]
			}

			result, err := engine.ApplyHumanMove(game, position)
			if err != nil {
				require.ErrorIs(t, err, apperror.ErrGameAlreadyOver)
				continue
			}

			if result.Score != nil {
				scores++
			}
		}

		// Then: every game ends and produces exactly one score
		assert.True(t, game.Outcome.IsTerminal(), "seed %d", seed)
		assert.Equal(t, 1, scores, "seed %d", seed)
	}
}

func TestRandomOpponent_ChooseCell(t *testing.T) {
	t.Run("Only ever picks empty cells and covers all of them", func(t *testing.T) {
		opponent := NewRandomOpponent(rand.NewSource(1))
		board, err := entity.ParseBoard("X0XO0OX0O")
		require.NoError(t, err)

		seen := map[int]int{}
		for i := 0; i < 300; i++ {
			cell, err := opponent.ChooseCell(board)
			require.NoError(t, err)
			seen[cell]++
		}

		assert.Len(t, seen, 3)
		for _, cell := range []int{1, 4, 7} {
			assert.Greater(t, seen[cell], 50, "cell %d", cell)
		}
	})

	t.Run("Terminates with a single free cell", func(t *testing.T) {
		opponent := NewRandomOpponent(nil)
		board, err := entity.ParseBoard("XOXOXOOX0")
		require.NoError(t, err)

		cell, err := opponent.ChooseCell(board)

		require.NoError(t, err)
		assert.Equal(t, 8, cell)
	})

	t.Run("Full board has no move", func(t *testing.T) {
		opponent := NewRandomOpponent(nil)
		board, err := entity.ParseBoard("XOXXOOOXX")
		require.NoError(t, err)

		_, err = opponent.ChooseCell(board)

		require.ErrorIs(t, err, apperror.ErrNoAvailableCells)
	})
}
