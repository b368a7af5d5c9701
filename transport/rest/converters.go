package rest

import (
	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type createUserRequest struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

type newGameRequest struct {
	UserName string `json:"user_name"`
}

type makeMoveRequest struct {
	Mark *int `json:"mark"`
}

type gameForm struct {
	URLSafeKey string `json:"urlsafe_key"`
	UserName   string `json:"user_name"`
	GameOver   bool   `json:"game_over"`
	Cancelled  bool   `json:"cancelled"`
	Outcome    string `json:"outcome"`
	Message    string `json:"message"`
	Board      string `json:"board"`
}

type gameForms struct {
	Items []gameForm `json:"items"`
}

type moveForm struct {
	Board       string `json:"board"`
	Description string `json:"description"`
}

type historyForm struct {
	URLSafeKey string     `json:"urlsafe_key"`
	UserName   string     `json:"user_name"`
	Message    string     `json:"message"`
	History    []moveForm `json:"history"`
}

type scoreForm struct {
	UserName string `json:"user_name"`
	Date     string `json:"date"`
	Result   string `json:"result"`
	Won      bool   `json:"won"`
}

type scoreForms struct {
	Items []scoreForm `json:"items"`
}

type userForm struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Wins   int64  `json:"wins"`
	Losses int64  `json:"losses"`
	Ties   int64  `json:"ties"`
}

type userForms struct {
	Items []userForm `json:"items"`
}

func toGameForm(state *usecase.GameState) gameForm {
	return gameForm{
		URLSafeKey: state.Game.ID,
		UserName:   state.UserName,
		GameOver:   state.Game.Outcome.IsTerminal(),
		Cancelled:  state.Game.Cancelled,
		Outcome:    state.Game.Outcome.String(),
		Message:    state.Message,
		Board:      state.Game.Board.String(),
	}
}

func toGameForms(states []*usecase.GameState) gameForms {
	return gameForms{
		Items: lo.Map(states, func(state *usecase.GameState, _ int) gameForm {
			return toGameForm(state)
		}),
	}
}

func toHistoryForm(state *usecase.GameState) historyForm {
	return historyForm{
		URLSafeKey: state.Game.ID,
		UserName:   state.UserName,
		Message:    state.Message,
		History: lo.Map(state.Game.History, func(record entity.MoveRecord, _ int) moveForm {
			return moveForm{Board: record.Board, Description: record.Description}
		}),
	}
}

func toScoreForms(entries []*entity.ScoreEntry) scoreForms {
	return scoreForms{
		Items: lo.Map(entries, func(entry *entity.ScoreEntry, _ int) scoreForm {
			return scoreForm{
				UserName: entry.UserName,
				Date:     entry.Date.Format(entity.DateLayout),
				Result:   string(entry.Result),
				Won:      entry.Won(),
			}
		}),
	}
}

func toUserForms(rankings []*entity.Ranking) userForms {
	return userForms{
		Items: lo.Map(rankings, func(ranking *entity.Ranking, _ int) userForm {
			return userForm{
				Name:   ranking.User.Name,
				Email:  ranking.User.Email,
				Wins:   ranking.Wins,
				Losses: ranking.Losses,
				Ties:   ranking.Ties,
			}
		}),
	}
}
