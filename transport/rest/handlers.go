package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
)

const maxBodyBytes = 1 << 16

type gameUseCase interface {
	NewGame(ctx context.Context, userName string) (*usecase.GameState, error)
	GetGame(ctx context.Context, gameID string) (*usecase.GameState, error)
	GetHistory(ctx context.Context, gameID string) (*usecase.GameState, error)
	ListUserGames(ctx context.Context, userName string) ([]*usecase.GameState, error)

	MakeMove(ctx context.Context, gameID string, position int) (*usecase.GameState, error)
	CancelGame(ctx context.Context, gameID string) (*usecase.GameState, error)
}

type userUseCase interface {
	CreateUser(ctx context.Context, name, email string) (*entity.User, error)

	ListScores(ctx context.Context) ([]*entity.ScoreEntry, error)
	ListUserScores(ctx context.Context, userName string) ([]*entity.ScoreEntry, error)
	Rankings(ctx context.Context) ([]*entity.Ranking, error)
}

type handlers struct {
	logger *slog.Logger

	games gameUseCase
	users userUseCase
}

func newHandlers(logger *slog.Logger, games gameUseCase, users userUseCase) *handlers {
	return &handlers{
		logger: logger,
		games:  games,
		users:  users,
	}
}

func (that *handlers) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		that.writeError(w, "createUser", err)
		return
	}

	user, err := that.users.CreateUser(r.Context(), req.UserName, req.Email)
	if err != nil {
		that.writeError(w, "createUser", err)
		return
	}

	writeJSON(w, that.logger, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("User %s created!", user.Name),
	})
}

func (that *handlers) newGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		that.writeError(w, "newGame", err)
		return
	}

	state, err := that.games.NewGame(r.Context(), req.UserName)
	if err != nil {
		that.writeError(w, "newGame", err)
		return
	}

	writeJSON(w, that.logger, http.StatusOK, toGameForm(state))
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	state, err := that.games.GetGame(r.Context(), chi.URLParam(r, "gameKey"))
	if err != nil {
		that.writeError(w, "getGame", err)
		return
	}

	writeJSON(w, that.logger, http.StatusOK, toGameForm(state))
}

func (that *handlers) makeMove(w http.ResponseWriter, r *http.Request) {
	var req makeMoveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		that.writeError(w, "makeMove", err)
		return
	}

	if req.Mark == nil {
		that.writeError(w, "makeMove", fmt.Errorf("%w: mark is required", apperror.ErrInvalidRequest))
		return
	}

	state, err := that.games.MakeMove(r.Context(), chi.URLParam(r, "gameKey"), *req.Mark)
	if err != nil {
		that.writeError(w, "makeMove", err)
		return
	}

	writeJSON(w, that.logger, http.StatusOK, toGameForm(state))
}

func (that *handlers) cancelGame(w http.ResponseWriter, r *http.Request) {
	state, err := that.games.CancelGame(r.Context(), chi.URLParam(r, "gameKey"))
	if err != nil {
		that.writeError(w, "cancelGame", err)
		return
	}

	writeJSON(w, that.logger, http.StatusOK, toGameForm(state))
}

func (that *handlers) history(w http.ResponseWriter, r *http.Request) {
	state, err := that.games.GetHistory(r.Context(), chi.URLParam(r, "gameKey"))
	if err != nil {
		that.writeError(w, "history", err)
		return
	}

	writeJSON(w, that.logger, http.StatusOK, toHistoryForm(state))
}

func (that *handlers) userGames(w http.ResponseWriter, r *http.Request) {
	states, err := that.games.ListUserGames(r.Context(), chi.URLParam(r, "userName"))
	if err != nil {
		that.writeError(w, "userGames", err)
		return
	}

	writeJSON(w, that.logger, http.StatusOK, toGameForms(states))
}

func (that *handlers) scores(w http.ResponseWriter, r *http.Request) {
	entries, err := that.users.ListScores(r.Context())
	if err != nil {
		that.writeError(w, "scores", err)
		return
	}

	writeJSON(w, that.logger, http.StatusOK, toScoreForms(entries))
}

func (that *handlers) userScores(w http.ResponseWriter, r *http.Request) {
	entries, err := that.users.ListUserScores(r.Context(), chi.URLParam(r, "userName"))
	if err != nil {
		that.writeError(w, "userScores", err)
		return
	}

	writeJSON(w, that.logger, http.StatusOK, toScoreForms(entries))
}

func (that *handlers) rankings(w http.ResponseWriter, r *http.Request) {
	rankings, err := that.users.Rankings(r.Context())
	if err != nil {
		that.writeError(w, "rankings", err)
		return
	}

	writeJSON(w, that.logger, http.StatusOK, toUserForms(rankings))
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)

	log := that.logger.With("method", method)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	} else {
		log.Debug("request rejected", "status", status, "error", err)
	}

	writeJSON(w, that.logger, status, errorResponse{Error: errorMessage(err, status)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrUserAlreadyExists), errors.Is(err, apperror.ErrGameLocked):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrGameAlreadyOver):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error, status int) string {
	switch {
	case errors.Is(err, apperror.ErrUserAlreadyExists):
		return "A User with that name already exists!"
	case errors.Is(err, apperror.ErrUserNotFound):
		return "A User with that name does not exist!"
	case errors.Is(err, apperror.ErrGameNotFound):
		return "Game not found!"
	case errors.Is(err, apperror.ErrGameAlreadyOver):
		return "Illegal action: Game is already over."
	case errors.Is(err, apperror.ErrGameLocked):
		return "Another move is in progress, try again."
	case status == http.StatusInternalServerError:
		return "Internal Server Error"
	default:
		return err.Error()
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidRequest, strings.TrimSpace(err.Error()))
	}

	return nil
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
