package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const handlerTimeout = 10 * time.Second

type Server struct {
	logger     *slog.Logger
	router     *chi.Mux
	httpServer *http.Server
}

func NewServer(logger *slog.Logger, port string, games gameUseCase, users userUseCase) *Server {
	log := logger.With("component", "rest")

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(requestLogger(log))
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(handlerTimeout))

	h := newHandlers(log, games, users)

	router.Get("/ping", h.ping)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(jsonContentType)

		r.Post("/user", h.createUser)
		r.Get("/users/ranking", h.rankings)

		r.Post("/game", h.newGame)
		r.Route("/game/{gameKey}", func(r chi.Router) {
			r.Get("/", h.getGame)
			r.Put("/", h.makeMove)
			r.Put("/cancel", h.cancelGame)
			r.Get("/history", h.history)
		})
		r.Get("/games/user/{userName}", h.userGames)

		r.Get("/scores", h.scores)
		r.Get("/scores/user/{userName}", h.userScores)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, http.StatusNotFound, errorResponse{Error: "not found: " + r.URL.Path})
	})

	return &Server{
		logger: log,
		router: router,
		httpServer: &http.Server{
			Addr:         ":" + port,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

// Router exposes the handler for tests.
func (that *Server) Router() http.Handler {
	return that.router
}

func (that *Server) Start() error {
	that.logger.Info("Starting HTTP server", "addr", that.httpServer.Addr)

	if err := that.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
