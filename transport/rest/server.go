package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the board pages, the JSON API and, when given, the WebSocket endpoint.
func NewRouter(logger *slog.Logger, uGame uGame, wsHandler http.Handler) http.Handler {
	h := newHandlers(logger, uGame)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)

	r.Get("/", h.index)
	r.Post("/game", h.newGame)
	r.Post("/game/move", h.move)

	r.Route("/api/game", func(r chi.Router) {
		r.Get("/", h.apiGetGame)
		r.Post("/", h.apiNewGame)
		r.Delete("/", h.apiEndSession)
		r.Post("/move", h.apiMove)
	})

	if wsHandler != nil {
		r.Handle("/ws", wsHandler)
	}

	return r
}

// Start - serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	shutdownErrCh := make(chan error, 1)
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		shutdownErrCh <- srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	if err := <-shutdownErrCh; err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
