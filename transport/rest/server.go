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

// NewRouter wires the game endpoints.
func NewRouter(logger *slog.Logger, games gameManager) http.Handler {
	h := newHandlers(logger, games)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/ping", h.PingHandler)
	router.Route("/games", func(r chi.Router) {
		r.Post("/", h.CreateGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetGame)
			r.Delete("/", h.DeleteGame)
			r.Post("/moves", h.SubmitMove)
			r.Post("/opponent", h.AdvanceOpponent)
			r.Post("/reset", h.ResetGame)
		})
	})

	return router
}

// Start serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
