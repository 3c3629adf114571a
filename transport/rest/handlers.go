package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type gameManager interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	SubmitHumanMove(ctx context.Context, id string, row, col int) (*entity.Game, error)
	PlayTurn(ctx context.Context, id string, row, col int) (*entity.Game, error)
	AdvanceOpponent(ctx context.Context, id string) (*entity.Game, error)
	ResetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

type handlers struct {
	logger *slog.Logger
	games  gameManager
}

func newHandlers(logger *slog.Logger, games gameManager) *handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

// moveRequest - body of POST /games/{id}/moves. Auto lets the opponent answer in the same call.
type moveRequest struct {
	Row  *int `json:"row"`
	Col  *int `json:"col"`
	Auto bool `json:"auto"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.CreateGame(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) SubmitMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Row == nil || req.Col == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"row\": int, \"col\": int}"})
		return
	}

	id := chi.URLParam(r, "id")

	var (
		game *entity.Game
		err  error
	)
	if req.Auto {
		game, err = that.games.PlayTurn(r.Context(), id, *req.Row, *req.Col)
	} else {
		game, err = that.games.SubmitHumanMove(r.Context(), id, *req.Row, *req.Col)
	}

	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) AdvanceOpponent(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.AdvanceOpponent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) ResetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.ResetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrIllegalMove), errors.Is(err, apperror.ErrInvalidStateTransition):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
