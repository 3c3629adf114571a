package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type opponentPolicy interface {
	ChooseMove(board entity.Board) (entity.Position, error)
}

// GameManager drives stored game sessions: each call restores a controller from the
// stored snapshot, applies one operation and stores the result.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	policy   opponentPolicy

	// serializes load-apply-store per game so two requests cannot interleave on one game
	locks *gameLocks
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, policy opponentPolicy) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		policy:   policy,
		locks:    newGameLocks(),
	}
}

func (that *GameManager) CreateGame(ctx context.Context) (*entity.Game, error) {
	controller := tictactoe.NewGameController(that.policy)
	game := entity.NewGame(pkg.GenerateGameID(), controller.Snapshot())

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) SubmitHumanMove(ctx context.Context, id string, row, col int) (*entity.Game, error) {
	return that.update(ctx, id, "SubmitHumanMove", func(controller *tictactoe.GameController) error {
		_, err := controller.SubmitHumanMove(row, col)
		return err
	})
}

func (that *GameManager) AdvanceOpponent(ctx context.Context, id string) (*entity.Game, error) {
	return that.update(ctx, id, "AdvanceOpponent", func(controller *tictactoe.GameController) error {
		_, err := controller.AdvanceOpponent()
		return err
	})
}

// PlayTurn submits the human move and lets the opponent answer right away while the game continues.
func (that *GameManager) PlayTurn(ctx context.Context, id string, row, col int) (*entity.Game, error) {
	return that.update(ctx, id, "PlayTurn", func(controller *tictactoe.GameController) error {
		snapshot, err := controller.SubmitHumanMove(row, col)
		if err != nil {
			return err
		}

		if snapshot.State != entity.StateAwaitingOpponentMove {
			return nil
		}

		_, err = controller.AdvanceOpponent()
		return err
	})
}

func (that *GameManager) ResetGame(ctx context.Context, id string) (*entity.Game, error) {
	return that.update(ctx, id, "ResetGame", func(controller *tictactoe.GameController) error {
		controller.Reset()
		return nil
	})
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	unlock := that.locks.lock(id)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

// update stores nothing when the operation fails, so the stored game stays unchanged.
func (that *GameManager) update(
	ctx context.Context, id, method string, operation func(controller *tictactoe.GameController) error,
) (*entity.Game, error) {
	log := that.logger.With("method", method, "gameID", id)

	unlock := that.locks.lock(id)
	defer unlock()

	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	controller, err := tictactoe.RestoreGameController(that.policy, game.Snapshot)
	if err != nil {
		log.Error("stored game is corrupt", "error", err)
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	if err = operation(controller); err != nil {
		log.Debug("operation rejected", "error", err)
		return game, fmt.Errorf("failed to apply move: %w", err)
	}

	game.Snapshot = controller.Snapshot()
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "outcome", game.Outcome)
	}

	return game, nil
}
