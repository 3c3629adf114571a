package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type opponentPolicy interface {
	ChooseMove(board entity.Board) (entity.Position, error)
}

// GameController owns one board and drives the turn state machine.
// It is not safe for concurrent use.
type GameController struct {
	policy opponentPolicy

	board entity.Board
	turn  entity.TurnOwner
	state entity.State
}

func NewGameController(policy opponentPolicy) *GameController {
	controller := &GameController{policy: policy}
	controller.Reset()

	return controller
}

// RestoreGameController rebuilds a controller from a previously taken snapshot.
func RestoreGameController(policy opponentPolicy, snapshot entity.Snapshot) (*GameController, error) {
	if err := validateSnapshot(snapshot); err != nil {
		return nil, err
	}

	return &GameController{
		policy: policy,
		board:  snapshot.Board,
		turn:   snapshot.Turn,
		state:  snapshot.State,
	}, nil
}

// SubmitHumanMove marks the cell for the human. Allowed only while awaiting the human.
func (that *GameController) SubmitHumanMove(row, col int) (entity.Snapshot, error) {
	if that.state != entity.StateAwaitingHumanMove {
		return that.Snapshot(), fmt.Errorf("%w: submit human move in %s", apperror.ErrInvalidStateTransition, that.state)
	}

	pos := entity.Position{Row: row, Col: col}
	if err := that.validateMove(pos); err != nil {
		return that.Snapshot(), err
	}

	that.apply(pos)

	return that.Snapshot(), nil
}

// AdvanceOpponent asks the policy for a move and applies it. Allowed only while awaiting the opponent.
func (that *GameController) AdvanceOpponent() (entity.Snapshot, error) {
	if that.state != entity.StateAwaitingOpponentMove {
		return that.Snapshot(), fmt.Errorf("%w: advance opponent in %s", apperror.ErrInvalidStateTransition, that.state)
	}

	pos, err := that.policy.ChooseMove(that.board)
	if err != nil {
		return that.Snapshot(), fmt.Errorf("opponent failed to choose move: %w", err)
	}

	if err = that.validateMove(pos); err != nil {
		return that.Snapshot(), fmt.Errorf("opponent chose invalid move: %w", err)
	}

	that.apply(pos)

	return that.Snapshot(), nil
}

// Reset clears the board and hands the first move to the human. Allowed from any state.
func (that *GameController) Reset() entity.Snapshot {
	that.board = entity.Board{}
	that.turn = entity.TurnHuman
	that.state = entity.StateAwaitingHumanMove

	return that.Snapshot()
}

// Snapshot returns a copy of the current state; the outcome is recomputed on every call.
func (that *GameController) Snapshot() entity.Snapshot {
	return entity.Snapshot{
		Board:   that.board,
		Turn:    that.turn,
		State:   that.state,
		Outcome: Evaluate(that.board),
	}
}

func (that *GameController) validateMove(pos entity.Position) error {
	if !pos.InRange() {
		return fmt.Errorf("%w: %s", apperror.ErrOutOfRange, pos)
	}

	if !IsLegal(that.board, pos) {
		return fmt.Errorf("%w: %s", apperror.ErrIllegalMove, pos)
	}

	return nil
}

// apply places the mark of the side to move, flips the turn and settles the state.
func (that *GameController) apply(pos entity.Position) {
	// position is validated by the caller
	_ = that.board.SetCell(pos, that.turn.Mark())

	that.turn = toggleTurn(that.turn)

	switch outcome := Evaluate(that.board); {
	case outcome.IsFinal():
		that.state = entity.StateGameOver
	case that.turn == entity.TurnOpponent:
		that.state = entity.StateAwaitingOpponentMove
	default:
		that.state = entity.StateAwaitingHumanMove
	}
}

func toggleTurn(current entity.TurnOwner) entity.TurnOwner {
	if current == entity.TurnHuman {
		return entity.TurnOpponent
	}
	return entity.TurnHuman
}

// validateSnapshot checks that a snapshot could have been produced by legal play.
func validateSnapshot(snapshot entity.Snapshot) error {
	board := snapshot.Board
	humans, opponents := board.Count(entity.HumanMark), board.Count(entity.OpponentMark)

	if humans+opponents+board.Count(entity.EmptyCell) != entity.BoardSize*entity.BoardSize {
		return fmt.Errorf("%w: unknown mark on board", apperror.ErrCorruptSnapshot)
	}

	switch snapshot.Turn {
	case entity.TurnHuman:
		if humans != opponents {
			return fmt.Errorf("%w: %d human and %d opponent marks on human turn", apperror.ErrCorruptSnapshot, humans, opponents)
		}
	case entity.TurnOpponent:
		if humans != opponents+1 {
			return fmt.Errorf("%w: %d human and %d opponent marks on opponent turn", apperror.ErrCorruptSnapshot, humans, opponents)
		}
	default:
		return fmt.Errorf("%w: unknown turn %q", apperror.ErrCorruptSnapshot, snapshot.Turn)
	}

	if HasWon(board, entity.HumanMark) && HasWon(board, entity.OpponentMark) {
		return fmt.Errorf("%w: both sides own a line", apperror.ErrCorruptSnapshot)
	}

	outcome := Evaluate(board)
	if snapshot.Outcome != outcome {
		return fmt.Errorf("%w: outcome %q, board says %q", apperror.ErrCorruptSnapshot, snapshot.Outcome, outcome)
	}

	var expected entity.State
	switch {
	case outcome.IsFinal():
		expected = entity.StateGameOver
	case snapshot.Turn == entity.TurnOpponent:
		expected = entity.StateAwaitingOpponentMove
	default:
		expected = entity.StateAwaitingHumanMove
	}

	if snapshot.State != expected {
		return fmt.Errorf("%w: state %q, expected %q", apperror.ErrCorruptSnapshot, snapshot.State, expected)
	}

	return nil
}
