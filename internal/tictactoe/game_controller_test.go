package tictactoe

import (
	"errors"
	"testing"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPolicyBroken = errors.New("policy broken")

// scriptedPolicy replays a fixed list of moves.
type scriptedPolicy struct {
	moves []entity.Position
	err   error
	calls int
}

func (that *scriptedPolicy) ChooseMove(_ entity.Board) (entity.Position, error) {
	if that.err != nil {
		return entity.Position{}, that.err
	}

	move := that.moves[that.calls]
	that.calls++

	return move, nil
}

func newScripted(moves ...entity.Position) *scriptedPolicy {
	return &scriptedPolicy{moves: moves}
}

func TestNewGameController(t *testing.T) {
	// When: a new controller is created
	controller := NewGameController(newScripted())

	// Then: the game awaits the human on an empty board
	expected := entity.Snapshot{
		Board:   entity.Board{},
		Turn:    entity.TurnHuman,
		State:   entity.StateAwaitingHumanMove,
		Outcome: entity.OutcomeInProgress,
	}
	require.Equal(t, expected, controller.Snapshot())
}

func TestGameController_SubmitHumanMove(t *testing.T) {
	t.Run("Places the human mark and hands over to the opponent", func(t *testing.T) {
		// Given: a new game
		controller := NewGameController(newScripted())

		// When: the human plays the corner
		snapshot, err := controller.SubmitHumanMove(0, 0)
		require.NoError(t, err)

		// Then: the board holds the mark and the opponent is next
		expected := entity.Snapshot{
			Board:   entity.Board{{x, e, e}, {e, e, e}, {e, e, e}},
			Turn:    entity.TurnOpponent,
			State:   entity.StateAwaitingOpponentMove,
			Outcome: entity.OutcomeInProgress,
		}
		require.Equal(t, expected, snapshot)
		require.Equal(t, expected, controller.Snapshot())
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a game where the opponent has taken the center
		controller := NewGameController(newScripted(entity.Position{Row: 1, Col: 1}))
		_, err := controller.SubmitHumanMove(0, 0)
		require.NoError(t, err)
		_, err = controller.AdvanceOpponent()
		require.NoError(t, err)
		before := controller.Snapshot()

		// When: the human tries to play the occupied center
		snapshot, err := controller.SubmitHumanMove(1, 1)

		// Then: ErrIllegalMove is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, before, snapshot)
		assert.Equal(t, before, controller.Snapshot())
	})

	t.Run("Error on position outside the board", func(t *testing.T) {
		controller := NewGameController(newScripted())

		_, err := controller.SubmitHumanMove(3, 0)

		require.ErrorIs(t, err, apperror.ErrOutOfRange)
		assert.Equal(t, entity.StateAwaitingHumanMove, controller.Snapshot().State)
		assert.Equal(t, entity.Board{}, controller.Snapshot().Board)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a game awaiting the opponent
		controller := NewGameController(newScripted())
		_, err := controller.SubmitHumanMove(0, 0)
		require.NoError(t, err)
		before := controller.Snapshot()

		// When: the human tries to move again
		_, err = controller.SubmitHumanMove(2, 2)

		// Then: ErrInvalidStateTransition is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrInvalidStateTransition)
		assert.Equal(t, before, controller.Snapshot())
	})

	t.Run("Human win ends the game", func(t *testing.T) {
		// Given: the opponent wastes moves on the bottom row
		controller := NewGameController(newScripted(
			entity.Position{Row: 2, Col: 0},
			entity.Position{Row: 2, Col: 1},
		))

		// When: the human completes the top row
		for _, col := range []int{0, 1} {
			_, err := controller.SubmitHumanMove(0, col)
			require.NoError(t, err)
			_, err = controller.AdvanceOpponent()
			require.NoError(t, err)
		}
		snapshot, err := controller.SubmitHumanMove(0, 2)

		// Then: the game is over with a human win
		require.NoError(t, err)
		assert.Equal(t, entity.StateGameOver, snapshot.State)
		assert.Equal(t, entity.OutcomeHumanWin, snapshot.Outcome)

		// Then: no further moves are accepted
		_, err = controller.AdvanceOpponent()
		require.ErrorIs(t, err, apperror.ErrInvalidStateTransition)
		_, err = controller.SubmitHumanMove(1, 1)
		require.ErrorIs(t, err, apperror.ErrInvalidStateTransition)
	})
}

func TestGameController_AdvanceOpponent(t *testing.T) {
	t.Run("Error when awaiting the human", func(t *testing.T) {
		// Given: a new game awaiting the human
		policy := newScripted(entity.Position{Row: 1, Col: 1})
		controller := NewGameController(policy)
		before := controller.Snapshot()

		// When: the opponent is asked to move
		snapshot, err := controller.AdvanceOpponent()

		// Then: ErrInvalidStateTransition is returned, nothing changes and the policy is not consulted
		require.ErrorIs(t, err, apperror.ErrInvalidStateTransition)
		assert.Equal(t, before, snapshot)
		assert.Equal(t, before, controller.Snapshot())
		assert.Zero(t, policy.calls)
	})

	t.Run("Applies the policy move and returns the turn", func(t *testing.T) {
		controller := NewGameController(newScripted(entity.Position{Row: 1, Col: 1}))
		_, err := controller.SubmitHumanMove(0, 0)
		require.NoError(t, err)

		snapshot, err := controller.AdvanceOpponent()

		require.NoError(t, err)
		assert.Equal(t, entity.Board{{x, e, e}, {e, o, e}, {e, e, e}}, snapshot.Board)
		assert.Equal(t, entity.TurnHuman, snapshot.Turn)
		assert.Equal(t, entity.StateAwaitingHumanMove, snapshot.State)
	})

	t.Run("Opponent win ends the game", func(t *testing.T) {
		controller := NewGameController(newScripted(
			entity.Position{Row: 1, Col: 0},
			entity.Position{Row: 1, Col: 1},
			entity.Position{Row: 1, Col: 2},
		))

		moves := []entity.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 2, Col: 2}}
		var snapshot entity.Snapshot
		for _, move := range moves {
			_, err := controller.SubmitHumanMove(move.Row, move.Col)
			require.NoError(t, err)
			snapshot, err = controller.AdvanceOpponent()
			require.NoError(t, err)
		}

		assert.Equal(t, entity.StateGameOver, snapshot.State)
		assert.Equal(t, entity.OutcomeOpponentWin, snapshot.Outcome)
	})

	t.Run("Policy failure leaves the state unchanged", func(t *testing.T) {
		policy := newScripted()
		controller := NewGameController(policy)
		_, err := controller.SubmitHumanMove(0, 0)
		require.NoError(t, err)
		before := controller.Snapshot()

		policy.err = errPolicyBroken
		_, err = controller.AdvanceOpponent()

		require.ErrorIs(t, err, errPolicyBroken)
		assert.Equal(t, before, controller.Snapshot())
	})

	t.Run("Policy choosing an occupied cell is rejected", func(t *testing.T) {
		controller := NewGameController(newScripted(entity.Position{Row: 0, Col: 0}))
		_, err := controller.SubmitHumanMove(0, 0)
		require.NoError(t, err)
		before := controller.Snapshot()

		_, err = controller.AdvanceOpponent()

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, before, controller.Snapshot())
	})
}

func TestGameController_FullBoardDraw(t *testing.T) {
	// Given: nine alternating moves with no line for either side
	controller := NewGameController(newScripted(
		entity.Position{Row: 1, Col: 1},
		entity.Position{Row: 0, Col: 1},
		entity.Position{Row: 2, Col: 0},
		entity.Position{Row: 1, Col: 2},
	))
	humanMoves := []entity.Position{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 2, Col: 1}, {Row: 1, Col: 0}, {Row: 2, Col: 2}}

	// When: the moves are played
	var snapshot entity.Snapshot
	for i, move := range humanMoves {
		var err error
		snapshot, err = controller.SubmitHumanMove(move.Row, move.Col)
		require.NoError(t, err)

		if i < len(humanMoves)-1 {
			snapshot, err = controller.AdvanceOpponent()
			require.NoError(t, err)
		}
	}

	// Then: the board is full and the game is drawn
	assert.Equal(t, entity.OutcomeDraw, snapshot.Outcome)
	assert.Equal(t, entity.StateGameOver, snapshot.State)
	assert.True(t, snapshot.Board.IsFull())
	assert.True(t, IsDraw(snapshot.Board))
}

func TestGameController_Reset(t *testing.T) {
	initial := entity.Snapshot{
		Board:   entity.Board{},
		Turn:    entity.TurnHuman,
		State:   entity.StateAwaitingHumanMove,
		Outcome: entity.OutcomeInProgress,
	}

	t.Run("From awaiting opponent", func(t *testing.T) {
		controller := NewGameController(newScripted())
		_, err := controller.SubmitHumanMove(1, 1)
		require.NoError(t, err)

		assert.Equal(t, initial, controller.Reset())
		assert.Equal(t, initial, controller.Snapshot())
	})

	t.Run("From game over", func(t *testing.T) {
		controller, err := RestoreGameController(newScripted(), entity.Snapshot{
			Board:   entity.Board{{x, x, x}, {o, o, e}, {e, e, e}},
			Turn:    entity.TurnOpponent,
			State:   entity.StateGameOver,
			Outcome: entity.OutcomeHumanWin,
		})
		require.NoError(t, err)

		assert.Equal(t, initial, controller.Reset())
		assert.Len(t, controller.Snapshot().Board.EmptyPositions(), 9)
	})
}

func TestGameController_SnapshotIsStable(t *testing.T) {
	controller := NewGameController(newScripted())
	_, err := controller.SubmitHumanMove(2, 1)
	require.NoError(t, err)

	first := controller.Snapshot()
	second := controller.Snapshot()
	assert.Equal(t, first, second)

	// Then: changing a returned snapshot does not leak into the controller
	first.Board[0][0] = o
	assert.Equal(t, second, controller.Snapshot())
}

func TestRestoreGameController(t *testing.T) {
	t.Run("Restores a consistent snapshot", func(t *testing.T) {
		snapshot := entity.Snapshot{
			Board:   entity.Board{{x, e, e}, {e, e, e}, {e, e, e}},
			Turn:    entity.TurnOpponent,
			State:   entity.StateAwaitingOpponentMove,
			Outcome: entity.OutcomeInProgress,
		}

		controller, err := RestoreGameController(newScripted(entity.Position{Row: 1, Col: 1}), snapshot)
		require.NoError(t, err)
		assert.Equal(t, snapshot, controller.Snapshot())

		next, err := controller.AdvanceOpponent()
		require.NoError(t, err)
		assert.Equal(t, o, next.Board[1][1])
	})

	corrupt := map[string]entity.Snapshot{
		"wrong mark balance": {
			Board:   entity.Board{{x, x, e}, {e, e, e}, {e, e, e}},
			Turn:    entity.TurnOpponent,
			State:   entity.StateAwaitingOpponentMove,
			Outcome: entity.OutcomeInProgress,
		},
		"unknown mark": {
			Board:   entity.Board{{"Z", e, e}, {e, e, e}, {e, e, e}},
			Turn:    entity.TurnHuman,
			State:   entity.StateAwaitingHumanMove,
			Outcome: entity.OutcomeInProgress,
		},
		"unknown turn": {
			Turn:    "nobody",
			State:   entity.StateAwaitingHumanMove,
			Outcome: entity.OutcomeInProgress,
		},
		"stale outcome": {
			Board:   entity.Board{{x, x, x}, {o, o, e}, {e, e, e}},
			Turn:    entity.TurnOpponent,
			State:   entity.StateAwaitingOpponentMove,
			Outcome: entity.OutcomeInProgress,
		},
		"state disagrees with turn": {
			Board:   entity.Board{},
			Turn:    entity.TurnHuman,
			State:   entity.StateAwaitingOpponentMove,
			Outcome: entity.OutcomeInProgress,
		},
	}

	for name, snapshot := range corrupt {
		t.Run(name, func(t *testing.T) {
			_, err := RestoreGameController(newScripted(), snapshot)
			assert.ErrorIs(t, err, apperror.ErrCorruptSnapshot)
		})
	}
}
