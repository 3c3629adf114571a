package apperror

import "errors"

var (
	ErrOutOfRange             = errors.New("position is outside the board")
	ErrIllegalMove            = errors.New("cell is already occupied")
	ErrInvalidStateTransition = errors.New("operation is not allowed in the current game state")
	ErrNoAvailableMoves       = errors.New("no available moves")
	ErrCorruptSnapshot        = errors.New("game snapshot is inconsistent")
	ErrGameNotFound           = errors.New("game not found")
)
