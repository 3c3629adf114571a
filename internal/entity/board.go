package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

const BoardSize = 3

type Mark string

const (
	EmptyCell    Mark = ""
	HumanMark    Mark = "X"
	OpponentMark Mark = "O"
)

// Position identifies a cell by row and column, both in 0..2.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Position) InRange() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Position) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Board is a value type: assigning or passing it copies the whole grid.
type Board [BoardSize][BoardSize]Mark

func (that Board) CellAt(pos Position) (Mark, error) {
	if !pos.InRange() {
		return EmptyCell, fmt.Errorf("%w: %s", apperror.ErrOutOfRange, pos)
	}

	return that[pos.Row][pos.Col], nil
}

// SetCell overwrites the cell regardless of its content. Legality is the caller's concern.
func (that *Board) SetCell(pos Position, mark Mark) error {
	if !pos.InRange() {
		return fmt.Errorf("%w: %s", apperror.ErrOutOfRange, pos)
	}

	that[pos.Row][pos.Col] = mark

	return nil
}

// EmptyPositions returns the empty cells in row-major order.
func (that Board) EmptyPositions() []Position {
	positions := make([]Position, 0, BoardSize*BoardSize)
	for row := range that {
		for col, cell := range that[row] {
			if cell == EmptyCell {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}

	return positions
}

func (that Board) IsFull() bool {
	for row := range that {
		for _, cell := range that[row] {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// Count returns how many cells hold the given mark.
func (that Board) Count(mark Mark) int {
	count := 0
	for row := range that {
		for _, cell := range that[row] {
			if cell == mark {
				count++
			}
		}
	}

	return count
}
