package tictactoe

import "github.com/rocketscienceinc/tictactoe-solo/internal/entity"

// WinLines lists the 3 rows, 3 columns and 2 diagonals.
var WinLines = [8][3]entity.Position{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// HasWon reports whether any line is fully occupied by mark.
func HasWon(board entity.Board, mark entity.Mark) bool {
	if mark == entity.EmptyCell {
		return false
	}

	for _, line := range WinLines {
		a, b, c := line[0], line[1], line[2]
		if board[a.Row][a.Col] == mark && board[b.Row][b.Col] == mark && board[c.Row][c.Col] == mark {
			return true
		}
	}

	return false
}

// Winner returns the first side owning a complete line, human checked first.
// Mutual exclusion is not enforced; under legal play both cannot win at once.
func Winner(board entity.Board) (entity.TurnOwner, bool) {
	switch {
	case HasWon(board, entity.HumanMark):
		return entity.TurnHuman, true
	case HasWon(board, entity.OpponentMark):
		return entity.TurnOpponent, true
	default:
		return "", false
	}
}

func IsDraw(board entity.Board) bool {
	if !board.IsFull() {
		return false
	}

	_, won := Winner(board)

	return !won
}

// Evaluate derives the outcome of the board.
func Evaluate(board entity.Board) entity.Outcome {
	if winner, ok := Winner(board); ok {
		if winner == entity.TurnHuman {
			return entity.OutcomeHumanWin
		}
		return entity.OutcomeOpponentWin
	}

	if board.IsFull() {
		return entity.OutcomeDraw
	}

	return entity.OutcomeInProgress
}

// IsLegal reports whether the cell may be occupied. Turn ownership is not checked here.
func IsLegal(board entity.Board, pos entity.Position) bool {
	cell, err := board.CellAt(pos)
	if err != nil {
		return false
	}

	return cell == entity.EmptyCell
}
