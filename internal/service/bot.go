package service

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
	"golang.org/x/exp/rand"
)

var (
	center  = entity.Position{Row: 1, Col: 1}
	corners = []entity.Position{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 2}}
	edges   = []entity.Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}, {Row: 2, Col: 1}}
)

// BotService picks the opponent's next move. It looks one ply ahead only.
type BotService interface {
	ChooseMove(board entity.Board) (entity.Position, error)
}

type botService struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewBotService(source rand.Source) BotService {
	return &botService{
		rnd: rand.New(source),
	}
}

// ChooseMove applies the first matching rule: win, block, center, corner, edge, random.
func (that *botService) ChooseMove(board entity.Board) (entity.Position, error) {
	empty := board.EmptyPositions()
	if len(empty) == 0 {
		return entity.Position{}, apperror.ErrNoAvailableMoves
	}

	if pos, ok := completingMove(board, empty, entity.OpponentMark); ok {
		return pos, nil
	}

	if pos, ok := completingMove(board, empty, entity.HumanMark); ok {
		return pos, nil
	}

	if pos, ok := preferredMove(board); ok {
		return pos, nil
	}

	return that.randomMove(empty), nil
}

// completingMove finds the first empty cell that would give mark a line.
func completingMove(board entity.Board, empty []entity.Position, mark entity.Mark) (entity.Position, bool) {
	for _, pos := range empty {
		hypothetical := board
		hypothetical[pos.Row][pos.Col] = mark

		if tictactoe.HasWon(hypothetical, mark) {
			return pos, true
		}
	}

	return entity.Position{}, false
}

func preferredMove(board entity.Board) (entity.Position, bool) {
	if tictactoe.IsLegal(board, center) {
		return center, true
	}

	for _, group := range [][]entity.Position{corners, edges} {
		for _, pos := range group {
			if tictactoe.IsLegal(board, pos) {
				return pos, true
			}
		}
	}

	return entity.Position{}, false
}

func (that *botService) randomMove(empty []entity.Position) entity.Position {
	that.mu.Lock()
	defer that.mu.Unlock()

	return empty[that.rnd.Intn(len(empty))]
}
