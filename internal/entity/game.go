package entity

type TurnOwner string

const (
	TurnHuman    TurnOwner = "human"
	TurnOpponent TurnOwner = "opponent"
)

// Mark returns the symbol placed by the side that owns the turn.
func (that TurnOwner) Mark() Mark {
	if that == TurnOpponent {
		return OpponentMark
	}
	return HumanMark
}

type Outcome string

const (
	OutcomeInProgress  Outcome = "in_progress"
	OutcomeHumanWin    Outcome = "human_win"
	OutcomeOpponentWin Outcome = "opponent_win"
	OutcomeDraw        Outcome = "draw"
)

func (that Outcome) IsFinal() bool {
	return that != OutcomeInProgress
}

type State string

const (
	StateAwaitingHumanMove    State = "awaiting_human_move"
	StateAwaitingOpponentMove State = "awaiting_opponent_move"
	StateGameOver             State = "game_over"
)

// Snapshot is a read-only view of a game at a point in time.
type Snapshot struct {
	Board   Board     `json:"board"`
	Turn    TurnOwner `json:"turn"`
	State   State     `json:"state"`
	Outcome Outcome   `json:"outcome"`
}

// Game is a stored game session.
type Game struct {
	ID string `json:"id"`
	Snapshot
}

func NewGame(id string, snapshot Snapshot) *Game {
	return &Game{
		ID:       id,
		Snapshot: snapshot,
	}
}

func (that *Game) IsFinished() bool {
	return that.State == StateGameOver
}

func (that *Game) IsOpponentTurn() bool {
	return that.State == StateAwaitingOpponentMove
}
