package engine

type Phase string

const (
	PhaseDraw    Phase = "draw"
	PhaseDiscard Phase = "discard"
)

// Draw actions, spelled the way the game server expects them in a play.
const (
	DrawStock   = "draw stock"
	DrawDiscard = "draw discard"
)

// MoveRecord is one decision taken during the current game. Action is the
// draw action name for PhaseDraw and the discarded card token for PhaseDiscard.
type MoveRecord struct {
	Phase  Phase  `json:"phase"`
	Action string `json:"action"`
}

type EventKind int

const (
	EventUnknown EventKind = iota
	EventDraw
	EventTake
	EventDiscard
	EventOutcome
)

func (k EventKind) String() string {
	switch k {
	case EventDraw:
		return "draw"
	case EventTake:
		return "take"
	case EventDiscard:
		return "discard"
	case EventOutcome:
		return "outcome"
	default:
		return "unknown"
	}
}

// Event is one classified line of game-server event text.
type Event struct {
	Kind    EventKind
	Player  string
	Card    Card
	Text    string
	// Outcome marks a line whose result must be scored, including a move line
	// that also ends the hand.
	Outcome bool
}
