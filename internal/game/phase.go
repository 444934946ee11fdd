package game

// Phase is the top-level state of the game loop.
type Phase int

const (
	PhaseTitle Phase = iota
	PhaseCountdown
	PhaseActive
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhaseCountdown:
		return "countdown"
	case PhaseActive:
		return "active"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
