package game

import "time"

// State is everything the loop and the renderer need. It is a plain value:
// copying it (including the target map) yields an independent snapshot.
type State struct {
	Phase         Phase
	Count         int // countdown remaining
	RemainingTime int // seconds left in the active phase
	Score         int
	HighScore     int
	ShowGuide     bool // title prompt visibility, toggled by the blink timer
	Targets       TargetMap

	// Last-event timestamps gating the per-phase timers.
	LastBlinkAt  time.Time
	LastCountAt  time.Time
	LastPlacedAt time.Time
	LastDecayAt  time.Time
	TimeUpAt     time.Time
}

// NewState returns the process-start state: title phase, guide visible,
// session counters at their initial values and no high score.
func NewState() State {
	s := State{Phase: PhaseTitle, ShowGuide: true}
	s.ResetSession()
	return s
}

// ResetSession reinitialises the per-session counters and clears the map.
// HighScore survives.
func (s *State) ResetSession() {
	s.Targets.Reset()
	s.Count = InitialCount
	s.RemainingTime = InitialRemainingTime
	s.Score = 0
}

// Touch resolves a touch on (row, col). A live target is cleared and scores
// ScorePerHit, raising HighScore when beaten. Anything else is a miss and
// leaves the state untouched, as does a cell outside the grid.
func (s *State) Touch(row, col int) bool {
	if !InBounds(CellRef{Row: row, Col: col}) || !s.Targets.IsTarget(row, col) {
		return false
	}
	s.Targets.Clear(row, col)
	s.Score += ScorePerHit
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
	return true
}

// LowTime reports whether the remaining time should be flagged.
func (s State) LowTime() bool {
	return s.RemainingTime <= LowTimeThreshold
}
