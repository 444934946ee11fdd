package game

import (
	"math/rand"
	"time"
)

// Point is a canvas coordinate.
type Point struct {
	X float64
	Y float64
}

// Player decides which canvas points to click after a tick. The headless
// harness asks it once per tick with a snapshot of the state.
type Player interface {
	Act(s State, grid Grid, now time.Time) []Point
}

// missPoint is inside the canvas but left of the stage, so it never hits a cell.
var missPoint = Point{X: StageLeft / 2, Y: CanvasHeight / 2}

// AutoPlayer is a scripted player: it starts a session as soon as the title
// shows, then reacts to each placement after Reaction, hitting each target
// with probability Accuracy and clicking empty canvas otherwise.
type AutoPlayer struct {
	Reaction time.Duration
	Accuracy float64

	rng     *rand.Rand
	handled time.Time // LastPlacedAt of the placement already answered
}

// NewAutoPlayer creates an AutoPlayer with its own seeded RNG.
func NewAutoPlayer(seed int64, reaction time.Duration, accuracy float64) *AutoPlayer {
	return &AutoPlayer{
		Reaction: reaction,
		Accuracy: accuracy,
		rng:      rand.New(rand.NewSource(seed)), // #nosec G404 -- scripted player
	}
}

// Act implements Player.
func (p *AutoPlayer) Act(s State, grid Grid, now time.Time) []Point {
	switch s.Phase {
	case PhaseTitle:
		return []Point{{X: CanvasWidth / 2, Y: CanvasHeight / 2}}
	case PhaseActive:
		if s.LastPlacedAt.Equal(p.handled) || now.Sub(s.LastPlacedAt) < p.Reaction {
			return nil
		}
		p.handled = s.LastPlacedAt
		var clicks []Point
		for _, ref := range s.Targets.Cells() {
			if p.rng.Float64() < p.Accuracy {
				x, y := grid.CellCenter(ref)
				clicks = append(clicks, Point{X: x, Y: y})
				continue
			}
			clicks = append(clicks, missPoint)
		}
		return clicks
	case PhaseCountdown, PhaseGameOver:
		return nil
	}
	return nil
}
