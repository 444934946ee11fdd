package game

import "time"

// Canvas and stage geometry, in canvas pixels.
const (
	CanvasWidth  = 640
	CanvasHeight = 480

	StageLeft   = 64
	StageTop    = 80
	StageWidth  = 512
	StageHeight = 384

	CellSize = 128
	GridRows = 3
	GridCols = 4
)

// Phase pacing. Every threshold is measured as wall-clock time since the
// previous event of the same kind, so scheduler jitter only delays events.
const (
	TickInterval      = 32 * time.Millisecond
	BlinkInterval     = 500 * time.Millisecond
	CountdownInterval = 1000 * time.Millisecond
	PlaceInterval     = 2000 * time.Millisecond
	DecayInterval     = 1000 * time.Millisecond
	GameOverDwell     = 3000 * time.Millisecond
)

// Session rules.
const (
	InitialCount         = 3
	InitialRemainingTime = 15 // seconds
	ScorePerHit          = 100
	PlaceProbability     = 0.4
	LowTimeThreshold     = 5 // seconds; remaining time is flagged at or below this
)
