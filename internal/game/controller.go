package game

import (
	"fmt"
	"slices"
	"time"
)

// Controller owns the game state and advances it. It is not safe for
// concurrent use; the loop driver serialises every Tick and Click.
type Controller struct {
	state State
	grid  Grid
	rng   Random
	log   *EventLog

	startedAt time.Time
	tick      int

	sessions    []SessionRecord
	current     SessionRecord
	inSession   bool
	highAtStart int
}

// ControllerOption customises a Controller at construction.
type ControllerOption func(*Controller)

// WithEventLog routes controller events into el.
func WithEventLog(el *EventLog) ControllerOption {
	return func(c *Controller) {
		c.log = el
	}
}

// WithGrid replaces the standard stage layout.
func WithGrid(g Grid) ControllerOption {
	return func(c *Controller) {
		c.grid = g
	}
}

// NewController builds a controller in the title phase. rng drives target
// placement and nothing else.
func NewController(rng Random, opts ...ControllerOption) *Controller {
	c := &Controller{
		state: NewState(),
		grid:  NewGrid(),
		rng:   rng,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Start enters the title phase at now. Call it once before the first Tick.
func (c *Controller) Start(now time.Time) {
	c.startedAt = now
	c.state.Phase = PhaseTitle
	c.state.ShowGuide = true
	c.state.LastBlinkAt = now
	c.emit(now, "phase", "start", PhaseTitle.String(), 0)
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	return c.state
}

// Grid returns the stage layout used for hit testing.
func (c *Controller) Grid() Grid {
	return c.grid
}

// Ticks returns how many ticks have been processed.
func (c *Controller) Ticks() int {
	return c.tick
}

// Sessions returns a copy of the finished session records, oldest first.
func (c *Controller) Sessions() []SessionRecord {
	return slices.Clone(c.sessions)
}

// Current returns the running session, if any.
func (c *Controller) Current() (SessionRecord, bool) {
	return c.current, c.inSession
}

// Tick runs the timed actions of the current phase against now.
func (c *Controller) Tick(now time.Time) {
	c.tick++
	switch c.state.Phase {
	case PhaseTitle:
		c.tickTitle(now)
	case PhaseCountdown:
		c.tickCountdown(now)
	case PhaseActive:
		c.tickActive(now)
	case PhaseGameOver:
		c.tickGameOver(now)
	}
}

// Click applies a pointer press at canvas point (x, y). In the title phase
// any click starts a session; in the active phase every cell under the point
// is resolved as a touch. It returns the cells that scored.
func (c *Controller) Click(x, y float64, now time.Time) []CellRef {
	switch c.state.Phase {
	case PhaseTitle:
		c.startSession(now)
		return nil
	case PhaseActive:
		return c.touchAt(x, y, now)
	case PhaseCountdown, PhaseGameOver:
		c.emitVerbose(now, "touch", "ignored", fmt.Sprintf("%.0f,%.0f in %s", x, y, c.state.Phase), 0)
		return nil
	}
	return nil
}

func (c *Controller) tickTitle(now time.Time) {
	s := &c.state
	if now.Sub(s.LastBlinkAt) < BlinkInterval {
		return
	}
	s.LastBlinkAt = now
	s.ShowGuide = !s.ShowGuide
	c.emitVerbose(now, "timer", "blink", fmt.Sprintf("guide=%t", s.ShowGuide), 0)
}

func (c *Controller) tickCountdown(now time.Time) {
	s := &c.state
	if now.Sub(s.LastCountAt) < CountdownInterval {
		return
	}
	s.LastCountAt = now
	s.Count--
	c.emitVerbose(now, "timer", "count", fmt.Sprintf("count=%d", s.Count), float64(s.Count))
	if s.Count < 0 {
		c.enterActive(now)
	}
}

func (c *Controller) tickActive(now time.Time) {
	s := &c.state
	if now.Sub(s.LastPlacedAt) >= PlaceInterval {
		s.LastPlacedAt = now
		placed := s.Targets.Place(c.rng)
		c.current.Placements++
		c.current.TargetsPlaced += placed
		if placed == 0 {
			c.current.EmptyRounds++
		}
		c.emit(now, "place", "targets", fmt.Sprintf("placed=%d", placed), float64(placed))
	}
	if now.Sub(s.LastDecayAt) >= DecayInterval {
		s.LastDecayAt = now
		s.RemainingTime--
		c.emitVerbose(now, "timer", "decay", fmt.Sprintf("remaining=%d", s.RemainingTime), float64(s.RemainingTime))
		if s.RemainingTime <= 0 {
			c.enterGameOver(now)
		}
	}
}

func (c *Controller) tickGameOver(now time.Time) {
	if now.Sub(c.state.TimeUpAt) >= GameOverDwell {
		c.enterTitle(now)
	}
}

// enterTitle leaves the blink flag and timer as they were, so the guide
// resumes blinking from its last toggle.
func (c *Controller) enterTitle(now time.Time) {
	c.state.Phase = PhaseTitle
	c.emit(now, "phase", "change", fmt.Sprintf("%s → %s", PhaseGameOver, PhaseTitle), 0)
}

func (c *Controller) startSession(now time.Time) {
	s := &c.state
	s.ResetSession()
	s.LastCountAt = now
	s.Phase = PhaseCountdown

	c.current = newSessionRecord(len(c.sessions)+1, now)
	c.inSession = true
	c.highAtStart = s.HighScore
	c.emit(now, "session", "start", c.current.ID, float64(c.current.Number))
	c.emit(now, "phase", "change", fmt.Sprintf("%s → %s", PhaseTitle, PhaseCountdown), 0)
}

func (c *Controller) enterActive(now time.Time) {
	s := &c.state
	s.Phase = PhaseActive
	s.LastPlacedAt = now
	s.LastDecayAt = now
	c.emit(now, "phase", "change", fmt.Sprintf("%s → %s", PhaseCountdown, PhaseActive), 0)
}

func (c *Controller) enterGameOver(now time.Time) {
	s := &c.state
	s.Phase = PhaseGameOver
	s.TimeUpAt = now
	c.emit(now, "phase", "change", fmt.Sprintf("%s → %s", PhaseActive, PhaseGameOver), 0)
	c.finishSession(now)
}

func (c *Controller) finishSession(now time.Time) {
	if !c.inSession {
		return
	}
	c.current.EndedAt = now
	c.current.Score = c.state.Score
	c.current.NewHighScore = c.state.Score > c.highAtStart
	c.sessions = append(c.sessions, c.current)
	c.inSession = false
	c.emit(now, "session", "end", c.current.String(), float64(c.current.Score))
}

func (c *Controller) touchAt(x, y float64, now time.Time) []CellRef {
	var scored []CellRef
	for _, ref := range c.grid.HitTest(x, y) {
		if !c.state.Touch(ref.Row, ref.Col) {
			continue
		}
		scored = append(scored, ref)
		c.current.Hits++
		c.emit(now, "touch", "hit",
			fmt.Sprintf("r%dc%d score=%d", ref.Row, ref.Col, c.state.Score), float64(c.state.Score))
	}
	if len(scored) == 0 {
		c.current.Misses++
		c.emit(now, "touch", "miss", fmt.Sprintf("%.0f,%.0f", x, y), 0)
	}
	return scored
}

func (c *Controller) entry(now time.Time, category, key, value string, num float64) EventLogEntry {
	return EventLogEntry{
		Tick:      c.tick,
		ElapsedMs: now.Sub(c.startedAt).Milliseconds(),
		Session:   c.current.Number,
		Category:  category,
		Key:       key,
		Value:     value,
		NumVal:    num,
	}
}

func (c *Controller) emit(now time.Time, category, key, value string, num float64) {
	if c.log == nil {
		return
	}
	c.log.Add(c.entry(now, category, key, value, num))
}

func (c *Controller) emitVerbose(now time.Time, category, key, value string, num float64) {
	if c.log == nil {
		return
	}
	c.log.AddVerbose(c.entry(now, category, key, value, num))
}
