package game

import (
	"math/rand"
	"time"
)

// simEpoch is the simulated wall-clock time at which every TestSim starts.
var simEpoch = time.Date(2021, time.September, 24, 12, 0, 0, 0, time.UTC)

// TestSim is a headless harness around Controller. It replaces the real
// clock and ticker with a simulated clock advanced a fixed interval per tick,
// so whole sessions run deterministically and instantly. The batch report
// tool drives it as well as the tests.
type TestSim struct {
	Ctrl     *Controller
	Log      *EventLog
	Interval time.Duration

	clock   time.Time
	rng     Random
	player  Player
	verbose bool
}

// SimOption is a builder function applied to a TestSim during construction.
type SimOption func(*TestSim)

// WithSeed seeds target placement for deterministic runs.
func WithSeed(seed int64) SimOption {
	return func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}
}

// WithRandom injects an arbitrary placement source, e.g. a scripted sequence.
func WithRandom(r Random) SimOption {
	return func(ts *TestSim) {
		ts.rng = r
	}
}

// WithTickInterval sets the simulated time between ticks.
func WithTickInterval(d time.Duration) SimOption {
	return func(ts *TestSim) {
		ts.Interval = d
	}
}

// WithVerbose records per-tick timer events in the log.
func WithVerbose(v bool) SimOption {
	return func(ts *TestSim) {
		ts.verbose = v
	}
}

// WithPlayer lets p click after every tick.
func WithPlayer(p Player) SimOption {
	return func(ts *TestSim) {
		ts.player = p
	}
}

// NewTestSim builds the harness and starts the controller at simEpoch.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Interval: TickInterval,
		clock:    simEpoch,
		rng:      rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
	}
	for _, o := range opts {
		o(ts)
	}
	ts.Log = NewEventLog(0, ts.verbose)
	ts.Ctrl = NewController(ts.rng, WithEventLog(ts.Log))
	ts.Ctrl.Start(ts.clock)
	return ts
}

// Now returns the simulated wall-clock time.
func (ts *TestSim) Now() time.Time {
	return ts.clock
}

// Elapsed returns simulated time since start.
func (ts *TestSim) Elapsed() time.Duration {
	return ts.clock.Sub(simEpoch)
}

// State returns the controller's current state.
func (ts *TestSim) State() State {
	return ts.Ctrl.State()
}

// Click presses at canvas point (x, y) at the current simulated time.
func (ts *TestSim) Click(x, y float64) []CellRef {
	return ts.Ctrl.Click(x, y, ts.clock)
}

// ClickCell presses the centre of ref.
func (ts *TestSim) ClickCell(ref CellRef) []CellRef {
	x, y := ts.Ctrl.Grid().CellCenter(ref)
	return ts.Click(x, y)
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.step()
	}
}

// RunFor advances whole ticks until at least d of simulated time has passed.
func (ts *TestSim) RunFor(d time.Duration) {
	end := ts.clock.Add(d)
	for ts.clock.Before(end) {
		ts.step()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the number of ticks run when the predicate was
// satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 1; i <= maxTicks; i++ {
		ts.step()
		if predicate(ts) {
			return i
		}
	}
	return -1
}

// RunSessions advances until n sessions have finished or maxTicks elapse.
// It needs a player to leave the title screen. Returns the finished records.
func (ts *TestSim) RunSessions(n, maxTicks int) []SessionRecord {
	ts.RunUntil(func(ts *TestSim) bool {
		return len(ts.Ctrl.sessions) >= n
	}, maxTicks)
	return ts.Ctrl.Sessions()
}

// step mirrors one iteration of the loop driver: tick, then deliver input.
func (ts *TestSim) step() {
	ts.clock = ts.clock.Add(ts.Interval)
	ts.Ctrl.Tick(ts.clock)
	if ts.player == nil {
		return
	}
	for _, p := range ts.player.Act(ts.Ctrl.State(), ts.Ctrl.Grid(), ts.clock) {
		ts.Ctrl.Click(p.X, p.Y, ts.clock)
	}
}
