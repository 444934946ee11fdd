package game

import (
	"testing"
	"time"
)

// at returns simEpoch plus ms milliseconds.
func at(ms int) time.Time {
	return simEpoch.Add(time.Duration(ms) * time.Millisecond)
}

func newStartedController(rng Random) (*Controller, *EventLog) {
	el := NewEventLog(0, true)
	c := NewController(rng, WithEventLog(el))
	c.Start(at(0))
	return c, el
}

// enterActive clicks at t=0 and ticks the countdown out. The active phase
// begins at t=4000ms.
func enterActive(t *testing.T, c *Controller) time.Time {
	t.Helper()
	c.Click(0, 0, at(0))
	for ms := 1000; ms <= 4000; ms += 1000 {
		c.Tick(at(ms))
	}
	if got := c.State().Phase; got != PhaseActive {
		t.Fatalf("expected active phase at 4000ms, got %s", got)
	}
	return at(4000)
}

func TestTitle_BlinkToggles(t *testing.T) {
	c, _ := newStartedController(constRandom(0.9))

	c.Tick(at(499))
	if !c.State().ShowGuide {
		t.Fatal("guide toggled before 500ms")
	}
	c.Tick(at(500))
	if c.State().ShowGuide {
		t.Fatal("expected guide hidden at 500ms")
	}
	c.Tick(at(999))
	if c.State().ShowGuide {
		t.Fatal("guide toggled before the next 500ms elapsed")
	}
	c.Tick(at(1000))
	if !c.State().ShowGuide {
		t.Fatal("expected guide visible again at 1000ms")
	}
}

func TestTitle_ClickAnywhereStartsCountdown(t *testing.T) {
	c, el := newStartedController(constRandom(0.9))
	c.Click(-50, 9999, at(10))

	s := c.State()
	if s.Phase != PhaseCountdown {
		t.Fatalf("expected countdown, got %s", s.Phase)
	}
	if s.Count != 3 || s.RemainingTime != 15 || s.Score != 0 {
		t.Fatalf("session not reset: %+v", s)
	}
	if !s.LastCountAt.Equal(at(10)) {
		t.Fatalf("countdown timer not armed at click time: %v", s.LastCountAt)
	}
	if !el.HasEntry("session", "start", "") {
		t.Fatalf("expected session start event, log:\n%s", el.Format())
	}
	if _, ok := c.Current(); !ok {
		t.Fatal("expected a running session")
	}
}

func TestCountdown_ActiveAfterFourSteps(t *testing.T) {
	c, _ := newStartedController(constRandom(0.9))
	c.Click(0, 0, at(0))

	steps := []struct {
		ms    int
		count int
		phase Phase
	}{
		{999, 3, PhaseCountdown},
		{1000, 2, PhaseCountdown},
		{1999, 2, PhaseCountdown},
		{2000, 1, PhaseCountdown},
		{3000, 0, PhaseCountdown},
		{3999, 0, PhaseCountdown},
		{4000, -1, PhaseActive},
	}
	for _, st := range steps {
		c.Tick(at(st.ms))
		s := c.State()
		if s.Count != st.count || s.Phase != st.phase {
			t.Fatalf("at %dms: expected count=%d phase=%s, got count=%d phase=%s",
				st.ms, st.count, st.phase, s.Count, s.Phase)
		}
	}
	s := c.State()
	if !s.LastPlacedAt.Equal(at(4000)) || !s.LastDecayAt.Equal(at(4000)) {
		t.Fatal("active timers not armed on entry")
	}
	if s.Targets.Count() != 0 {
		t.Fatal("no targets may be placed until the first placement interval")
	}
}

func TestCountdown_IgnoresClicks(t *testing.T) {
	c, _ := newStartedController(constRandom(0.0))
	c.Click(0, 0, at(0))
	before := c.State()
	if hits := c.Click(128, 144, at(500)); hits != nil {
		t.Fatalf("expected no hits during countdown, got %v", hits)
	}
	if c.State() != before {
		t.Fatal("countdown click mutated state")
	}
}

func TestActive_PlacementAndDecayTimers(t *testing.T) {
	c, _ := newStartedController(constRandom(0.0))
	start := enterActive(t, c)

	c.Tick(start.Add(1999 * time.Millisecond))
	s := c.State()
	if s.Targets.Count() != 0 {
		t.Fatal("placement fired before 2000ms")
	}
	if s.RemainingTime != 14 {
		t.Fatalf("expected one decay by 1999ms, got remaining=%d", s.RemainingTime)
	}

	c.Tick(start.Add(2000 * time.Millisecond))
	s = c.State()
	if s.Targets.Count() != GridRows*GridCols {
		t.Fatalf("expected a full placement at 2000ms, got %d targets", s.Targets.Count())
	}
	// The decay timer restarted at 1999ms, so 2000ms is not another second.
	if s.RemainingTime != 14 {
		t.Fatalf("expected remaining=14 at 2000ms, got %d", s.RemainingTime)
	}
	rec, _ := c.Current()
	if rec.Placements != 1 || rec.TargetsPlaced != 12 {
		t.Fatalf("session placement stats wrong: %+v", rec)
	}
}

func TestActive_ZeroTargetRoundIsKept(t *testing.T) {
	c, el := newStartedController(constRandom(0.95))
	start := enterActive(t, c)
	c.Tick(start.Add(2 * time.Second))
	if c.State().Targets.Count() != 0 {
		t.Fatal("expected an empty placement")
	}
	rec, _ := c.Current()
	if rec.Placements != 1 || rec.EmptyRounds != 1 {
		t.Fatalf("expected one empty round recorded, got %+v", rec)
	}
	if e, ok := el.LastOf("place", "targets"); !ok || e.NumVal != 0 {
		t.Fatalf("expected place event with 0 targets, got %+v ok=%t", e, ok)
	}
}

func TestActive_GameOverAfterFifteenDecays(t *testing.T) {
	c, _ := newStartedController(constRandom(0.9))
	start := enterActive(t, c)

	for i := 1; i <= 14; i++ {
		c.Tick(start.Add(time.Duration(i) * time.Second))
		s := c.State()
		if s.Phase != PhaseActive {
			t.Fatalf("left active phase early after %d decays", i)
		}
		if s.RemainingTime != 15-i {
			t.Fatalf("after %d decays expected remaining=%d, got %d", i, 15-i, s.RemainingTime)
		}
	}
	end := start.Add(15 * time.Second)
	c.Tick(end)
	s := c.State()
	if s.Phase != PhaseGameOver {
		t.Fatalf("expected game over after 15 decays, got %s", s.Phase)
	}
	if s.RemainingTime != 0 {
		t.Fatalf("expected remaining=0 at time-up, got %d", s.RemainingTime)
	}
	if !s.TimeUpAt.Equal(end) {
		t.Fatal("time-up timestamp not recorded")
	}
}

func TestActive_ClickResolvesHitsAndMisses(t *testing.T) {
	c, el := newStartedController(constRandom(0.9))
	enterActive(t, c)
	c.state.Targets.Set(1, 2)

	hits := c.Click(384, 272, at(4100)) // centre of r1c2
	if len(hits) != 1 || hits[0] != (CellRef{Row: 1, Col: 2}) {
		t.Fatalf("expected hit on r1c2, got %v", hits)
	}
	if c.State().Score != 100 {
		t.Fatalf("expected score 100, got %d", c.State().Score)
	}
	if hits := c.Click(384, 272, at(4200)); len(hits) != 0 {
		t.Fatalf("second click on cleared cell should miss, got %v", hits)
	}
	if hits := c.Click(10, 10, at(4300)); len(hits) != 0 {
		t.Fatalf("click outside stage should miss, got %v", hits)
	}
	rec, _ := c.Current()
	if rec.Hits != 1 || rec.Misses != 2 {
		t.Fatalf("expected hits=1 misses=2, got %+v", rec)
	}
	if el.Count("touch", "hit") != 1 || el.Count("touch", "miss") != 2 {
		t.Fatalf("unexpected touch events:\n%s", el.Format())
	}
}

func TestActive_SharedEdgeClickResolvesEachCell(t *testing.T) {
	c, _ := newStartedController(constRandom(0.9))
	enterActive(t, c)
	c.state.Targets.Set(0, 0)
	c.state.Targets.Set(0, 1)

	hits := c.Click(192, 144, at(4100))
	if len(hits) != 2 {
		t.Fatalf("expected both edge cells scored, got %v", hits)
	}
	if c.State().Score != 200 || c.State().HighScore != 200 {
		t.Fatalf("expected score=high=200, got %+v", c.State())
	}
}

func TestActive_ClickUsesInjectedGrid(t *testing.T) {
	el := NewEventLog(0, true)
	c := NewController(constRandom(0.9), WithEventLog(el), WithGrid(NewGridAt(0, 0)))
	c.Start(at(0))
	enterActive(t, c)
	c.state.Targets.Set(0, 0)

	// (10,10) is above and left of the standard stage.
	hits := c.Click(10, 10, at(4100))
	if len(hits) != 1 || hits[0] != (CellRef{Row: 0, Col: 0}) {
		t.Fatalf("expected hit on shifted r0c0, got %v", hits)
	}
	if hits := c.Click(600, 470, at(4200)); len(hits) != 0 {
		t.Fatalf("expected miss outside the shifted grid, got %v", hits)
	}
	if c.Grid().Cell(CellRef{Row: 2, Col: 3}).Left != 384 {
		t.Fatal("controller should report the injected grid")
	}
}

func TestGameOver_TitleKeepsBlinkTimer(t *testing.T) {
	c, _ := newStartedController(constRandom(0.9))
	start := enterActive(t, c)
	for i := 1; i <= 15; i++ {
		c.Tick(start.Add(time.Duration(i) * time.Second))
	}
	backAt := start.Add(18 * time.Second)
	c.Tick(backAt)
	s := c.State()
	if s.Phase != PhaseTitle {
		t.Fatalf("expected title, got %s", s.Phase)
	}
	if !s.LastBlinkAt.Equal(at(0)) || !s.ShowGuide {
		t.Fatalf("entering title must not touch the blink state, got %+v", s)
	}
	// The last toggle was long ago, so the next tick flips the guide.
	c.Tick(backAt.Add(time.Millisecond))
	if c.State().ShowGuide {
		t.Fatal("expected the guide to toggle on the first title tick")
	}
}

func TestGameOver_ReturnsToTitleAfterDwell(t *testing.T) {
	c, _ := newStartedController(constRandom(0.9))
	start := enterActive(t, c)
	c.state.Targets.Set(0, 0)
	c.Click(128, 144, start.Add(100*time.Millisecond))
	for i := 1; i <= 15; i++ {
		c.Tick(start.Add(time.Duration(i) * time.Second))
	}
	timeUp := start.Add(15 * time.Second)

	if hits := c.Click(128, 144, timeUp.Add(time.Second)); hits != nil {
		t.Fatal("clicks during game over must be ignored")
	}
	c.Tick(timeUp.Add(2999 * time.Millisecond))
	if c.State().Phase != PhaseGameOver {
		t.Fatal("left game over before 3000ms")
	}
	c.Tick(timeUp.Add(3000 * time.Millisecond))
	s := c.State()
	if s.Phase != PhaseTitle {
		t.Fatalf("expected title after dwell, got %s", s.Phase)
	}
	if s.HighScore != 100 {
		t.Fatalf("expected high score 100, got %d", s.HighScore)
	}

	c.Click(5, 5, timeUp.Add(4*time.Second))
	s = c.State()
	if s.Phase != PhaseCountdown || s.Score != 0 || s.Count != 3 || s.RemainingTime != 15 {
		t.Fatalf("new session not reset: %+v", s)
	}
	if s.HighScore != 100 {
		t.Fatalf("high score must carry over, got %d", s.HighScore)
	}
}

func TestSessions_HighScoreAcrossSessions(t *testing.T) {
	ts := NewTestSim(WithRandom(constRandom(0.0)), WithTickInterval(250*time.Millisecond))

	play := func(hits int) {
		ts.Click(0, 0)
		if n := ts.RunUntil(func(ts *TestSim) bool { return ts.State().Targets.Count() > 0 }, 100); n < 0 {
			t.Fatal("no targets placed")
		}
		for i := 0; i < hits; i++ {
			ts.ClickCell(CellRef{Row: 0, Col: i})
		}
		if n := ts.RunUntil(func(ts *TestSim) bool { return ts.State().Phase == PhaseTitle }, 200); n < 0 {
			t.Fatal("session never returned to title")
		}
	}

	play(3)
	if s := ts.State(); s.HighScore != 300 {
		t.Fatalf("after session 1 expected high score 300, got %d", s.HighScore)
	}
	play(1)
	s := ts.State()
	if s.Score != 100 || s.HighScore != 300 {
		t.Fatalf("after session 2 expected score=100 high=300, got score=%d high=%d", s.Score, s.HighScore)
	}

	recs := ts.Ctrl.Sessions()
	if len(recs) != 2 {
		t.Fatalf("expected 2 session records, got %d", len(recs))
	}
	if recs[0].Score != 300 || !recs[0].NewHighScore {
		t.Fatalf("session 1 record wrong: %+v", recs[0])
	}
	if recs[1].Score != 100 || recs[1].NewHighScore {
		t.Fatalf("session 2 record wrong: %+v", recs[1])
	}
	if recs[0].ID == "" || recs[0].ID == recs[1].ID {
		t.Fatalf("expected distinct session IDs, got %q and %q", recs[0].ID, recs[1].ID)
	}
}
