package game

import (
	"strings"
	"testing"
	"time"
)

// phaseChangeTimes returns the elapsed ms of every phase change whose value
// contains substr, in log order.
func phaseChangeTimes(el *EventLog, substr string) []int64 {
	var out []int64
	for _, e := range el.Filter("phase", "change") {
		if strings.Contains(e.Value, substr) {
			out = append(out, e.ElapsedMs)
		}
	}
	return out
}

func TestScenario_TransitionsNeverBeforeThreshold(t *testing.T) {
	player := NewAutoPlayer(7, 300*time.Millisecond, 0.8)
	ts := NewTestSim(WithSeed(99), WithPlayer(player))

	recs := ts.RunSessions(4, 20000)
	if len(recs) != 4 {
		t.Fatalf("expected 4 finished sessions, got %d\n%s", len(recs), ts.Log.Format())
	}

	starts := phaseChangeTimes(ts.Log, "title → countdown")
	actives := phaseChangeTimes(ts.Log, "countdown → active")
	overs := phaseChangeTimes(ts.Log, "active → game_over")
	titles := phaseChangeTimes(ts.Log, "game_over → title")

	for i := range overs {
		if d := actives[i] - starts[i]; d < 4000 {
			t.Fatalf("session %d: countdown lasted %dms, want >= 4000", i+1, d)
		}
		if d := overs[i] - actives[i]; d < 15000 {
			t.Fatalf("session %d: active phase lasted %dms, want >= 15000", i+1, d)
		}
	}
	for i := range titles {
		if d := titles[i] - overs[i]; d < 3000 {
			t.Fatalf("session %d: game over lasted %dms, want >= 3000", i+1, d)
		}
	}

	// With a 32ms tick the countdown crosses its four thresholds at
	// 1024, 2048, 3072 and 4096ms.
	if d := actives[0] - starts[0]; d != 4096 {
		t.Fatalf("expected first countdown of 4096ms at a 32ms tick, got %dms", d)
	}
}

func TestScenario_ScoreNeverExceedsHighScore(t *testing.T) {
	player := NewAutoPlayer(3, 200*time.Millisecond, 0.9)
	ts := NewTestSim(WithSeed(5), WithPlayer(player))
	n := ts.RunUntil(func(ts *TestSim) bool {
		s := ts.State()
		return s.Score > s.HighScore || s.RemainingTime < 0 || s.Count < -1
	}, 5000)
	if n >= 0 {
		t.Fatalf("invariant broken at tick %d: %+v", n, ts.State())
	}
}

func TestScenario_PerfectPlayerScoresEveryTarget(t *testing.T) {
	player := NewAutoPlayer(1, 100*time.Millisecond, 1.0)
	ts := NewTestSim(WithSeed(11), WithPlayer(player))
	recs := ts.RunSessions(2, 10000)
	if len(recs) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(recs))
	}
	for _, r := range recs {
		if r.Misses != 0 {
			t.Fatalf("perfect player recorded misses: %+v", r)
		}
		if r.Hits != r.TargetsPlaced {
			t.Fatalf("expected every placed target hit: %+v", r)
		}
		if r.Score != r.Hits*ScorePerHit {
			t.Fatalf("score %d does not match %d hits", r.Score, r.Hits)
		}
		// 15s of play places at 2,4,...,14s.
		if r.Placements != 7 {
			t.Fatalf("expected 7 placements per session, got %d", r.Placements)
		}
	}
}

func TestScenario_MissingPlayerRecordsMisses(t *testing.T) {
	player := NewAutoPlayer(1, 100*time.Millisecond, 0.0)
	ts := NewTestSim(WithRandom(constRandom(0.0)), WithPlayer(player))
	recs := ts.RunSessions(1, 10000)
	if len(recs) != 1 {
		t.Fatalf("expected 1 session, got %d", len(recs))
	}
	r := recs[0]
	if r.Hits != 0 || r.Score != 0 {
		t.Fatalf("expected no hits, got %+v", r)
	}
	if r.Misses != r.TargetsPlaced {
		t.Fatalf("expected one miss per target, got %+v", r)
	}
}

func TestScenario_VerboseLogsTimers(t *testing.T) {
	ts := NewTestSim(WithVerbose(true))
	ts.RunFor(time.Second)
	if ts.Log.Count("timer", "blink") != 2 {
		t.Fatalf("expected 2 blink events in 1s, got %d\n%s", ts.Log.Count("timer", "blink"), ts.Log.Format())
	}
	quiet := NewTestSim()
	quiet.RunFor(time.Second)
	if quiet.Log.Count("timer", "") != 0 {
		t.Fatal("timer events recorded without verbose")
	}
}

func TestTestSim_RunForAdvancesClock(t *testing.T) {
	ts := NewTestSim()
	ts.RunFor(100 * time.Millisecond)
	// 32ms ticks: 32, 64, 96, 128.
	if ts.Elapsed() != 128*time.Millisecond {
		t.Fatalf("expected 128ms elapsed, got %v", ts.Elapsed())
	}
	if ts.Ctrl.Ticks() != 4 {
		t.Fatalf("expected 4 ticks, got %d", ts.Ctrl.Ticks())
	}
}
