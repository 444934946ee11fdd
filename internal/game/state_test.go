package game

import "testing"

func TestNewState_Initial(t *testing.T) {
	s := NewState()
	if s.Phase != PhaseTitle {
		t.Fatalf("expected title phase, got %s", s.Phase)
	}
	if s.Count != 3 || s.RemainingTime != 15 || s.Score != 0 || s.HighScore != 0 {
		t.Fatalf("unexpected initial counters: %+v", s)
	}
	if !s.ShowGuide {
		t.Fatal("expected title guide visible at start")
	}
}

func TestTouch_HitThenRepeatIsMiss(t *testing.T) {
	s := NewState()
	s.Targets.Set(1, 1)

	if !s.Touch(1, 1) {
		t.Fatal("expected hit on live target")
	}
	if s.Targets.IsTarget(1, 1) {
		t.Fatal("expected target cleared after hit")
	}
	if s.Score != 100 || s.HighScore != 100 {
		t.Fatalf("expected score=100 high=100, got score=%d high=%d", s.Score, s.HighScore)
	}

	if s.Touch(1, 1) {
		t.Fatal("second touch on the same cell should miss")
	}
	if s.Score != 100 {
		t.Fatalf("miss must not change score, got %d", s.Score)
	}
}

func TestTouch_EmptyCellLeavesStateAlone(t *testing.T) {
	s := NewState()
	s.Targets.Set(0, 0)
	before := s
	if s.Touch(2, 3) {
		t.Fatal("expected miss on empty cell")
	}
	if s != before {
		t.Fatalf("miss mutated state: before=%+v after=%+v", before, s)
	}
}

func TestTouch_OutsideGridIsMiss(t *testing.T) {
	s := NewState()
	s.Targets.Set(0, 0)
	before := s
	for _, ref := range []CellRef{{Row: -1, Col: 0}, {Row: GridRows, Col: 0}, {Row: 0, Col: GridCols}} {
		if s.Touch(ref.Row, ref.Col) {
			t.Fatalf("expected miss at %+v", ref)
		}
	}
	if s != before {
		t.Fatalf("out-of-grid touch mutated state: %+v", s)
	}
}

func TestTouch_HighScoreIsRunningMax(t *testing.T) {
	s := NewState()
	s.HighScore = 500
	s.Targets.Set(0, 1)
	s.Targets.Set(0, 2)

	s.Touch(0, 1)
	if s.Score != 100 || s.HighScore != 500 {
		t.Fatalf("expected score=100 high=500, got score=%d high=%d", s.Score, s.HighScore)
	}
	s.Score = 500
	s.Touch(0, 2)
	if s.HighScore != 600 {
		t.Fatalf("expected high score raised to 600, got %d", s.HighScore)
	}
	if s.Score > s.HighScore {
		t.Fatalf("score %d exceeds high score %d", s.Score, s.HighScore)
	}
}

func TestResetSession_KeepsHighScore(t *testing.T) {
	s := NewState()
	s.Count = -1
	s.RemainingTime = 0
	s.Score = 700
	s.HighScore = 900
	s.Targets.Set(2, 2)

	s.ResetSession()
	if s.Count != InitialCount || s.RemainingTime != InitialRemainingTime || s.Score != 0 {
		t.Fatalf("session counters not reset: %+v", s)
	}
	if s.Targets.Count() != 0 {
		t.Fatal("expected map cleared")
	}
	if s.HighScore != 900 {
		t.Fatalf("high score must survive reset, got %d", s.HighScore)
	}
}

func TestLowTime(t *testing.T) {
	s := NewState()
	s.RemainingTime = 6
	if s.LowTime() {
		t.Fatal("6s should not be low time")
	}
	s.RemainingTime = 5
	if !s.LowTime() {
		t.Fatal("5s should be low time")
	}
}

func TestPhase_String(t *testing.T) {
	cases := map[Phase]string{
		PhaseTitle:     "title",
		PhaseCountdown: "countdown",
		PhaseActive:    "active",
		PhaseGameOver:  "game_over",
		Phase(42):      "unknown",
	}
	for p, want := range cases {
		if got := p.String(); got != want {
			t.Fatalf("Phase(%d).String() = %q, want %q", int(p), got, want)
		}
	}
}
