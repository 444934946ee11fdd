package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Garsondee/Cell-Touch/internal/game"
)

// ticksPerSession bounds one session at the default tick: title, countdown,
// fifteen seconds of play and the game-over dwell fit with room to spare.
const ticksPerSession = 1500

type runStats struct {
	runIndex int
	seed     int64

	sessions []game.SessionRecord
	grades   []game.SessionGrade

	firstHitMs   int64 // from countdown end to the first scoring touch, -1 if none
	hitEvents    int
	missEvents   int
	placeEvents  int
	emptyRounds  int
	targetsTotal int
}

func main() {
	var runs int
	var sessions int
	var seedBase int64
	var seedStep int64
	var reaction time.Duration
	var accuracy float64

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&sessions, "sessions", 1, "sessions played per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.DurationVar(&reaction, "reaction", 400*time.Millisecond, "scripted player reaction delay")
	flag.Float64Var(&accuracy, "accuracy", 0.8, "probability the scripted player hits each target")
	flag.Parse()

	if err := validate(runs, sessions, accuracy); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("=== Headless Session Report ===\n")
	fmt.Printf("runs=%d sessions=%d seed_base=%d seed_step=%d reaction=%s accuracy=%.2f\n\n",
		runs, sessions, seedBase, seedStep, reaction, accuracy)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runSessions(i+1, seed, sessions, reaction, accuracy)
		all = append(all, rs)
		printRun(rs)
	}
	printAggregate(all)
}

func validate(runs, sessions int, accuracy float64) error {
	switch {
	case runs <= 0:
		return fmt.Errorf("-runs must be > 0")
	case sessions <= 0:
		return fmt.Errorf("-sessions must be > 0")
	case accuracy < 0 || accuracy > 1:
		return fmt.Errorf("-accuracy must be within [0,1]")
	}
	return nil
}

func runSessions(runIndex int, seed int64, sessions int, reaction time.Duration, accuracy float64) runStats {
	ts := game.NewTestSim(
		game.WithSeed(seed),
		game.WithPlayer(game.NewAutoPlayer(seed, reaction, accuracy)),
	)
	records := ts.RunSessions(sessions, sessions*ticksPerSession)

	entries := ts.Log.Entries()
	rs := runStats{
		runIndex:    runIndex,
		seed:        seed,
		sessions:    records,
		grades:      game.GradeSessions(records),
		firstHitMs:  firstHitDelay(entries),
		hitEvents:   ts.Log.Count("touch", "hit"),
		missEvents:  ts.Log.Count("touch", "miss"),
		placeEvents: ts.Log.Count("place", "targets"),
	}
	for _, e := range ts.Log.Filter("place", "targets") {
		rs.targetsTotal += int(e.NumVal)
		if e.NumVal == 0 {
			rs.emptyRounds++
		}
	}
	return rs
}

// firstHitDelay is the time from the first active phase to the first hit.
func firstHitDelay(entries []game.EventLogEntry) int64 {
	activeAt := int64(-1)
	for _, e := range entries {
		switch {
		case e.Category == "phase" && e.Key == "change" && strings.HasSuffix(e.Value, game.PhaseActive.String()):
			if activeAt < 0 {
				activeAt = e.ElapsedMs
			}
		case e.Category == "touch" && e.Key == "hit" && activeAt >= 0:
			return e.ElapsedMs - activeAt
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("event_totals: hit=%d miss=%d placements=%d targets=%d empty_rounds=%d\n",
		rs.hitEvents, rs.missEvents, rs.placeEvents, rs.targetsTotal, rs.emptyRounds)
	fmt.Printf("first_hit_ms=%s\n", msString(rs.firstHitMs))
	fmt.Print(game.FormatSessions(rs.sessions))
	fmt.Print(game.FormatGrades(rs.grades))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalScore := 0
	totalHits := 0
	totalMisses := 0
	totalTargets := 0
	totalEmpty := 0
	totalPlacements := 0
	played := 0
	best := 0
	firstHits := make([]int64, 0, len(all))
	var grades []game.SessionGrade

	for _, rs := range all {
		for _, s := range rs.sessions {
			if !s.Finished() {
				continue
			}
			played++
			totalScore += s.Score
			totalHits += s.Hits
			totalMisses += s.Misses
			totalTargets += s.TargetsPlaced
			totalEmpty += s.EmptyRounds
			totalPlacements += s.Placements
			best = max(best, s.Score)
		}
		if rs.firstHitMs >= 0 {
			firstHits = append(firstHits, rs.firstHitMs)
		}
		grades = append(grades, rs.grades...)
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d sessions=%d best_score=%d\n", len(all), played, best)
	fmt.Printf("avg_per_session: score=%.1f hits=%.1f misses=%.1f targets=%.1f placements=%.1f empty_rounds=%.1f\n",
		avg(totalScore, played), avg(totalHits, played), avg(totalMisses, played),
		avg(totalTargets, played), avg(totalPlacements, played), avg(totalEmpty, played))
	fmt.Printf("hit_rate=%s first_hit_avg_ms=%s\n", rateString(totalHits, totalTargets), avgMsString(firstHits))

	fmt.Println("\n--- Grade Summary (across all runs) ---")
	fmt.Print(game.FormatGradesSummary(grades))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func rateString(hits, targets int) string {
	if targets == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", float64(hits)/float64(targets)*100)
}

func msString(ms int64) string {
	if ms < 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d", ms)
}

func avgMsString(vals []int64) string {
	if len(vals) == 0 {
		return "n/a"
	}
	var sum int64
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
