package game

import (
	"fmt"
	"sort"
	"strings"
)

// SessionGrade rates one finished session on a 0-100 scale from how many of
// the placed targets were hit and how clean the clicking was.
type SessionGrade struct {
	Number     int
	Score      int // game points, not the grade score
	HitRate    float64
	Accuracy   float64
	Rating     float64
	Grade      string
	GoodTraits []string
	BadTraits  []string
}

// Rating weights: coverage of the placed targets dominates.
const (
	ratingHitRateWeight  = 70.0
	ratingAccuracyWeight = 30.0
)

// GradeSession rates r. A session that never saw a target rates 0 but keeps
// its traits.
func GradeSession(r SessionRecord) SessionGrade {
	g := SessionGrade{
		Number:   r.Number,
		Score:    r.Score,
		HitRate:  r.HitRate(),
		Accuracy: r.Accuracy(),
	}
	g.Rating = gradeClamp(g.HitRate*ratingHitRateWeight + g.Accuracy*ratingAccuracyWeight)
	g.Grade = LetterGrade(g.Rating)
	g.GoodTraits, g.BadTraits = gradeTraits(r)
	return g
}

// GradeSessions grades every finished record in order.
func GradeSessions(records []SessionRecord) []SessionGrade {
	var out []SessionGrade
	for _, r := range records {
		if r.Finished() {
			out = append(out, GradeSession(r))
		}
	}
	return out
}

func gradeTraits(r SessionRecord) (good, bad []string) {
	clicks := r.Hits + r.Misses
	if r.TargetsPlaced > 0 && r.Hits == r.TargetsPlaced {
		good = append(good, "full_clear")
	}
	if clicks >= 5 && r.Misses == 0 {
		good = append(good, "no_misses")
	}
	if r.NewHighScore {
		good = append(good, "new_high")
	}
	if r.Misses > r.Hits {
		bad = append(bad, "wild_clicking")
	}
	if r.TargetsPlaced > 0 && r.HitRate() < 0.5 {
		bad = append(bad, "slow_hands")
	}
	if r.Placements > 0 && r.EmptyRounds*2 >= r.Placements {
		bad = append(bad, "empty_board")
	}
	return good, bad
}

// LetterGrade maps a 0-100 rating to a letter.
func LetterGrade(rating float64) string {
	switch {
	case rating >= 93:
		return "A+"
	case rating >= 85:
		return "A"
	case rating >= 78:
		return "B+"
	case rating >= 70:
		return "B"
	case rating >= 62:
		return "C+"
	case rating >= 55:
		return "C"
	case rating >= 45:
		return "D"
	default:
		return "F"
	}
}

// FormatGrades renders one block per graded session.
func FormatGrades(grades []SessionGrade) string {
	var sb strings.Builder
	sb.WriteString("=== Session Grades ===\n")
	for _, g := range grades {
		fmt.Fprintf(&sb, "  %-3s  #%-3d score=%d  hit_rate=%.0f%%  accuracy=%.0f%%  rating=%.1f\n",
			g.Grade, g.Number, g.Score, g.HitRate*100, g.Accuracy*100, g.Rating)
		if len(g.GoodTraits) > 0 {
			fmt.Fprintf(&sb, "       Good: %s\n", strings.Join(g.GoodTraits, ", "))
		}
		if len(g.BadTraits) > 0 {
			fmt.Fprintf(&sb, "       Bad:  %s\n", strings.Join(g.BadTraits, ", "))
		}
	}
	return sb.String()
}

// FormatGradesSummary returns the mean rating and the most common traits.
func FormatGradesSummary(grades []SessionGrade) string {
	if len(grades) == 0 {
		return "  no graded sessions\n"
	}
	var sum float64
	good := map[string]int{}
	bad := map[string]int{}
	for _, g := range grades {
		sum += g.Rating
		for _, t := range g.GoodTraits {
			good[t]++
		}
		for _, t := range g.BadTraits {
			bad[t]++
		}
	}
	avg := sum / float64(len(grades))

	var sb strings.Builder
	fmt.Fprintf(&sb, "  avg_rating=%.1f (%s)  sessions=%d\n", avg, LetterGrade(avg), len(grades))
	if len(good) > 0 {
		fmt.Fprintf(&sb, "    Top good: %s\n", topTraits(good, 3))
	}
	if len(bad) > 0 {
		fmt.Fprintf(&sb, "    Top bad:  %s\n", topTraits(bad, 3))
	}
	return sb.String()
}

func topTraits(counts map[string]int, n int) string {
	type kv struct {
		trait string
		count int
	}
	var sorted []kv
	for t, c := range counts {
		sorted = append(sorted, kv{t, c})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].trait < sorted[j].trait
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	parts := make([]string, len(sorted))
	for i, s := range sorted {
		parts[i] = fmt.Sprintf("%s(%d)", s.trait, s.count)
	}
	return strings.Join(parts, ", ")
}

func gradeClamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
