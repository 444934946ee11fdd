package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionRecord summarises one play-through, from the click that leaves the
// title screen to time-up. Records live in memory for the process lifetime.
type SessionRecord struct {
	ID            string
	Number        int
	StartedAt     time.Time
	EndedAt       time.Time // zero while the session is running
	Score         int
	Hits          int
	Misses        int // active-phase clicks that scored nothing
	Placements    int
	TargetsPlaced int
	EmptyRounds   int // placements that produced no targets
	NewHighScore  bool
}

func newSessionRecord(number int, now time.Time) SessionRecord {
	return SessionRecord{
		ID:        uuid.NewString(),
		Number:    number,
		StartedAt: now,
	}
}

// Finished reports whether the session reached time-up.
func (r SessionRecord) Finished() bool {
	return !r.EndedAt.IsZero()
}

// HitRate is hits over targets placed, or 0 when nothing was placed.
func (r SessionRecord) HitRate() float64 {
	if r.TargetsPlaced == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.TargetsPlaced)
}

// Accuracy is hits over all active-phase clicks, or 0 with no clicks.
func (r SessionRecord) Accuracy() float64 {
	clicks := r.Hits + r.Misses
	if clicks == 0 {
		return 0
	}
	return float64(r.Hits) / float64(clicks)
}

// String formats the record as a single summary line.
func (r SessionRecord) String() string {
	high := ""
	if r.NewHighScore {
		high = "  NEW HIGH"
	}
	return fmt.Sprintf("#%d %s score=%d hits=%d misses=%d targets=%d hit_rate=%.0f%%%s",
		r.Number, shortID(r.ID), r.Score, r.Hits, r.Misses, r.TargetsPlaced, r.HitRate()*100, high)
}

// FormatSessions renders finished sessions plus the best score as plain text,
// suitable for the clipboard.
func FormatSessions(records []SessionRecord) string {
	var sb strings.Builder
	best := 0
	played := 0
	for _, r := range records {
		if !r.Finished() {
			continue
		}
		played++
		if r.Score > best {
			best = r.Score
		}
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	if played == 0 {
		return "no sessions played\n"
	}
	fmt.Fprintf(&sb, "sessions=%d high_score=%d\n", played, best)
	return sb.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
