package game

import (
	"fmt"
	"strings"
)

// EventLogEntry is one recorded controller event.
type EventLogEntry struct {
	Tick      int
	ElapsedMs int64  // milliseconds since Start
	Session   int    // session number, 0 before the first session
	Category  string // phase, session, place, touch, timer
	Key       string // specific event name within the category
	Value     string // human-readable detail
	NumVal    float64
}

// String formats the entry as a fixed-width log line.
//
//	[T=0412 +13184ms] S2  touch    hit              r1c3 score=300
func (e EventLogEntry) String() string {
	return fmt.Sprintf("[T=%04d +%dms] S%-2d %-8s %-16s %s",
		e.Tick, e.ElapsedMs, e.Session, e.Category, e.Key, e.Value)
}

// EventLog collects structured controller events. A positive limit bounds
// the log by discarding the oldest entries; zero keeps everything, which is
// what the headless harness wants.
type EventLog struct {
	entries []EventLogEntry
	limit   int
	verbose bool
	hooks   []func(EventLogEntry)
}

// NewEventLog creates an EventLog. If verbose is true, per-tick timer entries
// are also recorded.
func NewEventLog(limit int, verbose bool) *EventLog {
	return &EventLog{limit: limit, verbose: verbose}
}

// Subscribe registers fn to be called with every entry as it is added.
func (el *EventLog) Subscribe(fn func(EventLogEntry)) {
	el.hooks = append(el.hooks, fn)
}

// Add records a new entry.
func (el *EventLog) Add(e EventLogEntry) {
	for _, fn := range el.hooks {
		fn(e)
	}
	el.entries = append(el.entries, e)
	if el.limit > 0 && len(el.entries) > el.limit {
		drop := len(el.entries) - el.limit
		el.entries = append(el.entries[:0], el.entries[drop:]...)
	}
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(e EventLogEntry) {
	if !el.verbose {
		return
	}
	el.Add(e)
}

// Entries returns all retained entries.
func (el *EventLog) Entries() []EventLogEntry {
	return el.entries
}

// Len returns the number of retained entries.
func (el *EventLog) Len() int {
	return len(el.entries)
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterSession returns the entries belonging to one session.
func (el *EventLog) FilterSession(session int) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.entries {
		if e.Session == session {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries match the given category and key.
func (el *EventLog) Count(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (EventLogEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EventLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
