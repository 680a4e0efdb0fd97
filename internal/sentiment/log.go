package sentiment

import (
	"math"
	"sync"
	"time"
)

// Label is a sentiment class reported by the analysis model.
type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// NormalizeLabel maps a raw backend label to a known one; an absent label
// defaults to neutral.
func NormalizeLabel(raw string) Label {
	switch Label(raw) {
	case Positive, Neutral, Negative:
		return Label(raw)
	default:
		return Neutral
	}
}

// Entry is one analyzed review. Entries live only for the page session and
// are never persisted.
type Entry struct {
	ID          int64   `json:"id"`
	Text        string  `json:"text"`
	Label       Label   `json:"sentiment"`
	Confidence  float64 `json:"confidence"`
	SubmittedAt string  `json:"timestamp"`
}

// Log is the append-only client-local sequence of analyzed reviews. Removal
// and clearing are local operations with no backend call.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

func NewLog() *Log {
	return &Log{now: time.Now}
}

// Append records a successfully analyzed review and returns the new entry.
func (l *Log) Append(text string, label Label, confidence float64) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	submitted := l.now()
	entry := Entry{
		ID:          submitted.UnixMilli(),
		Text:        text,
		Label:       label,
		Confidence:  confidence,
		SubmittedAt: submitted.Format("15:04:05"),
	}
	l.entries = append(l.entries, entry)
	return entry
}

// Remove deletes the entry at index; out-of-range indexes are ignored.
func (l *Log) Remove(index int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.entries) {
		return false
	}
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	return true
}

func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Entries returns a copy of the current log in submission order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// LabelStat is the per-label slice of the breakdown.
type LabelStat struct {
	Percentage int `json:"percentage"`
	Count      int `json:"count"`
}

type Stats struct {
	Positive LabelStat `json:"positive"`
	Neutral  LabelStat `json:"neutral"`
	Negative LabelStat `json:"negative"`
	Total    int       `json:"total"`
}

// Stats recomputes the breakdown from the current log on every call. No
// incremental counters exist to drift from the source entries. An empty log
// yields all-zero percentages.
func (l *Log) Stats() Stats {
	l.mu.Lock()
	entries := l.entries
	counts := map[Label]int{}
	for _, e := range entries {
		counts[e.Label]++
	}
	total := len(entries)
	l.mu.Unlock()

	return Stats{
		Positive: LabelStat{Percentage: percentage(counts[Positive], total), Count: counts[Positive]},
		Neutral:  LabelStat{Percentage: percentage(counts[Neutral], total), Count: counts[Neutral]},
		Negative: LabelStat{Percentage: percentage(counts[Negative], total), Count: counts[Negative]},
		Total:    total,
	}
}

func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
