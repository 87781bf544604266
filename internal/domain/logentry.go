package domain

import "time"

// DateLayout is the calendar-day key format used throughout the log.
const DateLayout = "2006-01-02"

// LogEntry is one finalized session in the local log. Immutable once pushed.
type LogEntry struct {
	ID             string
	Date           string // calendar day of Begin, DateLayout
	Folder         string
	Classification Classification
	ProjectID      *int
	ProjectName    string
	Activity       string
	Begin          time.Time
	End            time.Time
	BilledMinutes  int
	RealMinutes    int
	Pushed         bool
	Description    string
	Commits        []string
	// FilledFrom holds the source date when the entry was synthesized by
	// the weekday backfill, empty otherwise.
	FilledFrom string
	CreatedAt  time.Time
}

// Eligible reports whether the entry is a candidate for an external push:
// unpushed, billable classification, and a known project.
func (e *LogEntry) Eligible() bool {
	return !e.Pushed && e.Classification.Billable() && e.ProjectID != nil
}

// DailyTotal is the per-day sum of billed and real minutes. It is maintained
// incrementally on every append and never recomputed from the entries.
type DailyTotal struct {
	Date   string
	Billed int
	Real   int
}
