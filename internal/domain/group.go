package domain

import "time"

// ConsolidatedGroup aggregates eligible log entries sharing a
// (date, project, activity) key into one external timesheet submission.
// Groups are ephemeral: they exist only while summarizing or pushing.
type ConsolidatedGroup struct {
	Date         string
	ProjectID    *int
	ProjectName  string
	Folder       string
	Activity     string
	Entries      []*LogEntry
	TotalMinutes int
	FirstBegin   time.Time
	LastEnd      time.Time
	Descriptions []string
	Commits      []string

	// Ratio is the day's shrink/expand multiplier, 1.0 on weekends.
	Ratio float64
	// AdjustedMinutes is TotalMinutes scaled by Ratio, truncated.
	AdjustedMinutes int
	// RoundedMinutes is AdjustedMinutes after the export-time rounding
	// pass; equal to AdjustedMinutes on weekends.
	RoundedMinutes int

	// PushBegin/PushEnd is the submission window: first begin plus the
	// adjusted duration. The observed last end is deliberately not used.
	PushBegin time.Time
	PushEnd   time.Time
}

// EntryIDs returns the ids of the group's constituent entries.
func (g *ConsolidatedGroup) EntryIDs() []string {
	ids := make([]string, 0, len(g.Entries))
	for _, e := range g.Entries {
		ids = append(ids, e.ID)
	}
	return ids
}
