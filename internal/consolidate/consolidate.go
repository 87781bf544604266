// Package consolidate turns flat unpushed log entries into per-day
// timesheet groups: grouping by (date, project, activity), per-day
// shrink/expand ratios against the daily budget, and export-time rounding
// that keeps the day total exact.
package consolidate

import (
	"errors"
	"sort"
	"time"

	"github.com/alexanderramin/nectime/internal/domain"
)

// ErrUnknownActivity indicates a group references an activity key with no
// configured external mapping. The group is skipped and its entries stay
// unpushed.
var ErrUnknownActivity = errors.New("unknown activity")

// Options carries the budget parameters for a consolidation run.
type Options struct {
	// DailyLimitMinutes is the daily cap, 480 by default.
	DailyLimitMinutes int
	// RoundToMinutes is the export rounding increment, 30 by default.
	RoundToMinutes int
	// ExpandShortDays raises under-budget weekdays up to the limit.
	ExpandShortDays bool
}

// Group partitions entries by (date, project id, activity) and aggregates
// each partition. Descriptions and commit lines are de-duplicated in
// insertion order, first occurrence winning. Groups come back sorted by
// date then activity.
func Group(entries []*domain.LogEntry) []*domain.ConsolidatedGroup {
	type key struct {
		date      string
		projectID int
		hasID     bool
		activity  string
	}

	groups := make(map[key]*domain.ConsolidatedGroup)
	var order []key

	for _, e := range entries {
		k := key{date: e.Date, activity: e.Activity}
		if e.ProjectID != nil {
			k.projectID = *e.ProjectID
			k.hasID = true
		}

		g, ok := groups[k]
		if !ok {
			g = &domain.ConsolidatedGroup{
				Date:        e.Date,
				ProjectID:   e.ProjectID,
				ProjectName: e.ProjectName,
				Folder:      e.Folder,
				Activity:    e.Activity,
				FirstBegin:  e.Begin,
				LastEnd:     e.End,
			}
			groups[k] = g
			order = append(order, k)
		}

		g.Entries = append(g.Entries, e)
		g.TotalMinutes += e.BilledMinutes
		if e.Begin.Before(g.FirstBegin) {
			g.FirstBegin = e.Begin
		}
		if e.End.After(g.LastEnd) {
			g.LastEnd = e.End
		}
		if e.Description != "" {
			g.Descriptions = appendUnique(g.Descriptions, e.Description)
		}
		for _, c := range e.Commits {
			g.Commits = appendUnique(g.Commits, c)
		}
	}

	result := make([]*domain.ConsolidatedGroup, 0, len(order))
	for _, k := range order {
		result = append(result, groups[k])
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].Activity < result[j].Activity
	})
	return result
}

// Ratios computes the per-day adjustment ratio. rawByDate sums the unpushed
// eligible minutes per date; pushedByDate the already committed minutes.
//
// Over-budget days shrink to land exactly on the limit; under-budget
// weekdays expand up to it when enabled. Weekend time is reported as
// worked, never adjusted.
func Ratios(rawByDate, pushedByDate map[string]int, opts Options) map[string]float64 {
	ratios := make(map[string]float64, len(rawByDate))
	for date, raw := range rawByDate {
		ratios[date] = dayRatio(date, raw, pushedByDate[date], opts)
	}
	return ratios
}

func dayRatio(date string, raw, pushed int, opts Options) float64 {
	if raw <= 0 || IsWeekend(date) {
		return 1.0
	}
	remaining := opts.DailyLimitMinutes - pushed
	if remaining < 0 {
		remaining = 0
	}
	switch {
	case raw+pushed > opts.DailyLimitMinutes:
		return float64(remaining) / float64(raw)
	case opts.ExpandShortDays && raw+pushed < opts.DailyLimitMinutes && remaining > 0:
		return float64(remaining) / float64(raw)
	default:
		return 1.0
	}
}

// Apply scales each group by its date's ratio, truncating to whole minutes,
// and derives the submission window from the adjusted duration. The
// observed last end is kept for display but never submitted.
func Apply(groups []*domain.ConsolidatedGroup, ratios map[string]float64) {
	for _, g := range groups {
		ratio, ok := ratios[g.Date]
		if !ok {
			ratio = 1.0
		}
		g.Ratio = ratio
		g.AdjustedMinutes = int(float64(g.TotalMinutes) * ratio)
		g.RoundedMinutes = g.AdjustedMinutes
		g.PushBegin = g.FirstBegin
		g.PushEnd = g.FirstBegin.Add(time.Duration(g.AdjustedMinutes) * time.Minute)
	}
}

// Round applies the export-time rounding pass to every weekday date in
// groups. Each group's adjusted minutes are rounded to the nearest
// increment (a positive duration never rounds to zero), then the day's
// residual against its remaining capacity is absorbed by the single largest
// group, clamped to one increment. Weekend days are left untouched.
//
// pushedByDate supplies the already committed minutes per date; a day's
// rounded total lands on limit-pushed exactly, which is the full limit when
// nothing was pushed yet.
func Round(groups []*domain.ConsolidatedGroup, pushedByDate map[string]int, opts Options) {
	byDate := make(map[string][]*domain.ConsolidatedGroup)
	for _, g := range groups {
		byDate[g.Date] = append(byDate[g.Date], g)
	}

	for date, dayGroups := range byDate {
		if IsWeekend(date) {
			continue
		}
		target := opts.DailyLimitMinutes - pushedByDate[date]
		if target < 0 {
			target = 0
		}
		roundDay(dayGroups, target, opts.RoundToMinutes)
	}

	for _, g := range groups {
		g.PushEnd = g.PushBegin.Add(time.Duration(g.RoundedMinutes) * time.Minute)
	}
}

func roundDay(dayGroups []*domain.ConsolidatedGroup, target, step int) {
	sum := 0
	largest := dayGroups[0]
	for _, g := range dayGroups {
		g.RoundedMinutes = roundToStep(g.AdjustedMinutes, step)
		sum += g.RoundedMinutes
		if g.AdjustedMinutes > largest.AdjustedMinutes {
			largest = g
		}
	}

	// Any residual lands on the single largest group instead of being
	// spread across every group.
	residual := target - sum
	if residual != 0 {
		largest.RoundedMinutes += residual
		if largest.RoundedMinutes < step {
			largest.RoundedMinutes = step
		}
	}
}

// roundToStep rounds minutes to the nearest step, half away from zero. A
// positive duration that would round to zero is floored up to one step.
func roundToStep(minutes, step int) int {
	rounded := (minutes + step/2) / step * step
	if rounded == 0 && minutes > 0 {
		return step
	}
	return rounded
}

// RawMinutesByDate sums billed minutes per date across entries.
func RawMinutesByDate(entries []*domain.LogEntry) map[string]int {
	raw := make(map[string]int)
	for _, e := range entries {
		raw[e.Date] += e.BilledMinutes
	}
	return raw
}

// IsWeekend reports whether a DateLayout date falls on Saturday or Sunday.
// Unparseable dates count as weekdays so they stay subject to the budget.
func IsWeekend(date string) bool {
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return false
	}
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
