package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nectime/internal/domain"
)

// FormatLogTable renders log entries with a trailing billed-minute total.
func FormatLogTable(entries []*domain.LogEntry) string {
	headers := []string{"", "DATE", "BEGIN", "END", "BILLED", "TYPE", "PROJECT", "ACTIVITY"}
	rows := make([][]string, 0, len(entries))
	total := 0
	for _, e := range entries {
		project := e.ProjectName
		if e.FilledFrom != "" {
			project += Dim(" (filled from " + e.FilledFrom + ")")
		}
		rows = append(rows, []string{
			PushedMark(e.Pushed),
			e.Date,
			FormatClock(e.Begin),
			FormatClock(e.End),
			FormatMinutes(e.BilledMinutes),
			Classification(e.Classification),
			Truncate(project, 46),
			e.Activity,
		})
		total += e.BilledMinutes
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	b.WriteString(fmt.Sprintf("\n%s %s across %d entries\n",
		Dim("total"), Bold(FormatMinutes(total)), len(entries)))
	return b.String()
}

// FormatDailyTotal renders one day's running totals.
func FormatDailyTotal(t *domain.DailyTotal) string {
	return fmt.Sprintf("%s  billed %s  real %s",
		Bold(t.Date), FormatMinutes(t.Billed), FormatMinutes(t.Real))
}

// FormatGroups renders consolidated groups as the push/summary preview.
func FormatGroups(groups []*domain.ConsolidatedGroup, verbose bool) string {
	headers := []string{"DATE", "PROJECT", "ACTIVITY", "RAW", "RATIO", "ADJUSTED", "PUSH"}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			g.Date,
			Truncate(g.ProjectName, 36),
			g.Activity,
			FormatMinutes(g.TotalMinutes),
			FormatRatio(g.Ratio),
			FormatMinutes(g.RoundedMinutes),
			fmt.Sprintf("%s–%s", FormatClock(g.PushBegin), FormatClock(g.PushEnd)),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	if verbose {
		for _, g := range groups {
			b.WriteString("\n" + Bold(fmt.Sprintf("%s %s/%s", g.Date, g.ProjectName, g.Activity)) + "\n")
			for _, d := range g.Descriptions {
				b.WriteString("  " + d + "\n")
			}
			for _, c := range g.Commits {
				b.WriteString("  " + Dim(c) + "\n")
			}
		}
	}
	return b.String()
}
