package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/nectime/internal/domain"
)

// FormatSession renders a single-session status block.
func FormatSession(s *domain.Session, now time.Time) string {
	var b strings.Builder

	label := s.ProjectName
	if label == "" {
		label = string(s.Classification)
	}
	b.WriteString(fmt.Sprintf("%s %s\n", Bold(label), Classification(s.Classification)))
	b.WriteString(fmt.Sprintf("  %s %s\n", Dim("folder"), s.Folder))
	b.WriteString(fmt.Sprintf("  %s %s (%s elapsed)\n",
		Dim("since"), FormatClock(s.Begin), FormatMinutes(s.ElapsedMinutes(now))))
	if s.CurrentActivity != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", Dim("activity"), s.CurrentActivity))
	}
	if s.Description != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", Dim("note"), s.Description))
	}
	if breakdown := activityBreakdown(s.ActivityMinutes); breakdown != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", Dim("observed"), breakdown))
	}
	return b.String()
}

// FormatSessionTable renders all open sessions as a table.
func FormatSessionTable(sessions []*domain.Session, now time.Time) string {
	headers := []string{"SESSION", "FOLDER", "TYPE", "SINCE", "ELAPSED", "ACTIVITY"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			Truncate(s.ID, 8),
			Truncate(s.Folder, 40),
			Classification(s.Classification),
			FormatClock(s.Begin),
			FormatMinutes(s.ElapsedMinutes(now)),
			s.CurrentActivity,
		})
	}
	return RenderTable(headers, rows)
}

func activityBreakdown(minutes map[string]int) string {
	if len(minutes) == 0 {
		return ""
	}
	keys := make([]string, 0, len(minutes))
	for k := range minutes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if minutes[keys[i]] != minutes[keys[j]] {
			return minutes[keys[i]] > minutes[keys[j]]
		}
		return keys[i] < keys[j]
	})
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, FormatMinutes(minutes[k])))
	}
	return strings.Join(parts, ", ")
}
