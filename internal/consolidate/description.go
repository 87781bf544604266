package consolidate

import (
	"fmt"
	"strings"
)

// maxCommitLines caps how many commit lines appear in a submitted
// description; the rest collapse into a count.
const maxCommitLines = 10

// Description builds the submitted description for a group: manual
// descriptions first, then a separating blank line, a "Commits:" header and
// up to maxCommitLines commit summaries with an overflow count. Empty when
// the group has neither.
func Description(descriptions, commits []string) string {
	var parts []string
	parts = append(parts, descriptions...)

	if len(commits) > 0 {
		if len(parts) > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, "Commits:")
		shown := commits
		if len(shown) > maxCommitLines {
			shown = shown[:maxCommitLines]
		}
		for _, c := range shown {
			parts = append(parts, "  "+c)
		}
		if extra := len(commits) - maxCommitLines; extra > 0 {
			parts = append(parts, fmt.Sprintf("  ... and %d more", extra))
		}
	}

	return strings.Join(parts, "\n")
}
