package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/alexanderramin/nectime/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "1h00", FormatMinutes(60))
	assert.Equal(t, "8h05", FormatMinutes(485))
	assert.Equal(t, "0m", FormatMinutes(-10))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "long str…", Truncate("long string here", 9))
	assert.Equal(t, "…", Truncate("ab", 1))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"DATE", "MINUTES"},
		[][]string{
			{"2025-06-10", "60"},
			{"2025-06-11", "480"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4, "header, separator, two rows")
	assert.Contains(t, lines[2], "2025-06-10")
}

func TestFormatLogTable_SumsBilledMinutes(t *testing.T) {
	out := FormatLogTable([]*domain.LogEntry{
		testutil.NewTestEntry(testutil.WithEntryMinutes(60)),
		testutil.NewTestEntry(testutil.WithEntryMinutes(90)),
	})

	assert.Contains(t, out, "2h30")
	assert.Contains(t, out, "across 2 entries")
}
