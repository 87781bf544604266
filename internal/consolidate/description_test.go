package consolidate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescription_DescriptionsThenCommits(t *testing.T) {
	got := Description(
		[]string{"api rework", "bugfix pass"},
		[]string{"ab12cd3 fix handler", "ef45ab6 add tests"},
	)

	want := "api rework\nbugfix pass\n\nCommits:\n  ab12cd3 fix handler\n  ef45ab6 add tests"
	assert.Equal(t, want, got)
}

func TestDescription_OnlyCommits(t *testing.T) {
	got := Description(nil, []string{"ab12cd3 fix handler"})
	assert.Equal(t, "Commits:\n  ab12cd3 fix handler", got)
}

func TestDescription_OnlyDescriptions(t *testing.T) {
	got := Description([]string{"api rework"}, nil)
	assert.Equal(t, "api rework", got)
	assert.NotContains(t, got, "Commits:")
}

func TestDescription_Empty(t *testing.T) {
	assert.Empty(t, Description(nil, nil))
}

func TestDescription_CommitListCapped(t *testing.T) {
	var commits []string
	for i := 0; i < 14; i++ {
		commits = append(commits, fmt.Sprintf("%07x commit %d", i, i))
	}

	got := Description(nil, commits)
	assert.Equal(t, maxCommitLines, strings.Count(got, "\n  ")-1,
		"ten commit lines plus the overflow line")
	assert.Contains(t, got, "... and 4 more")
	assert.NotContains(t, got, "commit 10")
}
