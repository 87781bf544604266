package consolidate

import (
	"testing"
	"time"

	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/alexanderramin/nectime/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions() Options {
	return Options{DailyLimitMinutes: 480, RoundToMinutes: 30}
}

// 2025-06-10 is a Tuesday, 2025-06-14 a Saturday.
const (
	tuesday  = "2025-06-10"
	saturday = "2025-06-14"
)

func TestGroup_PartitionsByDateProjectActivity(t *testing.T) {
	entries := []*domain.LogEntry{
		testutil.NewTestEntry(testutil.WithEntryMinutes(60)),
		testutil.NewTestEntry(testutil.WithEntryMinutes(30)),
		testutil.NewTestEntry(testutil.WithEntryMinutes(45), testutil.WithEntryActivity("redaction")),
		testutil.NewTestEntry(testutil.WithEntryMinutes(20), testutil.WithEntryProject(7, "Other")),
		testutil.NewTestEntry(testutil.WithEntryMinutes(15), testutil.WithEntryDate("2025-06-11")),
	}

	groups := Group(entries)
	require.Len(t, groups, 4)

	// Sorted by date then activity.
	assert.Equal(t, tuesday, groups[0].Date)
	assert.Equal(t, "2025-06-11", groups[3].Date)

	var merged *domain.ConsolidatedGroup
	for _, g := range groups {
		if g.Date == tuesday && g.Activity == "dev_applicatif" && g.ProjectID != nil && *g.ProjectID == 42 {
			merged = g
		}
	}
	require.NotNil(t, merged)
	assert.Equal(t, 90, merged.TotalMinutes)
	assert.Len(t, merged.Entries, 2)
}

func TestGroup_WindowAndDeduplication(t *testing.T) {
	early := testutil.BaseTime
	late := testutil.BaseTime.Add(4 * time.Hour)

	entries := []*domain.LogEntry{
		testutil.NewTestEntry(
			testutil.WithEntryBegin(late),
			testutil.WithEntryMinutes(30),
			testutil.WithEntryDescription("api work"),
			testutil.WithEntryCommits("ab12cd3 fix handler"),
		),
		testutil.NewTestEntry(
			testutil.WithEntryBegin(early),
			testutil.WithEntryMinutes(60),
			testutil.WithEntryDescription("api work"),
			testutil.WithEntryCommits("ab12cd3 fix handler", "ef45ab6 add tests"),
		),
	}

	groups := Group(entries)
	require.Len(t, groups, 1)
	g := groups[0]

	assert.True(t, g.FirstBegin.Equal(early))
	assert.True(t, g.LastEnd.Equal(late.Add(30*time.Minute)))
	assert.Equal(t, []string{"api work"}, g.Descriptions, "duplicates collapse")
	assert.Equal(t, []string{"ab12cd3 fix handler", "ef45ab6 add tests"}, g.Commits)
}

func TestRatios_ShrinkOverBudgetDay(t *testing.T) {
	ratios := Ratios(map[string]int{tuesday: 600}, nil, defaultOptions())
	assert.InDelta(t, 0.8, ratios[tuesday], 1e-9)
}

func TestRatios_UnityWithinBudget(t *testing.T) {
	ratios := Ratios(map[string]int{tuesday: 200}, nil, defaultOptions())
	assert.Equal(t, 1.0, ratios[tuesday], "no expansion unless enabled")
}

func TestRatios_ExpandShortDay(t *testing.T) {
	opts := defaultOptions()
	opts.ExpandShortDays = true

	ratios := Ratios(map[string]int{tuesday: 200}, nil, opts)
	assert.InDelta(t, 2.4, ratios[tuesday], 1e-9)
}

func TestRatios_WeekendNeverAdjusted(t *testing.T) {
	opts := defaultOptions()
	opts.ExpandShortDays = true

	ratios := Ratios(map[string]int{saturday: 600}, nil, opts)
	assert.Equal(t, 1.0, ratios[saturday])
}

func TestRatios_PushedMinutesReduceCapacity(t *testing.T) {
	// 300 already pushed leaves 180 of capacity for 360 raw minutes.
	ratios := Ratios(map[string]int{tuesday: 360}, map[string]int{tuesday: 300}, defaultOptions())
	assert.InDelta(t, 0.5, ratios[tuesday], 1e-9)
}

func TestApply_TruncatesAndDerivesWindow(t *testing.T) {
	g := &domain.ConsolidatedGroup{
		Date:         tuesday,
		TotalMinutes: 100,
		FirstBegin:   testutil.BaseTime,
	}
	Apply([]*domain.ConsolidatedGroup{g}, map[string]float64{tuesday: 0.755})

	assert.Equal(t, 75, g.AdjustedMinutes, "truncated, not rounded")
	assert.True(t, g.PushEnd.Equal(testutil.BaseTime.Add(75*time.Minute)))
}

func TestRound_DayLandsExactlyOnBudget(t *testing.T) {
	// Three equal groups of 130 round individually to 120 each; the
	// largest (first on ties) absorbs the 120-minute residual.
	groups := []*domain.ConsolidatedGroup{
		{Date: tuesday, Activity: "a", AdjustedMinutes: 130},
		{Date: tuesday, Activity: "b", AdjustedMinutes: 130},
		{Date: tuesday, Activity: "c", AdjustedMinutes: 130},
	}
	Round(groups, nil, defaultOptions())

	total := 0
	for _, g := range groups {
		assert.Zero(t, g.RoundedMinutes%30)
		total += g.RoundedMinutes
	}
	assert.Equal(t, 480, total)
}

func TestRound_ResidualGoesToLargestGroup(t *testing.T) {
	groups := []*domain.ConsolidatedGroup{
		{Date: tuesday, Activity: "small", AdjustedMinutes: 60},
		{Date: tuesday, Activity: "large", AdjustedMinutes: 300},
	}
	Round(groups, nil, defaultOptions())

	assert.Equal(t, 60, groups[0].RoundedMinutes)
	assert.Equal(t, 420, groups[1].RoundedMinutes)
}

func TestRound_PositiveGroupNeverRoundsToZero(t *testing.T) {
	groups := []*domain.ConsolidatedGroup{
		{Date: tuesday, Activity: "tiny", AdjustedMinutes: 10},
		{Date: tuesday, Activity: "big", AdjustedMinutes: 460},
	}
	Round(groups, nil, defaultOptions())

	assert.Equal(t, 30, groups[0].RoundedMinutes)
	assert.Equal(t, 450, groups[1].RoundedMinutes)
}

func TestRound_TargetShrinksWithPushedMinutes(t *testing.T) {
	groups := []*domain.ConsolidatedGroup{
		{Date: tuesday, Activity: "a", AdjustedMinutes: 100},
	}
	Round(groups, map[string]int{tuesday: 300}, defaultOptions())

	assert.Equal(t, 180, groups[0].RoundedMinutes)
}

func TestRound_WeekendLeftUntouched(t *testing.T) {
	g := &domain.ConsolidatedGroup{Date: saturday, Activity: "a", TotalMinutes: 130}
	Apply([]*domain.ConsolidatedGroup{g}, map[string]float64{saturday: 1.0})
	Round([]*domain.ConsolidatedGroup{g}, nil, defaultOptions())

	assert.Equal(t, 130, g.AdjustedMinutes)
	assert.Equal(t, 130, g.RoundedMinutes)
}

func TestRound_RecomputesPushWindow(t *testing.T) {
	g := &domain.ConsolidatedGroup{
		Date:            tuesday,
		Activity:        "a",
		AdjustedMinutes: 130,
		PushBegin:       testutil.BaseTime,
	}
	Round([]*domain.ConsolidatedGroup{g}, nil, defaultOptions())

	assert.True(t, g.PushEnd.Equal(g.PushBegin.Add(time.Duration(g.RoundedMinutes)*time.Minute)))
}

func TestRawMinutesByDate(t *testing.T) {
	raw := RawMinutesByDate([]*domain.LogEntry{
		testutil.NewTestEntry(testutil.WithEntryMinutes(60)),
		testutil.NewTestEntry(testutil.WithEntryMinutes(30)),
		testutil.NewTestEntry(testutil.WithEntryMinutes(45), testutil.WithEntryDate("2025-06-11")),
	})

	assert.Equal(t, 90, raw[tuesday])
	assert.Equal(t, 45, raw["2025-06-11"])
}

func TestIsWeekend(t *testing.T) {
	assert.False(t, IsWeekend(tuesday))
	assert.True(t, IsWeekend(saturday))
	assert.True(t, IsWeekend("2025-06-15"))
	assert.False(t, IsWeekend("not-a-date"), "unparseable dates stay budgeted")
}
