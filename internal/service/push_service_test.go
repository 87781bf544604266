package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/nectime/internal/config"
	"github.com/alexanderramin/nectime/internal/consolidate"
	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/alexanderramin/nectime/internal/kimai"
	"github.com/alexanderramin/nectime/internal/repository"
	"github.com/alexanderramin/nectime/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway records created timesheets and can fail selected projects.
type fakeGateway struct {
	created       []kimai.Timesheet
	dryRun        bool
	failProjectID int
	nextID        int
}

func (f *fakeGateway) CreateTimesheet(ctx context.Context, ts kimai.Timesheet) (*kimai.TimesheetResult, error) {
	if f.failProjectID != 0 && ts.ProjectID == f.failProjectID {
		return nil, errors.New("server rejected timesheet")
	}
	if f.dryRun {
		return &kimai.TimesheetResult{DryRun: true}, nil
	}
	f.created = append(f.created, ts)
	f.nextID++
	return &kimai.TimesheetResult{ID: f.nextID}, nil
}

func pushTestConfig() *config.Config {
	cfg := config.Default()
	cfg.DryRun = false
	cfg.ActivityMappings = map[string]config.ActivityMapping{
		"dev_applicatif": {ID: 5, Name: "Development"},
		"redaction":      {ID: 9, Name: "Writing"},
	}
	return cfg
}

func newTestPushService(t *testing.T, gw TimesheetGateway, cfg *config.Config) (*pushService, repository.LogRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	logRepo := repository.NewSQLiteLogRepo(database)
	svc := NewPushService(logRepo, testutil.NewTestUoW(database), gw, cfg).(*pushService)
	return svc, logRepo
}

func TestPushService_Plan_FiltersIneligibleEntries(t *testing.T) {
	svc, logRepo := newTestPushService(t, &fakeGateway{}, pushTestConfig())
	ctx := context.Background()

	require.NoError(t, logRepo.Append(ctx, testutil.NewTestEntry(testutil.WithEntryMinutes(60))))
	require.NoError(t, logRepo.Append(ctx, testutil.NewTestEntry(
		testutil.WithEntryClass(domain.ClassPerso))))
	require.NoError(t, logRepo.Append(ctx, testutil.NewTestEntry(testutil.WithEntryPushed())))

	plan, err := svc.Plan(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Entries, "perso and pushed entries are excluded")
	require.Len(t, plan.Groups, 1)
}

func TestPushService_Plan_AppliesRatioAndRounding(t *testing.T) {
	svc, logRepo := newTestPushService(t, &fakeGateway{}, pushTestConfig())
	ctx := context.Background()

	// 600 raw minutes on a weekday shrink to the 480 budget.
	require.NoError(t, logRepo.Append(ctx, testutil.NewTestEntry(testutil.WithEntryMinutes(600))))

	plan, err := svc.Plan(ctx, "")
	require.NoError(t, err)
	require.Len(t, plan.Groups, 1)
	assert.InDelta(t, 0.8, plan.Groups[0].Ratio, 1e-9)
	assert.Equal(t, 480, plan.Groups[0].AdjustedMinutes)
	assert.Equal(t, 480, plan.Groups[0].RoundedMinutes)
}

func TestPushService_Plan_DateFilter(t *testing.T) {
	svc, logRepo := newTestPushService(t, &fakeGateway{}, pushTestConfig())
	ctx := context.Background()

	require.NoError(t, logRepo.Append(ctx, testutil.NewTestEntry(testutil.WithEntryDate("2025-06-10"))))
	require.NoError(t, logRepo.Append(ctx, testutil.NewTestEntry(testutil.WithEntryDate("2025-06-11"))))

	plan, err := svc.Plan(ctx, "2025-06-11")
	require.NoError(t, err)
	require.Len(t, plan.Groups, 1)
	assert.Equal(t, "2025-06-11", plan.Groups[0].Date)
}

func TestPushService_Push_MarksGroupEntries(t *testing.T) {
	gw := &fakeGateway{}
	svc, logRepo := newTestPushService(t, gw, pushTestConfig())
	ctx := context.Background()

	e1 := testutil.NewTestEntry(testutil.WithEntryMinutes(120),
		testutil.WithEntryDescription("api rework"))
	e2 := testutil.NewTestEntry(testutil.WithEntryMinutes(60))
	require.NoError(t, logRepo.Append(ctx, e1))
	require.NoError(t, logRepo.Append(ctx, e2))

	report, err := svc.Push(ctx, "")
	require.NoError(t, err)
	assert.False(t, report.DryRun)
	require.Len(t, report.Pushed, 1)
	assert.Empty(t, report.Failed)

	require.Len(t, gw.created, 1)
	assert.Equal(t, 42, gw.created[0].ProjectID)
	assert.Equal(t, 5, gw.created[0].ActivityID, "config maps the activity key")
	assert.Contains(t, gw.created[0].Description, "api rework")

	unpushed, err := logRepo.ListUnpushed(ctx)
	require.NoError(t, err)
	assert.Empty(t, unpushed, "the whole group is marked in one pass")
}

func TestPushService_Push_UnknownActivitySkipsGroup(t *testing.T) {
	gw := &fakeGateway{}
	svc, logRepo := newTestPushService(t, gw, pushTestConfig())
	ctx := context.Background()

	require.NoError(t, logRepo.Append(ctx, testutil.NewTestEntry(
		testutil.WithEntryActivity("mystery"))))

	report, err := svc.Push(ctx, "")
	require.NoError(t, err)
	require.Len(t, report.Skipped, 1)
	assert.ErrorIs(t, report.Skipped[0].Err, consolidate.ErrUnknownActivity)
	assert.Empty(t, gw.created)

	unpushed, err := logRepo.ListUnpushed(ctx)
	require.NoError(t, err)
	assert.Len(t, unpushed, 1, "skipped entries stay unpushed")
}

func TestPushService_Push_GroupFailuresAreIsolated(t *testing.T) {
	gw := &fakeGateway{failProjectID: 7}
	svc, logRepo := newTestPushService(t, gw, pushTestConfig())
	ctx := context.Background()

	ok := testutil.NewTestEntry(testutil.WithEntryMinutes(60))
	bad := testutil.NewTestEntry(testutil.WithEntryMinutes(60),
		testutil.WithEntryProject(7, "Flaky"))
	require.NoError(t, logRepo.Append(ctx, ok))
	require.NoError(t, logRepo.Append(ctx, bad))

	report, err := svc.Push(ctx, "")
	require.NoError(t, err)
	assert.Len(t, report.Pushed, 1)
	assert.Len(t, report.Failed, 1)

	unpushed, err := logRepo.ListUnpushed(ctx)
	require.NoError(t, err)
	require.Len(t, unpushed, 1)
	assert.Equal(t, bad.ID, unpushed[0].ID, "the failed group's entries survive for a retry")
}

func TestPushService_Push_DryRunNeverMarks(t *testing.T) {
	cfg := pushTestConfig()
	cfg.DryRun = true
	gw := &fakeGateway{dryRun: true}
	svc, logRepo := newTestPushService(t, gw, cfg)
	ctx := context.Background()

	require.NoError(t, logRepo.Append(ctx, testutil.NewTestEntry(testutil.WithEntryMinutes(60))))

	report, err := svc.Push(ctx, "")
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Len(t, report.Pushed, 1)

	unpushed, err := logRepo.ListUnpushed(ctx)
	require.NoError(t, err)
	assert.Len(t, unpushed, 1, "a dry run leaves the log untouched")
}
