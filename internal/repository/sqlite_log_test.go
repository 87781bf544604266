package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/nectime/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRepo_AppendIncrementsDailyTotal(t *testing.T) {
	repo := NewSQLiteLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e1 := testutil.NewTestEntry(testutil.WithEntryMinutes(60))
	e2 := testutil.NewTestEntry(testutil.WithEntryMinutes(90))
	require.NoError(t, repo.Append(ctx, e1))
	require.NoError(t, repo.Append(ctx, e2))

	total, err := repo.DailyTotal(ctx, e1.Date)
	require.NoError(t, err)
	assert.Equal(t, 150, total.Billed)
	assert.Equal(t, 150, total.Real)
}

func TestLogRepo_DailyTotal_EmptyDay(t *testing.T) {
	repo := NewSQLiteLogRepo(testutil.NewTestDB(t))

	total, err := repo.DailyTotal(context.Background(), "2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, 0, total.Billed)
	assert.Equal(t, 0, total.Real)
}

func TestLogRepo_GetByID_RoundTrip(t *testing.T) {
	repo := NewSQLiteLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e := testutil.NewTestEntry(
		testutil.WithEntryDescription("refactoring the import pipeline"),
		testutil.WithEntryCommits("ab12cd3 fix importer", "ef45ab6 add tests"),
	)
	require.NoError(t, repo.Append(ctx, e))

	fetched, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Date, fetched.Date)
	assert.Equal(t, "refactoring the import pipeline", fetched.Description)
	assert.Equal(t, []string{"ab12cd3 fix importer", "ef45ab6 add tests"}, fetched.Commits)
	require.NotNil(t, fetched.ProjectID)
	assert.Equal(t, 42, *fetched.ProjectID)
	assert.False(t, fetched.Pushed)
}

func TestLogRepo_ListUnpushed(t *testing.T) {
	repo := NewSQLiteLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testutil.NewTestEntry()))
	require.NoError(t, repo.Append(ctx, testutil.NewTestEntry(testutil.WithEntryPushed())))

	list, err := repo.ListUnpushed(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.False(t, list[0].Pushed)
}

func TestLogRepo_PushedMinutes(t *testing.T) {
	repo := NewSQLiteLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testutil.NewTestEntry(
		testutil.WithEntryMinutes(120), testutil.WithEntryPushed())))
	require.NoError(t, repo.Append(ctx, testutil.NewTestEntry(
		testutil.WithEntryMinutes(60))))

	date := testutil.NewTestEntry().Date
	pushed, err := repo.PushedMinutes(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, 120, pushed, "only pushed entries count")
}

func TestLogRepo_MarkPushed(t *testing.T) {
	repo := NewSQLiteLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e1 := testutil.NewTestEntry()
	e2 := testutil.NewTestEntry()
	e3 := testutil.NewTestEntry()
	require.NoError(t, repo.Append(ctx, e1))
	require.NoError(t, repo.Append(ctx, e2))
	require.NoError(t, repo.Append(ctx, e3))

	require.NoError(t, repo.MarkPushed(ctx, []string{e1.ID, e2.ID}))

	unpushed, err := repo.ListUnpushed(ctx)
	require.NoError(t, err)
	require.Len(t, unpushed, 1)
	assert.Equal(t, e3.ID, unpushed[0].ID)
}

func TestLogRepo_SetDescription_PushedEntriesImmutable(t *testing.T) {
	repo := NewSQLiteLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	open := testutil.NewTestEntry()
	frozen := testutil.NewTestEntry(testutil.WithEntryPushed())
	require.NoError(t, repo.Append(ctx, open))
	require.NoError(t, repo.Append(ctx, frozen))

	require.NoError(t, repo.SetDescription(ctx, open.ID, "updated"))
	got, err := repo.GetByID(ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Description)

	err = repo.SetDescription(ctx, frozen.ID, "should not apply")
	assert.ErrorIs(t, err, ErrNotFound)
	got, err = repo.GetByID(ctx, frozen.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Description)
}

func TestLogRepo_SetActivity(t *testing.T) {
	repo := NewSQLiteLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e := testutil.NewTestEntry()
	require.NoError(t, repo.Append(ctx, e))
	require.NoError(t, repo.SetActivity(ctx, e.ID, "redaction"))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "redaction", got.Activity)
}

func TestLogRepo_ListByDate(t *testing.T) {
	repo := NewSQLiteLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testutil.NewTestEntry(testutil.WithEntryDate("2025-06-10"))))
	require.NoError(t, repo.Append(ctx, testutil.NewTestEntry(testutil.WithEntryDate("2025-06-11"))))

	list, err := repo.ListByDate(ctx, "2025-06-10")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "2025-06-10", list[0].Date)
}
