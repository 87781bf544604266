package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/alexanderramin/nectime/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	sess := testutil.NewTestSession("sess-1",
		testutil.WithSessionActivity("dev_applicatif"))
	require.NoError(t, repo.Create(ctx, sess))

	fetched, err := repo.GetByID(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess.Folder, fetched.Folder)
	assert.Equal(t, domain.ClassPro, fetched.Classification)
	require.NotNil(t, fetched.ProjectID)
	assert.Equal(t, 42, *fetched.ProjectID)
	assert.Equal(t, "dev_applicatif", fetched.CurrentActivity)
	assert.True(t, fetched.Begin.Equal(sess.Begin))
}

func TestSessionRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_UpdatePersistsObservations(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	sess := testutil.NewTestSession("sess-1")
	require.NoError(t, repo.Create(ctx, sess))

	sess.Observe("redaction", testutil.BaseTime.Add(10*time.Minute))
	sess.Observe("redaction", testutil.BaseTime.Add(20*time.Minute))
	sess.Observe("dev_applicatif", testutil.BaseTime.Add(30*time.Minute))
	sess.LastActivity = testutil.BaseTime.Add(30 * time.Minute)
	require.NoError(t, repo.Update(ctx, sess))

	fetched, err := repo.GetByID(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "dev_applicatif", fetched.CurrentActivity)
	assert.Equal(t, 2, fetched.ActivityMinutes["redaction"])
	assert.Equal(t, 1, fetched.ActivityMinutes["dev_applicatif"])
	assert.Len(t, fetched.ActivityLog, 3)
	assert.True(t, fetched.LastActivity.Equal(testutil.BaseTime.Add(30*time.Minute)))
}

func TestSessionRepo_Update_NotFound(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))

	err := repo.Update(context.Background(), testutil.NewTestSession("ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_ListByFolder(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestSession("a",
		testutil.WithSessionFolder("/home/dev/acme"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession("b",
		testutil.WithSessionFolder("/home/dev/acme"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession("c",
		testutil.WithSessionFolder("/home/dev/other"))))

	list, err := repo.ListByFolder(ctx, "/home/dev/acme")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSessionRepo_Delete(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestSession("sess-1")))
	require.NoError(t, repo.Delete(ctx, "sess-1"))

	_, err := repo.GetByID(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_DuplicateIDRejected(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestSession("sess-1")))
	assert.Error(t, repo.Create(ctx, testutil.NewTestSession("sess-1")))
}
