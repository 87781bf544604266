package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var begin = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func TestSession_ObserveAccumulates(t *testing.T) {
	s := &Session{ID: "s", Begin: begin}

	s.Observe("redaction", begin.Add(5*time.Minute))
	s.Observe("redaction", begin.Add(10*time.Minute))
	s.Observe("dev_applicatif", begin.Add(15*time.Minute))

	assert.Equal(t, "dev_applicatif", s.CurrentActivity)
	assert.Equal(t, 2, s.ActivityMinutes["redaction"])
	assert.Equal(t, 1, s.ActivityMinutes["dev_applicatif"])
	assert.Len(t, s.ActivityLog, 3)
}

func TestSession_FinishSplitsBilledAndReal(t *testing.T) {
	s := &Session{
		ID:           "s",
		Begin:        begin,
		LastActivity: begin.Add(50 * time.Minute),
	}

	f := s.Finish(begin.Add(90 * time.Minute))
	assert.Equal(t, 90, f.BilledMinutes)
	assert.Equal(t, 50, f.RealMinutes)
	assert.True(t, f.End.Equal(begin.Add(90*time.Minute)))
}

func TestSession_ReclaimUsesLastActivityForBoth(t *testing.T) {
	s := &Session{
		ID:           "s",
		Begin:        begin,
		LastActivity: begin.Add(40 * time.Minute),
	}

	f := s.Reclaim()
	assert.Equal(t, 40, f.BilledMinutes)
	assert.Equal(t, 40, f.RealMinutes)
	assert.True(t, f.End.Equal(s.LastActivity))
}

func TestClassification_Billable(t *testing.T) {
	assert.True(t, ClassPro.Billable())
	assert.False(t, ClassPerso.Billable())
	assert.False(t, ClassPending.Billable())
	assert.False(t, ClassOff.Billable())
}

func TestValidClassifications_AcceptsUserInput(t *testing.T) {
	for _, c := range []Classification{ClassPro, ClassPerso, ClassPending, ClassOff} {
		assert.True(t, ValidClassifications[c], string(c))
	}
	assert.False(t, ValidClassifications[Classification("billable")])
}

func TestLogEntry_Eligible(t *testing.T) {
	projectID := 42
	e := &LogEntry{Classification: ClassPro, ProjectID: &projectID}
	assert.True(t, e.Eligible())

	assert.False(t, (&LogEntry{Classification: ClassPro}).Eligible(), "no project id")
	assert.False(t, (&LogEntry{Classification: ClassPerso, ProjectID: &projectID}).Eligible())

	e.Pushed = true
	assert.False(t, e.Eligible())
}
