package domain

import "time"

// ActivityObservation is one timestamped activity estimate recorded while a
// session is open.
type ActivityObservation struct {
	At       time.Time `json:"at"`
	Estimate string    `json:"estimate"`
}

// Session is an in-progress work session, keyed by an externally supplied
// identifier (one per editor process). It lives in the registry until it is
// stopped, cancelled or reclaimed.
type Session struct {
	ID              string
	Folder          string
	Classification  Classification
	ProjectID       *int
	ProjectName     string
	Begin           time.Time
	LastActivity    time.Time
	Description     string
	CurrentActivity string
	ActivityLog     []ActivityObservation
	// ActivityMinutes counts one minute per observation of each estimate
	// label. It is an attention-weighting approximation, not a timer.
	ActivityMinutes map[string]int
}

// Observe appends an activity observation and credits one minute to the
// estimate's accumulator.
func (s *Session) Observe(estimate string, at time.Time) {
	s.ActivityLog = append(s.ActivityLog, ActivityObservation{At: at, Estimate: estimate})
	if s.ActivityMinutes == nil {
		s.ActivityMinutes = make(map[string]int)
	}
	s.ActivityMinutes[estimate]++
	s.CurrentActivity = estimate
}

// ElapsedMinutes returns whole minutes between Begin and now.
func (s *Session) ElapsedMinutes(now time.Time) int {
	return int(now.Sub(s.Begin).Minutes())
}

// FinishedSession is the immutable result of closing a session, handed to
// the local log by the caller. The registry keeps no trace of it.
type FinishedSession struct {
	Folder         string
	Classification Classification
	ProjectID      *int
	ProjectName    string
	Activity       string
	Begin          time.Time
	End            time.Time
	BilledMinutes  int
	RealMinutes    int
	Description    string
	Commits        []string
}

// Finish converts the session to a FinishedSession using end as the close
// boundary. Billed minutes span begin..end; real minutes span
// begin..last-activity.
func (s *Session) Finish(end time.Time) FinishedSession {
	return FinishedSession{
		Folder:         s.Folder,
		Classification: s.Classification,
		ProjectID:      s.ProjectID,
		ProjectName:    s.ProjectName,
		Activity:       s.CurrentActivity,
		Begin:          s.Begin,
		End:            end,
		BilledMinutes:  int(end.Sub(s.Begin).Minutes()),
		RealMinutes:    int(s.LastActivity.Sub(s.Begin).Minutes()),
		Description:    s.Description,
	}
}

// Reclaim converts an orphaned session using last-activity as the end
// boundary. Real and billed minutes are identical here: the true end of an
// abandoned session is unknowable and last-activity is the best proxy for
// both.
func (s *Session) Reclaim() FinishedSession {
	f := s.Finish(s.LastActivity)
	f.RealMinutes = f.BilledMinutes
	return f
}
