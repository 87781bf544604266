package testutil

import (
	"time"

	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/google/uuid"
)

// BaseTime is a fixed Tuesday morning all fixtures hang off, so dates and
// weekday logic are deterministic.
var BaseTime = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

// Session options
type SessionOption func(*domain.Session)

func WithSessionFolder(folder string) SessionOption {
	return func(s *domain.Session) {
		s.Folder = folder
	}
}

func WithSessionClass(c domain.Classification) SessionOption {
	return func(s *domain.Session) {
		s.Classification = c
	}
}

func WithSessionProject(id int, name string) SessionOption {
	return func(s *domain.Session) {
		s.ProjectID = &id
		s.ProjectName = name
	}
}

func WithSessionBegin(t time.Time) SessionOption {
	return func(s *domain.Session) {
		s.Begin = t
		s.LastActivity = t
	}
}

func WithSessionLastActivity(t time.Time) SessionOption {
	return func(s *domain.Session) {
		s.LastActivity = t
	}
}

func WithSessionActivity(key string) SessionOption {
	return func(s *domain.Session) {
		s.CurrentActivity = key
	}
}

func NewTestSession(id string, opts ...SessionOption) *domain.Session {
	if id == "" {
		id = uuid.New().String()
	}
	projectID := 42
	s := &domain.Session{
		ID:              id,
		Folder:          "/home/dev/acme",
		Classification:  domain.ClassPro,
		ProjectID:       &projectID,
		ProjectName:     "ACME Portal",
		Begin:           BaseTime,
		LastActivity:    BaseTime,
		ActivityMinutes: map[string]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LogEntry options
type EntryOption func(*domain.LogEntry)

func WithEntryDate(date string) EntryOption {
	return func(e *domain.LogEntry) {
		e.Date = date
		if d, err := time.Parse(domain.DateLayout, date); err == nil {
			e.Begin = time.Date(d.Year(), d.Month(), d.Day(),
				e.Begin.Hour(), e.Begin.Minute(), 0, 0, time.UTC)
			e.End = e.Begin.Add(time.Duration(e.BilledMinutes) * time.Minute)
		}
	}
}

func WithEntryMinutes(billed int) EntryOption {
	return func(e *domain.LogEntry) {
		e.BilledMinutes = billed
		e.RealMinutes = billed
		e.End = e.Begin.Add(time.Duration(billed) * time.Minute)
	}
}

func WithEntryProject(id int, name string) EntryOption {
	return func(e *domain.LogEntry) {
		e.ProjectID = &id
		e.ProjectName = name
	}
}

func WithEntryClass(c domain.Classification) EntryOption {
	return func(e *domain.LogEntry) {
		e.Classification = c
		if c != domain.ClassPro {
			e.ProjectID = nil
			e.ProjectName = ""
		}
	}
}

func WithEntryActivity(key string) EntryOption {
	return func(e *domain.LogEntry) {
		e.Activity = key
	}
}

func WithEntryBegin(t time.Time) EntryOption {
	return func(e *domain.LogEntry) {
		e.Begin = t
		e.Date = t.Format(domain.DateLayout)
		e.End = t.Add(time.Duration(e.BilledMinutes) * time.Minute)
	}
}

func WithEntryPushed() EntryOption {
	return func(e *domain.LogEntry) {
		e.Pushed = true
	}
}

func WithEntryDescription(text string) EntryOption {
	return func(e *domain.LogEntry) {
		e.Description = text
	}
}

func WithEntryCommits(lines ...string) EntryOption {
	return func(e *domain.LogEntry) {
		e.Commits = lines
	}
}

func NewTestEntry(opts ...EntryOption) *domain.LogEntry {
	projectID := 42
	e := &domain.LogEntry{
		ID:             uuid.New().String(),
		Date:           BaseTime.Format(domain.DateLayout),
		Folder:         "/home/dev/acme",
		Classification: domain.ClassPro,
		ProjectID:      &projectID,
		ProjectName:    "ACME Portal",
		Activity:       "dev_applicatif",
		Begin:          BaseTime,
		End:            BaseTime.Add(60 * time.Minute),
		BilledMinutes:  60,
		RealMinutes:    60,
		CreatedAt:      BaseTime,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FolderMapping options
type MappingOption func(*domain.FolderMapping)

func WithMappingClass(c domain.Classification) MappingOption {
	return func(m *domain.FolderMapping) {
		m.Classification = c
		if c != domain.ClassPro {
			m.ProjectID = nil
			m.ProjectName = ""
		}
	}
}

func WithMappingActivity(key string) MappingOption {
	return func(m *domain.FolderMapping) {
		m.Activity = key
	}
}

func NewTestMapping(folder string, opts ...MappingOption) *domain.FolderMapping {
	projectID := 42
	m := &domain.FolderMapping{
		Folder:         folder,
		Classification: domain.ClassPro,
		ProjectID:      &projectID,
		ProjectName:    "ACME Portal",
		Activity:       "dev_applicatif",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
