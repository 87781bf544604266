package service

import (
	"context"
	"time"

	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/alexanderramin/nectime/internal/kimai"
)

// StartSession carries the parameters for opening a session.
type StartSession struct {
	ID             string
	Folder         string
	Classification domain.Classification
	ProjectID      *int
	ProjectName    string
}

// ReclaimedSession summarizes one orphan closed by cleanup.
type ReclaimedSession struct {
	SessionID     string
	Folder        string
	ProjectName   string
	Begin         time.Time
	BilledMinutes int
}

type SessionService interface {
	Start(ctx context.Context, p StartSession) (*domain.Session, error)
	// UpdateActivity refreshes last-activity and, with a non-empty
	// estimate, records an observation. Unknown identifiers are a no-op.
	UpdateActivity(ctx context.Context, id, estimate string) error
	Describe(ctx context.Context, id, text string) error
	Stop(ctx context.Context, id string) (domain.FinishedSession, error)
	Cancel(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
	ListByFolder(ctx context.Context, folder string) ([]*domain.Session, error)
	// Resolve implements the identifier-less fallback: exactly one open
	// session for the folder resolves to its id; zero and many fail with
	// distinct errors.
	Resolve(ctx context.Context, folder string) (string, error)
	// CleanupOld reclaims orphans (start date not today, or older than
	// the configured maximum) into unpushed log entries.
	CleanupOld(ctx context.Context) ([]ReclaimedSession, error)
}

type LogService interface {
	Add(ctx context.Context, f domain.FinishedSession, pushed bool) (*domain.LogEntry, error)
	Entries(ctx context.Context, date string) ([]*domain.LogEntry, error)
	Unpushed(ctx context.Context) ([]*domain.LogEntry, error)
	PushedMinutes(ctx context.Context, date string) (int, error)
	DailyTotal(ctx context.Context, date string) (*domain.DailyTotal, error)
	SetDescription(ctx context.Context, id, text string) error
	SetActivity(ctx context.Context, id, activity string) error
	// FillEmptyWeekdays synthesizes entries for eligible-empty weekdays
	// in the inclusive range from the nearest prior day's eligible
	// entries, tagged with their provenance date.
	FillEmptyWeekdays(ctx context.Context, start, end time.Time) ([]*domain.LogEntry, error)
}

// GroupResult reports the outcome for one consolidated group during a push.
type GroupResult struct {
	Group       *domain.ConsolidatedGroup
	TimesheetID int
	Err         error
}

// PushReport is the outcome of one push run. Failures are per-group; a
// failed group never prevents siblings from being submitted, and its
// entries stay unpushed for a later retry.
type PushReport struct {
	DryRun  bool
	Pushed  []GroupResult
	Skipped []GroupResult
	Failed  []GroupResult
}

// Plan is a consolidation preview: the groups that a push would submit,
// with ratios and rounding already applied.
type Plan struct {
	Groups  []*domain.ConsolidatedGroup
	Ratios  map[string]float64
	Entries int
}

type PushService interface {
	// Plan consolidates unpushed eligible entries (optionally for one
	// date) without touching the network or the log.
	Plan(ctx context.Context, date string) (*Plan, error)
	Push(ctx context.Context, date string) (*PushReport, error)
}

// TimesheetGateway is the slice of the Kimai client the push service needs.
type TimesheetGateway interface {
	CreateTimesheet(ctx context.Context, ts kimai.Timesheet) (*kimai.TimesheetResult, error)
}
