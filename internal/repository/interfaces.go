package repository

import (
	"context"

	"github.com/alexanderramin/nectime/internal/domain"
)

// SessionRepo persists the registry of open sessions, keyed by the
// externally supplied session identifier.
type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
	ListByFolder(ctx context.Context, folder string) ([]*domain.Session, error)
	Update(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id string) error
}

// LogRepo persists finalized log entries and the incrementally maintained
// per-day totals.
type LogRepo interface {
	// Append inserts the entry and adds its minutes to the day's total.
	// Implementations must do both or neither.
	Append(ctx context.Context, e *domain.LogEntry) error
	GetByID(ctx context.Context, id string) (*domain.LogEntry, error)
	List(ctx context.Context) ([]*domain.LogEntry, error)
	ListByDate(ctx context.Context, date string) ([]*domain.LogEntry, error)
	ListUnpushed(ctx context.Context) ([]*domain.LogEntry, error)
	PushedMinutes(ctx context.Context, date string) (int, error)
	DailyTotal(ctx context.Context, date string) (*domain.DailyTotal, error)
	SetDescription(ctx context.Context, id, description string) error
	SetActivity(ctx context.Context, id, activity string) error
	// MarkPushed flags the given entries as pushed. Callers group the ids
	// per consolidated group and run this inside a transaction so a failed
	// submission never marks a sibling group.
	MarkPushed(ctx context.Context, ids []string) error
}

// MappingRepo persists folder classifications keyed by normalized absolute
// path.
type MappingRepo interface {
	Get(ctx context.Context, folder string) (*domain.FolderMapping, error)
	// Resolve walks from folder up through its parents and returns the
	// first mapping found.
	Resolve(ctx context.Context, folder string) (*domain.FolderMapping, error)
	Put(ctx context.Context, m *domain.FolderMapping) error
	List(ctx context.Context) ([]*domain.FolderMapping, error)
	Delete(ctx context.Context, folder string) error
}
