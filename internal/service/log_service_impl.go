package service

import (
	"context"
	"time"

	"github.com/alexanderramin/nectime/internal/db"
	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/alexanderramin/nectime/internal/repository"
	"github.com/google/uuid"
)

type logService struct {
	log repository.LogRepo
	uow db.UnitOfWork
	now func() time.Time
}

// NewLogService creates the local log service.
func NewLogService(log repository.LogRepo, uow db.UnitOfWork) LogService {
	return &logService{log: log, uow: uow, now: time.Now}
}

// newLogEntry builds a LogEntry from a finalized session. The date key is
// the calendar day the session began.
func newLogEntry(f domain.FinishedSession, pushed bool, now time.Time) *domain.LogEntry {
	return &domain.LogEntry{
		ID:             uuid.New().String(),
		Date:           f.Begin.Format(domain.DateLayout),
		Folder:         f.Folder,
		Classification: f.Classification,
		ProjectID:      f.ProjectID,
		ProjectName:    f.ProjectName,
		Activity:       f.Activity,
		Begin:          f.Begin,
		End:            f.End,
		BilledMinutes:  f.BilledMinutes,
		RealMinutes:    f.RealMinutes,
		Pushed:         pushed,
		Description:    f.Description,
		Commits:        f.Commits,
		CreatedAt:      now,
	}
}

func (s *logService) Add(ctx context.Context, f domain.FinishedSession, pushed bool) (*domain.LogEntry, error) {
	entry := newLogEntry(f, pushed, s.now())
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteLogRepo(tx).Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *logService) Entries(ctx context.Context, date string) ([]*domain.LogEntry, error) {
	if date == "" {
		return s.log.List(ctx)
	}
	return s.log.ListByDate(ctx, date)
}

func (s *logService) Unpushed(ctx context.Context) ([]*domain.LogEntry, error) {
	return s.log.ListUnpushed(ctx)
}

func (s *logService) PushedMinutes(ctx context.Context, date string) (int, error) {
	return s.log.PushedMinutes(ctx, date)
}

func (s *logService) DailyTotal(ctx context.Context, date string) (*domain.DailyTotal, error) {
	return s.log.DailyTotal(ctx, date)
}

func (s *logService) SetDescription(ctx context.Context, id, text string) error {
	return s.log.SetDescription(ctx, id, text)
}

func (s *logService) SetActivity(ctx context.Context, id, activity string) error {
	return s.log.SetActivity(ctx, id, activity)
}

// FillEmptyWeekdays synthesizes entries for every weekday in [start, end]
// that has no eligible entries, copying the nearest prior eligible day
// (falling back to the earliest one). Clock start time and duration are
// preserved; only the calendar date moves. This assumes work patterns
// repeat: it is a deliberate backfill convenience, not an estimate.
func (s *logService) FillEmptyWeekdays(ctx context.Context, start, end time.Time) ([]*domain.LogEntry, error) {
	all, err := s.log.List(ctx)
	if err != nil {
		return nil, err
	}

	eligibleByDate := make(map[string][]*domain.LogEntry)
	var dates []string
	for _, e := range all {
		if !e.Eligible() {
			continue
		}
		if _, seen := eligibleByDate[e.Date]; !seen {
			dates = append(dates, e.Date)
		}
		eligibleByDate[e.Date] = append(eligibleByDate[e.Date], e)
	}

	var created []*domain.LogEntry
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		date := day.Format(domain.DateLayout)
		if len(eligibleByDate[date]) > 0 {
			continue
		}

		source := nearestSource(dates, date)
		if source == "" {
			continue
		}

		for _, src := range eligibleByDate[source] {
			entry := shiftEntry(src, day, s.now())
			err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				return repository.NewSQLiteLogRepo(tx).Append(ctx, entry)
			})
			if err != nil {
				return created, err
			}
			created = append(created, entry)
		}
	}
	return created, nil
}

// nearestSource picks the closest date before target, or the earliest date
// overall when none precedes it. Dates are DateLayout strings, so string
// order is chronological order.
func nearestSource(dates []string, target string) string {
	var best, earliest string
	for _, d := range dates {
		if earliest == "" || d < earliest {
			earliest = d
		}
		if d < target && d > best {
			best = d
		}
	}
	if best != "" {
		return best
	}
	return earliest
}

// shiftEntry copies a source entry onto a new calendar day, keeping the
// original clock start time and duration.
func shiftEntry(src *domain.LogEntry, day, now time.Time) *domain.LogEntry {
	begin := time.Date(day.Year(), day.Month(), day.Day(),
		src.Begin.Hour(), src.Begin.Minute(), src.Begin.Second(), 0, src.Begin.Location())
	duration := src.End.Sub(src.Begin)

	return &domain.LogEntry{
		ID:             uuid.New().String(),
		Date:           day.Format(domain.DateLayout),
		Folder:         src.Folder,
		Classification: src.Classification,
		ProjectID:      src.ProjectID,
		ProjectName:    src.ProjectName,
		Activity:       src.Activity,
		Begin:          begin,
		End:            begin.Add(duration),
		BilledMinutes:  src.BilledMinutes,
		RealMinutes:    src.RealMinutes,
		Pushed:         false,
		FilledFrom:     src.Date,
		CreatedAt:      now,
	}
}
