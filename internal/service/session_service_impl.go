package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/nectime/internal/db"
	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/alexanderramin/nectime/internal/repository"
)

type sessionService struct {
	sessions        repository.SessionRepo
	uow             db.UnitOfWork
	maxAge          time.Duration
	defaultActivity string
	now             func() time.Time
}

// NewSessionService creates the session registry service. maxAge bounds how
// long a session may stay open before cleanup reclaims it; defaultActivity
// is substituted when a reclaimed session never recorded an estimate.
func NewSessionService(sessions repository.SessionRepo, uow db.UnitOfWork, maxAge time.Duration, defaultActivity string) SessionService {
	return &sessionService{
		sessions:        sessions,
		uow:             uow,
		maxAge:          maxAge,
		defaultActivity: defaultActivity,
		now:             time.Now,
	}
}

func (s *sessionService) Start(ctx context.Context, p StartSession) (*domain.Session, error) {
	_, err := s.sessions.GetByID(ctx, p.ID)
	if err == nil {
		return nil, fmt.Errorf("session %s: %w", p.ID, ErrAlreadyActive)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := s.now()
	session := &domain.Session{
		ID:              p.ID,
		Folder:          p.Folder,
		Classification:  p.Classification,
		ProjectID:       p.ProjectID,
		ProjectName:     p.ProjectName,
		Begin:           now,
		LastActivity:    now,
		ActivityMinutes: map[string]int{},
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) UpdateActivity(ctx context.Context, id, estimate string) error {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Hooks fire for untracked folders too; silently ignore.
			return nil
		}
		return err
	}

	now := s.now()
	session.LastActivity = now
	if estimate != "" {
		session.Observe(estimate, now)
	}
	return s.sessions.Update(ctx, session)
}

func (s *sessionService) Describe(ctx context.Context, id, text string) error {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("session %s: %w", id, ErrNoActiveSession)
		}
		return err
	}
	session.Description = text
	return s.sessions.Update(ctx, session)
}

func (s *sessionService) Stop(ctx context.Context, id string) (domain.FinishedSession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.FinishedSession{}, fmt.Errorf("session %s: %w", id, ErrNoActiveSession)
		}
		return domain.FinishedSession{}, err
	}

	finished := session.Finish(s.now())
	if err := s.sessions.Delete(ctx, id); err != nil {
		return domain.FinishedSession{}, err
	}
	// The registry holds nothing after this point; logging the result is
	// the caller's responsibility.
	return finished, nil
}

func (s *sessionService) Cancel(ctx context.Context, id string) error {
	_, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("session %s: %w", id, ErrNoActiveSession)
		}
		return err
	}
	return s.sessions.Delete(ctx, id)
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *sessionService) List(ctx context.Context) ([]*domain.Session, error) {
	return s.sessions.List(ctx)
}

func (s *sessionService) ListByFolder(ctx context.Context, folder string) ([]*domain.Session, error) {
	return s.sessions.ListByFolder(ctx, folder)
}

func (s *sessionService) Resolve(ctx context.Context, folder string) (string, error) {
	sessions, err := s.sessions.ListByFolder(ctx, folder)
	if err != nil {
		return "", err
	}
	switch len(sessions) {
	case 0:
		return "", fmt.Errorf("folder %s: %w", folder, ErrNoActiveSession)
	case 1:
		return sessions[0].ID, nil
	default:
		return "", fmt.Errorf("folder %s has %d open sessions: %w", folder, len(sessions), ErrAmbiguousSession)
	}
}

func (s *sessionService) CleanupOld(ctx context.Context) ([]ReclaimedSession, error) {
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := now.Format(domain.DateLayout)
	var closed []ReclaimedSession

	for _, session := range sessions {
		startDay := session.Begin.Format(domain.DateLayout)
		if startDay == today && now.Sub(session.Begin) <= s.maxAge {
			continue
		}

		// End at last-activity, never now: nobody closed this session,
		// so time after the last sign of life is not billable.
		finished := session.Reclaim()
		if finished.Activity == "" {
			finished.Activity = s.defaultActivity
		}

		entry := newLogEntry(finished, false, now)
		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txSessions := repository.NewSQLiteSessionRepo(tx)
			txLog := repository.NewSQLiteLogRepo(tx)
			if err := txSessions.Delete(ctx, session.ID); err != nil {
				return err
			}
			return txLog.Append(ctx, entry)
		})
		if err != nil {
			return closed, fmt.Errorf("reclaiming session %s: %w", session.ID, err)
		}

		closed = append(closed, ReclaimedSession{
			SessionID:     session.ID,
			Folder:        session.Folder,
			ProjectName:   session.ProjectName,
			Begin:         session.Begin,
			BilledMinutes: finished.BilledMinutes,
		})
	}
	return closed, nil
}
