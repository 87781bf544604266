package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/nectime/internal/config"
	"github.com/alexanderramin/nectime/internal/consolidate"
	"github.com/alexanderramin/nectime/internal/db"
	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/alexanderramin/nectime/internal/kimai"
	"github.com/alexanderramin/nectime/internal/repository"
)

type pushService struct {
	log     repository.LogRepo
	uow     db.UnitOfWork
	gateway TimesheetGateway
	cfg     *config.Config
}

// NewPushService creates the consolidation-and-push service.
func NewPushService(log repository.LogRepo, uow db.UnitOfWork, gateway TimesheetGateway, cfg *config.Config) PushService {
	return &pushService{log: log, uow: uow, gateway: gateway, cfg: cfg}
}

func (s *pushService) options() consolidate.Options {
	return consolidate.Options{
		DailyLimitMinutes: s.cfg.DailyLimitMinutes,
		RoundToMinutes:    s.cfg.RoundToMinutes,
		ExpandShortDays:   s.cfg.ExpandShortDays,
	}
}

// plan runs the full consolidation pipeline over unpushed eligible entries:
// grouping, day ratios against already-pushed minutes, then rounding.
func (s *pushService) plan(ctx context.Context, date string) (*Plan, error) {
	unpushed, err := s.log.ListUnpushed(ctx)
	if err != nil {
		return nil, err
	}

	var entries []*domain.LogEntry
	for _, e := range unpushed {
		if !e.Eligible() {
			continue
		}
		if date != "" && e.Date != date {
			continue
		}
		entries = append(entries, e)
	}

	rawByDate := consolidate.RawMinutesByDate(entries)
	pushedByDate := make(map[string]int, len(rawByDate))
	for d := range rawByDate {
		pushed, err := s.log.PushedMinutes(ctx, d)
		if err != nil {
			return nil, err
		}
		pushedByDate[d] = pushed
	}

	opts := s.options()
	groups := consolidate.Group(entries)
	ratios := consolidate.Ratios(rawByDate, pushedByDate, opts)
	consolidate.Apply(groups, ratios)
	consolidate.Round(groups, pushedByDate, opts)

	return &Plan{Groups: groups, Ratios: ratios, Entries: len(entries)}, nil
}

func (s *pushService) Plan(ctx context.Context, date string) (*Plan, error) {
	return s.plan(ctx, date)
}

// Push submits each consolidated group as one timesheet. Groups fail
// independently: a rejected group leaves its entries unpushed and the rest
// of the run continues. Entries are only marked pushed after the server
// accepted the group, never on dry runs.
func (s *pushService) Push(ctx context.Context, date string) (*PushReport, error) {
	plan, err := s.plan(ctx, date)
	if err != nil {
		return nil, err
	}

	report := &PushReport{DryRun: s.cfg.DryRun}
	for _, group := range plan.Groups {
		if group.RoundedMinutes <= 0 {
			report.Skipped = append(report.Skipped, GroupResult{Group: group})
			continue
		}

		activityID, ok := s.cfg.ActivityID(group.Activity)
		if !ok {
			report.Skipped = append(report.Skipped, GroupResult{
				Group: group,
				Err:   fmt.Errorf("activity %q: %w", group.Activity, consolidate.ErrUnknownActivity),
			})
			continue
		}

		result, err := s.gateway.CreateTimesheet(ctx, kimai.Timesheet{
			ProjectID:   *group.ProjectID,
			ActivityID:  activityID,
			Begin:       group.PushBegin,
			End:         group.PushEnd,
			Description: consolidate.Description(group.Descriptions, group.Commits),
		})
		if err != nil {
			report.Failed = append(report.Failed, GroupResult{Group: group, Err: err})
			continue
		}
		if result.DryRun {
			report.Pushed = append(report.Pushed, GroupResult{Group: group})
			continue
		}

		ids := group.EntryIDs()
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteLogRepo(tx).MarkPushed(ctx, ids)
		})
		if err != nil {
			report.Failed = append(report.Failed, GroupResult{Group: group, TimesheetID: result.ID, Err: err})
			continue
		}
		report.Pushed = append(report.Pushed, GroupResult{Group: group, TimesheetID: result.ID})
	}
	return report, nil
}
