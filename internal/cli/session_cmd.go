package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/nectime/internal/cli/formatter"
	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/alexanderramin/nectime/internal/gitlog"
	"github.com/alexanderramin/nectime/internal/repository"
	"github.com/alexanderramin/nectime/internal/service"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start tracking the current folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			open, err := app.Sessions.ListByFolder(ctx, cwd)
			if err != nil {
				return err
			}
			if len(open) > 0 {
				fmt.Printf("session %s already tracking this folder since %s\n",
					open[0].ID[:8], formatter.FormatClock(open[0].Begin))
				return nil
			}

			p := service.StartSession{
				ID:             uuid.New().String(),
				Folder:         cwd,
				Classification: domain.ClassPending,
			}
			mapping, err := app.Mappings.Resolve(ctx, cwd)
			switch {
			case err == nil:
				if mapping.Classification == domain.ClassOff {
					fmt.Println("folder is classified off; nothing to track")
					return nil
				}
				p.Classification = mapping.Classification
				p.ProjectID = mapping.ProjectID
				p.ProjectName = mapping.ProjectName
			case errors.Is(err, repository.ErrNotFound):
				fmt.Println(formatter.Dim("folder is not mapped; tracking as pending (run `nectime set`)"))
			default:
				return err
			}

			session, err := app.Sessions.Start(ctx, p)
			if err != nil {
				return err
			}
			fmt.Printf("Started session %s in %s\n", session.ID[:8], cwd)
			return nil
		},
	}
}

func newStopCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop a session and append it to the local log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSessionID(ctx, app, sessionID)
			if err != nil {
				if errors.Is(err, service.ErrNoActiveSession) {
					fmt.Println("no active session")
					return nil
				}
				return err
			}

			session, err := app.Sessions.GetByID(ctx, id)
			if err != nil {
				return err
			}
			begin := session.Begin

			finished, err := app.Sessions.Stop(ctx, id)
			if err != nil {
				return err
			}
			if finished.Activity == "" {
				finished.Activity = app.Config.DefaultActivity
			}
			finished.Commits = gitlog.Commits(ctx, finished.Folder, begin, finished.End)

			entry, err := app.Logs.Add(ctx, finished, false)
			if err != nil {
				return err
			}
			fmt.Printf("Logged %s on %s (%s)\n",
				formatter.FormatMinutes(entry.BilledMinutes), entry.Date, entry.Activity)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session identifier (default: resolve by folder)")
	return cmd
}

func newCancelCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Discard a session without logging it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSessionID(ctx, app, sessionID)
			if err != nil {
				if errors.Is(err, service.ErrNoActiveSession) {
					fmt.Println("no active session")
					return nil
				}
				return err
			}
			if err := app.Sessions.Cancel(ctx, id); err != nil {
				return err
			}
			fmt.Println("Session discarded")
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session identifier (default: resolve by folder)")
	return cmd
}

func newStatusCmd(app *App) *cobra.Command {
	var all bool
	var sessionID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active session, or all sessions with --all",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()

			if all {
				sessions, err := app.Sessions.List(ctx)
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					fmt.Println("no active sessions")
					return nil
				}
				fmt.Print(formatter.FormatSessionTable(sessions, now))
				return nil
			}

			id, err := resolveSessionID(ctx, app, sessionID)
			if err != nil {
				if errors.Is(err, service.ErrNoActiveSession) {
					fmt.Println("no active session")
					return nil
				}
				if errors.Is(err, service.ErrAmbiguousSession) {
					return fmt.Errorf("%w; use --all or --session", err)
				}
				return err
			}
			session, err := app.Sessions.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatSession(session, now))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every open session")
	cmd.Flags().StringVar(&sessionID, "session", "", "Session identifier (default: resolve by folder)")
	return cmd
}

func newActivityCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "activity [key]",
		Short: "Show or set the current session activity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSessionID(ctx, app, sessionID)
			if err != nil {
				if errors.Is(err, service.ErrNoActiveSession) {
					fmt.Println("no active session")
					return nil
				}
				return err
			}

			if len(args) == 0 {
				session, err := app.Sessions.GetByID(ctx, id)
				if err != nil {
					return err
				}
				if session.CurrentActivity == "" {
					fmt.Println("no activity set")
					return nil
				}
				fmt.Println(session.CurrentActivity)
				return nil
			}

			key := args[0]
			if _, ok := app.Config.ActivityID(key); !ok {
				return fmt.Errorf("unknown activity %q (known: %s)",
					key, strings.Join(knownActivities(app), ", "))
			}
			if err := app.Sessions.UpdateActivity(ctx, id, key); err != nil {
				return err
			}
			fmt.Printf("Activity set to %s\n", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session identifier (default: resolve by folder)")
	return cmd
}

func newDescribeCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "describe <text>...",
		Short: "Attach a description to the active session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSessionID(ctx, app, sessionID)
			if err != nil {
				if errors.Is(err, service.ErrNoActiveSession) {
					fmt.Println("no active session")
					return nil
				}
				return err
			}
			if err := app.Sessions.Describe(ctx, id, strings.Join(args, " ")); err != nil {
				return err
			}
			fmt.Println("Description saved")
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session identifier (default: resolve by folder)")
	return cmd
}

func newCleanupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Reclaim stale sessions into the local log",
		RunE: func(cmd *cobra.Command, args []string) error {
			reclaimed, err := app.Sessions.CleanupOld(context.Background())
			if err != nil {
				return err
			}
			if len(reclaimed) == 0 {
				fmt.Println("no stale sessions")
				return nil
			}
			for _, r := range reclaimed {
				fmt.Printf("Reclaimed %s: %s from %s (%s)\n",
					r.SessionID[:8], r.Folder,
					r.Begin.Format("2006-01-02 15:04"),
					formatter.FormatMinutes(r.BilledMinutes))
			}
			return nil
		},
	}
}

func knownActivities(app *App) []string {
	keys := make([]string, 0, len(app.Config.ActivityMappings))
	for k := range app.Config.ActivityMappings {
		keys = append(keys, k)
	}
	return keys
}
