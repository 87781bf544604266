package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/nectime/internal/cli/formatter"
	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show logged entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" {
				if _, err := time.Parse(domain.DateLayout, date); err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
			}
			entries, err := app.Logs.Entries(context.Background(), date)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("no entries")
				return nil
			}
			fmt.Print(formatter.FormatLogTable(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Restrict to one day (YYYY-MM-DD)")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var id, description, activity string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit an unpushed log entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if id == "" {
				picked, err := pickEntry(ctx, app)
				if err != nil {
					return err
				}
				if picked == "" {
					fmt.Println("nothing to edit")
					return nil
				}
				id = picked
			}

			if description == "" && activity == "" {
				edited, err := editEntryForm(&description, &activity, app)
				if err != nil {
					return err
				}
				if !edited {
					return fmt.Errorf("nothing to change; pass --description or --activity")
				}
			}

			if description != "" {
				if err := app.Logs.SetDescription(ctx, id, description); err != nil {
					return err
				}
			}
			if activity != "" {
				if _, ok := app.Config.ActivityID(activity); !ok {
					return fmt.Errorf("unknown activity %q (known: %s)",
						activity, strings.Join(knownActivities(app), ", "))
				}
				if err := app.Logs.SetActivity(ctx, id, activity); err != nil {
					return err
				}
			}
			fmt.Println("Entry updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Entry identifier")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&activity, "activity", "", "New activity key")
	return cmd
}

func newFillCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Backfill empty weekdays from neighboring days",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse(domain.DateLayout, from)
			if err != nil {
				return fmt.Errorf("invalid --from %q: %w", from, err)
			}
			end, err := time.Parse(domain.DateLayout, to)
			if err != nil {
				return fmt.Errorf("invalid --to %q: %w", to, err)
			}
			if end.Before(start) {
				return fmt.Errorf("--to %s is before --from %s", to, from)
			}

			created, err := app.Logs.FillEmptyWeekdays(context.Background(), start, end)
			if err != nil {
				return err
			}
			if len(created) == 0 {
				fmt.Println("nothing to fill")
				return nil
			}
			for _, e := range created {
				fmt.Printf("Filled %s from %s: %s %s (%s)\n",
					e.Date, e.FilledFrom, e.ProjectName, e.Activity,
					formatter.FormatMinutes(e.BilledMinutes))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Range end, inclusive (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
