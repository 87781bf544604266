package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/nectime/internal/cli/formatter"
	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/spf13/cobra"
)

func newPushCmd(app *App) *cobra.Command {
	var date string
	var yes bool

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Consolidate unpushed entries and submit them to the tracker",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			plan, err := app.Push.Plan(ctx, date)
			if err != nil {
				return err
			}
			if len(plan.Groups) == 0 {
				fmt.Println("nothing to push")
				return nil
			}

			fmt.Print(formatter.FormatGroups(plan.Groups, false))
			if app.Config.DryRun {
				fmt.Println(formatter.Dim("\ndry-run mode: nothing will be submitted (dry_run: false in config to go live)"))
			} else {
				if err := app.Config.RequireKimai(); err != nil {
					return err
				}
				if !yes {
					if !isInteractive() {
						return fmt.Errorf("live push needs --yes when not run from a terminal")
					}
					confirmed := false
					prompt := fmt.Sprintf("Submit %d group(s) to %s?", len(plan.Groups), app.Config.Kimai.URL)
					if err := confirmForm(prompt, &confirmed).Run(); err != nil {
						return err
					}
					if !confirmed {
						fmt.Println("aborted")
						return nil
					}
				}
			}

			report, err := app.Push.Push(ctx, date)
			if err != nil {
				return err
			}

			for _, r := range report.Pushed {
				if report.DryRun {
					fmt.Printf("%s %s: %s %s\n", formatter.Dim("would push"),
						r.Group.Date, r.Group.ProjectName, formatter.FormatMinutes(r.Group.RoundedMinutes))
					continue
				}
				fmt.Printf("%s %s: %s %s (timesheet #%d)\n", formatter.StyleGreen.Render("pushed"),
					r.Group.Date, r.Group.ProjectName, formatter.FormatMinutes(r.Group.RoundedMinutes), r.TimesheetID)
			}
			for _, r := range report.Skipped {
				if r.Err != nil {
					fmt.Printf("%s %s: %v\n", formatter.StyleYellow.Render("skipped"), r.Group.Date, r.Err)
				}
			}
			for _, r := range report.Failed {
				fmt.Printf("%s %s: %v\n", formatter.StyleRed.Render("failed"), r.Group.Date, r.Err)
			}
			if len(report.Failed) > 0 {
				return fmt.Errorf("%d group(s) failed; their entries remain unpushed", len(report.Failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Restrict to one day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func newSummaryCmd(app *App) *cobra.Command {
	var date string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Preview consolidation without pushing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			plan, err := app.Push.Plan(ctx, date)
			if err != nil {
				return err
			}
			if len(plan.Groups) == 0 {
				fmt.Println("nothing to consolidate")
				return nil
			}

			fmt.Print(formatter.FormatGroups(plan.Groups, verbose))

			seen := map[string]bool{}
			for _, g := range plan.Groups {
				if seen[g.Date] {
					continue
				}
				seen[g.Date] = true
				total, err := app.Logs.DailyTotal(ctx, g.Date)
				if err == nil && total.Billed > 0 {
					fmt.Println(formatter.FormatDailyTotal(&domain.DailyTotal{
						Date: g.Date, Billed: total.Billed, Real: total.Real,
					}))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Restrict to one day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Include descriptions and commits per group")
	return cmd
}
