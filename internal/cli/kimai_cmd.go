package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/nectime/internal/cli/formatter"
	"github.com/alexanderramin/nectime/internal/kimai"
	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List tracker projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.RequireKimai(); err != nil {
				return err
			}
			ctx := context.Background()

			var projects []kimai.Project
			var err error
			if search != "" {
				projects, err = app.Kimai.FindProjectsByName(ctx, search)
			} else {
				projects, err = app.Kimai.Projects(ctx, true)
			}
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("no projects")
				return nil
			}

			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{strconv.Itoa(p.ID), p.Name})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "NAME"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Fuzzy name filter")
	return cmd
}

func newActivitiesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activities",
		Short: "List tracker activities and their local keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.RequireKimai(); err != nil {
				return err
			}
			activities, err := app.Kimai.Activities(context.Background(), true)
			if err != nil {
				return err
			}
			if len(activities) == 0 {
				fmt.Println("no activities")
				return nil
			}

			// Invert the config mapping so each remote id shows its key.
			keyByID := make(map[int]string, len(app.Config.ActivityMappings))
			for key, m := range app.Config.ActivityMappings {
				keyByID[m.ID] = key
			}

			rows := make([][]string, 0, len(activities))
			for _, a := range activities {
				key := keyByID[a.ID]
				if key == "" {
					key = formatter.Dim("-")
				}
				rows = append(rows, []string{strconv.Itoa(a.ID), a.Name, key})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "NAME", "KEY"}, rows))
			return nil
		},
	}
}
