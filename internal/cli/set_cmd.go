package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/nectime/internal/cli/formatter"
	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newSetCmd(app *App) *cobra.Command {
	var folder, activity string

	cmd := &cobra.Command{
		Use:   "set [pro|perso|off] [project-id]",
		Short: "Classify a folder for tracking",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			target := folder
			if target == "" {
				var err error
				target, err = filepath.Abs(".")
				if err != nil {
					return err
				}
			}
			target = filepath.Clean(target)

			m := &domain.FolderMapping{Folder: target, Activity: activity}

			if len(args) == 0 {
				if !isInteractive() {
					return fmt.Errorf("classification required: nectime set <pro|perso|off>")
				}
				if err := fillMappingInteractive(ctx, app, m); err != nil {
					return err
				}
			} else {
				class := domain.Classification(args[0])
				if !domain.ValidClassifications[class] || class == domain.ClassPending {
					return fmt.Errorf("invalid classification %q (pro, perso or off)", args[0])
				}
				m.Classification = class

				if class == domain.ClassPro {
					if len(args) < 2 {
						return fmt.Errorf("pro mappings need a project id: nectime set pro <project-id>")
					}
					id, err := strconv.Atoi(args[1])
					if err != nil {
						return fmt.Errorf("invalid project id %q: %w", args[1], err)
					}
					m.ProjectID = &id
					m.ProjectName = lookupProjectName(ctx, app, id)
				}
			}

			if m.Classification == domain.ClassPro && m.Activity == "" {
				m.Activity = app.Config.DefaultActivity
			}

			if err := app.Mappings.Put(ctx, m); err != nil {
				return err
			}

			label := string(m.Classification)
			if m.ProjectName != "" {
				label = fmt.Sprintf("%s (%s)", m.ProjectName, label)
			}
			fmt.Printf("Mapped %s → %s\n", target, label)
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Folder to map (default: current directory)")
	cmd.Flags().StringVar(&activity, "activity", "", "Activity key for this folder")
	return cmd
}

// fillMappingInteractive drives the huh flow: classification first, then a
// project search against the tracker for pro folders.
func fillMappingInteractive(ctx context.Context, app *App, m *domain.FolderMapping) error {
	var class string
	if err := classificationForm(&class).Run(); err != nil {
		return err
	}
	m.Classification = domain.Classification(class)
	if m.Classification != domain.ClassPro {
		return nil
	}

	if err := app.Config.RequireKimai(); err != nil {
		return fmt.Errorf("pro mappings need the tracker configured: %w", err)
	}

	search := filepath.Base(m.Folder)
	if err := projectSearchForm(&search).Run(); err != nil {
		return err
	}
	projects, err := app.Kimai.FindProjectsByName(ctx, search)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		return fmt.Errorf("no project matches %q", search)
	}

	options := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		options = append(options, huh.NewOption(
			fmt.Sprintf("%s %s", p.Name, formatter.Dim(fmt.Sprintf("#%d", p.ID))),
			fmt.Sprintf("%d\t%s", p.ID, p.Name)))
	}

	var picked string
	if err := projectPickForm(options, &picked).Run(); err != nil {
		return err
	}
	idStr, name, _ := strings.Cut(picked, "\t")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return fmt.Errorf("invalid project selection %q: %w", picked, err)
	}
	m.ProjectID = &id
	m.ProjectName = name
	return nil
}

// lookupProjectName resolves a project id to its name, best effort. An
// unreachable tracker leaves the name empty rather than failing the set.
func lookupProjectName(ctx context.Context, app *App, id int) string {
	if err := app.Config.RequireKimai(); err != nil {
		return ""
	}
	projects, err := app.Kimai.Projects(ctx, true)
	if err != nil {
		return ""
	}
	for _, p := range projects {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}
