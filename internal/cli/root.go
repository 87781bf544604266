package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/nectime/internal/config"
	"github.com/alexanderramin/nectime/internal/hook"
	"github.com/alexanderramin/nectime/internal/kimai"
	"github.com/alexanderramin/nectime/internal/repository"
	"github.com/alexanderramin/nectime/internal/service"
	"github.com/spf13/cobra"
)

// App holds the service interfaces and collaborators the commands run
// against.
type App struct {
	Sessions service.SessionService
	Logs     service.LogService
	Push     service.PushService
	Mappings repository.MappingRepo
	Kimai    *kimai.Client
	Hook     *hook.Handler
	Config   *config.Config
}

// NewRootCmd creates the top-level "nectime" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "nectime",
		Short:         "Billable work-session tracker with Kimai sync",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newStartCmd(app),
		newStopCmd(app),
		newCancelCmd(app),
		newStatusCmd(app),
		newLogCmd(app),
		newSetCmd(app),
		newActivityCmd(app),
		newDescribeCmd(app),
		newEditCmd(app),
		newPushCmd(app),
		newSummaryCmd(app),
		newProjectsCmd(app),
		newActivitiesCmd(app),
		newCleanupCmd(app),
		newFillCmd(app),
		newHookCmd(app),
	)

	return root
}

// resolveSessionID returns the explicit --session value, or falls back to
// folder resolution for the current working directory.
func resolveSessionID(ctx context.Context, app *App, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return app.Sessions.Resolve(ctx, cwd)
}
