package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/nectime/internal/hook"
	"github.com/spf13/cobra"
)

// newHookCmd reads one lifecycle event from stdin and answers on stdout.
// It always exits zero: a hook failure must never break the editor that
// invoked it.
func newHookCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:    "hook",
		Short:  "Handle an editor lifecycle event from stdin",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in hook.Input
			if err := json.NewDecoder(os.Stdin).Decode(&in); err != nil {
				return nil
			}

			out := app.Hook.Handle(context.Background(), in)
			if out.SystemMessage != "" {
				fmt.Fprintln(os.Stderr, out.SystemMessage)
			}
			_ = json.NewEncoder(os.Stdout).Encode(out)
			return nil
		},
	}
}
