package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/nectime/internal/cli/formatter"
	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// isInteractive reports whether prompts can be shown.
func isInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func nectimeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// classificationForm collects a classification interactively.
func classificationForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Classification").
				Options(
					huh.NewOption("pro: billable client work", string(domain.ClassPro)),
					huh.NewOption("perso: personal, tracked but never pushed", string(domain.ClassPerso)),
					huh.NewOption("off: not tracked at all", string(domain.ClassOff)),
				).
				Value(value),
		),
	).WithTheme(nectimeHuhTheme()).WithShowHelp(false)
}

// projectSearchForm collects a project search term.
func projectSearchForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project search").
				Placeholder("client name or folder name").
				Value(value),
		),
	).WithTheme(nectimeHuhTheme()).WithShowHelp(false)
}

// projectPickForm selects one project from candidates; option values carry
// "id<TAB>name" so both survive the selection.
func projectPickForm(options []huh.Option[string], value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Project").
				Options(options...).
				Value(value),
		),
	).WithTheme(nectimeHuhTheme()).WithShowHelp(false)
}

// confirmForm asks a yes/no question.
func confirmForm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Push").
				Negative("Abort").
				Value(value),
		),
	).WithTheme(nectimeHuhTheme()).WithShowHelp(false)
}

// pickEntry lets the user select one unpushed log entry, returning its id
// ("" when there are none or the terminal is not interactive).
func pickEntry(ctx context.Context, app *App) (string, error) {
	entries, err := app.Logs.Unpushed(ctx)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 || !isInteractive() {
		return "", nil
	}

	options := make([]huh.Option[string], 0, len(entries))
	for _, e := range entries {
		label := fmt.Sprintf("%s  %s  %s (%s)",
			e.Date, formatter.FormatMinutes(e.BilledMinutes), e.ProjectName, e.Activity)
		options = append(options, huh.NewOption(label, e.ID))
	}

	var id string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Entry").
				Options(options...).
				Value(&id),
		),
	).WithTheme(nectimeHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return "", err
	}
	return id, nil
}

// editEntryForm collects a new description and activity. Returns false when
// the terminal is not interactive.
func editEntryForm(description, activity *string, app *App) (bool, error) {
	if !isInteractive() {
		return false, nil
	}

	options := []huh.Option[string]{huh.NewOption("(keep)", "")}
	for _, key := range knownActivities(app) {
		options = append(options, huh.NewOption(key, key))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description (blank to keep)").
				Value(description),
			huh.NewSelect[string]().
				Title("Activity").
				Options(options...).
				Value(activity),
		),
	).WithTheme(nectimeHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return false, err
	}
	return *description != "" || *activity != "", nil
}
