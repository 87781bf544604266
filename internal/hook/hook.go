// Package hook translates editor lifecycle events into session registry
// operations. Handlers never fail the caller: every error degrades to a
// silent no-op or an advisory message, because a broken hook must not
// interrupt the tool that fired it.
package hook

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/nectime/internal/config"
	"github.com/alexanderramin/nectime/internal/domain"
	"github.com/alexanderramin/nectime/internal/gitlog"
	"github.com/alexanderramin/nectime/internal/kimai"
	"github.com/alexanderramin/nectime/internal/repository"
	"github.com/alexanderramin/nectime/internal/service"
)

// Event names as delivered on stdin.
const (
	EventSessionStart     = "SessionStart"
	EventSessionEnd       = "SessionEnd"
	EventUserPromptSubmit = "UserPromptSubmit"
)

// Input is the JSON payload the editor writes to the hook's stdin.
type Input struct {
	SessionID string `json:"session_id"`
	Cwd       string `json:"cwd"`
	Event     string `json:"hook_event_name"`
	Source    string `json:"source"`
	Prompt    string `json:"prompt"`
}

// Output is echoed back on stdout. A non-empty SystemMessage is surfaced
// to the user by the editor.
type Output struct {
	SystemMessage string `json:"systemMessage,omitempty"`
}

// ProjectFinder is the slice of the Kimai client used for mapping
// suggestions. It may be nil when the tracker is not configured.
type ProjectFinder interface {
	FindProjectsByName(ctx context.Context, search string) ([]kimai.Project, error)
}

// Handler dispatches lifecycle events onto the session registry.
type Handler struct {
	sessions service.SessionService
	logs     service.LogService
	mappings repository.MappingRepo
	finder   ProjectFinder
	cfg      *config.Config
}

func NewHandler(sessions service.SessionService, logs service.LogService, mappings repository.MappingRepo, finder ProjectFinder, cfg *config.Config) *Handler {
	return &Handler{
		sessions: sessions,
		logs:     logs,
		mappings: mappings,
		finder:   finder,
		cfg:      cfg,
	}
}

// Handle routes one event. Unknown events return an empty output.
func (h *Handler) Handle(ctx context.Context, in Input) Output {
	switch in.Event {
	case EventSessionStart:
		return h.sessionStart(ctx, in)
	case EventSessionEnd:
		return h.sessionEnd(ctx, in)
	case EventUserPromptSubmit:
		return h.promptSubmit(ctx, in)
	default:
		return Output{}
	}
}

func (h *Handler) sessionStart(ctx context.Context, in Input) Output {
	// Resumed and compacted conversations are the same working session;
	// only genuinely new ones open a timer.
	switch in.Source {
	case "resume", "clear", "compact":
		return Output{}
	}

	var notes []string
	if reclaimed, err := h.sessions.CleanupOld(ctx); err == nil && len(reclaimed) > 0 {
		notes = append(notes, fmt.Sprintf("reclaimed %d stale session(s)", len(reclaimed)))
	}

	if existing, err := h.sessions.GetByID(ctx, in.SessionID); err == nil {
		return h.message(notes, fmt.Sprintf("already tracking %s since %s",
			existing.Folder, existing.Begin.Format("15:04")))
	}

	mapping, err := h.mappings.Resolve(ctx, in.Cwd)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return h.message(notes, "")
		}
		return h.startPending(ctx, in, notes)
	}

	switch mapping.Classification {
	case domain.ClassOff:
		return h.message(notes, "")
	case domain.ClassPending:
		return h.startPending(ctx, in, notes)
	}

	_, err = h.sessions.Start(ctx, service.StartSession{
		ID:             in.SessionID,
		Folder:         in.Cwd,
		Classification: mapping.Classification,
		ProjectID:      mapping.ProjectID,
		ProjectName:    mapping.ProjectName,
	})
	if err != nil {
		if errors.Is(err, service.ErrAlreadyActive) {
			return h.message(notes, fmt.Sprintf("already tracking %s", in.Cwd))
		}
		return h.message(notes, "")
	}

	label := mapping.ProjectName
	if label == "" {
		label = string(mapping.Classification)
	}
	return h.message(notes, fmt.Sprintf("tracking %s (%s)", label, mapping.Activity))
}

// startPending opens an unmapped session so the time is not lost, and
// suggests candidate project mappings when the tracker is reachable.
func (h *Handler) startPending(ctx context.Context, in Input, notes []string) Output {
	_, err := h.sessions.Start(ctx, service.StartSession{
		ID:             in.SessionID,
		Folder:         in.Cwd,
		Classification: domain.ClassPending,
	})
	if err != nil && !errors.Is(err, service.ErrAlreadyActive) {
		return h.message(notes, "")
	}

	msg := fmt.Sprintf("folder %s is not mapped; run `nectime set` to classify it", in.Cwd)
	if suggestions := h.suggestProjects(ctx, in.Cwd); len(suggestions) > 0 {
		msg += " (candidates: " + strings.Join(suggestions, ", ") + ")"
	}
	return h.message(notes, msg)
}

func (h *Handler) suggestProjects(ctx context.Context, folder string) []string {
	if h.finder == nil {
		return nil
	}
	base := baseName(folder)
	if base == "" {
		return nil
	}
	projects, err := h.finder.FindProjectsByName(ctx, base)
	if err != nil {
		return nil
	}
	var names []string
	for _, p := range projects {
		names = append(names, p.Name)
		if len(names) == 3 {
			break
		}
	}
	return names
}

func (h *Handler) sessionEnd(ctx context.Context, in Input) Output {
	session, err := h.sessions.GetByID(ctx, in.SessionID)
	if err != nil {
		return Output{}
	}
	begin := session.Begin

	finished, err := h.sessions.Stop(ctx, in.SessionID)
	if err != nil {
		return Output{}
	}
	if finished.Activity == "" {
		finished.Activity = h.cfg.DefaultActivity
	}
	finished.Commits = gitlog.Commits(ctx, finished.Folder, begin, finished.End)

	if _, err := h.logs.Add(ctx, finished, false); err != nil {
		return Output{}
	}
	return Output{SystemMessage: fmt.Sprintf("logged %s for %s",
		formatMinutes(finished.BilledMinutes), finished.Folder)}
}

func (h *Handler) promptSubmit(ctx context.Context, in Input) Output {
	estimate := ""
	if h.cfg.AutoActivity.Enabled {
		estimate = EstimateActivity(in.Prompt, h.cfg.AutoActivity.Rules)
	}
	// Unknown session ids are a silent no-op inside the service: prompts
	// also fire in folders that are off or untracked.
	_ = h.sessions.UpdateActivity(ctx, in.SessionID, estimate)
	return Output{}
}

func (h *Handler) message(notes []string, msg string) Output {
	if msg != "" {
		notes = append(notes, msg)
	}
	if len(notes) == 0 {
		return Output{}
	}
	return Output{SystemMessage: "nectime: " + strings.Join(notes, "; ")}
}

func baseName(folder string) string {
	folder = strings.TrimRight(folder, "/")
	if i := strings.LastIndexByte(folder, '/'); i >= 0 {
		return folder[i+1:]
	}
	return folder
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%dh%02d", m/60, m%60)
}
