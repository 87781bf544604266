// Package gitlog retrieves one-line commit summaries for a time window.
// Commit annotation is best-effort enrichment: every failure mode
// (non-repository, timeout, non-zero exit) yields an empty list, never an
// error.
package gitlog

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// commandTimeout bounds the git subprocess; hook handlers must never hang.
const commandTimeout = 5 * time.Second

// Commits returns "<short-hash> <subject>" lines for commits in folder
// within [since, until), newest first.
func Commits(ctx context.Context, folder string, since, until time.Time) []string {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "log", "--oneline",
		"--since", since.Format(time.RFC3339),
		"--until", until.Format(time.RFC3339),
		"--format=%h %s")
	cmd.Dir = folder

	out, err := cmd.Output()
	if err != nil {
		return nil
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
