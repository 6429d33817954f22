package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	var parts []string
	if a.authService != nil {
		if sess := a.authService.Current(); sess != nil {
			parts = append(parts, sess.User.Username)
		}
	}
	if m := a.mode(); m != "" {
		parts = append(parts, string(m))
	}
	if a.contentService != nil {
		if tripped, _ := a.contentService.QuotaStatus(); tripped {
			parts = append(parts, "quota-paused")
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf(" (%s)", strings.Join(parts, " "))
}

// Root restores the previous session if there is one, starts the
// connectivity watcher and runs the REPL.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to Divya Drishti CLI (type 'help' for commands)")

	a.restore(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
