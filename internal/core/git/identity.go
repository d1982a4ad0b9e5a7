package git

import (
	"context"
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds every git invocation made by this package.
const DefaultTimeout = 2 * time.Second

// Lookup hooks, replaced in tests.
var (
	gitUserName = UserName
	getenv      = os.Getenv
)

// UserName returns `git config user.name` as seen from dir, or "" when git
// is missing, times out, or has no name configured.
func UserName(ctx context.Context, dir string) string {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	out, err := execGit(ctx, dir, "config", "user.name")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ResolveUserName picks the display name for generated documents. The
// first non-empty source wins: the flag, the configured name, git, then
// the USER and USERNAME environment variables. It returns "" when nothing
// is known so the caller can prompt.
func ResolveUserName(ctx context.Context, flag, configured, dir string) string {
	if name := strings.TrimSpace(flag); name != "" {
		return name
	}
	if name := strings.TrimSpace(configured); name != "" {
		return name
	}
	if name := gitUserName(ctx, dir); name != "" {
		return name
	}
	for _, key := range []string{"USER", "USERNAME"} {
		if name := strings.TrimSpace(getenv(key)); name != "" {
			return name
		}
	}
	return ""
}
