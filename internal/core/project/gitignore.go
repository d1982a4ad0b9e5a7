package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modu-ai/claudekit/internal/defs"
)

// gitIgnoreMarker identifies an ignore file that already carries the stanza.
const gitIgnoreMarker = ".claude/*"

// GitIgnoreStanza is appended to the project ignore file once. It hides
// local Claude state but keeps the shared command documents tracked.
const GitIgnoreStanza = "# Claude Code\n.claude/*\n!.claude/commands/\n"

// EnsureGitIgnore appends GitIgnoreStanza to root/.gitignore unless the file
// already mentions .claude/*. The file is created when missing. It reports
// whether the file changed.
func EnsureGitIgnore(root string) (bool, error) {
	p := filepath.Join(root, defs.GitIgnore)

	data, err := os.ReadFile(p)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read %s: %w", defs.GitIgnore, err)
	}
	if bytes.Contains(data, []byte(gitIgnoreMarker)) {
		return false, nil
	}

	var buf bytes.Buffer
	buf.Write(data)
	if len(data) > 0 {
		if !bytes.HasSuffix(data, []byte("\n")) {
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(GitIgnoreStanza)

	if err := os.WriteFile(p, buf.Bytes(), defs.FilePerm); err != nil {
		return false, fmt.Errorf("write %s: %w", defs.GitIgnore, err)
	}
	return true, nil
}
