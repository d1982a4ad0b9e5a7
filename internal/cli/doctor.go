package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modu-ai/claudekit/internal/core/project"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the project has the expected Claude Code files",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	report := project.NewDoctor(deps.Detector).Run(root)

	lines := make([]string, 0, len(report.Checks))
	for _, c := range report.Checks {
		sym := symSuccess()
		if !c.Passed {
			sym = symError()
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", sym, c.Name, cliMuted.Render(c.Detail)))
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, renderCard("claudekit doctor ("+string(report.Type)+")", strings.Join(lines, "\n")))

	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("doctor found %d problem(s)", len(failed))
	}
	return nil
}
