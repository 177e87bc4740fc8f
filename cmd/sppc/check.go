package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alusus/sppcore/internal/config"
)

// CheckCommand runs the full generation walk but reports diagnostics only,
// discarding the target trace — a CI-friendly type/reference check.
type CheckCommand struct {
	configFile string
	quiet      bool
}

// NewCheckCommand creates a new check command
func NewCheckCommand() *CheckCommand {
	return &CheckCommand{}
}

// CreateCobraCommand creates the cobra command for quick checking
func (c *CheckCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [directory]",
		Short: "Check fixture modules without emitting target code output",
		Long: `Load every fixture module under the given directory and run the staged
generation walk, reporting reference-resolution and type diagnostics.

Exit codes:
  0: no issues found
  1: diagnostics were reported or the check could not run

The check command is designed to be fast and CI-friendly with minimal
output unless issues are found.`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         c.runCheck,
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().BoolVarP(&c.quiet, "quiet", "q", false, "Suppress output unless issues found")
	return cmd
}

func (c *CheckCommand) runCheck(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	cfg, err := config.LoadConfig(c.configFile)
	if err != nil {
		return err
	}

	result, err := runGeneration(root, cfg, false, nil)
	if err != nil {
		return err
	}

	printer := NewNoticePrinter(cmd.ErrOrStderr(), cfg.Output.Color)
	printer.Print(result.Notices)
	if result.LoadErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "fixture load: %v\n", result.LoadErr)
	}
	if result.RunErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "generation: %v\n", result.RunErr)
	}

	if result.hasErrors() {
		return fmt.Errorf("check found issues in %d module(s)", len(result.Modules))
	}
	if !c.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d module(s) checked\n", len(result.Modules))
	}
	return nil
}
