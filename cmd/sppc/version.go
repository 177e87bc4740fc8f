package main

import (
	"fmt"

	"github.com/alusus/sppcore/internal/version"
	"github.com/spf13/cobra"
)

// VersionCommand represents the version command
type VersionCommand struct {
	short bool
}

// NewVersionCommand creates a new version command
func NewVersionCommand() *VersionCommand {
	return &VersionCommand{
		short: false,
	}
}

// CreateCobraCommand creates the cobra command for version display
func (v *VersionCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display detailed version information for sppc.

Shows version number, build commit, build date, Go version, and platform
information. Use --short to display only the version number.`,
		RunE: v.runVersion,
	}
	cmd.Flags().BoolVar(&v.short, "short", false, "Show only the version number")
	return cmd
}

func (v *VersionCommand) runVersion(cmd *cobra.Command, args []string) error {
	if v.short {
		fmt.Fprintln(cmd.OutOrStdout(), version.Short())
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	return nil
}
