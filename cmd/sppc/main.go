package main

import (
	"os"

	"github.com/alusus/sppcore/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sppc",
	Short: "Compiler core driver for SPP fixture modules",
	Long: `sppc drives the SPP compiler core over fixture modules: it loads
hand-assembled AST fixtures, resolves references across nested scopes,
lowers typed expressions through the staged generation driver, and reports
diagnostics.

The binary binds the core to a recording debug target; a production
backend links the core as a library and supplies its own target generator.`,
	Version: version.Short(),
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewBuildCommand().CreateCobraCommand())
	rootCmd.AddCommand(NewCheckCommand().CreateCobraCommand())
	rootCmd.AddCommand(NewVersionCommand().CreateCobraCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
