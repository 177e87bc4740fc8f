package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alusus/sppcore/internal/config"
	"github.com/alusus/sppcore/internal/notice"
)

// BuildCommand loads fixture modules and runs the full staged generation
// walk, printing the recorded target-operation trace.
type BuildCommand struct {
	configFile   string
	outputFormat string
	noColor      bool
	showProgress bool
	watch        bool
}

// NewBuildCommand creates a new build command
func NewBuildCommand() *BuildCommand {
	return &BuildCommand{}
}

// CreateCobraCommand creates the cobra command for building
func (b *BuildCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [directory]",
		Short: "Generate target code for fixture modules",
		Long: `Load every fixture module under the given directory (default: current
directory), run the staged generation walk — declare types, declare
function signatures, emit bodies — and print the target operations the run
produced.

Exit codes:
  0: generation completed without diagnostics
  1: diagnostics were reported or generation failed`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         b.runBuild,
		SilenceUsage: true,
	}
	b.registerFlags(cmd.Flags())
	return cmd
}

func (b *BuildCommand) registerFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&b.configFile, "config", "c", "", "Configuration file path")
	flags.StringVarP(&b.outputFormat, "output", "o", "", "Output format: text, json, yaml")
	flags.BoolVar(&b.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&b.showProgress, "progress", false, "Show a progress bar during generation")
	flags.BoolVarP(&b.watch, "watch", "w", false, "Re-run generation when the config file changes")
}

func (b *BuildCommand) runBuild(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	cfg, err := config.LoadConfig(b.configFile)
	if err != nil {
		return err
	}
	if b.outputFormat != "" {
		cfg.Output.Format = b.outputFormat
	}
	if b.noColor {
		cfg.Output.Color = false
	}

	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	var logger *log.Logger
	if verbose {
		logger = log.New(cmd.ErrOrStderr(), "sppc: ", log.LstdFlags)
	}

	if err := b.buildOnce(cmd, root, cfg, logger); err != nil {
		if !b.watch {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "build failed: %v\n", err)
	}
	if !b.watch {
		return nil
	}
	return b.watchAndRebuild(cmd, root, logger)
}

func (b *BuildCommand) buildOnce(cmd *cobra.Command, root string, cfg *config.Config, logger *log.Logger) error {
	result, err := runGeneration(root, cfg, b.showProgress || cfg.Output.ShowProgress, logger)
	if err != nil {
		return err
	}

	switch cfg.Output.Format {
	case "", "text":
		for _, line := range result.Trace {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		printer := NewNoticePrinter(cmd.ErrOrStderr(), cfg.Output.Color)
		printer.Print(result.Notices)
		errorCount := 0
		for _, n := range result.Notices {
			if n.Severity == notice.SeverityError {
				errorCount++
			}
		}
		printer.Summary(len(result.Modules), len(result.Trace), errorCount)
	default:
		if err := renderStructured(cmd.OutOrStdout(), cfg.Output.Format, result); err != nil {
			return err
		}
	}

	if result.LoadErr != nil {
		return fmt.Errorf("some fixtures failed to load: %w", result.LoadErr)
	}
	if result.RunErr != nil {
		return result.RunErr
	}
	if result.hasErrors() {
		return fmt.Errorf("generation reported diagnostics")
	}
	return nil
}

// watchAndRebuild blocks, re-running the build whenever the configuration
// file changes. Fixture edits are picked up too, since every rebuild
// re-discovers and re-parses the fixture set.
func (b *BuildCommand) watchAndRebuild(cmd *cobra.Command, root string, logger *log.Logger) error {
	path := b.configFile
	if path == "" {
		found, err := config.FindConfigFile(root)
		if err != nil {
			return err
		}
		if found == "" {
			return fmt.Errorf("--watch requires a %s file to watch", config.DefaultConfigFileName)
		}
		path = found
	}

	rebuilds := make(chan *config.Config, 1)
	err := config.Watch(path,
		func(cfg *config.Config) { rebuilds <- cfg },
		func(err error) { fmt.Fprintf(cmd.ErrOrStderr(), "config reload failed: %v\n", err) },
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s; press Ctrl-C to stop\n", path)
	for cfg := range rebuilds {
		if b.outputFormat != "" {
			cfg.Output.Format = b.outputFormat
		}
		if b.noColor {
			cfg.Output.Color = false
		}
		if err := b.buildOnce(cmd, root, cfg, logger); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "build failed: %v\n", err)
		}
	}
	return nil
}
