// Package cli implements the oasnotes command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	clierrors "github.com/ariel-frischer/oasnotes/internal/errors"
	"github.com/ariel-frischer/oasnotes/internal/openapi"
	"github.com/ariel-frischer/oasnotes/internal/output"
	"github.com/spf13/cobra"
)

// Command group IDs
const (
	GroupRelease = "release"
	GroupSetup   = "setup"
)

var (
	configPath      string
	debugFlag       bool
	previousFlag    string
	currentFlag     string
	outputFlag      string
	baselineRefFlag string
	gitDirFlag      string
	ignoreFlag      []string
	noRollFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "oasnotes",
	Short: "Generate release notes from two versions of an OpenAPI spec",
	Long: `oasnotes compares the previous and current OpenAPI specs and writes a
Markdown summary of added, deleted and changed schemas and endpoints.

After the notes are written the current spec replaces the previous one, so
the next release is compared against this one. Any change outside
components.schemas and paths aborts the run without touching any file.

Exit codes:
  0 - Notes written
  1 - Write, roll or other runtime failure
  2 - Unhandled change in the diff
  3 - Invalid arguments
  4 - A spec could not be loaded
  5 - Invalid configuration`,
	Example: `  # Compare openapi.yaml with openapi_new.yaml, write RELEASE_NOTES.md, roll
  oasnotes

  # Custom paths, keep both specs in place
  oasnotes --previous api/v1.yaml --current api/v2.yaml --output NOTES.md --no-roll

  # Compare against the spec committed at the last tag
  oasnotes --baseline-ref v1.4.0

  # Also ignore summary edits
  oasnotes --ignore-field description --ignore-field summary`,
	Args:              noPositionalArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupDebug,
	RunE:              runGenerate,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
	)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default: .oasnotes.yml)")
	pf.BoolVar(&debugFlag, "debug", false, "Print debug output to stderr")
	pf.StringVar(&previousFlag, "previous", "", "Previous (baseline) spec path")
	pf.StringVar(&currentFlag, "current", "", "Current spec path")
	pf.StringVar(&outputFlag, "output", "", "Release notes output path")
	pf.StringVar(&baselineRefFlag, "baseline-ref", "", "Read the previous spec from this git revision (disables roll)")
	pf.StringVar(&gitDirFlag, "git-dir", "", "Repository used with --baseline-ref")
	pf.StringSliceVar(&ignoreFlag, "ignore-field", nil, "Leaf field whose changes are left out of the notes (repeatable; empty ignores nothing)")

	rootCmd.Flags().BoolVar(&noRollFlag, "no-roll", false, "Leave both spec files in place after writing notes")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
	})
}

// Execute runs the root command. Errors are printed to stderr before being
// returned; use ExitCode to turn them into a process exit status.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	cliErr := toCLIError(err)
	clierrors.FprintError(os.Stderr, cliErr)
	return cliErr
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		return ExitFailure
	}
	switch cliErr.Category {
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Configuration:
		return ExitConfigError
	case clierrors.Load:
		return ExitLoadFailed
	case clierrors.Classification:
		return ExitUnhandledChange
	default:
		return ExitFailure
	}
}

func noPositionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return clierrors.NewArgumentErrorWithUsage(
		fmt.Sprintf("unknown command %q for %q", args[0], cmd.CommandPath()),
		cmd.UseLine(),
		fmt.Sprintf("Run '%s --help' for a list of commands", cmd.CommandPath()),
	)
}

func setupDebug(cmd *cobra.Command, _ []string) error {
	openapi.SetDebugLogger(output.NewDebugLogger(cmd.ErrOrStderr(), debugFlag))
	return nil
}

func debugLogger(cmd *cobra.Command) output.DebugLogger {
	return output.NewDebugLogger(cmd.ErrOrStderr(), debugFlag)
}
