package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ariel-frischer/oasnotes/internal/classify"
	"github.com/ariel-frischer/oasnotes/internal/release"
	"github.com/spf13/cobra"
)

var diffListFlag bool

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Preview release notes without writing or rolling anything",
	Long: `Run the comparison and print the rendered release notes to stdout.
Nothing is written and neither spec is moved.

With --list, print every classified change instead: its outcome, where it
was bucketed (or which field was ignored), and its change path. An
unhandled change is listed before the command fails.`,
	Example: `  # Preview the notes
  oasnotes diff

  # Inspect every change, including ignored ones
  oasnotes diff --list`,
	Args: noPositionalArgs,
	RunE: runDiff,
}

func init() {
	diffCmd.GroupID = GroupRelease
	diffCmd.Flags().BoolVar(&diffListFlag, "list", false, "List classified changes instead of rendering notes")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := releaseOptions(cmd, cfg)
	opts.DryRun = true
	opts.Out = cmd.ErrOrStderr()

	result, err := release.Run(cmd.Context(), opts)
	if diffListFlag && result != nil {
		printClassifications(cmd.OutOrStdout(), result.Classifications)
	}
	if err != nil {
		return err
	}

	if !diffListFlag {
		fmt.Fprint(cmd.OutOrStdout(), result.Notes)
	}
	return nil
}

// printClassifications writes one aligned row per classified change.
func printClassifications(w io.Writer, classifications []classify.Classification) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range classifications {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Outcome, placement(c), c.Path())
	}
	tw.Flush()
}

func placement(c classify.Classification) string {
	switch c.Outcome {
	case classify.Bucketed:
		return fmt.Sprintf("%s/%s", c.Type, c.Category)
	case classify.Ignored:
		return c.Field
	default:
		return c.Reason
	}
}
