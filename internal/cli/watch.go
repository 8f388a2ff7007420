package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ariel-frischer/oasnotes/internal/config"
	clierrors "github.com/ariel-frischer/oasnotes/internal/errors"
	"github.com/ariel-frischer/oasnotes/internal/notify"
	"github.com/ariel-frischer/oasnotes/internal/output"
	"github.com/ariel-frischer/oasnotes/internal/release"
	"github.com/ariel-frischer/oasnotes/internal/watch"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var (
	watchDebounceFlag time.Duration
	watchNotifyFlag   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render a notes preview whenever either spec changes",
	Long: `Watch the previous and current spec files and print a fresh release
notes preview after every save. Like 'oasnotes diff', nothing is written
and the specs are never rolled. Errors are reported and watching
continues. Stop with Ctrl+C.`,
	Example: `  # Preview while editing openapi_new.yaml
  oasnotes watch

  # Wait longer for editors that write in several steps
  oasnotes watch --debounce 1s

  # Get a desktop notification when the preview breaks or recovers
  oasnotes watch --notify`,
	Args: noPositionalArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.GroupID = GroupRelease
	watchCmd.Flags().DurationVar(&watchDebounceFlag, "debounce", watch.DefaultDebounce, "Quiet period before re-rendering")
	watchCmd.Flags().BoolVar(&watchNotifyFlag, "notify", false, "Send a desktop notification when the preview starts or stops failing")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if watchDebounceFlag < 10*time.Millisecond {
		return clierrors.NewArgumentError("--debounce must be at least 10ms")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	paths := []string{cfg.CurrentSpec}
	if cfg.BaselineRef == "" {
		paths = append(paths, cfg.PreviousSpec)
	}

	w, err := watch.New(paths, watchDebounceFlag)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime, "Check that the spec directories exist")
	}
	defer w.Close()

	symbols := output.SelectSymbols(output.DetectTerminalCapabilities())
	wait := spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	wait.Suffix = fmt.Sprintf(" waiting for changes to %s", cfg.CurrentSpec)

	alerts := notify.NewHandler(watchNotifyFlag, debugLogger(cmd))
	defer alerts.Wait()

	render := func(trigger string) {
		wait.Stop()
		alerts.OnPreview(cmd.Context(), cfg.CurrentSpec, renderPreview(cmd, cfg, trigger))
		wait.Start()
	}

	render("")
	defer wait.Stop()

	err = w.Run(cmd.Context(), render)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// renderPreview runs the pipeline in dry-run mode and prints the notes.
// Failures are printed and returned; the watch loop keeps going.
func renderPreview(cmd *cobra.Command, cfg *config.Configuration, trigger string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	title := "preview " + time.Now().Format("15:04:05")
	if trigger != "" {
		title += " (" + trigger + ")"
	}
	output.PrintRule(out, title)

	opts := releaseOptions(cmd, cfg)
	opts.DryRun = true
	opts.Out = errOut

	result, err := release.Run(cmd.Context(), opts)
	if err != nil {
		clierrors.FprintError(errOut, toCLIError(err))
		return err
	}
	fmt.Fprint(out, result.Notes)
	return nil
}
