package cli

import (
	"github.com/ariel-frischer/oasnotes/internal/output"
	"github.com/ariel-frischer/oasnotes/internal/release"
	"github.com/spf13/cobra"
)

// runGenerate is the root command: write notes and roll the baseline.
func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := releaseOptions(cmd, cfg)
	if cfg.Roll && cfg.BaselineRef != "" {
		output.PrintWarning(cmd.ErrOrStderr(), "baseline_ref is set; specs will not be rolled")
	}

	_, err = release.Run(cmd.Context(), opts)
	return err
}
