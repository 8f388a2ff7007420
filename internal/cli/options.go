package cli

import (
	"github.com/ariel-frischer/oasnotes/internal/config"
	"github.com/ariel-frischer/oasnotes/internal/release"
	"github.com/spf13/cobra"
)

// loadConfig merges the config file, environment and any flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		Overrides:         flagOverrides(cmd),
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, &configError{err: err}
	}
	return cfg, nil
}

// flagOverrides returns config keys for flags explicitly set on the command line.
func flagOverrides(cmd *cobra.Command) map[string]any {
	flags := cmd.Flags()
	overrides := map[string]any{}

	stringFlags := map[string]string{
		"previous":     "previous_spec",
		"current":      "current_spec",
		"output":       "output",
		"baseline-ref": "baseline_ref",
		"git-dir":      "git_dir",
	}
	for flag, key := range stringFlags {
		if flags.Changed(flag) {
			overrides[key], _ = flags.GetString(flag)
		}
	}

	if flags.Changed("ignore-field") {
		fields, _ := flags.GetStringSlice("ignore-field")
		overrides["ignored_fields"] = append([]string{}, fields...)
	}
	if flags.Changed("no-roll") {
		noRoll, _ := flags.GetBool("no-roll")
		overrides["roll"] = !noRoll
	}

	return overrides
}

// releaseOptions converts configuration to pipeline options.
func releaseOptions(cmd *cobra.Command, cfg *config.Configuration) release.Options {
	return release.Options{
		PreviousPath:  cfg.PreviousSpec,
		CurrentPath:   cfg.CurrentSpec,
		OutputPath:    cfg.Output,
		IgnoredFields: cfg.IgnoredFields,
		Roll:          cfg.Roll,
		BaselineRef:   cfg.BaselineRef,
		GitDir:        cfg.GitDir,
		Out:           cmd.OutOrStdout(),
		Debug:         debugLogger(cmd),
	}
}
