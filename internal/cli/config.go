package cli

import (
	"fmt"

	"github.com/ariel-frischer/oasnotes/internal/config"
	clierrors "github.com/ariel-frischer/oasnotes/internal/errors"
	"github.com/ariel-frischer/oasnotes/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configInitForce  bool
	configMigrateDry bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage oasnotes configuration",
	Long: `Configuration is resolved in this order, highest first:
  1. Command-line flags
  2. Environment variables (OASNOTES_PREVIOUS_SPEC, OASNOTES_IGNORED_FIELDS=a,b, ...)
  3. Project config (.oasnotes.yml, or legacy .oasnotes.json)
  4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Example: `  oasnotes config show
  OASNOTES_OUTPUT=CHANGES.md oasnotes config show`,
	Args: noPositionalArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding configuration: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented .oasnotes.yml with the default settings",
	Args:  noPositionalArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configPath
		if path == "" {
			path = config.ProjectConfigPath()
		}
		written, err := config.WriteTemplate(path, configInitForce)
		if err != nil {
			return clierrors.Wrap(err, clierrors.Runtime)
		}
		if !written {
			output.PrintWarning(cmd.OutOrStdout(), fmt.Sprintf("%s already exists (use --force to overwrite)", path))
			return nil
		}
		output.PrintSuccess(cmd.OutOrStdout(), "Created "+path)
		return nil
	},
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert a legacy .oasnotes.json to .oasnotes.yml",
	Args:  noPositionalArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		result, err := config.MigrateProjectConfig(configMigrateDry)
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Configuration, "migration failed",
				"Check that .oasnotes.json is valid JSON")
		}
		if result.Success {
			output.PrintSuccess(cmd.OutOrStdout(), result.Message)
		} else {
			output.PrintStep(cmd.OutOrStdout(), result.Message)
		}
		return nil
	},
}

func init() {
	configCmd.GroupID = GroupSetup
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
	configMigrateCmd.Flags().BoolVar(&configMigrateDry, "dry-run", false, "Report what would be migrated")

	configCmd.AddCommand(configShowCmd, configInitCmd, configMigrateCmd)
	rootCmd.AddCommand(configCmd)
}
