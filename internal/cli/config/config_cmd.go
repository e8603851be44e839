package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/beamscheck/internal/cli/shared"
	"github.com/ariel-frischer/beamscheck/internal/config"
	apperrors "github.com/ariel-frischer/beamscheck/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage beamscheck configuration",
	Long: `Manage beamscheck configuration.

Configuration precedence (highest to lowest):
  1. Environment variables (BEAMSCHECK_*, nested keys joined with __)
  2. Project config (.beamscheck/config.json, or --config)
  3. User config (~/.beamscheck/config.json)
  4. Built-in defaults`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default values",
	Long: `Write the built-in defaults to the project config file (or --config).

An existing file is left unchanged unless --force is given.`,
	Example: `  # Create .beamscheck/config.json
  beamscheck config init

  # Overwrite an existing file
  beamscheck config init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return runConfigInit(cmd.OutOrStdout(), shared.ConfigPath(cmd), force)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  "Print the configuration after merging defaults, config files and environment variables.",
	Example: `  # YAML (default)
  beamscheck config show

  # JSON
  beamscheck config show --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		format, err := shared.ParseOutputFormat(output)
		if err != nil {
			return err
		}
		if !format.IsStructured() {
			format = shared.OutputYAML
		}

		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}
		return shared.WriteStructured(cmd.OutOrStdout(), format, cfg)
	},
}

func init() {
	configCmd.GroupID = shared.GroupConfiguration
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	configShowCmd.Flags().StringP("output", "o", "yaml", "Output format: yaml, json")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(out io.Writer, path string, force bool) error {
	if err := config.WriteDefaultConfig(path, force); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return apperrors.NewConfigError(
				fmt.Sprintf("config file already exists: %s", path),
				"Edit the existing file",
				"Or re-run with --force to overwrite it",
			)
		}
		return apperrors.WrapWithMessage(err, apperrors.Configuration, "failed to write config file")
	}

	shared.PrintSuccess(out, fmt.Sprintf("Created %s", path))
	return nil
}
