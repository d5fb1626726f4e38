package cmd

import (
	"fmt"

	"github.com/grovetools/prompt/cli"
	"github.com/grovetools/prompt/config"
	"github.com/grovetools/prompt/errors"
	"github.com/grovetools/prompt/pkg/paths"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCmd returns the config command and its subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the prompt configuration",
	}

	cmd.AddCommand(newConfigPrintCmd())
	cmd.AddCommand(newConfigSchemaCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func newConfigPrintCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration",
		Long: `Print the configuration after the override file is merged, environment
variables are expanded and defaults are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "toml":
				data, err = toml.Marshal(cfg.ToMap())
			case "yaml", "yml":
				data, err = yaml.Marshal(cfg.ToMap())
			default:
				return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unsupported format %q (want toml or yaml)", format))
			}
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode configuration")
			}

			if cfg.Path != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# Source: %s\n", cfg.Path)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "toml", "Output format: toml or yaml")
	return cmd
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to generate schema")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			path, exists := paths.ConfigFile()
			if flagPath := cli.GetOptions(cmd).ConfigFile; flagPath != "" {
				path, exists = flagPath, fileExists(flagPath)
			}
			if exists {
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (not found, defaults in use)\n", path)
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a configuration file against the schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg *config.Config
				err error
			)
			if len(args) == 1 {
				cfg, err = config.Load(args[0])
			} else {
				cfg, err = cli.LoadConfig(cmd)
			}
			if err != nil {
				return err
			}

			source := cfg.Path
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", source)
			return nil
		},
	}
}
