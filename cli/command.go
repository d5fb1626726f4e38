package cli

import (
	"os"

	"github.com/grovetools/prompt/config"
	"github.com/grovetools/prompt/logging"
	"github.com/grovetools/prompt/pkg/paths"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommandOptions holds common options for grove-prompt commands
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
}

// NewStandardCommand creates a new command with the standard flags.
// Flags are parsed before any subcommand runs, so --verbose and --config
// apply to the loggers and config created later in the process.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts := GetOptions(cmd)
			if opts.Verbose {
				os.Setenv(logging.LevelEnv, "debug")
			}
			if opts.ConfigFile != "" {
				os.Setenv(paths.ConfigEnv, opts.ConfigFile)
			}
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to prompt.toml config file")

	return cmd
}

// GetLogger returns the logger for CLI diagnostics.
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	entry := logging.NewLogger("cli")
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		entry.Logger.SetLevel(logrus.DebugLevel)
	}
	return entry.WithField("command", cmd.Name())
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
	}
}

// LoadConfig loads the config named by --config, GROVE_PROMPT_CONFIG or the
// default location, in that order.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path := GetOptions(cmd).ConfigFile; path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

// LoadConfigOrDefault is LoadConfig for the prompt path: a broken config is
// logged and the defaults are used, so the prompt is still drawn.
func LoadConfigOrDefault(cmd *cobra.Command) *config.Config {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		GetLogger(cmd).WithError(err).Warn("Using default configuration")
		cfg = config.Default()
	}
	logging.SetConfig(cfg)
	return cfg
}
