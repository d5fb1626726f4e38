package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/grovetools/prompt/pkg/paths"
	"github.com/spf13/cobra"
)

// PathsOutput represents the XDG-compliant paths used by grove-prompt.
type PathsOutput struct {
	ConfigDir    string `json:"config_dir"`
	ConfigFile   string `json:"config_file"`
	ConfigExists bool   `json:"config_exists"`
	StateDir     string `json:"state_dir"`
	LogDir       string `json:"log_dir"`
}

func NewPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the XDG-compliant paths used by grove-prompt",
		Long: `Print the XDG-compliant paths used by grove-prompt as JSON.

- config_dir: where prompt.toml is looked up
- config_file: the file that is loaded (GROVE_PROMPT_CONFIG wins)
- state_dir: runtime state
- log_dir: debug log files`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, exists := paths.ConfigFile()
			output := PathsOutput{
				ConfigDir:    paths.ConfigDir(),
				ConfigFile:   configFile,
				ConfigExists: exists,
				StateDir:     paths.StateDir(),
				LogDir:       paths.LogDir(),
			}

			jsonData, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal paths to JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		},
	}

	return cmd
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
