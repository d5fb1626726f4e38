package cmd

import (
	"fmt"

	"github.com/grovetools/prompt/modules"
	"github.com/spf13/cobra"
)

// NewPromptCmd returns the command a shell runs to draw its prompt.
func NewPromptCmd() *cobra.Command {
	var shellName, dir string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt for the current directory",
		Long: `Evaluate every configured module for a directory and print the result
on one line. Modules whose project files are absent, or whose tool is not
installed, print nothing.

Examples:
  grove-prompt prompt
  grove-prompt prompt --shell zsh --path ~/src/app`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRenderer(shellName, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			ctx := newPromptContext(cmd, dir)
			fmt.Fprint(cmd.OutOrStdout(), modules.Line(ctx, r, modules.Order(ctx)))
			return nil
		},
	}

	cmd.Flags().StringVar(&shellName, "shell", "", "Shell the prompt is for: bash, zsh or fish")
	cmd.Flags().StringVarP(&dir, "path", "p", "", "Directory to render the prompt for (default: working directory)")
	return cmd
}
