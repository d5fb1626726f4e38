package cmd

import (
	"fmt"

	"github.com/grovetools/prompt/modules"
	"github.com/spf13/cobra"
)

// NewModuleCmd returns the command that renders a single module.
func NewModuleCmd() *cobra.Command {
	var shellName, dir string
	var list bool

	cmd := &cobra.Command{
		Use:   "module <name>",
		Short: "Print one prompt module",
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, name := range modules.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			name := args[0]
			if _, err := modules.Lookup(name); err != nil {
				return err
			}
			r, err := newRenderer(shellName, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			ctx := newPromptContext(cmd, dir)
			fmt.Fprint(cmd.OutOrStdout(), modules.Line(ctx, r, []string{name}))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List available modules")
	cmd.Flags().StringVar(&shellName, "shell", "", "Shell the output is for: bash, zsh or fish")
	cmd.Flags().StringVarP(&dir, "path", "p", "", "Directory to render the module for (default: working directory)")
	return cmd
}
