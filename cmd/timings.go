package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/prompt/modules"
	"github.com/grovetools/prompt/pkg/profiling"
	"github.com/grovetools/prompt/style"
	"github.com/spf13/cobra"
)

// NewTimingsCmd returns the command that shows where prompt time goes.
func NewTimingsCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "timings",
		Short: "Show how long each module, scan and version command took",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiling.Enable()
			defer profiling.Disable()

			ctx := newPromptContext(cmd, dir)
			start := time.Now()
			rendered := modules.Evaluate(ctx, modules.Order(ctx))
			total := time.Since(start)

			output := make(map[string]string, len(rendered))
			for _, m := range rendered {
				output[m.Name] = strings.TrimSpace(m.Render(style.Plain()))
			}

			fmt.Fprintln(cmd.OutOrStdout(), timingsTable(profiling.Spans(), output, total))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "path", "p", "", "Directory to time (default: working directory)")
	return cmd
}

func timingsTable(spans []profiling.Span, output map[string]string, total time.Duration) string {
	header := lipgloss.NewStyle().Bold(true)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SPAN", "DURATION", "OUTPUT").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, s := range spans {
		t.Row(s.Name, formatDuration(s.Duration), output[s.Name])
	}
	t.Row("total", formatDuration(total), "")
	return t.Render()
}

func formatDuration(d time.Duration) string {
	return d.Round(10 * time.Microsecond).String()
}
