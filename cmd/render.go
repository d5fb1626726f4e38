package cmd

import (
	"context"
	"io"
	"os"

	"github.com/grovetools/prompt/cli"
	"github.com/grovetools/prompt/errors"
	"github.com/grovetools/prompt/prompt"
	"github.com/grovetools/prompt/style"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// newRenderer picks the renderer for --shell. Without a shell the output is
// only coloured when it goes straight to a terminal.
func newRenderer(shellName string, out io.Writer) (*style.Renderer, error) {
	shell, err := style.ParseShell(shellName)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid --shell")
	}
	if os.Getenv("NO_COLOR") != "" {
		return style.Plain(), nil
	}
	if shell == style.ShellNone && !isTerminal(out) {
		return style.Plain(), nil
	}
	return style.NewRenderer(termenv.ANSI256, shell), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newPromptContext builds the render context for dir, or for the working
// directory when dir is empty.
func newPromptContext(cmd *cobra.Command, dir string) *prompt.Context {
	cfg := cli.LoadConfigOrDefault(cmd)

	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		} else {
			dir = os.Getenv("PWD")
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return prompt.NewContext(ctx, dir, cfg)
}
