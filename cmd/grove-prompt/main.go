package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/prompt/cli"
	"github.com/grovetools/prompt/cmd"
	"github.com/grovetools/prompt/pkg/profiling"
	"github.com/grovetools/prompt/starship"
	"github.com/grovetools/prompt/version"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"grove-prompt",
		"Fast, context-aware shell prompt modules",
	)
	cli.SetVersionTemplate(rootCmd, version.GetInfo())
	profiling.NewCobraProfiler().Attach(rootCmd)

	rootCmd.AddCommand(cmd.NewPromptCmd())
	rootCmd.AddCommand(cmd.NewModuleCmd())
	rootCmd.AddCommand(cmd.NewTimingsCmd())
	rootCmd.AddCommand(cmd.NewConfigCmd())
	rootCmd.AddCommand(cmd.NewInitCmd())
	rootCmd.AddCommand(cmd.NewPathsCmd())
	rootCmd.AddCommand(cli.NewVersionCommand("grove-prompt"))
	rootCmd.AddCommand(starship.NewStarshipCmd("grove-prompt"))

	// Ctrl-C while a version command hangs kills it instead of orphaning it.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		os.Exit(cli.HandleError(os.Stderr, err, verbose))
	}
}
