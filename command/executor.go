package command

import (
	"context"
	"os/exec"
)

// Executor creates exec.Cmd instances. Tests swap it to control how processes
// are created (for example a PATH holding fake binaries) without touching the
// runner.
type Executor interface {
	// CommandContext creates a new context-aware exec.Cmd instance.
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// RealExecutor is the production implementation of the Executor interface,
// which uses the standard os/exec package to create commands.
type RealExecutor struct {
	// Dir, when set, becomes the working directory of every created command.
	Dir string
}

// CommandContext creates a standard context-aware exec.Cmd.
func (e *RealExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir
	return cmd
}
