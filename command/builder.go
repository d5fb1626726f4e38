package command

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/grovetools/prompt/errors"
)

const (
	// DefaultTimeout bounds a version probe. A prompt redraw must not wait on a
	// hung interpreter.
	DefaultTimeout = 500 * time.Millisecond

	// MaxTimeout is the maximum allowed timeout
	MaxTimeout = 10 * time.Second

	// waitDelay is how long Wait keeps reading pipes after the process was killed.
	waitDelay = 50 * time.Millisecond
)

// SafeBuilder builds bounded, validated commands.
type SafeBuilder struct {
	defaultTimeout time.Duration
	executor       Executor
}

// NewSafeBuilder creates a new SafeBuilder instance with a RealExecutor
func NewSafeBuilder() *SafeBuilder {
	return NewSafeBuilderWithExecutor(&RealExecutor{})
}

// NewSafeBuilderWithExecutor creates a new SafeBuilder with a custom Executor
func NewSafeBuilderWithExecutor(exec Executor) *SafeBuilder {
	return &SafeBuilder{
		defaultTimeout: DefaultTimeout,
		executor:       exec,
	}
}

// WithDefaultTimeout changes the timeout applied to every command built afterwards.
// Non-positive values keep the current default.
func (sb *SafeBuilder) WithDefaultTimeout(timeout time.Duration) *SafeBuilder {
	if timeout > 0 {
		sb.defaultTimeout = clampTimeout(timeout)
	}
	return sb
}

// validateToolName rejects names that would only make sense to a shell.
func validateToolName(name string) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if strings.ContainsAny(name, ";|&$`<>\n") {
		return fmt.Errorf("command name contains invalid characters: %q", name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("command name cannot contain '..'")
	}
	return nil
}

// Command represents a safe command configuration
type Command struct {
	parent   context.Context
	name     string
	args     []string
	timeout  time.Duration
	executor Executor
}

// Build creates a new command with validation. The timeout is applied when the
// command runs, so nothing leaks if the command is never executed.
func (sb *SafeBuilder) Build(ctx context.Context, name string, args ...string) (*Command, error) {
	if err := validateToolName(name); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid command").
			WithDetail("command", name)
	}

	return &Command{
		parent:   ctx,
		name:     name,
		args:     args,
		timeout:  sb.defaultTimeout,
		executor: sb.executor,
	}, nil
}

// WithTimeout sets a custom timeout for the command
func (c *Command) WithTimeout(timeout time.Duration) *Command {
	if timeout > 0 {
		c.timeout = clampTimeout(timeout)
	}
	return c
}

// String returns the command line for logs and error details.
func (c *Command) String() string {
	return Cmdline(c.name, c.args...)
}

// Output runs the command to completion and captures both streams. The process
// is killed when the timeout expires or the parent context is cancelled, and
// it is always reaped before Output returns.
func (c *Command) Output() (Output, error) {
	ctx, cancel := context.WithTimeout(c.parent, c.timeout)
	defer cancel()

	cmd := c.executor.CommandContext(ctx, c.name, c.args...) //nolint:gosec // name validated in Build
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}

	switch {
	case stderrors.Is(err, exec.ErrNotFound):
		return out, errors.CommandNotFound(c.name, err)
	case stderrors.Is(ctx.Err(), context.DeadlineExceeded):
		return out, errors.CommandTimeout(c.String(), c.timeout)
	default:
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			exitErr.Stderr = stderr.Bytes()
		}
		return out, errors.CommandFailed(c.String(), err)
	}
}

// Cmdline joins a command and its arguments the way they are shown in logs.
func Cmdline(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

func clampTimeout(timeout time.Duration) time.Duration {
	if timeout > MaxTimeout {
		return MaxTimeout
	}
	return timeout
}
