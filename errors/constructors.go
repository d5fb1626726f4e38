package errors

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *PromptError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *PromptError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// UnknownModule creates an error for a module name missing from the registry
func UnknownModule(name string) *PromptError {
	return New(ErrCodeUnknownModule, fmt.Sprintf("module '%s' does not exist", name)).
		WithDetail("module", name)
}

// CommandNotFound creates an error for an executable missing from PATH
func CommandNotFound(name string, err error) *PromptError {
	return Wrap(err, ErrCodeCommandNotFound, fmt.Sprintf("executable not found: %s", name)).
		WithDetail("command", name)
}

// CommandTimeout creates an error for a process killed at its deadline
func CommandTimeout(cmdline string, timeout time.Duration) *PromptError {
	return New(ErrCodeCommandTimeout,
		fmt.Sprintf("command '%s' did not finish within %s", cmdline, timeout)).
		WithDetail("command", cmdline).
		WithDetail("timeout", timeout.String())
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmdline string, err error) *PromptError {
	promptErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmdline)).
		WithDetail("command", cmdline)

	if exitErr, ok := err.(*exec.ExitError); ok {
		promptErr = promptErr.WithDetail("exitCode", exitErr.ExitCode())
		if stderr := strings.TrimSpace(string(exitErr.Stderr)); stderr != "" {
			promptErr = promptErr.WithDetail("stderr", stderr)
		}
	}

	return promptErr
}

// ToolUnavailable reports that the version tool of a module could not produce output.
func ToolUnavailable(module string, err error) *PromptError {
	return Wrap(err, ErrCodeToolUnavailable, fmt.Sprintf("version tool for '%s' unavailable", module)).
		WithDetail("module", module)
}

// MalformedOutput reports tool output the formatter refused.
func MalformedOutput(module, output string) *PromptError {
	return New(ErrCodeMalformedOutput, fmt.Sprintf("unusable version output for '%s'", module)).
		WithDetail("module", module).
		WithDetail("output", output)
}
