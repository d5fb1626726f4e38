package command

import (
	"context"
	"testing"
	"time"

	"github.com/grovetools/prompt/errors"
)

func TestValidateToolName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain name", "perl", false},
		{"absolute path", "/usr/bin/perl", false},
		{"versioned name", "perl5.30", false},
		{"empty name", "", true},
		{"command injection semicolon", "perl; rm -rf /", true},
		{"command injection pipe", "perl | cat", true},
		{"command injection dollar", "$(whoami)", true},
		{"command injection backtick", "`whoami`", true},
		{"directory traversal", "../bin/perl", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateToolName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateToolName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSafeBuilder_Build(t *testing.T) {
	sb := NewSafeBuilder()
	ctx := context.Background()

	t.Run("valid command", func(t *testing.T) {
		cmd, err := sb.Build(ctx, "echo", "hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cmd.name != "echo" {
			t.Errorf("expected command name 'echo', got %q", cmd.name)
		}
		if len(cmd.args) != 1 || cmd.args[0] != "hello" {
			t.Errorf("expected args ['hello'], got %v", cmd.args)
		}
		if cmd.timeout != DefaultTimeout {
			t.Errorf("expected default timeout %v, got %v", DefaultTimeout, cmd.timeout)
		}
	})

	t.Run("empty command name", func(t *testing.T) {
		_, err := sb.Build(ctx, "")
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("expected INVALID_INPUT for empty command name, got %v", err)
		}
	})
}

func TestCommand_WithTimeout(t *testing.T) {
	sb := NewSafeBuilder()
	ctx := context.Background()

	cmd, err := sb.Build(ctx, "sleep", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("custom timeout", func(t *testing.T) {
		customTimeout := 1 * time.Second
		cmd = cmd.WithTimeout(customTimeout)
		if cmd.timeout != customTimeout {
			t.Errorf("expected timeout %v, got %v", customTimeout, cmd.timeout)
		}
	})

	t.Run("exceeds max timeout", func(t *testing.T) {
		cmd = cmd.WithTimeout(20 * time.Minute)
		if cmd.timeout != MaxTimeout {
			t.Errorf("expected timeout to be capped at %v, got %v", MaxTimeout, cmd.timeout)
		}
	})

	t.Run("non-positive timeout is ignored", func(t *testing.T) {
		cmd = cmd.WithTimeout(0)
		if cmd.timeout != MaxTimeout {
			t.Errorf("expected timeout to stay %v, got %v", MaxTimeout, cmd.timeout)
		}
	})
}

func TestCommandOutput(t *testing.T) {
	sb := NewSafeBuilder()
	ctx := context.Background()

	t.Run("captures stdout", func(t *testing.T) {
		cmd, err := sb.Build(ctx, "sh", "-c", "printf ' 5.30.0\\n'")
		if err != nil {
			t.Fatal(err)
		}
		out, err := cmd.Output()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Stdout != " 5.30.0\n" {
			t.Errorf("expected raw stdout, got %q", out.Stdout)
		}
	})

	t.Run("missing executable", func(t *testing.T) {
		cmd, err := sb.Build(ctx, "definitely-not-a-real-binary-5f1c")
		if err != nil {
			t.Fatal(err)
		}
		_, err = cmd.Output()
		if !errors.Is(err, errors.ErrCodeCommandNotFound) {
			t.Errorf("expected COMMAND_NOT_FOUND, got %v", err)
		}
	})

	t.Run("non-zero exit", func(t *testing.T) {
		cmd, err := sb.Build(ctx, "sh", "-c", "echo boom >&2; exit 3")
		if err != nil {
			t.Fatal(err)
		}
		out, err := cmd.Output()
		if !errors.Is(err, errors.ErrCodeCommandFailed) {
			t.Fatalf("expected COMMAND_FAILED, got %v", err)
		}
		if out.Stderr != "boom\n" {
			t.Errorf("expected stderr to be captured, got %q", out.Stderr)
		}
		promptErr := err.(*errors.PromptError)
		if promptErr.Details["exitCode"] != 3 {
			t.Errorf("expected exitCode detail 3, got %v", promptErr.Details["exitCode"])
		}
	})
}

func TestCommandTimeout(t *testing.T) {
	sb := NewSafeBuilder()
	ctx := context.Background()

	cmd, err := sb.Build(ctx, "sleep", "10")
	if err != nil {
		t.Fatal(err)
	}

	cmd = cmd.WithTimeout(100 * time.Millisecond)

	start := time.Now()
	_, err = cmd.Output()
	duration := time.Since(start)

	if !errors.Is(err, errors.ErrCodeCommandTimeout) {
		t.Errorf("expected timeout error, got %v", err)
	}

	// Allow some margin for execution overhead
	if duration > 500*time.Millisecond {
		t.Errorf("command took too long to timeout: %v", duration)
	}
}
