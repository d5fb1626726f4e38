package testutil

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/grovetools/prompt/command"
	"github.com/grovetools/prompt/errors"
	"github.com/stretchr/testify/require"
)

// WriteFiles creates empty files (or folders, for names ending in "/") in dir.
func WriteFiles(t *testing.T, dir string, names ...string) {
	t.Helper()

	for _, name := range names {
		path := filepath.Join(dir, name)
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}
}

// ProjectDir returns a fresh temporary directory holding names.
func ProjectDir(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	WriteFiles(t, dir, names...)
	return dir
}

// RequireBinary skips the test if name is not on PATH.
func RequireBinary(t *testing.T, name string) {
	t.Helper()

	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

// StubResponse is the canned result for one command name.
type StubResponse struct {
	Stdout string
	Err    error
}

// StubRunner is a command.Runner that never spawns processes. Commands with
// no response configured fail as if the binary were missing.
type StubRunner struct {
	mu        sync.Mutex
	responses map[string]StubResponse
	calls     atomic.Int32
	history   []string
}

// NewStubRunner creates an empty stub.
func NewStubRunner() *StubRunner {
	return &StubRunner{responses: make(map[string]StubResponse)}
}

// Returns makes name print stdout and exit zero.
func (s *StubRunner) Returns(name, stdout string) *StubRunner {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[name] = StubResponse{Stdout: stdout}
	return s
}

// Fails makes name exit non-zero.
func (s *StubRunner) Fails(name string) *StubRunner {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[name] = StubResponse{Err: errors.New(errors.ErrCodeCommandFailed, name+" exited with status 1")}
	return s
}

// Run implements command.Runner.
func (s *StubRunner) Run(_ context.Context, name string, args ...string) (command.Output, error) {
	s.calls.Add(1)

	s.mu.Lock()
	s.history = append(s.history, command.Cmdline(name, args...))
	resp, ok := s.responses[name]
	s.mu.Unlock()

	if !ok {
		return command.Output{}, errors.CommandNotFound(name, exec.ErrNotFound)
	}
	return command.Output{Stdout: resp.Stdout}, resp.Err
}

// Calls is the number of Run invocations so far.
func (s *StubRunner) Calls() int {
	return int(s.calls.Load())
}

// History returns the command lines run so far, in order.
func (s *StubRunner) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}
