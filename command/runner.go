package command

import (
	"context"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Output is what a finished process wrote to its standard streams.
type Output struct {
	Stdout string
	Stderr string
}

// Runner runs one external program synchronously. A non-nil error means the
// program was missing, exited non-zero, or did not finish in time.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// ExecRunner is the production Runner backed by a SafeBuilder.
type ExecRunner struct {
	builder *SafeBuilder
}

// NewExecRunner creates a runner whose processes start in dir and are killed
// after timeout. An empty dir means the current directory.
func NewExecRunner(dir string, timeout time.Duration) *ExecRunner {
	return &ExecRunner{
		builder: NewSafeBuilderWithExecutor(&RealExecutor{Dir: dir}).WithDefaultTimeout(timeout),
	}
}

// NewExecRunnerWithBuilder wraps an already configured builder.
func NewExecRunnerWithBuilder(sb *SafeBuilder) *ExecRunner {
	return &ExecRunner{builder: sb}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	cmd, err := r.builder.Build(ctx, name, args...)
	if err != nil {
		return Output{}, err
	}
	return cmd.Output()
}

// DefaultMemoSize is the number of distinct command lines a MemoRunner keeps.
const DefaultMemoSize = 64

// memoCall is one in-flight or finished invocation.
type memoCall struct {
	done chan struct{}
	out  Output
	err  error
}

// MemoRunner deduplicates identical invocations for the lifetime of one render
// pass: concurrent callers asking for the same command line share a single
// process. Create a new MemoRunner per pass; results are never refreshed.
type MemoRunner struct {
	next  Runner
	mu    sync.Mutex
	calls *lru.Cache[string, *memoCall]
}

// NewMemoRunner wraps next with a memo holding up to size command lines.
func NewMemoRunner(next Runner, size int) *MemoRunner {
	if size <= 0 {
		size = DefaultMemoSize
	}
	// lru.New only fails for a non-positive size.
	calls, _ := lru.New[string, *memoCall](size)
	return &MemoRunner{next: next, calls: calls}
}

// Run implements Runner.
func (m *MemoRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	key := memoKey(name, args)

	m.mu.Lock()
	if call, ok := m.calls.Get(key); ok {
		m.mu.Unlock()
		select {
		case <-call.done:
			return call.out, call.err
		case <-ctx.Done():
			return Output{}, ctx.Err()
		}
	}
	call := &memoCall{done: make(chan struct{})}
	m.calls.Add(key, call)
	m.mu.Unlock()

	call.out, call.err = m.next.Run(ctx, name, args...)
	close(call.done)
	return call.out, call.err
}

func memoKey(name string, args []string) string {
	return name + "\x00" + strings.Join(args, "\x00")
}
