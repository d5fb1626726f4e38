package command

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	calls atomic.Int32
	delay time.Duration
}

func (r *countingRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	r.calls.Add(1)
	time.Sleep(r.delay)
	if name == "fail" {
		return Output{}, fmt.Errorf("exit status 1")
	}
	return Output{Stdout: Cmdline(name, args...)}, nil
}

func TestExecRunner(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	r := NewExecRunner(dir, time.Second)

	out, err := r.Run(context.Background(), "pwd")
	require.NoError(t, err)
	assert.Contains(t, out.Stdout, dir)

	_, err = r.Run(context.Background(), "")
	assert.Error(t, err)
}

func TestMemoRunner_DeduplicatesConcurrentCalls(t *testing.T) {
	next := &countingRunner{delay: 20 * time.Millisecond}
	memo := NewMemoRunner(next, 0)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := memo.Run(context.Background(), "perl", "-v")
			assert.NoError(t, err)
			results[i] = out.Stdout
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), next.calls.Load())
	for _, r := range results {
		assert.Equal(t, "perl -v", r)
	}
}

func TestMemoRunner_KeysOnArguments(t *testing.T) {
	next := &countingRunner{}
	memo := NewMemoRunner(next, 4)

	_, _ = memo.Run(context.Background(), "perl", "-v")
	_, _ = memo.Run(context.Background(), "perl", "-V")
	_, _ = memo.Run(context.Background(), "perl", "-v")

	assert.Equal(t, int32(2), next.calls.Load())
}

func TestMemoRunner_RemembersFailures(t *testing.T) {
	next := &countingRunner{}
	memo := NewMemoRunner(next, 4)

	_, err := memo.Run(context.Background(), "fail")
	assert.Error(t, err)
	_, err = memo.Run(context.Background(), "fail")
	assert.Error(t, err)

	assert.Equal(t, int32(1), next.calls.Load())
}
