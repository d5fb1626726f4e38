package profiling

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilerRecordsConcurrentSpans(t *testing.T) {
	p := New()

	var wg sync.WaitGroup
	for _, name := range []string{"perl", "python", "ruby"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			s := p.Start(name)
			time.Sleep(5 * time.Millisecond)
			s.Stop()
			s.Stop()
		}(name)
	}
	wg.Wait()

	spans := p.Spans()
	require.Len(t, spans, 3)
	for i, s := range spans {
		assert.GreaterOrEqual(t, s.Duration, 5*time.Millisecond)
		if i > 0 {
			assert.False(t, s.Start.Before(spans[i-1].Start))
		}
	}

	var buf bytes.Buffer
	p.Summarize(&buf)
	assert.Contains(t, buf.String(), "--- Timing Profile ---")
	assert.Contains(t, buf.String(), "- perl (")
}

func TestDisabledProfilerIsNoop(t *testing.T) {
	Disable()
	t.Cleanup(Disable)

	Start("ignored").Stop()
	assert.Empty(t, Spans())

	var buf bytes.Buffer
	Summarize(&buf)
	assert.Empty(t, buf.String())

	Enable()
	Start("kept").Stop()
	require.Len(t, Spans(), 1)
	assert.Equal(t, "kept", Spans()[0].Name)
}

func TestCobraProfilerTiming(t *testing.T) {
	t.Cleanup(Disable)

	var hookRan bool
	root := &cobra.Command{
		Use: "root",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			hookRan = true
		},
	}
	root.AddCommand(&cobra.Command{
		Use: "work",
		Run: func(cmd *cobra.Command, args []string) {
			Start("work").Stop()
		},
	})
	NewCobraProfiler().Attach(root)

	var stderr bytes.Buffer
	root.SetErr(&stderr)
	root.SetArgs([]string{"work", "--timing"})
	require.NoError(t, root.Execute())

	assert.True(t, hookRan)
	assert.Contains(t, stderr.String(), "- work (")
}
