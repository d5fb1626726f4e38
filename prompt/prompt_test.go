package prompt

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/grovetools/prompt/config"
	"github.com/grovetools/prompt/pkg/dirscan"
	"github.com/grovetools/prompt/style"
	"github.com/grovetools/prompt/testutil"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l.WithField("component", "test")
}

func newTestContext(t *testing.T, dir string, runner *testutil.StubRunner, opts ...Option) *Context {
	t.Helper()
	opts = append([]Option{WithRunner(runner), WithLogger(quietLogger())}, opts...)
	return NewContext(context.Background(), dir, config.Default(), opts...)
}

func TestScan(t *testing.T) {
	dir := testutil.ProjectDir(t, "cpanfile", "lib/", "script.pl")
	ctx := newTestContext(t, dir, testutil.NewStubRunner())

	tests := []struct {
		name  string
		build func(*Scan) *Scan
		want  bool
	}{
		{"file match", func(s *Scan) *Scan { return s.SetFiles("Makefile.PL", "cpanfile") }, true},
		{"extension match", func(s *Scan) *Scan { return s.SetExtensions("pm", "pl") }, true},
		{"folder match", func(s *Scan) *Scan { return s.SetFolders("lib") }, true},
		{"folder is not a file", func(s *Scan) *Scan { return s.SetFiles("lib") }, false},
		{"no match", func(s *Scan) *Scan { return s.SetFiles("go.mod").SetExtensions("go") }, false},
		{"empty criteria", func(s *Scan) *Scan { return s }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.build(ctx.TryBeginScan()).IsMatch())
		})
	}
}

func TestScanOnUnreadableDirectory(t *testing.T) {
	ctx := newTestContext(t, filepath.Join(t.TempDir(), "removed"), testutil.NewStubRunner())

	scan := ctx.TryBeginScan()
	assert.Nil(t, scan)
	assert.False(t, scan.SetFiles("cpanfile").SetExtensions("pl").IsMatch())
}

func TestDirContentsReadOnce(t *testing.T) {
	dir := testutil.ProjectDir(t, "cpanfile")
	ctx := newTestContext(t, dir, testutil.NewStubRunner())

	var wg sync.WaitGroup
	results := make([]*dirscan.Contents, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = ctx.DirContents()
		}(i)
	}
	wg.Wait()

	// Files created after the first read are not seen in this pass.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "late.pl"), nil, 0644))
	again, err := ctx.DirContents()
	require.NoError(t, err)

	for _, r := range results {
		assert.Same(t, results[0], r)
	}
	assert.Same(t, results[0], again)
	assert.False(t, again.HasAnyExtension("pl"))
}

func TestWithContentsSkipsFilesystem(t *testing.T) {
	ctx := newTestContext(t, "/does/not/exist", testutil.NewStubRunner(),
		WithContents(dirscan.FromNames(".perl-version")))

	assert.True(t, ctx.TryBeginScan().SetFiles(".perl-version").IsMatch())
}

func TestExec(t *testing.T) {
	runner := testutil.NewStubRunner().Returns("perl", "  5.30.0\n").Fails("broken")
	ctx := newTestContext(t, t.TempDir(), runner)

	out, ok := ctx.Exec("perl", "-e", "print 1")
	assert.True(t, ok)
	assert.Equal(t, "5.30.0", out)

	_, ok = ctx.Exec("broken")
	assert.False(t, ok)

	_, ok = ctx.Exec("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"perl -e print 1", "broken", "missing"}, runner.History())
}

type sampleConfig struct {
	Symbol string `toml:"symbol,omitempty"`
	Style  string `toml:"style,omitempty"`
}

func TestModuleConfig(t *testing.T) {
	cfg, err := config.LoadFromBytes([]byte("[sample]\nstyle = \"red\"\n[broken]\nsymbol = [1, 2]\n"))
	require.NoError(t, err)
	ctx := NewContext(context.Background(), t.TempDir(), cfg,
		WithRunner(testutil.NewStubRunner()), WithLogger(quietLogger()))

	sc := sampleConfig{Symbol: "S ", Style: "bold"}
	ctx.ModuleConfig("sample", &sc)
	assert.Equal(t, sampleConfig{Symbol: "S ", Style: "red"}, sc)

	bc := sampleConfig{Symbol: "B ", Style: "bold"}
	ctx.ModuleConfig("broken", &bc)
	assert.Equal(t, sampleConfig{Symbol: "B ", Style: "bold"}, bc, "defaults survive a bad section")
}

func TestModuleSegments(t *testing.T) {
	m := &Module{Name: "perl"}
	assert.True(t, m.IsEmpty())

	m.SetStyle("149 bold")
	m.CreateSegment("symbol", "🐪 ")
	m.CreateSegment("version", "v5.30.0")

	segs := m.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, "symbol", segs[0].Name)
	assert.Equal(t, "version", segs[1].Name)
	assert.Equal(t, "🐪 v5.30.0", m.Text())

	segs[0].Value = "changed"
	assert.Equal(t, "🐪 ", m.Segments()[0].Value, "Segments returns a copy")
}

func TestModuleRender(t *testing.T) {
	r := style.NewRenderer(termenv.ANSI256, style.ShellNone)

	m := &Module{Name: "perl", Style: "149 bold", Prefix: "via ", Suffix: " "}
	m.CreateSegment("symbol", "🐪 ")
	m.CreateSegment("version", "v5.30.0")

	assert.Equal(t, "via "+r.Paint("149 bold", "🐪 v5.30.0")+" ", m.Render(r))
	assert.Equal(t, "via 🐪 v5.30.0 ", m.Render(style.Plain()))

	m.CreateStyledSegment("extra", "!", "red")
	assert.Equal(t,
		"via "+r.Paint("149 bold", "🐪 v5.30.0")+r.Paint("red", "!")+" ",
		m.Render(r))
}
