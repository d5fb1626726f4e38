// Package prompt holds the pieces shared by every prompt module: the
// per-render Context, the directory Scan used to gate modules, and the Module
// and Segment types a module hands back to the renderer.
package prompt

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/grovetools/prompt/command"
	"github.com/grovetools/prompt/config"
	"github.com/grovetools/prompt/errors"
	"github.com/grovetools/prompt/logging"
	"github.com/grovetools/prompt/pkg/dirscan"
	"github.com/grovetools/prompt/pkg/profiling"
	"github.com/sirupsen/logrus"
)

// Context is the read-only view of one render pass. It is shared by all
// modules evaluated in that pass, possibly from several goroutines.
type Context struct {
	// Dir is the directory the prompt is drawn for.
	Dir string
	// Config is the loaded configuration; never nil.
	Config *config.Config

	pass   context.Context
	runner command.Runner
	log    *logrus.Entry

	scanOnce sync.Once
	contents *dirscan.Contents
	scanErr  error
}

// Option customises a Context.
type Option func(*Context)

// WithRunner replaces the process runner, typically with a stub in tests.
func WithRunner(r command.Runner) Option {
	return func(c *Context) { c.runner = r }
}

// WithContents injects an already read listing and skips the scan.
func WithContents(contents *dirscan.Contents) Option {
	return func(c *Context) {
		c.scanOnce.Do(func() { c.contents = contents })
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Context) { c.log = log }
}

// NewContext creates the context for one render pass over dir. A nil cfg means
// defaults. Cancelling ctx kills any version command still running.
func NewContext(ctx context.Context, dir string, cfg *config.Config, opts ...Option) *Context {
	if cfg == nil {
		cfg = config.Default()
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	c := &Context{
		Dir:    dir,
		Config: cfg,
		pass:   ctx,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.runner == nil {
		c.runner = command.NewMemoRunner(
			command.NewExecRunner(dir, cfg.CommandTimeoutDuration()),
			command.DefaultMemoSize,
		)
	}
	if c.log == nil {
		c.log = logging.NewLogger("prompt")
	}
	return c
}

// DirContents returns the listing of Dir, reading it on first use. Later calls
// and concurrent callers share the same immutable result.
func (c *Context) DirContents() (*dirscan.Contents, error) {
	c.scanOnce.Do(func() {
		defer profiling.Start("scan " + c.Dir).Stop()
		c.contents, c.scanErr = dirscan.Read(c.Dir, c.Config.ScanTimeoutDuration())
		if c.scanErr != nil {
			c.log.WithError(c.scanErr).WithField("dir", c.Dir).Debug("Could not read directory")
		} else if c.contents.Truncated {
			c.log.WithField("dir", c.Dir).Debug("Directory scan hit its timeout, using partial listing")
		}
	})
	return c.contents, c.scanErr
}

// TryBeginScan starts a probe against the directory listing. It returns nil
// when the directory cannot be listed; a nil Scan never matches.
func (c *Context) TryBeginScan() *Scan {
	contents, err := c.DirContents()
	if err != nil {
		return nil
	}
	return &Scan{contents: contents}
}

// Exec runs a version command and returns its trimmed stdout. The boolean is
// false when the program is missing, fails, or times out; the reason is only
// logged at debug level.
func (c *Context) Exec(name string, args ...string) (string, bool) {
	span := profiling.Start("exec " + command.Cmdline(name, args...))
	out, err := c.runner.Run(c.pass, name, args...)
	span.Stop()
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"command": command.Cmdline(name, args...),
			"code":    errors.GetCode(err),
		}).WithError(err).Debug("Version command failed")
		return "", false
	}
	return strings.TrimSpace(out.Stdout), true
}

// ModuleConfig decodes the named config section into target, which must hold
// the defaults already. Decode problems are logged and the defaults kept.
func (c *Context) ModuleConfig(name string, target interface{}) {
	v := reflect.ValueOf(target).Elem()
	decoded := reflect.New(v.Type())
	decoded.Elem().Set(v)
	if err := c.Config.UnmarshalModule(name, decoded.Interface()); err != nil {
		c.log.WithError(err).WithField("module", name).Debug("Ignoring invalid module config")
		return
	}
	v.Set(decoded.Elem())
}

// NewModule creates an empty module named name.
func (c *Context) NewModule(name string) *Module {
	return &Module{Name: name}
}

// Logger returns the context logger.
func (c *Context) Logger() *logrus.Entry {
	return c.log
}
