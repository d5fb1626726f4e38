// Package modules holds the prompt modules and the scheduler that evaluates
// them for a render pass.
package modules

import (
	"sort"
	"sync"

	"github.com/grovetools/prompt/errors"
	"github.com/grovetools/prompt/pkg/profiling"
	"github.com/grovetools/prompt/prompt"
)

// Module evaluates one prompt module. It returns nil when the module has
// nothing to show; it never returns an error.
type Module func(ctx *prompt.Context) *prompt.Module

var (
	registry   = make(map[string]Module)
	registryMu sync.RWMutex
)

// Register adds a module under name. Registering a name twice replaces the
// earlier module.
func Register(name string, m Module) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = m
}

// Names returns every registered module name, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the module registered under name.
func Lookup(name string) (Module, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	m, ok := registry[name]
	if !ok {
		return nil, errors.UnknownModule(name)
	}
	return m, nil
}

// Order returns the configured module order, or every registered module when
// the config lists none.
func Order(ctx *prompt.Context) []string {
	if len(ctx.Config.Modules) > 0 {
		return ctx.Config.Modules
	}
	return Names()
}

// Evaluate runs the named modules concurrently and returns the ones with
// output, in the order given. Unknown names are skipped.
func Evaluate(ctx *prompt.Context, names []string) []*prompt.Module {
	results := make([]*prompt.Module, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		m, err := Lookup(name)
		if err != nil {
			ctx.Logger().WithError(err).Debug("Skipping unknown module")
			continue
		}
		wg.Add(1)
		go func(i int, name string, m Module) {
			defer wg.Done()
			defer profiling.Start(name).Stop()
			results[i] = m(ctx)
		}(i, name, m)
	}
	wg.Wait()

	out := make([]*prompt.Module, 0, len(results))
	for _, r := range results {
		if r != nil && !r.IsEmpty() {
			out = append(out, r)
		}
	}
	return out
}
