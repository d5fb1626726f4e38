package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/mitchellh/mapstructure"
)

const (
	// DefaultCommandTimeout is the version-probe timeout in milliseconds.
	DefaultCommandTimeout = 500
	// DefaultScanTimeout is the directory listing budget in milliseconds.
	DefaultScanTimeout = 30
)

// Config is the prompt configuration. Known keys live at the top level; every
// other table is the section of one module (or of logging) and is kept raw
// until the owner decodes it with UnmarshalModule.
type Config struct {
	// Modules is the render order. Empty means the registry's default order.
	Modules []string `toml:"modules,omitempty" yaml:"modules,omitempty" mapstructure:"modules" jsonschema:"description=Modules to render in order; empty uses the built-in order"`

	// AddNewline prints a blank line before the prompt.
	AddNewline bool `toml:"add_newline,omitempty" yaml:"add_newline,omitempty" mapstructure:"add_newline" jsonschema:"description=Print an empty line before the prompt"`

	// CommandTimeout bounds every external version probe, in milliseconds.
	CommandTimeout int `toml:"command_timeout,omitempty" yaml:"command_timeout,omitempty" mapstructure:"command_timeout" jsonschema:"minimum=1,description=Timeout in milliseconds for version commands (default 500)"`

	// ScanTimeout bounds the directory listing, in milliseconds.
	ScanTimeout int `toml:"scan_timeout,omitempty" yaml:"scan_timeout,omitempty" mapstructure:"scan_timeout" jsonschema:"minimum=1,description=Timeout in milliseconds for reading the current directory (default 30)"`

	// Sections holds the raw module tables keyed by module name.
	Sections map[string]interface{} `toml:"-" yaml:"-" mapstructure:",remain" jsonschema:"-"`

	// Path is the file this config was read from; empty for defaults.
	Path string `toml:"-" yaml:"-" mapstructure:"-" jsonschema:"-"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills unset values.
func (c *Config) SetDefaults() {
	if c.CommandTimeout <= 0 {
		c.CommandTimeout = DefaultCommandTimeout
	}
	if c.ScanTimeout <= 0 {
		c.ScanTimeout = DefaultScanTimeout
	}
	if c.Sections == nil {
		c.Sections = make(map[string]interface{})
	}
}

// CommandTimeoutDuration returns CommandTimeout as a duration.
func (c *Config) CommandTimeoutDuration() time.Duration {
	return time.Duration(c.CommandTimeout) * time.Millisecond
}

// ScanTimeoutDuration returns ScanTimeout as a duration.
func (c *Config) ScanTimeoutDuration() time.Duration {
	return time.Duration(c.ScanTimeout) * time.Millisecond
}

// SectionNames lists the sections present in the file, sorted.
func (c *Config) SectionNames() []string {
	names := make([]string, 0, len(c.Sections))
	for name := range c.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnmarshalModule decodes the section named key into target, which must be a
// pointer to a struct pre-filled with defaults. A missing section leaves the
// target untouched; only keys present in the file overwrite defaults.
//
// Example:
//
//	cfg := PerlConfig{Symbol: "🐪 "}
//	err := c.UnmarshalModule("perl", &cfg)
func (c *Config) UnmarshalModule(key string, target interface{}) error {
	section, ok := c.Sections[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(section); err != nil {
		return fmt.Errorf("failed to decode config for '%s': %w", key, err)
	}

	return nil
}

// ToMap returns the effective configuration as a plain document.
func (c *Config) ToMap() map[string]interface{} {
	doc := make(map[string]interface{}, len(c.Sections)+4)
	for k, v := range c.Sections {
		doc[k] = v
	}
	if len(c.Modules) > 0 {
		doc["modules"] = c.Modules
	}
	doc["add_newline"] = c.AddNewline
	doc["command_timeout"] = c.CommandTimeout
	doc["scan_timeout"] = c.ScanTimeout
	return doc
}
