package logging

import "github.com/grovetools/prompt/config"

func init() {
	config.RegisterSection("logging", Config{})
}

// Config defines the [logging] section of prompt.toml.
type Config struct {
	// Level is the minimum log level to output (e.g., "debug", "info", "warn", "error").
	// Can be overridden by the GROVE_PROMPT_LOG_LEVEL environment variable.
	Level string `toml:"level,omitempty" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,description=Minimum log level"`

	// ReportCaller, if true, includes the file, line, and function name in the log output.
	ReportCaller bool `toml:"report_caller,omitempty" jsonschema:"description=Include caller file and line"`

	// File configures logging to a file.
	File FileSinkConfig `toml:"file,omitempty" jsonschema:"description=File sink"`

	// Format configures the appearance of the log output.
	Format FormatConfig `toml:"format,omitempty" jsonschema:"description=Output format"`
}

// FileSinkConfig configures the file logging sink.
type FileSinkConfig struct {
	Enabled bool `toml:"enabled,omitempty"`
	// Path is the full path to the log file.
	Path string `toml:"path,omitempty"`
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset string `toml:"preset,omitempty" jsonschema:"enum=default,enum=simple,enum=json"`
	// DisableTimestamp disables the timestamp from the "default" and "simple" formats.
	DisableTimestamp bool `toml:"disable_timestamp,omitempty"`
	// DisableComponent disables the component name from the "default" and "simple" formats.
	DisableComponent bool `toml:"disable_component,omitempty"`
	// StructuredToStderr controls when logs are sent to stderr.
	// Can be "auto" (default), "always", or "never".
	StructuredToStderr string `toml:"structured_to_stderr,omitempty" jsonschema:"enum=auto,enum=always,enum=never"`
}
