package modules

import (
	"github.com/grovetools/prompt/config"
	"github.com/grovetools/prompt/prompt"
)

func init() {
	config.RegisterSection("perl", PerlConfig{})
	Register("perl", Perl)
}

// PerlConfig is the [perl] section of prompt.toml.
type PerlConfig struct {
	Symbol   string `toml:"symbol,omitempty" jsonschema:"description=Text shown before the version (default '🐪 ')"`
	Style    string `toml:"style,omitempty" jsonschema:"description=Style of the module (default '149 bold')"`
	Prefix   string `toml:"prefix,omitempty" jsonschema:"description=Unstyled text before the module (default 'via ')"`
	Suffix   string `toml:"suffix,omitempty" jsonschema:"description=Unstyled text after the module (default ' ')"`
	Disabled bool   `toml:"disabled,omitempty" jsonschema:"description=Hide the module"`
}

// DefaultPerlConfig returns the settings used when [perl] is absent.
func DefaultPerlConfig() PerlConfig {
	return PerlConfig{
		Symbol: "🐪 ",
		Style:  "149 bold",
		Prefix: "via ",
		Suffix: " ",
	}
}

var perlDetector = versionDetector{
	name:       "perl",
	files:      []string{"Makefile.PL", "cpanfile", "META.json", "META.yml", ".perl-version"},
	extensions: []string{"pl", "pm"},
	tool:       "perl",
	args:       []string{"-e", "print substr($^V, 1);"},
	format:     formatPerlVersion,
}

// Perl shows the perl version when the directory holds a Perl project:
// a Makefile.PL, cpanfile, META.json, META.yml or .perl-version file, or any
// .pl or .pm file.
func Perl(ctx *prompt.Context) *prompt.Module {
	cfg := DefaultPerlConfig()
	ctx.ModuleConfig("perl", &cfg)
	if cfg.Disabled {
		return nil
	}

	version, ok := perlDetector.detect(ctx)
	if !ok {
		return nil
	}

	module := ctx.NewModule("perl")
	module.SetStyle(cfg.Style)
	module.Prefix = cfg.Prefix
	module.Suffix = cfg.Suffix

	module.CreateSegment("symbol", cfg.Symbol)
	module.CreateSegment("version", version)

	return module
}

// formatPerlVersion turns "5.30.0" into "v5.30.0".
func formatPerlVersion(version string) (string, bool) {
	if version == "" {
		return "", false
	}
	return "v" + version, true
}
