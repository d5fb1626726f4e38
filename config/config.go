package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/prompt/errors"
	"github.com/grovetools/prompt/pkg/paths"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads, validates and decodes a configuration file. The format is picked
// from the extension: .yml/.yaml are YAML, anything else is TOML. A sibling
// override file (prompt.override.toml next to prompt.toml) is merged on top.
func Load(path string) (*Config, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	if overridePath := overrideFile(path); overridePath != "" {
		if _, statErr := os.Stat(overridePath); statErr == nil {
			override, err := readDocument(overridePath)
			if err != nil {
				return nil, err
			}
			doc = mergeMaps(doc, override)
		}
	}

	cfg, err := FromMap(doc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to load config").
			WithDetail("path", path)
	}
	cfg.Path = path
	return cfg, nil
}

// LoadDefault loads the file located by paths.ConfigFile. A missing default
// file yields Default(); a missing explicit GROVE_PROMPT_CONFIG file is an
// error.
func LoadDefault() (*Config, error) {
	path, exists := paths.ConfigFile()
	if !exists {
		if os.Getenv(paths.ConfigEnv) != "" {
			return nil, errors.ConfigNotFound(path)
		}
		return Default(), nil
	}
	return Load(path)
}

// LoadFromBytes parses a TOML document.
func LoadFromBytes(data []byte) (*Config, error) {
	doc, err := parseDocument(data, "toml")
	if err != nil {
		return nil, err
	}
	return FromMap(doc)
}

// FromMap validates a raw document and decodes it into a Config with defaults.
func FromMap(doc map[string]interface{}) (*Config, error) {
	if err := validate(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create decoder")
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode configuration")
	}

	cfg.SetDefaults()
	return &cfg, nil
}

func readDocument(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	doc, err := parseDocument(data, formatOf(path))
	if err != nil {
		if promptErr, ok := err.(*errors.PromptError); ok {
			return nil, promptErr.WithDetail("path", path)
		}
		return nil, err
	}
	return doc, nil
}

func parseDocument(data []byte, format string) (map[string]interface{}, error) {
	expanded := expandEnvVars(string(data))

	doc := make(map[string]interface{})
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal([]byte(expanded), &doc)
	default:
		err = toml.Unmarshal([]byte(expanded), &doc)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse "+format+" configuration").
			WithDetail("format", format)
	}
	if doc == nil {
		doc = make(map[string]interface{})
	}
	return doc, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return "yaml"
	default:
		return "toml"
	}
}

// overrideFile maps prompt.toml to prompt.override.toml.
func overrideFile(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.TrimSuffix(path, ext) + ".override" + ext
}

// mergeMaps merges override into base. Nested tables merge key by key; any
// other value in override replaces the base value.
func mergeMaps(base, override map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(base))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range override {
		baseTable, baseOK := result[k].(map[string]interface{})
		overTable, overOK := v.(map[string]interface{})
		if baseOK && overOK {
			result[k] = mergeMaps(baseTable, overTable)
			continue
		}
		result[k] = v
	}
	return result
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
