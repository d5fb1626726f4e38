package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/grovetools/prompt/schema"
	"github.com/invopop/jsonschema"
)

var (
	sectionTypes   = make(map[string]interface{})
	sectionTypesMu sync.Mutex

	validatorOnce sync.Once
	validator     *schema.Validator
	validatorErr  error
)

// RegisterSection declares the Go type backing a config section so that it
// appears in the generated schema and is validated on load. Call it from
// init functions only.
func RegisterSection(name string, v interface{}) {
	sectionTypesMu.Lock()
	defer sectionTypesMu.Unlock()
	sectionTypes[name] = v
}

func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		DoNotReference:            true,
		FieldNameTag:              "toml",
	}
}

// GenerateSchema builds the JSON Schema for the whole config file: the top
// level keys of Config plus every registered section. Unregistered sections
// must still be tables.
func GenerateSchema() ([]byte, error) {
	root := newReflector().Reflect(&Config{})
	root.Title = "grove-prompt configuration"
	root.Description = "Schema for prompt.toml"
	root.Version = "http://json-schema.org/draft-07/schema#"
	root.AdditionalProperties = &jsonschema.Schema{Type: "object"}

	sectionTypesMu.Lock()
	names := make([]string, 0, len(sectionTypes))
	for name := range sectionTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		section := newReflector().Reflect(sectionTypes[name])
		section.Version = ""
		section.ID = ""
		root.Properties.Set(name, section)
	}
	sectionTypesMu.Unlock()

	return json.MarshalIndent(root, "", "  ")
}

// validate checks a raw document against the generated schema. The schema is
// compiled once per process.
func validate(document map[string]interface{}) error {
	validatorOnce.Do(func() {
		data, err := GenerateSchema()
		if err != nil {
			validatorErr = fmt.Errorf("failed to generate schema: %w", err)
			return
		}
		validator, validatorErr = schema.NewValidator(data)
	})
	if validatorErr != nil {
		return validatorErr
	}
	return validator.Validate(document)
}
