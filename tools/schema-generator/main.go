// Command schema-generator writes the JSON schema of prompt.toml so editors
// can validate and complete config files.
//
//	go run ./tools/schema-generator [output]
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/prompt/config"
	_ "github.com/grovetools/prompt/modules"
)

func main() {
	outputPath := filepath.Join("schema", "prompt.schema.json")
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	schemaBytes, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}
	if err := os.WriteFile(outputPath, append(schemaBytes, '\n'), 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated schema at %s", outputPath)
}
