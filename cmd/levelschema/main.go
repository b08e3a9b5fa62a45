package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"

	"firewater/server"
)

// Emits a JSON Schema for level files so external editors can validate
// {name, tiles} documents before the server ever sees them.
func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "path to write the schema (default stdout)")
	flag.Parse()

	reflector := jsonschema.Reflector{AllowAdditionalProperties: true}
	schema := reflector.Reflect(new(server.Level))
	schema.Title = "Firewater Level"
	schema.Description = "Validates level files consumed by the session server"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal schema: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, _ = os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write schema: %v\n", err)
		os.Exit(1)
	}
}
