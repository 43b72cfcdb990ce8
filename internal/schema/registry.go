// Package schema holds the JSON Schemas request bodies are validated against.
package schema

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema represents a request body schema.
type Schema struct {
	Name string // e.g. "create_post"
	Raw  []byte // JSON Schema document
}

// Names of the registered schemas.
const (
	CreatePost    = "create_post"
	UpdateSetting = "update_setting"
)

// All returns every embedded schema sorted by name.
func All() ([]Schema, error) {
	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	schemas := make([]Schema, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".json")
		s, err := Get(name)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, *s)
	}

	sort.Slice(schemas, func(i, j int) bool {
		return schemas[i].Name < schemas[j].Name
	})
	return schemas, nil
}

// Get returns a single schema by name.
func Get(name string) (*Schema, error) {
	content, err := schemaFS.ReadFile(fmt.Sprintf("schemas/%s.json", name))
	if err != nil {
		return nil, fmt.Errorf("schema not found: %s", name)
	}
	return &Schema{Name: name, Raw: content}, nil
}
