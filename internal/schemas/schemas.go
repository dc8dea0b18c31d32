// Package schemas validates API responses against the JSON schemas embedded in the binary.
//
// Responses are checked at the boundary, before they are decoded into Go types, so a server
// that drifts from the expected contract is reported as a decode failure instead of silently
// producing zero values.
package schemas

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schema names, the file name in json/ without the extension
const (
	AppointmentType        = "appointment-type"
	AppointmentTypeList    = "appointment-type-list"
	User                   = "user"
	Client                 = "client"
	ClientPage             = "client-page"
	AuthenticationResponse = "authentication-response"
	UserCreateResponse     = "user-create-response"
)

//go:embed json/*.json
var files embed.FS

// base URL used to identify the embedded resources so relative $refs between them resolve
const baseURL = "https://schemas.chronosync.local/"

// Registry holds the compiled schemas
type Registry struct {
	schemas map[string]*jsonschema.Schema
}

var (
	defaultRegistry *Registry
	defaultErr      error
	defaultOnce     sync.Once
)

// Default returns the registry compiled from the embedded schemas, compiling it on first use
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = Load(files)
	})
	return defaultRegistry, defaultErr
}

// Load compiles every json/*.json file found in fsys
func Load(fsys fs.FS) (*Registry, error) {
	entries, err := fs.Glob(fsys, "json/*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		content, err := fs.ReadFile(fsys, entry)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", entry, err)
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("schema %s is not valid JSON: %w", entry, err)
		}

		base := path.Base(entry)
		if err := compiler.AddResource(baseURL+base, doc); err != nil {
			return nil, fmt.Errorf("failed to add schema %s: %w", entry, err)
		}
		names = append(names, strings.TrimSuffix(base, ".json"))
	}

	r := &Registry{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, name := range names {
		schema, err := compiler.Compile(baseURL + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("invalid JSON Schema %s: %w", name, err)
		}
		r.schemas[name] = schema
	}

	return r, nil
}

// ErrUnknownSchema is returned when Validate is called with a name that was not loaded
type ErrUnknownSchema struct {
	Name string
}

func (e *ErrUnknownSchema) Error() string {
	return fmt.Sprintf("no schema named %q", e.Name)
}

// Validate checks body against the named schema
func (r *Registry) Validate(name string, body []byte) error {
	schema, ok := r.schemas[name]
	if !ok {
		return &ErrUnknownSchema{Name: name}
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Names lists the loaded schema names
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	return names
}
