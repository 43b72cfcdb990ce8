package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid request")

// FieldError reports the first property that failed validation.
// Field is empty when the document as a whole is invalid.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return ErrInvalid }

type compiled struct {
	root       *jsonschema.Schema
	required   []string
	properties map[string]*jsonschema.Schema
}

var (
	cacheMu sync.Mutex
	cache   = map[string]*compiled{}
)

// Decode parses raw as a JSON object for Check.
func Decode(raw []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return nil, &FieldError{Message: "request body must be a JSON object"}
	}
	return doc, nil
}

// Check validates doc against the named schema.
//
// Required properties are checked in the order the schema lists them, so
// the reported field is stable: the first required property that is
// missing or violates its own subschema. Remaining constraints are checked
// against the whole document afterwards.
func Check(name string, doc map[string]any) error {
	c, err := load(name)
	if err != nil {
		return err
	}

	for _, field := range c.required {
		v, ok := doc[field]
		if !ok {
			return &FieldError{Field: field, Message: "is required"}
		}
		if sub := c.properties[field]; sub != nil {
			if err := sub.Validate(v); err != nil {
				return &FieldError{Field: field, Message: leafMessage(err)}
			}
		}
	}

	if err := c.root.Validate(doc); err != nil {
		return &FieldError{Field: leafField(err), Message: leafMessage(err)}
	}
	return nil
}

// Validate decodes raw and checks it against the named schema.
func Validate(name string, raw []byte) error {
	doc, err := Decode(raw)
	if err != nil {
		return err
	}
	return Check(name, doc)
}

func load(name string) (*compiled, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if c, ok := cache[name]; ok {
		return c, nil
	}

	s, err := Get(name)
	if err != nil {
		return nil, err
	}

	var meta struct {
		Required   []string                   `json:"required"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(s.Raw, &meta); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", name, err)
	}

	url := name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(s.Raw)); err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", name, err)
	}

	root, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	c := &compiled{
		root:       root,
		required:   meta.Required,
		properties: make(map[string]*jsonschema.Schema, len(meta.Properties)),
	}
	for prop := range meta.Properties {
		sub, err := compiler.Compile(url + "#/properties/" + prop)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s property %s: %w", name, prop, err)
		}
		c.properties[prop] = sub
	}

	cache[name] = c
	return c, nil
}

// leafOf follows the first cause down to the most specific failure.
func leafOf(err error) *jsonschema.ValidationError {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

func leafMessage(err error) string {
	if ve := leafOf(err); ve != nil {
		return ve.Message
	}
	return err.Error()
}

func leafField(err error) string {
	ve := leafOf(err)
	if ve == nil {
		return ""
	}
	loc := strings.TrimPrefix(ve.InstanceLocation, "/")
	if i := strings.IndexByte(loc, '/'); i >= 0 {
		loc = loc[:i]
	}
	return loc
}
