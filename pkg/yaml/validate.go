package yaml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator checks decoded YAML against a compiled JSON schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles schemaData, registered under url.
func NewValidator(url string, schemaData []byte) (*Validator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()

	err = c.AddResource(url, doc)
	if err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: s}, nil
}

// Validate checks data, which must be the generic form produced by decoding
// into an `any`. Failures are returned as an [Error] whose path points at the
// deepest failing location.
func (v *Validator) Validate(data any) error {
	// Round-trip through JSON so that integers become json.Number, which is
	// what the schema compiler expects.
	normalized, err := normalize(data)
	if err != nil {
		return &Error{Err: err}
	}

	err = v.schema.Validate(normalized)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("schema validation: %w", err)
	}

	return &Error{
		Err:  verr,
		Path: pathFromLocation(deepestLocation(verr)),
	}
}

func normalize(data any) (any, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}

	out, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	return out, nil
}

func deepestLocation(err *jsonschema.ValidationError) []string {
	loc := err.InstanceLocation

	for _, cause := range err.Causes {
		if c := deepestLocation(cause); len(c) > len(loc) {
			loc = c
		}
	}

	return loc
}

func pathFromLocation(location []string) *yaml.Path {
	pb := NewPathBuilder().Root()

	for _, part := range location {
		if i, err := strconv.ParseUint(part, 10, 64); err == nil {
			pb = pb.Index(uint(i))
		} else {
			pb = pb.Child(part)
		}
	}

	return pb.Build()
}
