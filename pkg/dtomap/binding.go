package dtomap

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyBinding     = errors.New("binding has neither a path nor a default value")
	ErrAmbiguousBinding = errors.New("binding has both a path and a default value")
)

// Binding attaches one target field to the source schema: either a
// dot-notation path into the schema, or a literal default value. Exactly one
// of the two must be set.
type Binding struct {
	// Path is a dot-notation leaf path into the source schema.
	Path string `json:"path,omitempty"    yaml:"path,omitempty"`
	// Default is a literal value used instead of a schema field.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`
}

// IsLiteral reports whether the binding carries a literal default value.
func (b Binding) IsLiteral() bool {
	return b.Default != nil
}

// Validate checks that exactly one of Path and Default is set.
func (b Binding) Validate() error {
	if b.Path == "" && b.Default == nil {
		return ErrEmptyBinding
	}

	if b.Path != "" && b.Default != nil {
		return ErrAmbiguousBinding
	}

	return nil
}

func (b Binding) String() string {
	if b.IsLiteral() {
		data, err := json.Marshal(b.Default)
		if err != nil {
			return fmt.Sprintf("default=%v", b.Default)
		}

		return "default=" + string(data)
	}

	return "path=" + b.Path
}

// ParseBinding parses a binding expression of the form "path=<dot.path>" or
// "default=<json literal>". Default literals that are not valid JSON are
// taken as strings.
func ParseBinding(expr string) (Binding, error) {
	kind, value, found := strings.Cut(expr, "=")
	if !found {
		return Binding{}, fmt.Errorf("no key=value pair found in %q", expr)
	}

	switch kind {
	case "path":
		b := Binding{Path: strings.TrimSpace(value)}

		return b, b.Validate()

	case "default":
		var literal any
		if err := json.Unmarshal([]byte(value), &literal); err != nil {
			literal = value
		}

		if literal == nil {
			return Binding{}, fmt.Errorf("%w: default value cannot be null", ErrEmptyBinding)
		}

		return Binding{Default: literal}, nil
	}

	return Binding{}, fmt.Errorf("unknown binding kind %q, want path or default", kind)
}
