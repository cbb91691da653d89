package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
	"sigs.k8s.io/yaml"
)

// Draft is the JSON Schema dialect written into documents produced by this
// package.
const Draft = "http://json-schema.org/draft-07/schema#"

var ErrEmptySchema = errors.New("empty schema")

// Document is a JSON Schema document, or a subschema within one. Only the
// vocabulary needed for field mapping is modeled; unknown keywords are
// dropped on read.
type Document struct {
	SchemaURL   string               `json:"$schema,omitempty"`
	Ref         string               `json:"$ref,omitempty"`
	Title       string               `json:"title,omitempty"`
	Description string               `json:"description,omitempty"`
	Type        string               `json:"type,omitempty"`
	Format      string               `json:"format,omitempty"`
	Properties  map[string]*Document `json:"properties,omitempty"`
	Items       *Document            `json:"items,omitempty"`
	Required    []string             `json:"required,omitempty"`
	Enum        []any                `json:"enum,omitempty"`
	Default     any                  `json:"default,omitempty"`
}

// FromJSON unmarshals a JSON Schema document, resolving any intra-document
// references ($ref: "#/...").
func FromJSON(data []byte) (*Document, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal JSON Schema: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("unmarshal JSON Schema: %w", err)
	}

	if err := resolveRefs(doc, raw, map[string]bool{}); err != nil {
		return nil, fmt.Errorf("resolve schema refs: %w", err)
	}

	return doc, nil
}

// FromYAML converts a YAML JSON Schema document to JSON and unmarshals it.
func FromYAML(data []byte) (*Document, error) {
	jsBytes, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("convert YAML to JSON: %w", err)
	}

	return FromJSON(jsBytes)
}

// FromData unmarshals a JSON Schema document from either JSON or YAML input.
func FromData(data []byte) (*Document, error) {
	if json.Valid(data) {
		return FromJSON(data)
	}

	return FromYAML(data)
}

// ToJSON returns the canonical indented JSON representation of the document.
func (d *Document) ToJSON() ([]byte, error) {
	jsBytes, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON Schema: %w", err)
	}

	return jsBytes, nil
}

// Validate checks structural consistency of the document. It does not check
// JSON Schema dialect conformance, see [Compile] for that.
func (d *Document) Validate() error {
	return d.validate("")
}

func (d *Document) validate(at string) error {
	var merr error

	for _, name := range d.Required {
		if _, ok := d.Properties[name]; !ok {
			merr = multierror.Append(merr,
				fmt.Errorf("%s: required property %q is not defined", orRoot(at), name))
		}
	}

	for name, sub := range d.Properties {
		if name == "" {
			merr = multierror.Append(merr, fmt.Errorf("%s: property with empty name", orRoot(at)))

			continue
		}

		if sub == nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: property %q is null", orRoot(at), name))

			continue
		}

		if err := sub.validate(joinPath(at, name)); err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	if d.Items != nil {
		if err := d.Items.validate(at + "[]"); err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	return merr
}

// IsObject reports whether the document describes an object with at least one
// property.
func (d *Document) IsObject() bool {
	return len(d.Properties) > 0
}

// PropertyNames returns the sorted property names of an object document.
func (d *Document) PropertyNames() []string {
	names := make([]string, 0, len(d.Properties))
	for name := range d.Properties {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func orRoot(at string) string {
	if at == "" {
		return "(root)"
	}

	return at
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}
