package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
)

var (
	// DefaultSampleGenerator is an opinionated [SampleGenerator].
	DefaultSampleGenerator = NewSampleGenerator(&SampleConfig{
		SkipRequired: true,
	})

	_ Generator = DefaultSampleGenerator
)

// SampleConfig controls schema inference from sample JSON values.
type SampleConfig struct {
	// Skip auto-generation of Required.
	SkipRequired bool `json:"skipRequired,omitempty"`
	// Skip auto-generation of Default.
	SkipDefault bool `json:"skipDefault,omitempty"`
}

// SampleGenerator infers a JSON Schema from one or more sample JSON values.
// Objects nest, scalars become typed leaves carrying the sampled value as
// their default.
type SampleGenerator struct {
	config *SampleConfig
}

// NewSampleGenerator creates a new [SampleGenerator] using the given
// [SampleConfig].
func NewSampleGenerator(c *SampleConfig) *SampleGenerator {
	return &SampleGenerator{config: c}
}

// FromPaths infers a JSON Schema from sample JSON files. Paths are merged
// in sorted order, so the lexicographically last path wins for defaults
// regardless of argument order.
func (g *SampleGenerator) FromPaths(paths ...string) ([]byte, error) {
	if len(paths) == 0 {
		return nil, errors.New("no file paths provided")
	}

	paths = slices.Clone(paths)
	slices.Sort(paths)

	merged := &Document{}

	for _, path := range paths {
		//nolint:gosec // G304 not relevant for client-side generation.
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read sample file: %w", err)
		}

		doc, err := g.infer(data)
		if err != nil {
			return nil, fmt.Errorf("infer schema from %q: %w", path, err)
		}

		merged = mergeDocuments(merged, doc)
	}

	merged.SchemaURL = Draft

	return merged.ToJSON()
}

// FromData infers a JSON Schema from a single sample JSON value.
func (g *SampleGenerator) FromData(data []byte) ([]byte, error) {
	doc, err := g.infer(data)
	if err != nil {
		return nil, err
	}

	doc.SchemaURL = Draft

	return doc.ToJSON()
}

func (g *SampleGenerator) infer(data []byte) (*Document, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal sample JSON: %w", err)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("sample value must be a JSON object")
	}

	if len(obj) == 0 {
		return nil, ErrEmptySchema
	}

	return g.inferValue(v), nil
}

func (g *SampleGenerator) inferValue(v any) *Document {
	switch v := v.(type) {
	case map[string]any:
		doc := &Document{
			Type:       string(TypeObject),
			Properties: make(map[string]*Document, len(v)),
		}

		for name, sub := range v {
			doc.Properties[name] = g.inferValue(sub)

			if !g.config.SkipRequired {
				doc.Required = append(doc.Required, name)
			}
		}

		slices.Sort(doc.Required)

		return doc

	case []any:
		doc := &Document{Type: string(TypeArray)}
		if len(v) > 0 {
			doc.Items = g.inferValue(v[0])
		}

		return doc

	case string:
		return g.scalar(TypeString, v)

	case bool:
		return g.scalar(TypeBoolean, v)

	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return g.scalar(TypeInteger, int64(v))
		}

		return g.scalar(TypeNumber, v)

	default:
		// JSON null carries no type information.
		return &Document{}
	}
}

func (g *SampleGenerator) scalar(t FieldType, v any) *Document {
	doc := &Document{Type: string(t)}
	if !g.config.SkipDefault {
		doc.Default = v
	}

	return doc
}

// mergeDocuments unions object properties recursively. Scalars from src win.
func mergeDocuments(dst, src *Document) *Document {
	if dst == nil {
		return src
	}

	if src == nil {
		return dst
	}

	if len(src.Properties) == 0 {
		return src
	}

	if dst.Properties == nil {
		dst.Properties = make(map[string]*Document, len(src.Properties))
	}

	dst.Type = src.Type

	for name, sub := range src.Properties {
		dst.Properties[name] = mergeDocuments(dst.Properties[name], sub)
	}

	for _, name := range src.Required {
		if !slices.Contains(dst.Required, name) {
			dst.Required = append(dst.Required, name)
		}
	}

	slices.Sort(dst.Required)

	return dst
}
