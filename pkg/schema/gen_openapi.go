package schema

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	// DefaultOpenAPIGenerator extracts the sole component schema of an OpenAPI
	// document. Use [NewOpenAPIGenerator] to select a named component.
	DefaultOpenAPIGenerator = NewOpenAPIGenerator("")

	_ Generator = DefaultOpenAPIGenerator
)

// OpenAPIGenerator extracts a component schema from an OpenAPI document and
// returns it as a standalone JSON Schema.
type OpenAPIGenerator struct {
	// Component is the name of the component schema to extract. If empty, the
	// document must contain exactly one component schema.
	Component string
}

// NewOpenAPIGenerator creates a new [OpenAPIGenerator] for the named
// component schema.
func NewOpenAPIGenerator(component string) *OpenAPIGenerator {
	return &OpenAPIGenerator{Component: component}
}

// FromPaths loads an OpenAPI document from at least one of the given file
// paths or URLs and extracts the selected component schema.
func (g *OpenAPIGenerator) FromPaths(paths ...string) ([]byte, error) {
	if len(paths) == 0 {
		return nil, errors.New("no paths provided")
	}

	var errs []error

	for _, path := range paths {
		jsBytes, err := g.fromPath(path)
		if err == nil {
			return jsBytes, nil
		}

		errs = append(errs, fmt.Errorf("%s: %w", path, err))
	}

	return nil, fmt.Errorf("could not extract a schema from any of the provided paths: %w",
		errors.Join(errs...))
}

func (g *OpenAPIGenerator) fromPath(path string) ([]byte, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	loader.Context = context.Background()

	var (
		doc *openapi3.T
		err error
	)

	u, uerr := url.Parse(path)
	if uerr == nil && (u.Scheme == "http" || u.Scheme == "https") {
		doc, err = loader.LoadFromURI(u)
	} else {
		doc, err = loader.LoadFromFile(path)
	}

	if err != nil {
		return nil, fmt.Errorf("load OpenAPI document: %w", err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	sref, err := g.selectComponent(doc)
	if err != nil {
		return nil, err
	}

	jsBytes, err := sref.Value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal component schema: %w", err)
	}

	return DefaultReaderGenerator.FromData(jsBytes)
}

func (g *OpenAPIGenerator) selectComponent(doc *openapi3.T) (*openapi3.SchemaRef, error) {
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("document has no component schemas")
	}

	if g.Component != "" {
		sref, ok := doc.Components.Schemas[g.Component]
		if !ok {
			return nil, fmt.Errorf("no component schema %q, available: %s",
				g.Component, strings.Join(componentNames(doc), ", "))
		}

		return sref, nil
	}

	if len(doc.Components.Schemas) > 1 {
		return nil, fmt.Errorf("document has multiple component schemas, select one of: %s",
			strings.Join(componentNames(doc), ", "))
	}

	for _, sref := range doc.Components.Schemas {
		return sref, nil
	}

	return nil, errors.New("document has no component schemas")
}

func componentNames(doc *openapi3.T) []string {
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
