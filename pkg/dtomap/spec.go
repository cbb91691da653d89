package dtomap

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"
	"github.com/iancoleman/strcase"

	"github.com/flahallen61-boop/dto-map-builder/pkg/schema"
)

// Spec is a complete mapping: the class name to generate, plus one binding
// per mapped target field.
type Spec struct {
	ClassName string             `json:"className" yaml:"className"`
	Bindings  map[string]Binding `json:"bindings"  yaml:"bindings"`
}

// Payload is the wire object POSTed to the register and generate endpoints.
type Payload struct {
	ClassName     string            `json:"className"`
	FieldMapping  map[string]string `json:"fieldMapping"`
	DefaultValues map[string]any    `json:"defaultValues"`
}

// Validate checks the spec against the target fields and the source schema:
// every bound path must be a leaf of the schema whose type the target field
// accepts. All problems are accumulated and reported together.
func (s *Spec) Validate(reg Getter, source *schema.Document) error {
	var merr error

	if err := validateClassName(s.ClassName); err != nil {
		merr = multierror.Append(merr, err)
	}

	leafPaths := source.LeafPaths()

	for _, field := range sortedKeys(s.Bindings) {
		binding := s.Bindings[field]

		target, err := reg.Get(field)
		if err != nil {
			merr = multierror.Append(merr, err)

			continue
		}

		if err := binding.Validate(); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("field %q: %w", field, err))

			continue
		}

		if binding.Path == "" {
			continue
		}

		if !slices.Contains(leafPaths, binding.Path) {
			merr = multierror.Append(merr,
				fmt.Errorf("field %q: path %q is not a leaf path of the source schema", field, binding.Path))

			continue
		}

		leaf, err := source.Resolve(binding.Path)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("field %q: %w", field, err))

			continue
		}

		if !target.Accepts(leaf.Type) {
			merr = multierror.Append(merr,
				fmt.Errorf("field %q wants %s, but path %q has type %s",
					field, target.Type, binding.Path, leaf.Type))
		}
	}

	for _, name := range reg.Required() {
		if _, ok := s.Bindings[name]; !ok {
			merr = multierror.Append(merr, fmt.Errorf("required target field %q is not bound", name))
		}
	}

	return merr
}

// Payload builds the wire object for the register and generate endpoints.
// The class name is normalized to UpperCamelCase.
func (s *Spec) Payload() *Payload {
	p := &Payload{
		ClassName:     strcase.ToCamel(s.ClassName),
		FieldMapping:  map[string]string{},
		DefaultValues: map[string]any{},
	}

	for field, binding := range s.Bindings {
		if binding.IsLiteral() {
			p.DefaultValues[field] = binding.Default
		} else {
			p.FieldMapping[field] = binding.Path
		}
	}

	return p
}

// Nested expands the path bindings into a source-shaped object tree: each
// bound dot-notation path holds the name of the target field it feeds.
func (s *Spec) Nested() map[string]any {
	root := map[string]any{}

	for _, field := range sortedKeys(s.Bindings) {
		binding := s.Bindings[field]
		if binding.Path == "" {
			continue
		}

		node := root
		segments := strings.Split(binding.Path, ".")

		for _, segment := range segments[:len(segments)-1] {
			sub, ok := node[segment].(map[string]any)
			if !ok {
				sub = map[string]any{}
				node[segment] = sub
			}

			node = sub
		}

		node[segments[len(segments)-1]] = field
	}

	return root
}

func validateClassName(name string) error {
	if name == "" {
		return errors.New("class name cannot be empty")
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != ' ' && r != '-' {
			return fmt.Errorf("class name %q contains invalid character %q", name, r)
		}
	}

	if r := []rune(strcase.ToCamel(name)); len(r) == 0 || !unicode.IsLetter(r[0]) {
		return fmt.Errorf("class name %q must start with a letter", name)
	}

	return nil
}

func sortedKeys(m map[string]Binding) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
