package schema

import (
	"errors"
	"fmt"
)

// FieldType is the primitive type of a user-authored schema property.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeObject  FieldType = "object"
	TypeArray   FieldType = "array"
)

var fieldTypes = []FieldType{
	TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeObject, TypeArray,
}

// Valid reports whether t is a recognized [FieldType].
func (t FieldType) Valid() bool {
	for _, ft := range fieldTypes {
		if t == ft {
			return true
		}
	}

	return false
}

// Property is one user-authored schema property descriptor: a name, a
// primitive type, and optionally nested children for objects and arrays.
type Property struct {
	Name     string      `json:"name"               yaml:"name"`
	Type     FieldType   `json:"type"               yaml:"type"`
	Children []*Property `json:"children,omitempty" yaml:"children,omitempty"`
}

// BuildDocument transforms a user-authored property list into a JSON Schema
// [Document] rooted at an object.
func BuildDocument(title string, props []*Property) (*Document, error) {
	if len(props) == 0 {
		return nil, ErrEmptySchema
	}

	properties, err := buildProperties(props, "")
	if err != nil {
		return nil, err
	}

	return &Document{
		SchemaURL:  Draft,
		Title:      title,
		Type:       string(TypeObject),
		Properties: properties,
	}, nil
}

func buildProperties(props []*Property, at string) (map[string]*Document, error) {
	out := make(map[string]*Document, len(props))

	for _, p := range props {
		if p == nil || p.Name == "" {
			return nil, fmt.Errorf("%s: property with empty name", orRoot(at))
		}

		if _, ok := out[p.Name]; ok {
			return nil, fmt.Errorf("%s: duplicate property %q", orRoot(at), p.Name)
		}

		doc, err := buildProperty(p, joinPath(at, p.Name))
		if err != nil {
			return nil, err
		}

		out[p.Name] = doc
	}

	return out, nil
}

func buildProperty(p *Property, at string) (*Document, error) {
	if !p.Type.Valid() {
		return nil, fmt.Errorf("%s: unknown type %q", at, p.Type)
	}

	switch p.Type {
	case TypeObject:
		if len(p.Children) == 0 {
			return nil, fmt.Errorf("%s: object property has no children", at)
		}

		properties, err := buildProperties(p.Children, at)
		if err != nil {
			return nil, err
		}

		return &Document{Type: string(TypeObject), Properties: properties}, nil

	case TypeArray:
		switch len(p.Children) {
		case 0:
			// Arrays of strings unless an item descriptor is provided.
			return &Document{
				Type:  string(TypeArray),
				Items: &Document{Type: string(TypeString)},
			}, nil
		case 1:
			items, err := buildProperty(p.Children[0], at+"[]")
			if err != nil {
				return nil, err
			}

			return &Document{Type: string(TypeArray), Items: items}, nil
		}

		return nil, errors.New(at + ": array property must have at most one item descriptor")

	default:
		if len(p.Children) != 0 {
			return nil, fmt.Errorf("%s: %s property cannot have children", at, p.Type)
		}

		return &Document{Type: string(p.Type)}, nil
	}
}
