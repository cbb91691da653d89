package dtomap

import (
	"fmt"
	"sync"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// TargetField is one predefined DTO target field.
type TargetField struct {
	// Name is the target field name, referenced by bindings.
	Name string `json:"name"`
	// Type is the expected JSON type of the mapped value.
	Type string `json:"type"`
	// Description documents the field for listings.
	Description string `json:"description,omitempty"`
	// Required marks fields that every mapping must bind.
	Required bool `json:"required,omitempty"`
}

// Label returns a human-readable label for the field, e.g. "externalId"
// becomes "External Id".
func (f *TargetField) Label() string {
	return titleCaser.String(strcase.ToDelimited(f.Name, ' '))
}

// Accepts reports whether a schema leaf of the given JSON type can feed the
// field. Untyped leaves are accepted, and integer leaves satisfy number
// fields.
func (f *TargetField) Accepts(leafType string) bool {
	if leafType == "" || f.Type == "" {
		return true
	}

	if f.Type == "number" && leafType == "integer" {
		return true
	}

	return f.Type == leafType
}

// Getter exposes a set of target fields for validation.
// See [Registry] for an implementation.
type Getter interface {
	Get(name string) (*TargetField, error)
	Names() []string
	Required() []string
}

// Registry holds the fixed set of predefined DTO target fields.
type Registry struct {
	fieldsByName map[string]*TargetField
	names        []string

	mu sync.RWMutex
}

// NewRegistry creates an empty [Registry].
func NewRegistry() *Registry {
	return &Registry{
		fieldsByName: make(map[string]*TargetField),
	}
}

// NewDefaultRegistry creates a [Registry] preloaded with the built-in DTO
// target field set.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, f := range builtinFields {
		if err := r.Add(f); err != nil {
			panic(err)
		}
	}

	return r
}

// DefaultRegistry holds the built-in DTO target field set.
var DefaultRegistry = NewDefaultRegistry()

// Add adds a target field to the [Registry]. Adding a field with an empty or
// duplicate name is an error.
func (r *Registry) Add(field *TargetField) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if field.Name == "" {
		return fmt.Errorf("target field with empty name")
	}

	if _, ok := r.fieldsByName[field.Name]; ok {
		return fmt.Errorf("target field %q already exists", field.Name)
	}

	r.fieldsByName[field.Name] = field
	r.names = append(r.names, field.Name)

	return nil
}

// Get returns a target field by name. If the field does not exist in the
// [Registry], an error is returned.
func (r *Registry) Get(name string) (*TargetField, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	field, ok := r.fieldsByName[name]
	if !ok {
		return nil, fmt.Errorf("no target field %q", name)
	}

	return field, nil
}

// Names returns the target field names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.names))
	copy(out, r.names)

	return out
}

// Required returns the names of all required target fields, in registration
// order.
func (r *Registry) Required() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string

	for _, name := range r.names {
		if r.fieldsByName[name].Required {
			out = append(out, name)
		}
	}

	return out
}

var builtinFields = []*TargetField{
	{Name: "id", Type: "string", Required: true, Description: "Primary record identifier."},
	{Name: "externalId", Type: "string", Description: "Identifier in the source system."},
	{Name: "displayName", Type: "string", Required: true, Description: "Human-readable record name."},
	{Name: "email", Type: "string", Description: "Primary contact email address."},
	{Name: "phone", Type: "string", Description: "Primary contact phone number."},
	{Name: "status", Type: "string", Description: "Record lifecycle status."},
	{Name: "amount", Type: "number", Description: "Monetary amount associated with the record."},
	{Name: "quantity", Type: "integer", Description: "Unit count associated with the record."},
	{Name: "active", Type: "boolean", Description: "Whether the record is active."},
	{Name: "createdAt", Type: "string", Description: "Creation timestamp, RFC 3339."},
	{Name: "updatedAt", Type: "string", Description: "Last update timestamp, RFC 3339."},
	{Name: "notes", Type: "string", Description: "Free-form annotations."},
}
