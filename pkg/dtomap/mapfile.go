package dtomap

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the mapfile name looked up in a workspace.
const DefaultFileName = "dtomap.yaml"

// SourceConfig records where the source schema came from.
type SourceConfig struct {
	// Location is the file path or URL the schema was read from.
	Location string `json:"location,omitempty"  yaml:"location,omitempty"`
	// Type is the source type used to obtain the schema.
	Type string `json:"type,omitempty"      yaml:"type,omitempty"`
	// Component is the OpenAPI component schema name, when applicable.
	Component string `json:"component,omitempty" yaml:"component,omitempty"`
}

// Mapfile is the on-disk workspace state: the source schema location, the
// class name, and the field bindings.
type Mapfile struct {
	// ClassName is the name of the class to generate.
	ClassName string `json:"className"          yaml:"className"`
	// Source records where the source schema came from.
	Source SourceConfig `json:"source,omitempty"   yaml:"source,omitempty"`
	// Bindings maps target field names to their bindings.
	Bindings map[string]Binding `json:"bindings,omitempty" yaml:"bindings,omitempty"`
}

// NewMapfile creates an empty [Mapfile] with the given class name.
func NewMapfile(className string) *Mapfile {
	return &Mapfile{
		ClassName: className,
		Bindings:  map[string]Binding{},
	}
}

// LoadMapfile reads and strictly decodes a mapfile.
func LoadMapfile(path string) (*Mapfile, error) {
	//nolint:gosec // G304 not relevant for user-provided mapfiles.
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapfile: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only.

	m := &Mapfile{}

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	if err := dec.Decode(m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("mapfile %q is empty", path)
		}

		return nil, fmt.Errorf("decode mapfile: %w", err)
	}

	if m.Bindings == nil {
		m.Bindings = map[string]Binding{}
	}

	return m, nil
}

// Save writes the mapfile to path.
func (m *Mapfile) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal mapfile: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write mapfile: %w", err)
	}

	return nil
}

// Spec returns the mapping spec held by the mapfile.
func (m *Mapfile) Spec() *Spec {
	return &Spec{
		ClassName: m.ClassName,
		Bindings:  m.Bindings,
	}
}
