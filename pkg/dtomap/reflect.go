package dtomap

import (
	"bytes"
	"encoding/json"
	"fmt"

	invopopjsonschema "github.com/invopop/jsonschema"
)

// MapfileSchema reflects the [Mapfile] type into a JSON Schema, so editors
// can validate workspace mapfiles.
func MapfileSchema() ([]byte, error) {
	r := &invopopjsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	s := r.Reflect(&Mapfile{})

	jsBytes, err := s.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal mapfile schema: %w", err)
	}

	indented := &bytes.Buffer{}
	if err := json.Indent(indented, jsBytes, "", "  "); err != nil {
		return nil, fmt.Errorf("indent mapfile schema: %w", err)
	}

	return indented.Bytes(), nil
}
