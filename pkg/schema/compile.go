package schema

import (
	"bytes"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Compile verifies that data is a compilable JSON Schema document by running
// it through a draft-07 compiler. It is a dialect-level check, complementing
// the structural [Document.Validate].
func Compile(data []byte) error {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7

	if err := c.AddResource("source.schema.json", bytes.NewReader(data)); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}

	if _, err := c.Compile("source.schema.json"); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	return nil
}
