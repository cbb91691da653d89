package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dadav/go-jsonpointer"
)

// resolveRefs replaces intra-document references ($ref: "#/path/to/schema")
// with the subschema they point to. raw is the unmarshaled form of the whole
// document, used for JSON pointer lookups. seen guards against reference
// cycles.
func resolveRefs(doc *Document, raw any, seen map[string]bool) error {
	if doc == nil {
		return nil
	}

	if doc.Ref != "" {
		resolved, err := derefPointer(doc.Ref, raw, seen)
		if err != nil {
			return err
		}

		*doc = *resolved
	}

	for name, sub := range doc.Properties {
		if err := resolveRefs(sub, raw, seen); err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
	}

	if doc.Items != nil {
		if err := resolveRefs(doc.Items, raw, seen); err != nil {
			return fmt.Errorf("items: %w", err)
		}
	}

	return nil
}

func derefPointer(ref string, raw any, seen map[string]bool) (*Document, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, fmt.Errorf("unsupported external reference %q", ref)
	}

	if seen[ref] {
		return nil, fmt.Errorf("reference cycle through %q", ref)
	}

	seen[ref] = true
	defer delete(seen, ref)

	target, err := jsonpointer.Get(raw, strings.TrimPrefix(ref, "#"))
	if err != nil {
		return nil, fmt.Errorf("dereference %q: %w", ref, err)
	}

	targetBytes, err := json.Marshal(target)
	if err != nil {
		return nil, fmt.Errorf("marshal referenced schema %q: %w", ref, err)
	}

	resolved := &Document{}
	if err := json.Unmarshal(targetBytes, resolved); err != nil {
		return nil, fmt.Errorf("unmarshal referenced schema %q: %w", ref, err)
	}

	if err := resolveRefs(resolved, raw, seen); err != nil {
		return nil, err
	}

	return resolved, nil
}
