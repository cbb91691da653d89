package schema

import (
	"fmt"
	"slices"
	"strings"
)

// LeafPaths returns the sorted dot-notation paths of every leaf field in the
// document. Object properties nest; arrays of objects descend through their
// items without adding a path segment; arrays of scalars are leaves.
func (d *Document) LeafPaths() []string {
	found := map[string]bool{}
	collectLeaves(d, "", found)

	paths := make([]string, 0, len(found))
	for p := range found {
		paths = append(paths, p)
	}

	slices.Sort(paths)

	return paths
}

func collectLeaves(d *Document, prefix string, out map[string]bool) {
	if d == nil {
		return
	}

	if d.IsObject() {
		for name, sub := range d.Properties {
			collectLeaves(sub, joinPath(prefix, name), out)
		}

		return
	}

	if d.Items != nil && d.Items.IsObject() {
		collectLeaves(d.Items, prefix, out)

		return
	}

	if prefix != "" {
		out[prefix] = true
	}
}

// Resolve returns the subschema at the given dot-notation path, descending
// through object properties and array items.
func (d *Document) Resolve(path string) (*Document, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path")
	}

	cur := d

	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		}

		// Arrays of objects are addressed as if they were the object itself.
		for cur.Items != nil && cur.Items.IsObject() {
			cur = cur.Items
		}

		sub, ok := cur.Properties[segment]
		if !ok {
			return nil, fmt.Errorf("path %q: no property %q", path, segment)
		}

		cur = sub
	}

	return cur, nil
}

// HasLeaf reports whether path is one of the document's leaf paths.
func (d *Document) HasLeaf(path string) bool {
	return slices.Contains(d.LeafPaths(), path)
}
