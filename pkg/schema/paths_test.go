package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flahallen61-boop/dto-map-builder/pkg/schema"
)

const orderSchema = `{
	"type": "object",
	"properties": {
		"id": {"type": "string"},
		"customer": {
			"type": "object",
			"properties": {
				"name": {"type": "string"},
				"contact": {
					"type": "object",
					"properties": {
						"email": {"type": "string"},
						"phone": {"type": "string"}
					}
				}
			}
		},
		"items": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"sku": {"type": "string"},
					"quantity": {"type": "integer"}
				}
			}
		},
		"tags": {"type": "array", "items": {"type": "string"}}
	}
}`

func TestLeafPaths(t *testing.T) {
	t.Parallel()

	doc, err := schema.FromJSON([]byte(orderSchema))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"customer.contact.email",
		"customer.contact.phone",
		"customer.name",
		"id",
		"items.quantity",
		"items.sku",
		"tags",
	}, doc.LeafPaths())
}

func TestLeafPaths_EmptyObjectIsLeaf(t *testing.T) {
	t.Parallel()

	doc, err := schema.FromJSON([]byte(`{
		"type": "object",
		"properties": {"meta": {"type": "object"}}
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"meta"}, doc.LeafPaths())
}

func TestResolve(t *testing.T) {
	t.Parallel()

	doc, err := schema.FromJSON([]byte(orderSchema))
	require.NoError(t, err)

	tcs := map[string]struct {
		path     string
		wantType string
		wantErr  string
	}{
		"TopLevel":        {path: "id", wantType: "string"},
		"Nested":          {path: "customer.contact.email", wantType: "string"},
		"ThroughArray":    {path: "items.quantity", wantType: "integer"},
		"ObjectNode":      {path: "customer.contact", wantType: "object"},
		"Unknown":         {path: "customer.nope", wantErr: `no property "nope"`},
		"EmptySegment":    {path: "customer..name", wantErr: "empty segment"},
		"EmptyPath":       {path: "", wantErr: "empty path"},
		"ScalarDescended": {path: "id.sub", wantErr: `no property "sub"`},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sub, err := doc.Resolve(tc.path)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantType, sub.Type)
		})
	}
}

func TestHasLeaf(t *testing.T) {
	t.Parallel()

	doc, err := schema.FromJSON([]byte(orderSchema))
	require.NoError(t, err)

	assert.True(t, doc.HasLeaf("customer.name"))
	assert.False(t, doc.HasLeaf("customer"))
	assert.False(t, doc.HasLeaf("missing"))
}
