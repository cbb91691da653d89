package mapcmd_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flahallen61-boop/dto-map-builder/pkg/dtomap"
	"github.com/flahallen61-boop/dto-map-builder/pkg/genclient"
	"github.com/flahallen61-boop/dto-map-builder/pkg/mapcmd"
	"github.com/flahallen61-boop/dto-map-builder/pkg/schema"
)

const customerSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"title": "Customer",
	"type": "object",
	"properties": {
		"customer": {
			"type": "object",
			"properties": {
				"id": {"type": "string"},
				"name": {"type": "string"},
				"email": {"type": "string", "format": "email"}
			},
			"required": ["id"]
		},
		"active": {"type": "boolean"}
	}
}`

// newTestWorkspace scaffolds an initialized workspace with a stored source
// schema, backed by the given server.
func newTestWorkspace(t *testing.T, serverURL string) *mapcmd.Workspace {
	t.Helper()

	if serverURL == "" {
		serverURL = "http://127.0.0.1:1"
	}

	client, err := genclient.NewClient(serverURL, 5*time.Second)
	require.NoError(t, err)

	ws, err := mapcmd.NewWorkspace(t.TempDir(), client)
	require.NoError(t, err)

	_, err = ws.Init()
	require.NoError(t, err)

	require.NoError(t, ws.SetLocalSchema([]byte(customerSchema), "test"))

	return ws
}

func TestInit(t *testing.T) {
	t.Parallel()

	client, err := genclient.NewClient("http://127.0.0.1:1", time.Second)
	require.NoError(t, err)

	dir := t.TempDir()
	ws, err := mapcmd.NewWorkspace(dir, client)
	require.NoError(t, err)

	var events []any
	ws.Subscribe(func(evt any) { events = append(events, evt) })

	changed, err := ws.Init()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.FileExists(t, filepath.Join(dir, dtomap.DefaultFileName))
	assert.FileExists(t, filepath.Join(dir, "dtomap.schema.json"))
	assert.DirExists(t, filepath.Join(dir, "schemas"))

	require.Len(t, events, 1)
	require.IsType(t, mapcmd.EventInit{}, events[0])
	assert.NoError(t, events[0].(mapcmd.EventInit).Err)

	// Second run must not touch anything.
	changed, err = ws.Init()
	require.NoError(t, err)
	assert.False(t, changed)

	m, err := dtomap.LoadMapfile(filepath.Join(dir, dtomap.DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, "GeneratedDto", m.ClassName)
}

func TestSetSource(t *testing.T) {
	t.Parallel()

	client, err := genclient.NewClient("http://127.0.0.1:1", time.Second)
	require.NoError(t, err)

	dir := t.TempDir()
	ws, err := mapcmd.NewWorkspace(dir, client)
	require.NoError(t, err)

	_, err = ws.Init()
	require.NoError(t, err)

	schemaFile := filepath.Join(t.TempDir(), "customer.schema.json")
	require.NoError(t, os.WriteFile(schemaFile, []byte(customerSchema), 0o600))

	var got mapcmd.EventSourceSet
	ws.Subscribe(func(evt any) {
		if e, ok := evt.(mapcmd.EventSourceSet); ok {
			got = e
		}
	})

	require.NoError(t, ws.SetSource(schemaFile, schema.LocalSourceType, ""))

	require.NoError(t, got.Err)
	assert.Equal(t, schemaFile, got.Location)
	assert.Equal(t, 4, got.Paths)

	stored, err := os.ReadFile(filepath.Join(dir, "schemas", "source.schema.json"))
	require.NoError(t, err)
	assert.JSONEq(t, customerSchema, string(stored))

	m, err := dtomap.LoadMapfile(filepath.Join(dir, dtomap.DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, schemaFile, m.Source.Location)
	assert.Equal(t, "LOCAL-PATH", m.Source.Type)

	paths, err := ws.Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{"active", "customer.email", "customer.id", "customer.name"}, paths)
}

func TestSetSourceErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		location string
		errMsg   string
	}{
		"EmptyLocation": {
			location: "",
			errMsg:   "source location cannot be empty",
		},
		"MissingFile": {
			location: filepath.Join(t.TempDir(), "nope.json"),
			errMsg:   "obtain source schema",
		},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ws := newTestWorkspace(t, "")

			err := ws.SetSource(tc.location, schema.LocalSourceType, "")
			require.ErrorContains(t, err, tc.errMsg)
		})
	}
}

func TestBind(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		field  string
		expr   string
		errMsg string
	}{
		"Path": {
			field: "email",
			expr:  "path=customer.email",
		},
		"Default": {
			field: "status",
			expr:  `default="NEW"`,
		},
		"UnknownField": {
			field:  "shoeSize",
			errMsg: `no target field "shoeSize"`,
		},
		"EmptyField": {
			field:  "",
			errMsg: "target field name cannot be empty",
		},
		"NotALeaf": {
			field:  "displayName",
			expr:   "path=customer",
			errMsg: "not a leaf path",
		},
		"BadExpression": {
			field:  "email",
			expr:   "customer.email",
			errMsg: "no key=value pair found",
		},
		"TypeMismatch": {
			field:  "quantity",
			expr:   "path=customer.name",
			errMsg: `target field "quantity" wants integer, but path "customer.name" has type string`,
		},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ws := newTestWorkspace(t, "")

			var got mapcmd.EventBound
			ws.Subscribe(func(evt any) {
				if e, ok := evt.(mapcmd.EventBound); ok {
					got = e
				}
			})

			err := ws.Bind(tc.field, tc.expr)
			if tc.errMsg != "" {
				require.ErrorContains(t, err, tc.errMsg)
				require.Error(t, got.Err)

				return
			}

			require.NoError(t, err)
			require.NoError(t, got.Err)
			assert.Equal(t, tc.field, got.Field)
		})
	}
}

func TestUnbind(t *testing.T) {
	t.Parallel()

	ws := newTestWorkspace(t, "")

	require.NoError(t, ws.Bind("email", "path=customer.email"))
	require.NoError(t, ws.Unbind("email"))
	require.ErrorContains(t, ws.Unbind("email"), `"email" is not bound`)
}

func TestFields(t *testing.T) {
	t.Parallel()

	ws := newTestWorkspace(t, "")

	require.NoError(t, ws.Bind("email", "path=customer.email"))

	fields, err := ws.Fields()
	require.NoError(t, err)
	require.NotEmpty(t, fields)

	byName := map[string]mapcmd.FieldStatus{}
	for _, fs := range fields {
		byName[fs.Field.Name] = fs
	}

	require.Contains(t, byName, "email")
	require.NotNil(t, byName["email"].Binding)
	assert.Equal(t, "customer.email", byName["email"].Binding.Path)

	require.Contains(t, byName, "status")
	assert.Nil(t, byName["status"].Binding)
}

func TestSetClassName(t *testing.T) {
	t.Parallel()

	ws := newTestWorkspace(t, "")

	require.NoError(t, ws.SetClassName("CustomerDto"))
	require.ErrorContains(t, ws.SetClassName(""), "cannot be empty")

	fields, err := ws.Fields()
	require.NoError(t, err)
	require.NotNil(t, fields)
}

// bindMinimalSpec satisfies the required target fields.
func bindMinimalSpec(t *testing.T, ws *mapcmd.Workspace) {
	t.Helper()

	require.NoError(t, ws.Bind("id", "path=customer.id"))
	require.NoError(t, ws.Bind("displayName", "path=customer.name"))
	require.NoError(t, ws.Bind("status", `default="NEW"`))
}

func TestPreview(t *testing.T) {
	t.Parallel()

	normalized := json.RawMessage(`{"type":"object","title":"Normalized"}`)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/schema/preview", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Schema json.RawMessage `json:"schema"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Schema)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"schema": normalized}))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ws := newTestWorkspace(t, srv.URL)

	var got mapcmd.EventCalled
	ws.Subscribe(func(evt any) {
		if e, ok := evt.(mapcmd.EventCalled); ok {
			got = e
		}
	})

	res, err := ws.Preview(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.JSONEq(t, string(normalized), string(res.Schema))

	require.NoError(t, got.Err)
	assert.Equal(t, "preview", got.Endpoint)
	assert.False(t, got.Fallback)

	stored, err := os.ReadFile(filepath.Join(ws.BasePath, "schemas", "preview.schema.json"))
	require.NoError(t, err)
	assert.JSONEq(t, string(normalized), string(stored))
}

func TestPreviewFallback(t *testing.T) {
	t.Parallel()

	ws := newTestWorkspace(t, "")

	res, err := ws.Preview(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	require.Error(t, res.Cause)
	assert.JSONEq(t, customerSchema, string(res.Schema))
}

func TestRegister(t *testing.T) {
	t.Parallel()

	var gotPayload dtomap.Payload

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/mappings", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(map[string]string{"mappingId": "map-42"}))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ws := newTestWorkspace(t, srv.URL)
	bindMinimalSpec(t, ws)

	res, err := ws.Register(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "map-42", res.MappingID)

	assert.Equal(t, "GeneratedDto", gotPayload.ClassName)
	assert.Equal(t, map[string]string{
		"id":          "customer.id",
		"displayName": "customer.name",
	}, gotPayload.FieldMapping)
	assert.Equal(t, map[string]any{"status": "NEW"}, gotPayload.DefaultValues)
}

func TestRegisterInvalidSpec(t *testing.T) {
	t.Parallel()

	ws := newTestWorkspace(t, "")

	// Required fields id and displayName are unbound.
	_, err := ws.Register(context.Background())
	require.ErrorContains(t, err, "invalid mapping")
	require.ErrorContains(t, err, `"id" is not bound`)
	require.ErrorContains(t, err, `"displayName" is not bound`)
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		response  map[string]any
		wantFiles map[string]string
	}{
		"Files": {
			response: map[string]any{
				"className": "GeneratedDto",
				"files": []map[string]string{
					{"name": "GeneratedDto.java", "content": "public class GeneratedDto {}"},
					{"name": "GeneratedDtoMapper.java", "content": "public class GeneratedDtoMapper {}"},
				},
			},
			wantFiles: map[string]string{
				"GeneratedDto.java":       "public class GeneratedDto {}",
				"GeneratedDtoMapper.java": "public class GeneratedDtoMapper {}",
			},
		},
		"BareCode": {
			response: map[string]any{"code": "public class GeneratedDto {}"},
			wantFiles: map[string]string{
				"generated_dto.txt": "public class GeneratedDto {}",
			},
		},
		"TraversalName": {
			response: map[string]any{
				"files": []map[string]string{
					{"name": "../../evil.txt", "content": "nope"},
				},
			},
			wantFiles: map[string]string{
				"evil.txt": "nope",
			},
		},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			mux := http.NewServeMux()
			mux.HandleFunc("POST /api/v1/classes/generate", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				require.NoError(t, json.NewEncoder(w).Encode(tc.response))
			})

			srv := httptest.NewServer(mux)
			t.Cleanup(srv.Close)

			ws := newTestWorkspace(t, srv.URL)
			bindMinimalSpec(t, ws)

			var wrote []string
			ws.Subscribe(func(evt any) {
				if e, ok := evt.(mapcmd.EventWroteArtifact); ok {
					require.NoError(t, e.Err)
					wrote = append(wrote, e.Name)
				}
			})

			files, err := ws.Generate(context.Background())
			require.NoError(t, err)
			require.Len(t, files, len(tc.wantFiles))
			assert.Len(t, wrote, len(tc.wantFiles))

			for name, content := range tc.wantFiles {
				data, err := os.ReadFile(filepath.Join(ws.BasePath, "generated", name))
				require.NoError(t, err)
				assert.Equal(t, content, string(data))
			}
		})
	}
}

func TestGenerateBackendDown(t *testing.T) {
	t.Parallel()

	ws := newTestWorkspace(t, "")
	bindMinimalSpec(t, ws)

	_, err := ws.Generate(context.Background())
	require.ErrorIs(t, err, genclient.ErrBackendUnavailable)
}
