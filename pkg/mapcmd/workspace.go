package mapcmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/flahallen61-boop/dto-map-builder/pkg/dtomap"
	"github.com/flahallen61-boop/dto-map-builder/pkg/genclient"
	"github.com/flahallen61-boop/dto-map-builder/pkg/schema"
)

const (
	schemasDir   = "schemas"
	generatedDir = "generated"

	sourceSchemaFile  = "source.schema.json"
	previewSchemaFile = "preview.schema.json"
	mapfileSchemaFile = "dtomap.schema.json"
)

// Workspace is one dto-map-builder working directory: a mapfile, the stored
// source schema, and the backend client used to act on them.
type Workspace struct {
	Client      *genclient.Client
	Registry    *dtomap.Registry
	BasePath    string
	absBasePath string
	subs        []func(any)
	Timeout     time.Duration
	mu          sync.RWMutex
}

// WorkspaceOpt configures a [Workspace].
type WorkspaceOpt func(*Workspace)

// WithTimeout sets the per-operation timeout.
func WithTimeout(d time.Duration) WorkspaceOpt {
	return func(w *Workspace) {
		w.Timeout = d
	}
}

// WithRegistry overrides the target field registry.
func WithRegistry(reg *dtomap.Registry) WorkspaceOpt {
	return func(w *Workspace) {
		w.Registry = reg
	}
}

// NewWorkspace creates a [Workspace] rooted at basePath.
func NewWorkspace(basePath string, client *genclient.Client, opts ...WorkspaceOpt) (*Workspace, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	w := &Workspace{
		Client:      client,
		Registry:    dtomap.DefaultRegistry,
		BasePath:    basePath,
		absBasePath: absBasePath,
		Timeout:     5 * time.Minute,
		subs:        []func(any){},
	}
	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Subscribe registers f to receive workspace events.
func (w *Workspace) Subscribe(f func(any)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.subs = append(w.subs, f)
}

func (w *Workspace) broadcast(evt any) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, f := range w.subs {
		f(evt)
	}
}

func (w *Workspace) mapfilePath() string {
	return filepath.Join(w.absBasePath, dtomap.DefaultFileName)
}

func (w *Workspace) sourceSchemaPath() string {
	return filepath.Join(w.absBasePath, schemasDir, sourceSchemaFile)
}

func (w *Workspace) previewSchemaPath() string {
	return filepath.Join(w.absBasePath, schemasDir, previewSchemaFile)
}

func (w *Workspace) loadMapfile() (*dtomap.Mapfile, error) {
	m, err := dtomap.LoadMapfile(w.mapfilePath())
	if err != nil {
		return nil, fmt.Errorf("load %q, run init first: %w", w.mapfilePath(), err)
	}

	return m, nil
}

// loadSourceSchema reads the stored source schema and parses it.
func (w *Workspace) loadSourceSchema() ([]byte, *schema.Document, error) {
	data, err := os.ReadFile(w.sourceSchemaPath())
	if err != nil {
		return nil, nil, fmt.Errorf("read source schema, run source first: %w", err)
	}

	doc, err := schema.FromJSON(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parse stored source schema: %w", err)
	}

	return data, doc, nil
}

// Paths returns the sorted dot-notation leaf paths of the stored source
// schema.
func (w *Workspace) Paths() ([]string, error) {
	_, doc, err := w.loadSourceSchema()
	if err != nil {
		return nil, err
	}

	return doc.LeafPaths(), nil
}

// FieldStatus pairs one target field with its current binding, if any.
type FieldStatus struct {
	Field   *dtomap.TargetField
	Binding *dtomap.Binding
}

// Fields returns every registry target field together with its current
// binding state.
func (w *Workspace) Fields() ([]FieldStatus, error) {
	m, err := w.loadMapfile()
	if err != nil {
		return nil, err
	}

	var out []FieldStatus

	for _, name := range w.Registry.Names() {
		field, err := w.Registry.Get(name)
		if err != nil {
			return nil, err
		}

		status := FieldStatus{Field: field}
		if b, ok := m.Bindings[name]; ok {
			status.Binding = &b
		}

		out = append(out, status)
	}

	return out, nil
}
