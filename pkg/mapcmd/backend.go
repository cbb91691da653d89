package mapcmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/iancoleman/strcase"

	"github.com/flahallen61-boop/dto-map-builder/pkg/dtomap"
	"github.com/flahallen61-boop/dto-map-builder/pkg/genclient"
)

// Preview submits the stored source schema to the backend and stores the
// returned (or fallen-back-to) schema alongside it. A fallback is reported
// through the event, not as an error.
func (w *Workspace) Preview(ctx context.Context) (*genclient.PreviewResult, error) {
	ctx, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()

	jsBytes, _, err := w.loadSourceSchema()
	if err != nil {
		w.broadcast(EventCalled{Err: err, Endpoint: "preview"})

		return nil, err
	}

	res, err := w.Client.Preview(ctx, jsBytes)
	if err != nil {
		w.broadcast(EventCalled{Err: err, Endpoint: "preview"})

		return nil, err
	}

	if err := os.WriteFile(w.previewSchemaPath(), res.Schema, 0o600); err != nil {
		err = fmt.Errorf("write preview schema: %w", err)
		w.broadcast(EventCalled{Err: err, Endpoint: "preview"})

		return nil, err
	}

	w.broadcast(EventCalled{Endpoint: "preview", Fallback: res.Fallback})

	return res, nil
}

// Register validates the mapping spec and registers it with the backend.
func (w *Workspace) Register(ctx context.Context) (*genclient.RegisterResult, error) {
	ctx, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()

	payload, err := w.validatedPayload()
	if err != nil {
		w.broadcast(EventCalled{Err: err, Endpoint: "register"})

		return nil, err
	}

	res, err := w.Client.Register(ctx, payload)
	if err != nil {
		w.broadcast(EventCalled{Err: err, Endpoint: "register"})

		return nil, err
	}

	slog.Info("registered mapping",
		slog.String("class", payload.ClassName),
		slog.String("mapping_id", res.MappingID),
	)
	w.broadcast(EventCalled{Endpoint: "register"})

	return res, nil
}

// Generate validates the mapping spec, calls the generate endpoint, and
// writes the returned artifacts under the generated directory.
func (w *Workspace) Generate(ctx context.Context) ([]genclient.GeneratedFile, error) {
	ctx, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()

	payload, err := w.validatedPayload()
	if err != nil {
		w.broadcast(EventCalled{Err: err, Endpoint: "generate"})

		return nil, err
	}

	res, err := w.Client.Generate(ctx, payload)
	if err != nil {
		w.broadcast(EventCalled{Err: err, Endpoint: "generate"})

		return nil, err
	}

	w.broadcast(EventCalled{Endpoint: "generate"})

	files := res.Artifacts()
	w.broadcast(EventSetArtifactTotal(len(files)))

	outDir := filepath.Join(w.absBasePath, generatedDir)
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, fmt.Errorf("create %q: %w", outDir, err)
	}

	for _, f := range files {
		w.broadcast(EventWritingArtifact(f.Name))

		name := sanitizeArtifactName(f.Name, payload.ClassName)

		err := os.WriteFile(filepath.Join(outDir, name), []byte(f.Content), 0o600)
		if err != nil {
			err = fmt.Errorf("write artifact %q: %w", name, err)
			w.broadcast(EventWroteArtifact{Err: err, Name: name})

			return nil, err
		}

		slog.Debug("wrote artifact", slog.String("file", name))
		w.broadcast(EventWroteArtifact{Name: name})
	}

	return files, nil
}

// validatedPayload loads the mapfile, validates the spec against the
// registry and the stored source schema, and builds the wire payload.
func (w *Workspace) validatedPayload() (*dtomap.Payload, error) {
	m, err := w.loadMapfile()
	if err != nil {
		return nil, err
	}

	_, doc, err := w.loadSourceSchema()
	if err != nil {
		return nil, err
	}

	spec := m.Spec()
	if err := spec.Validate(w.Registry, doc); err != nil {
		return nil, fmt.Errorf("invalid mapping: %w", err)
	}

	slog.Debug("validated mapping",
		slog.String("class", spec.ClassName),
		slog.Any("tree", spec.Nested()),
	)

	return spec.Payload(), nil
}

// sanitizeArtifactName keeps server-provided names from escaping the output
// directory.
func sanitizeArtifactName(name, className string) string {
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return strcase.ToSnake(className) + ".txt"
	}

	return name
}
