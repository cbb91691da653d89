package mapcmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/flahallen61-boop/dto-map-builder/pkg/schema"
)

// SetSource obtains the source schema from location using the given source
// type, validates it, and stores its canonical form in the workspace.
func (w *Workspace) SetSource(location string, sourceType schema.SourceType, component string) error {
	if location == "" {
		err := errors.New("source location cannot be empty")
		w.broadcast(EventSourceSet{Err: err})

		return err
	}

	logger := slog.With(
		slog.String("cmd", "source"),
		slog.String("location", location),
		slog.String("type", string(sourceType)),
	)

	var generator schema.Generator
	if sourceType == schema.OpenAPISourceType {
		generator = schema.NewOpenAPIGenerator(component)
	} else {
		generator = schema.GetGenerator(sourceType)
	}

	jsBytes, err := generator.FromPaths(location)
	if err != nil {
		err = fmt.Errorf("obtain source schema: %w", err)
		w.broadcast(EventSourceSet{Err: err, Location: location})

		return err
	}

	doc, err := schema.FromJSON(jsBytes)
	if err != nil {
		w.broadcast(EventSourceSet{Err: err, Location: location})

		return err
	}

	m, err := w.loadMapfile()
	if err != nil {
		w.broadcast(EventSourceSet{Err: err, Location: location})

		return err
	}

	logger.Info("storing source schema", slog.String("file", w.sourceSchemaPath()))

	if err := os.WriteFile(w.sourceSchemaPath(), jsBytes, 0o600); err != nil {
		err = fmt.Errorf("write source schema: %w", err)
		w.broadcast(EventSourceSet{Err: err, Location: location})

		return err
	}

	m.Source.Location = location
	m.Source.Type = string(sourceType)
	m.Source.Component = component

	if err := m.Save(w.mapfilePath()); err != nil {
		w.broadcast(EventSourceSet{Err: err, Location: location})

		return err
	}

	paths := doc.LeafPaths()
	logger.Info("source schema set", slog.Int("leaf_paths", len(paths)))
	w.broadcast(EventSourceSet{Location: location, Paths: len(paths)})

	return nil
}

// SetLocalSchema stores an already-built schema document as the workspace
// source, bypassing the generator strategies. Used by the build and infer
// commands.
func (w *Workspace) SetLocalSchema(jsBytes []byte, origin string) error {
	doc, err := schema.FromJSON(jsBytes)
	if err != nil {
		w.broadcast(EventSourceSet{Err: err, Location: origin})

		return err
	}

	m, err := w.loadMapfile()
	if err != nil {
		w.broadcast(EventSourceSet{Err: err, Location: origin})

		return err
	}

	if err := os.WriteFile(w.sourceSchemaPath(), jsBytes, 0o600); err != nil {
		err = fmt.Errorf("write source schema: %w", err)
		w.broadcast(EventSourceSet{Err: err, Location: origin})

		return err
	}

	m.Source.Location = origin
	m.Source.Type = string(schema.LocalSourceType)
	m.Source.Component = ""

	if err := m.Save(w.mapfilePath()); err != nil {
		w.broadcast(EventSourceSet{Err: err, Location: origin})

		return err
	}

	w.broadcast(EventSourceSet{Location: origin, Paths: len(doc.LeafPaths())})

	return nil
}
