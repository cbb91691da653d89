package mapcmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/flahallen61-boop/dto-map-builder/pkg/dtomap"
)

const initialClassName = "GeneratedDto"

// Init scaffolds the workspace: a default mapfile and its reflected JSON
// Schema. It is idempotent and reports whether anything was created.
func (w *Workspace) Init() (bool, error) {
	logger := slog.With(slog.String("cmd", "init"), slog.String("path", w.BasePath))

	if err := os.MkdirAll(filepath.Join(w.absBasePath, schemasDir), 0o750); err != nil {
		err = fmt.Errorf("create workspace directories: %w", err)
		w.broadcast(EventInit{Err: err})

		return false, err
	}

	changed := false

	_, err := os.Lstat(w.mapfilePath())

	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Info("writing mapfile", slog.String("file", dtomap.DefaultFileName))

		if err := dtomap.NewMapfile(initialClassName).Save(w.mapfilePath()); err != nil {
			w.broadcast(EventInit{Err: err})

			return false, err
		}

		changed = true

	case err != nil:
		err = fmt.Errorf("stat mapfile: %w", err)
		w.broadcast(EventInit{Err: err})

		return false, err

	default:
		logger.Debug("mapfile already exists")
	}

	schemaPath := filepath.Join(w.absBasePath, mapfileSchemaFile)
	if _, err := os.Lstat(schemaPath); errors.Is(err, os.ErrNotExist) {
		jsBytes, err := dtomap.MapfileSchema()
		if err != nil {
			w.broadcast(EventInit{Err: err})

			return false, err
		}

		if err := os.WriteFile(schemaPath, jsBytes, 0o600); err != nil {
			err = fmt.Errorf("write mapfile schema: %w", err)
			w.broadcast(EventInit{Err: err})

			return false, err
		}

		changed = true
	}

	w.broadcast(EventInit{})

	return changed, nil
}
