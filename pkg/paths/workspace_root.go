package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoWorkspace indicates that no mapfile was found between the provided
// path and the filesystem root.
var ErrNoWorkspace = errors.New("no workspace found")

// FindWorkspaceRoot returns the closest (innermost) directory containing a
// mapfile, searching bottom-up from path toward /. This lets commands run
// from anywhere inside a workspace, similar to how git resolves its
// top-level directory.
func FindWorkspaceRoot(path, mapfileName string) (string, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	for {
		fi, err := os.Lstat(filepath.Join(dir, mapfileName))
		if err == nil && !fi.IsDir() {
			return dir, nil
		}

		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %q: %w", filepath.Join(dir, mapfileName), err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s between %q and the filesystem root",
				ErrNoWorkspace, mapfileName, path)
		}

		dir = parent
	}
}
