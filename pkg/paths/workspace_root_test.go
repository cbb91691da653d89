package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flahallen61-boop/dto-map-builder/pkg/paths"
)

func TestFindWorkspaceRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dtomap.yaml"), []byte("className: X\n"), 0o600))

	got, err := paths.FindWorkspaceRoot(nested, "dtomap.yaml")
	require.NoError(t, err)
	assert.Equal(t, root, got)

	got, err = paths.FindWorkspaceRoot(root, "dtomap.yaml")
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindWorkspaceRoot_Innermost(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	inner := filepath.Join(outer, "sub")
	require.NoError(t, os.MkdirAll(inner, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(outer, "dtomap.yaml"), []byte("className: A\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(inner, "dtomap.yaml"), []byte("className: B\n"), 0o600))

	got, err := paths.FindWorkspaceRoot(inner, "dtomap.yaml")
	require.NoError(t, err)
	assert.Equal(t, inner, got)
}

func TestFindWorkspaceRoot_NotFound(t *testing.T) {
	t.Parallel()

	_, err := paths.FindWorkspaceRoot(t.TempDir(), "dtomap.yaml")
	require.ErrorIs(t, err, paths.ErrNoWorkspace)
}
