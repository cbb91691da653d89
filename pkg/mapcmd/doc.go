// Package mapcmd implements the workspace-level operations behind the CLI:
// initializing a workspace, setting the source schema, editing bindings, and
// driving the generator backend's preview, register, and generate endpoints.
package mapcmd
