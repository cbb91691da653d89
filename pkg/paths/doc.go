// Package paths locates dto-map-builder workspaces on disk.
package paths
