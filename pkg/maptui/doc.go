// Package maptui provides a terminal UI for workspace operations, drawing
// progress while the underlying commands run and streaming their log output
// into the scrollback.
package maptui
