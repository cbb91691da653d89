// Package dtomap models the mapping between an arbitrary source JSON Schema
// and the fixed set of predefined DTO target fields.
//
// A mapping binds each target field to either a dot-notation path into the
// source schema or a literal default value, and serializes into the payload
// sent to the generator backend.
package dtomap
