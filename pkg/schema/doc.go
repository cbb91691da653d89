// Package schema provides functionality for managing JSON Schema documents.
//
// This package implements various strategies for obtaining a source schema
// (reading files and URLs, extracting OpenAPI component schemas, inferring
// schemas from sample JSON values, or building them from user-authored
// property trees).
//
// It also provides utilities for:
//   - Extracting dot-notation leaf paths from a schema.
//   - Resolving dot-notation paths back to their subschemas.
package schema
