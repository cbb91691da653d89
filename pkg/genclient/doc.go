// Package genclient is the REST client for the external generator backend.
//
// The backend exposes three endpoints: schema preview, mapping registration,
// and class generation. Its behavior is opaque to this module; the client
// only shapes requests, decodes responses, and implements the local-schema
// fallback for failed previews.
package genclient
