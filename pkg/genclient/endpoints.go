package genclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iancoleman/strcase"

	"github.com/flahallen61-boop/dto-map-builder/pkg/dtomap"
)

// PreviewResult is the outcome of a schema preview call. When the backend
// cannot be reached or answers badly, Schema holds the locally parsed schema
// unchanged, Fallback is true, and Cause carries the failure.
type PreviewResult struct {
	Schema   json.RawMessage
	Cause    error
	Fallback bool
}

type previewRequest struct {
	Schema json.RawMessage `json:"schema"`
}

type previewResponse struct {
	Schema json.RawMessage `json:"schema"`
}

// Preview submits the locally parsed schema for server-side normalization.
// Backend failures are not errors: the local schema is returned as a
// fallback, with the cause attached.
func (c *Client) Preview(ctx context.Context, schemaJSON []byte) (*PreviewResult, error) {
	if len(schemaJSON) == 0 {
		return nil, errors.New("no schema to preview")
	}

	resp := &previewResponse{}

	err := c.post(ctx, previewPath, &previewRequest{Schema: schemaJSON}, resp)
	if err == nil && len(resp.Schema) == 0 {
		err = fmt.Errorf("%w: response carries no schema", ErrInvalidResponse)
	}

	if err != nil {
		slog.Warn("schema preview failed, using locally parsed schema", slog.Any("err", err))

		return &PreviewResult{
			Schema:   schemaJSON,
			Fallback: true,
			Cause:    err,
		}, nil
	}

	return &PreviewResult{Schema: resp.Schema}, nil
}

// RegisterResult is the backend's acknowledgement of a registered mapping.
type RegisterResult struct {
	MappingID string `json:"mappingId"`
	Message   string `json:"message,omitempty"`
}

// Register submits the mapping payload for registration.
func (c *Client) Register(ctx context.Context, p *dtomap.Payload) (*RegisterResult, error) {
	res := &RegisterResult{}
	if err := c.post(ctx, registerPath, p, res); err != nil {
		return nil, fmt.Errorf("register mapping: %w", err)
	}

	return res, nil
}

// GeneratedFile is one generated code artifact.
type GeneratedFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// GenerateResult is the backend's answer to a generate call.
type GenerateResult struct {
	ClassName string          `json:"className,omitempty"`
	Code      string          `json:"code,omitempty"`
	Files     []GeneratedFile `json:"files,omitempty"`
}

// Artifacts returns the generated files, folding a bare code response into a
// single file named after the class.
func (r *GenerateResult) Artifacts() []GeneratedFile {
	if len(r.Files) > 0 {
		return r.Files
	}

	if r.Code != "" {
		name := "generated_class.txt"
		if r.ClassName != "" {
			name = strcase.ToSnake(r.ClassName) + ".txt"
		}

		return []GeneratedFile{{Name: name, Content: r.Code}}
	}

	return nil
}

// Generate submits the mapping payload and returns the generated code.
func (c *Client) Generate(ctx context.Context, p *dtomap.Payload) (*GenerateResult, error) {
	res := &GenerateResult{}
	if err := c.post(ctx, generatePath, p, res); err != nil {
		return nil, fmt.Errorf("generate class: %w", err)
	}

	if res.ClassName == "" {
		res.ClassName = p.ClassName
	}

	if len(res.Artifacts()) == 0 {
		return nil, fmt.Errorf("%w: response carries no generated code", ErrInvalidResponse)
	}

	return res, nil
}
