package schema

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

var (
	// DefaultReaderGenerator is an opinionated [ReaderGenerator].
	DefaultReaderGenerator = NewReaderGenerator()

	_ Generator = DefaultReaderGenerator
)

// ReaderGenerator reads a JSON Schema from a given location and returns its
// canonical []byte representation.
type ReaderGenerator struct{}

// NewReaderGenerator creates a new [ReaderGenerator].
func NewReaderGenerator() *ReaderGenerator {
	return &ReaderGenerator{}
}

// FromPaths reads a JSON Schema from at least one of the given file paths or
// URLs and returns its canonical []byte representation. Paths are fetched
// concurrently; the first valid schema in input order wins. It returns an
// error only if none of the paths provide a valid JSON Schema.
func (g *ReaderGenerator) FromPaths(paths ...string) ([]byte, error) {
	if len(paths) == 0 {
		return nil, errors.New("no paths provided")
	}

	if len(paths) == 1 {
		return g.fromPath(paths[0])
	}

	results := make([][]byte, len(paths))
	errs := make([]error, len(paths))

	var eg errgroup.Group
	for i, path := range paths {
		eg.Go(func() error {
			results[i], errs[i] = g.fromPath(path)

			return nil
		})
	}

	// Goroutines report through the slices, never through eg.Wait.
	_ = eg.Wait()

	var merr error

	for i, path := range paths {
		if errs[i] == nil {
			return results[i], nil
		}

		merr = multierror.Append(merr, fmt.Errorf("%s: %w", path, errs[i]))
	}

	return nil, fmt.Errorf("could not read JSON Schema from any of the provided paths: %w", merr)
}

func (g *ReaderGenerator) fromPath(path string) ([]byte, error) {
	if path == "-" {
		return g.FromReader(os.Stdin)
	}

	schemaPath, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path: %w", err)
	}

	switch schemaPath.Scheme {
	case "http", "https":
		return g.FromURL(schemaPath)
	case "":
		return g.FromFile(schemaPath.Path)
	}

	return nil, fmt.Errorf("unsupported scheme: %s", schemaPath.Scheme)
}

// FromFile reads a JSON Schema from the given file path.
func (g *ReaderGenerator) FromFile(path string) ([]byte, error) {
	//nolint:gosec // G304 not relevant for client-side generation.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return g.FromData(data)
}

// FromURL fetches a JSON Schema over HTTP(S).
func (g *ReaderGenerator) FromURL(schemaURL *url.URL) ([]byte, error) {
	resp, err := http.DefaultClient.Do(&http.Request{
		Method: http.MethodGet,
		URL:    schemaURL,
	})
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("close http response body",
				slog.String("url", schemaURL.String()),
				slog.Any("err", err),
			)
		}
	}()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("http request: %s returned %s", schemaURL, resp.Status)
	}

	return g.FromReader(resp.Body)
}

// FromReader reads a JSON Schema from r.
func (g *ReaderGenerator) FromReader(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return g.FromData(data)
}

// FromData parses, validates, and canonicalizes a JSON or YAML schema
// document.
func (g *ReaderGenerator) FromData(data []byte) ([]byte, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptySchema
	}

	doc, err := FromData(data)
	if err != nil {
		return nil, err
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	if !doc.IsObject() {
		return nil, ErrEmptySchema
	}

	jsBytes, err := doc.ToJSON()
	if err != nil {
		return nil, err
	}

	if err := Compile(jsBytes); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	return jsBytes, nil
}
