package schema

import (
	"strings"
)

// SourceType selects the strategy used to obtain a source schema.
type SourceType string

const (
	DefaultSourceType SourceType = ""
	AutoSourceType    SourceType = "AUTO"
	URLSourceType     SourceType = "URL"
	LocalSourceType   SourceType = "LOCAL-PATH"
	OpenAPISourceType SourceType = "OPENAPI"
	SampleSourceType  SourceType = "SAMPLE"
	NoSourceType      SourceType = "NONE"
)

// SourceTypeEnum lists the selectable source types.
var SourceTypeEnum = []any{
	AutoSourceType,
	URLSourceType,
	LocalSourceType,
	OpenAPISourceType,
	SampleSourceType,
	NoSourceType,
}

// Generator obtains a JSON Schema from one or more paths (files or URLs) and
// returns its canonical []byte representation.
type Generator interface {
	FromPaths(paths ...string) ([]byte, error)
}

// GetGenerator returns a [Generator] for the given [SourceType].
//
//nolint:ireturn // Multiple concrete types.
func GetGenerator(t SourceType) Generator {
	switch t {
	case AutoSourceType, URLSourceType, LocalSourceType, DefaultSourceType:
		return DefaultReaderGenerator
	case OpenAPISourceType:
		return DefaultOpenAPIGenerator
	case SampleSourceType:
		return DefaultSampleGenerator
	case NoSourceType:
		return DefaultNoGenerator
	default:
		return DefaultNoGenerator
	}
}

// GetSourceType parses a source type string into a [SourceType].
func GetSourceType(t string) SourceType {
	switch strings.TrimSpace(strings.ToUpper(t)) {
	case string(AutoSourceType):
		return AutoSourceType
	case string(URLSourceType):
		return URLSourceType
	case string(LocalSourceType):
		return LocalSourceType
	case string(OpenAPISourceType):
		return OpenAPISourceType
	case string(SampleSourceType):
		return SampleSourceType
	case string(NoSourceType):
		return NoSourceType
	default:
		return DefaultSourceType
	}
}
