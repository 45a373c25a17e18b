// Package schemas provides JSON Schema validation for incoming request bodies.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed json/*.json
var schemaFS embed.FS

// Names of the embedded request schemas.
const (
	JobCreate     = "job_create"
	ProfileCreate = "profile_create"
	ProfileUpdate = "profile_update"
	Contact       = "contact"
	UsageUpgrade  = "usage_upgrade"
)

var compiled = map[string]*gojsonschema.Schema{}

func init() {
	for _, name := range []string{JobCreate, ProfileCreate, ProfileUpdate, Contact, UsageUpgrade} {
		raw, err := schemaFS.ReadFile("json/" + name + ".json")
		if err != nil {
			panic(fmt.Sprintf("missing embedded schema %q: %v", name, err))
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			panic(fmt.Sprintf("invalid embedded schema %q: %v", name, err))
		}
		compiled[name] = schema
	}
}

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %d. %s: %s;", i+1, err.Field, err.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// ValidateBody validates a JSON request body against the named embedded
// schema. A malformed body (not JSON at all) is reported the same way as
// a body that fails the schema.
func ValidateBody(name string, body []byte) error {
	schema, ok := compiled[name]
	if !ok {
		return fmt.Errorf("unknown schema: %s", name)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{
			Field:   "(root)",
			Message: "body is not valid JSON",
		}}}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
