package llm

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

// FieldType is the expected JSON type of a schema field
type FieldType string

const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
	TypeObject FieldType = "object"
)

// Field declares one expected key in a collaborator response
type Field struct {
	Name     string
	Type     FieldType
	Required bool
}

// Schema is the required-field contract a response is validated against
type Schema struct {
	Fields []Field
}

// ValidationError is a typed parse/schema failure. It carries the offending
// field and a truncated copy of the raw collaborator text for diagnostics,
// and unwraps to domain.ErrMalformedResponse or domain.ErrSchemaViolation
// so callers can branch on the failure class.
type ValidationError struct {
	Field  string
	Reason string
	Raw    string
	kind   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q: %s", e.kind.Error(), e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.kind.Error(), e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

func newMalformedError(reason, raw string) *ValidationError {
	return &ValidationError{Reason: reason, Raw: truncate(raw), kind: domain.ErrMalformedResponse}
}

func newSchemaError(field, reason, raw string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Raw: truncate(raw), kind: domain.ErrSchemaViolation}
}

func truncate(s string) string {
	if len(s) > RawTextTruncateLen {
		return s[:RawTextTruncateLen]
	}
	return s
}

// StripFences removes markdown code-fence delimiters and surrounding
// whitespace from collaborator output
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	// Drop the opening fence line (``` or ```json)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Parse strips fences, parses raw as a JSON object and checks it against the
// schema. It returns a typed *ValidationError instead of throwing parse
// failures into caller logic. Numeric range enforcement is the caller's
// concern via Clamp; only missing/mistyped fields are errors here.
func Parse(raw string, schema Schema) (map[string]interface{}, error) {
	stripped := StripFences(raw)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(stripped), &parsed); err != nil {
		return nil, newMalformedError(err.Error(), raw)
	}

	for _, field := range schema.Fields {
		value, present := parsed[field.Name]
		if !present || value == nil {
			if field.Required {
				return nil, newSchemaError(field.Name, "required field missing", raw)
			}
			continue
		}
		if !typeMatches(value, field.Type) {
			return nil, newSchemaError(field.Name, fmt.Sprintf("expected %s, got %T", field.Type, value), raw)
		}
	}

	return parsed, nil
}

func typeMatches(value interface{}, t FieldType) bool {
	switch t {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeNumber:
		_, ok := value.(float64)
		return ok
	case TypeObject:
		_, ok := value.(map[string]interface{})
		return ok
	}
	return false
}

// Clamp bounds v to [min, max]. Clamping is silent; it is distinct from a
// missing field, which is a schema error.
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampScore rounds and bounds a numeric score to the [0,100] integer range
func ClampScore(v float64) int {
	return int(math.Round(Clamp(v, 0, 100)))
}

// Number extracts a numeric field from a parsed response, returning
// fallback when the field is absent or not a number
func Number(parsed map[string]interface{}, key string, fallback float64) float64 {
	if v, ok := parsed[key].(float64); ok {
		return v
	}
	return fallback
}

// String extracts a string field from a parsed response
func String(parsed map[string]interface{}, key string) string {
	if v, ok := parsed[key].(string); ok {
		return v
	}
	return ""
}

// Object extracts a nested object field from a parsed response
func Object(parsed map[string]interface{}, key string) map[string]interface{} {
	if v, ok := parsed[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}
