package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

var verdictSchema = Schema{Fields: []Field{
	{Name: "winner", Type: TypeString, Required: true},
	{Name: "reasoning", Type: TypeString, Required: true},
	{Name: "challengerScore", Type: TypeNumber},
	{Name: "opponentScore", Type: TypeNumber},
}}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
		{"fence with whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"single line fence", "```{\"a\":1}```", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripFences(tt.input))
		})
	}
}

func TestParseValid(t *testing.T) {
	raw := "```json\n{\"winner\":\"CHALLENGER\",\"reasoning\":\"better evidence\",\"challengerScore\":72,\"opponentScore\":55}\n```"

	parsed, err := Parse(raw, verdictSchema)
	require.NoError(t, err)
	assert.Equal(t, "CHALLENGER", String(parsed, "winner"))
	assert.Equal(t, 72.0, Number(parsed, "challengerScore", 50))
	assert.Equal(t, 55.0, Number(parsed, "opponentScore", 50))
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := Parse("this is not json at all", verdictSchema)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Raw, "this is not json")
}

func TestParseMissingRequiredField(t *testing.T) {
	_, err := Parse(`{"reasoning":"ok"}`, verdictSchema)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaViolation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "winner", verr.Field)
}

func TestParseWrongType(t *testing.T) {
	_, err := Parse(`{"winner":42,"reasoning":"ok"}`, verdictSchema)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaViolation)
}

func TestParseOptionalFieldAbsent(t *testing.T) {
	parsed, err := Parse(`{"winner":"TIE","reasoning":"even"}`, verdictSchema)
	require.NoError(t, err)

	// absent optional numeric fields fall back at extraction time
	assert.Equal(t, 50.0, Number(parsed, "challengerScore", 50))
}

func TestValidationErrorTruncatesRaw(t *testing.T) {
	long := make([]byte, RawTextTruncateLen*2)
	for i := range long {
		long[i] = 'x'
	}

	_, err := Parse(string(long), verdictSchema)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Raw, RawTextTruncateLen)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 100.0, Clamp(140, 0, 100))
	assert.Equal(t, 72.0, Clamp(72, 0, 100))
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 100, ClampScore(140))
	assert.Equal(t, 0, ClampScore(-3))
	assert.Equal(t, 73, ClampScore(72.6))
}

func TestObject(t *testing.T) {
	parsed, err := Parse(`{"winner":"TIE","reasoning":"r","scores":{"a":10}}`, verdictSchema)
	require.NoError(t, err)

	scores := Object(parsed, "scores")
	require.NotNil(t, scores)
	assert.Equal(t, 10.0, scores["a"])
	assert.Nil(t, Object(parsed, "missing"))
}
