package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Title    string  `json:"title"`
	Priority string  `json:"priority"`
	Score    float64 `json:"score"`
}

func TestExtractJSON_ArrayInProse(t *testing.T) {
	v, err := ExtractJSON[any](`Here is the result: [{"a":1}] Thanks.`, ShapeArray, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"a": 1.0}}, v)
}

func TestExtractJSON_NoBrackets(t *testing.T) {
	for _, shape := range []Shape{ShapeArray, ShapeObject} {
		_, err := ExtractJSON[any]("garbage text no json", shape, nil)
		assert.ErrorIs(t, err, ErrNoJSON, shape.String())
	}
}

func TestExtractJSON_RoundTrip(t *testing.T) {
	embedded := []string{
		`{"score":72,"tags":["a","b"],"nested":{"k":[1,2,{"x":null}]}}`,
		`{"text":"braces } and [ brackets ] in a string"}`,
		`{"quote":"she said \"hi}\" and left"}`,
		`{}`,
	}
	for _, js := range embedded {
		want, err := ExtractJSON[any](js, ShapeObject, nil)
		require.NoError(t, err, js)

		got, err := ExtractJSON[any]("Sure! Analysis follows:\n"+js+"\nLet me know if you need more.", ShapeObject, nil)
		require.NoError(t, err, js)
		assert.Equal(t, want, got, js)
	}
}

func TestExtractJSON_FirstCompleteValueWins(t *testing.T) {
	v, err := ExtractJSON[any](`First: [1,2] then second: [3,4]`, ShapeArray, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0}, v)
}

func TestExtractJSON_HintMustMatchOutermostValue(t *testing.T) {
	raw := `{"items":[{"a":1}]}`
	obj, err := ExtractJSON[any](raw, ShapeObject, nil)
	require.NoError(t, err)
	assert.IsType(t, map[string]any{}, obj)

	_, err = ExtractJSON[any](raw, ShapeArray, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch, "an array nested in an object is not a top-level array")
}

func TestExtractJSON_MalformedFirstBlock(t *testing.T) {
	_, err := ExtractJSON[any](`[see note] [{"a":1}]`, ShapeArray, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_CleanObject(t *testing.T) {
	result, err := ExtractJSON[testPayload](`{"title":"Renewal risk","priority":"high","score":0.95}`, ShapeObject, nil)
	require.NoError(t, err)
	assert.Equal(t, "Renewal risk", result.Title)
	assert.Equal(t, 0.95, result.Score)
}

func TestExtractJSON_FencedArray(t *testing.T) {
	raw := "```json\n[{\"title\":\"X\",\"priority\":\"high\"}]\n```"
	result, err := ExtractJSON[[]testPayload](raw, ShapeArray, nil)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "X", result[0].Title)
	assert.Equal(t, "high", result[0].Priority)
}

func TestExtractJSON_ObjectWhereArrayExpected(t *testing.T) {
	_, err := ExtractJSON[[]testPayload](`{"title":"X"}`, ShapeArray, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestExtractJSON_ArrayWrappedInObject(t *testing.T) {
	raw := `Here you go: {"insights":[{"title":"W","priority":"high"}]}`
	_, err := ExtractJSON[[]testPayload](raw, ShapeArray, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestExtractJSON_ObjectWrappedInArray(t *testing.T) {
	raw := "```json\n[{\"title\":\"X\",\"score\":0.8}]\n```"
	_, err := ExtractJSON[testPayload](raw, ShapeObject, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestExtractJSON_TruncatedIsNoJSON(t *testing.T) {
	_, err := ExtractJSON[[]testPayload](`[{"title":"cut`, ShapeArray, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestExtractJSON_WrongFieldTypes(t *testing.T) {
	_, err := ExtractJSON[testPayload](`{"title":42}`, ShapeObject, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON[testPayload]("I don't know what you mean.", ShapeObject, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.ErrorIs(t, err, ErrNoJSON)
	assert.NotErrorIs(t, err, ErrShapeMismatch)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	_, err := ExtractJSON[testPayload](`{"title":"x", broken}`, ShapeObject, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_CommentsAndLeadingDecimals(t *testing.T) {
	raw := "{\n  \"title\": \"x\", // the title\n  \"score\": .8\n}"
	result, err := ExtractJSON[testPayload](raw, ShapeObject, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.8, result.Score)
}

func TestExtractJSON_ValidationFailure(t *testing.T) {
	validator := func(p testPayload) error {
		if p.Score < 0 || p.Score > 1 {
			return fmt.Errorf("score must be in [0,1], got %f", p.Score)
		}
		return nil
	}
	_, err := ExtractJSON(`{"title":"x","score":1.5}`, ShapeObject, validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")
}
