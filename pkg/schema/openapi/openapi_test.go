package openapi

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/schema"
)

func submitWith(t *testing.T, defaults form.Values, parser schema.Parser) (form.Errors, int) {
	t.Helper()
	calls := 0
	f, err := form.New(defaults, func(context.Context, form.Values) error {
		calls++
		return nil
	}, form.WithSchema(parser))
	require.NoError(t, err)

	_, err = f.Submit(context.Background(), nil)
	require.NoError(t, err)
	return f.Errors(), calls
}

func TestSafeParse_CustomMessages(t *testing.T) {
	stringSchema, err := FromJSON([]byte(`{
  "type": "object",
  "properties": {
    "test": {"type": "string", "maxLength": 3, "x-errorMessage": {"maxLength": "custom message error"}}
  }
}`))
	require.NoError(t, err)

	errs, calls := submitWith(t, form.Values{"test": "submit test"}, stringSchema)
	assert.Equal(t, 0, calls)
	assert.Equal(t, form.Errors{"test": "custom message error"}, errs)

	numberSchema, err := FromJSON([]byte(`{
  "type": "object",
  "properties": {
    "test": {"type": "number", "minimum": 3, "x-errorMessage": "custom message error"}
  }
}`))
	require.NoError(t, err)

	errs, calls = submitWith(t, form.Values{"test": 0}, numberSchema)
	assert.Equal(t, 0, calls)
	assert.Equal(t, form.Errors{"test": "custom message error"}, errs)
}

func TestSafeParse_DefaultMessages(t *testing.T) {
	stringSchema, err := FromJSON([]byte(`{"type":"object","properties":{"test":{"type":"string","maxLength":3}}}`))
	require.NoError(t, err)

	errs, _ := submitWith(t, form.Values{"test": "submit test"}, stringSchema)
	assert.Equal(t, form.Errors{"test": "maximum string length is 3"}, errs)

	numberSchema, err := FromJSON([]byte(`{"type":"object","properties":{"test":{"type":"number","minimum":3}}}`))
	require.NoError(t, err)

	errs, _ = submitWith(t, form.Values{"test": 0}, numberSchema)
	assert.Equal(t, form.Errors{"test": "number must be at least 3"}, errs)
}

func TestSafeParse_CollectsEveryField(t *testing.T) {
	parser, err := FromJSON([]byte(`{
  "type": "object",
  "required": ["title"],
  "properties": {
    "title": {"type": "string", "minLength": 1, "x-errorMessage": {"minLength": "title is required"}},
    "count": {"type": "number", "maximum": 10}
  }
}`))
	require.NoError(t, err)

	result, err := parser.SafeParse(context.Background(), map[string]any{"title": "", "count": 11.0})
	require.NoError(t, err)
	require.False(t, result.Success)

	byField := map[string]string{}
	for _, issue := range result.Issues {
		byField[issue.Field()] = issue.Message
	}
	assert.Equal(t, "title is required", byField["title"])
	assert.Contains(t, byField, "count")
}

func TestSafeParse_Success(t *testing.T) {
	parser, err := FromJSON([]byte(`{"type":"object","properties":{"test":{"type":"string","maxLength":3}}}`))
	require.NoError(t, err)

	result, err := parser.SafeParse(context.Background(), map[string]any{"test": "ok"})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Issues)
}

func TestFromDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openapi.yaml")
	doc := `openapi: 3.0.3
info:
  title: Signup
  version: "1.0"
paths: {}
components:
  schemas:
    Signup:
      type: object
      properties:
        name:
          type: string
          maxLength: 2
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	parser, err := FromDocument(context.Background(), path, "Signup")
	require.NoError(t, err)

	result, err := parser.SafeParse(context.Background(), map[string]any{"name": "Ada"})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, []string{"name"}, result.Issues[0].Path)

	_, err = FromDocument(context.Background(), path, "Missing")
	assert.Error(t, err)
}

func TestNew_RequiresSchema(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestSafeParse_NonNumericInputFailsUnderField(t *testing.T) {
	parser, err := FromJSON([]byte(`{"type":"object","properties":{"age":{"type":"number","minimum":3}}}`))
	require.NoError(t, err)

	result, err := parser.SafeParse(context.Background(), map[string]any{"age": math.NaN()})
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, []string{"age"}, result.Issues[0].Path)

	calls := 0
	f, err := form.New(form.Values{"age": 5}, func(context.Context, form.Values) error {
		calls++
		return nil
	}, form.WithSchema(parser))
	require.NoError(t, err)

	f.HandleChange(form.ChangeEvent{Name: "age", Value: "abc"})
	status, err := f.Submit(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, form.SubmitInvalid, status)
	assert.Equal(t, 0, calls)
	assert.NotEmpty(t, f.Errors()["age"])
}

func TestSafeParse_TypeMessageCoversNonNumericInput(t *testing.T) {
	parser, err := FromJSON([]byte(`{
  "type": "object",
  "properties": {
    "age": {"type": "number", "x-errorMessage": {"type": "age must be a number"}}
  }
}`))
	require.NoError(t, err)

	errs, calls := submitWith(t, form.Values{"age": math.Inf(1)}, parser)
	assert.Equal(t, 0, calls)
	assert.Equal(t, form.Errors{"age": "age must be a number"}, errs)
}
