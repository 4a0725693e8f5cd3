package jsonschema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/goliatone/go-formstate/pkg/schema"
)

// DefaultMessageExtension is the keyword holding custom messages inside a
// property schema. The value is either a string or a map from JSON Schema
// keyword to message.
const DefaultMessageExtension = "x-errorMessage"

// keywords maps gojsonschema error types onto the JSON Schema keyword that
// produced them.
var keywords = map[string]string{
	"required":                        "required",
	"invalid_type":                    "type",
	"string_gte":                      "minLength",
	"string_lte":                      "maxLength",
	"number_gte":                      "minimum",
	"number_gt":                       "exclusiveMinimum",
	"number_lte":                      "maximum",
	"number_lt":                       "exclusiveMaximum",
	"multiple_of":                     "multipleOf",
	"pattern":                         "pattern",
	"format":                          "format",
	"enum":                            "enum",
	"const":                           "const",
	"additional_property_not_allowed": "additionalProperties",
}

// Parser validates form values against a JSON Schema (draft 4, 6 or 7)
// using gojsonschema.
type Parser struct {
	schema   *gojsonschema.Schema
	messages map[string]any
}

var _ schema.Parser = (*Parser)(nil)

// FromJSON compiles a JSON encoded schema.
func FromJSON(raw []byte) (*Parser, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("jsonschema: decode: %w", err)
	}
	return FromMap(doc)
}

// FromMap compiles a schema already decoded into a map.
func FromMap(doc map[string]any) (*Parser, error) {
	if len(doc) == 0 {
		return nil, errors.New("jsonschema: schema is empty")
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("jsonschema: compile: %w", err)
	}
	return &Parser{schema: compiled, messages: collectMessages(doc)}, nil
}

// SafeParse validates values. NaN and infinite numbers are presented to the
// engine as null since JSON cannot encode them.
func (p *Parser) SafeParse(ctx context.Context, values map[string]any) (schema.Result, error) {
	if err := ctx.Err(); err != nil {
		return schema.Result{}, err
	}

	result, err := p.schema.Validate(gojsonschema.NewGoLoader(schema.JSONSafe(values)))
	if err != nil {
		return schema.Result{}, fmt.Errorf("jsonschema: validate: %w", err)
	}
	if result.Valid() {
		return schema.Success(), nil
	}

	issues := make([]schema.Issue, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		path := schema.SplitPointer(resultErr.Field())
		if resultErr.Type() == "required" {
			property, _ := resultErr.Details()["property"].(string)
			if property != "" && (len(path) == 0 || path[len(path)-1] != property) {
				path = append(path, property)
			}
		}
		issues = append(issues, schema.Issue{
			Path:    path,
			Message: p.message(path, resultErr),
		})
	}
	return schema.Failure(issues...), nil
}

func (p *Parser) message(path []string, resultErr gojsonschema.ResultError) string {
	if len(path) == 1 {
		switch typed := p.messages[path[0]].(type) {
		case string:
			return typed
		case map[string]any:
			if custom, ok := typed[keywords[resultErr.Type()]].(string); ok && strings.TrimSpace(custom) != "" {
				return strings.TrimSpace(custom)
			}
		}
	}
	return resultErr.Description()
}

func collectMessages(doc map[string]any) map[string]any {
	properties, _ := doc["properties"].(map[string]any)
	out := make(map[string]any, len(properties))
	for name, raw := range properties {
		property, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if messages, ok := property[DefaultMessageExtension]; ok {
			out[name] = messages
		}
	}
	return out
}
