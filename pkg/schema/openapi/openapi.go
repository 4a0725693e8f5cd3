package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/schema"
)

// DefaultMessageExtension is the schema extension holding custom messages.
// Its value is either a string used for every violation of that schema, or a
// map from keyword ("maxLength", "minimum", "required", ...) to message.
const DefaultMessageExtension = "x-errorMessage"

// Option configures a Parser.
type Option func(*Parser)

// WithMessageExtension changes the extension key read for custom messages.
func WithMessageExtension(key string) Option {
	return func(p *Parser) {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			p.messageKey = trimmed
		}
	}
}

// Parser validates form values against an OpenAPI 3 schema using
// kin-openapi. Messages default to kin-openapi's own reason text.
type Parser struct {
	schema     *openapi3.Schema
	messageKey string
}

var _ schema.Parser = (*Parser)(nil)

// New wraps an object schema.
func New(s *openapi3.Schema, opts ...Option) (*Parser, error) {
	if s == nil {
		return nil, errors.New("openapi schema: schema is required")
	}
	p := &Parser{schema: s, messageKey: DefaultMessageExtension}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// FromJSON decodes a JSON encoded schema object.
func FromJSON(raw []byte, opts ...Option) (*Parser, error) {
	var s openapi3.Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("openapi schema: decode: %w", err)
	}
	return New(&s, opts...)
}

// FromDocument loads an OpenAPI document from path and wraps the named entry
// of components.schemas.
func FromDocument(ctx context.Context, path, component string, opts ...Option) (*Parser, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi schema: load %s: %w", path, err)
	}
	if doc.Components == nil {
		return nil, fmt.Errorf("openapi schema: %s has no components", path)
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi schema: component %q not found in %s", component, path)
	}
	return New(ref.Value, opts...)
}

// Schema returns the wrapped schema.
func (p *Parser) Schema() *openapi3.Schema {
	return p.schema
}

// SafeParse validates values, collecting every violation. NaN and infinite
// numbers are validated as null.
func (p *Parser) SafeParse(ctx context.Context, values map[string]any) (schema.Result, error) {
	if err := ctx.Err(); err != nil {
		return schema.Result{}, err
	}
	err := p.schema.VisitJSON(schema.JSONSafe(values), openapi3.MultiErrors())
	if err == nil {
		return schema.Success(), nil
	}

	var issues []schema.Issue
	p.collect(err, &issues)
	return schema.Failure(issues...), nil
}

func (p *Parser) collect(err error, issues *[]schema.Issue) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, nested := range multi {
			p.collect(nested, issues)
		}
		return
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		*issues = append(*issues, schema.Issue{
			Path:    schemaErr.JSONPointer(),
			Message: p.message(schemaErr),
		})
		return
	}

	*issues = append(*issues, schema.Issue{Message: err.Error()})
}

func (p *Parser) message(err *openapi3.SchemaError) string {
	source := err.Schema
	if err.SchemaField == "required" && p.schema != nil {
		if path := err.JSONPointer(); len(path) > 0 {
			if ref, ok := p.schema.Properties[path[len(path)-1]]; ok && ref != nil && ref.Value != nil {
				source = ref.Value
			}
		}
	}
	if custom := customMessage(source, p.messageKey, err.SchemaField); custom != "" {
		return custom
	}
	// A number field holding NaN reaches the schema as null.
	if err.SchemaField == "nullable" {
		if custom := customMessage(source, p.messageKey, "type"); custom != "" {
			return custom
		}
	}
	return err.Reason
}

func customMessage(s *openapi3.Schema, key, keyword string) string {
	if s == nil || len(s.Extensions) == 0 {
		return ""
	}
	switch typed := s.Extensions[key].(type) {
	case string:
		return strings.TrimSpace(typed)
	case map[string]any:
		if message, ok := typed[keyword].(string); ok {
			return strings.TrimSpace(message)
		}
	}
	return ""
}
