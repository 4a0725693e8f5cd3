package definition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/rules"
	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/schema/jsonschema"
	"github.com/goliatone/go-formstate/pkg/schema/openapi"
)

// Schema kinds accepted in SchemaConfig.Kind.
const (
	SchemaKindJSONSchema = "jsonschema"
	SchemaKindOpenAPI    = "openapi"
)

// SchemaConfig selects the schema validator of a definition. Inline holds a
// schema object; Document and Component reference a schema in an OpenAPI
// document, resolved relative to the definition file.
type SchemaConfig struct {
	Kind      string         `json:"kind,omitempty" yaml:"kind,omitempty"`
	Inline    map[string]any `json:"inline,omitempty" yaml:"inline,omitempty"`
	Document  string         `json:"document,omitempty" yaml:"document,omitempty"`
	Component string         `json:"component,omitempty" yaml:"component,omitempty"`
}

// Definition is a declarative form: ordered fields with defaults, expression
// rules and an optional schema.
type Definition struct {
	ID     string        `json:"id" yaml:"id"`
	Title  string        `json:"title,omitempty" yaml:"title,omitempty"`
	Engine string        `json:"engine,omitempty" yaml:"engine,omitempty"`
	Fields []model.Field `json:"fields" yaml:"fields"`
	Rules  []rules.Rule  `json:"rules,omitempty" yaml:"rules,omitempty"`
	Schema *SchemaConfig `json:"schema,omitempty" yaml:"schema,omitempty"`

	baseDir string
}

// LoadFile reads and parses a JSON or YAML definition.
func LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("definition: read %s: %w", path, err)
	}
	def, err := Parse(data, path)
	if err != nil {
		return Definition{}, err
	}
	def.baseDir = filepath.Dir(path)
	return def, nil
}

// Parse decodes a JSON or YAML definition and normalises its fields. source
// is only used in error messages.
func Parse(data []byte, source string) (Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Definition{}, fmt.Errorf("definition: %s is empty", source)
	}

	def, err := decode(data, source)
	if err != nil {
		return Definition{}, err
	}

	if err := def.normalise(source); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// decode picks the decoder from the source extension. Sources without a known
// extension are tried as JSON first, then YAML.
func decode(data []byte, source string) (Definition, error) {
	var def Definition
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		if err := json.Unmarshal(data, &def); err != nil {
			return Definition{}, fmt.Errorf("definition: parse %s as JSON: %w", source, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &def); err != nil {
			return Definition{}, fmt.Errorf("definition: parse %s as YAML: %w", source, err)
		}
	default:
		jsonErr := json.Unmarshal(data, &def)
		if jsonErr == nil {
			return def, nil
		}
		def = Definition{}
		if yamlErr := yaml.Unmarshal(data, &def); yamlErr != nil {
			return Definition{}, fmt.Errorf("definition: parse %s: %w", source, errors.Join(jsonErr, yamlErr))
		}
	}
	return def, nil
}

func (d *Definition) normalise(source string) error {
	d.ID = strings.TrimSpace(d.ID)
	if d.ID == "" {
		d.ID = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("definition: %s declares no fields", source)
	}

	seen := make(map[string]struct{}, len(d.Fields))
	for idx := range d.Fields {
		field := &d.Fields[idx]
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return fmt.Errorf("definition: %s field %d has no name", source, idx)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("definition: %s declares field %q twice", source, field.Name)
		}
		seen[field.Name] = struct{}{}

		if err := normaliseField(field); err != nil {
			return fmt.Errorf("definition: %s: %w", source, err)
		}
		if field.Label == "" {
			field.Label = model.DefaultLabeler(field.Name)
		}
	}
	return nil
}

func normaliseField(field *model.Field) error {
	if field.Type != "" && !field.Type.Valid() {
		return fmt.Errorf("field %q: unsupported type %q", field.Name, field.Type)
	}
	if field.Default == nil {
		switch field.Type {
		case model.FieldTypeNumber:
			field.Default = float64(0)
		case model.FieldTypeBoolean:
			field.Default = false
		default:
			field.Type = model.FieldTypeString
			field.Default = ""
		}
		return nil
	}

	value, inferred, err := model.NormalizeValue(field.Default)
	if err != nil {
		return fmt.Errorf("field %q: %w", field.Name, err)
	}
	if field.Type != "" && field.Type != inferred {
		return fmt.Errorf("field %q: type %q does not match default of type %q", field.Name, field.Type, inferred)
	}
	field.Default = value
	field.Type = inferred
	return nil
}

// Defaults returns the default values keyed by field name.
func (d Definition) Defaults() form.Values {
	values := make(form.Values, len(d.Fields))
	for _, field := range d.Fields {
		values[field.Name] = field.Default
	}
	return values
}

// Field returns the named field.
func (d Definition) Field(name string) (model.Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return model.Field{}, false
}

// Options builds the form options (id, rule validator, schema validator)
// described by the definition.
func (d Definition) Options(ctx context.Context, logger zerolog.Logger) ([]form.Option, error) {
	opts := []form.Option{
		form.WithID(d.ID),
		form.WithLogger(logger),
	}

	if len(d.Rules) > 0 {
		engine, err := rules.EngineByName(d.Engine)
		if err != nil {
			return nil, fmt.Errorf("definition %s: %w", d.ID, err)
		}
		validator, err := rules.New(d.Rules, rules.WithEngine(engine), rules.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("definition %s: %w", d.ID, err)
		}
		opts = append(opts, form.WithValidator(validator))
	}

	if d.Schema != nil {
		parser, err := d.schemaParser(ctx)
		if err != nil {
			return nil, fmt.Errorf("definition %s: %w", d.ID, err)
		}
		opts = append(opts, form.WithSchema(parser))
	}
	return opts, nil
}

// Build creates a form from the definition. Extra options are applied after
// the definition's own, so callers can add a custom validator or override
// the logger.
func (d Definition) Build(ctx context.Context, handler form.SubmitFunc, logger zerolog.Logger, extra ...form.Option) (*form.Form, error) {
	opts, err := d.Options(ctx, logger)
	if err != nil {
		return nil, err
	}
	return form.New(d.Defaults(), handler, append(opts, extra...)...)
}

func (d Definition) schemaParser(ctx context.Context) (schema.Parser, error) {
	cfg := d.Schema
	kind := strings.ToLower(strings.TrimSpace(cfg.Kind))
	if kind == "" {
		kind = SchemaKindJSONSchema
		if cfg.Document != "" {
			kind = SchemaKindOpenAPI
		}
	}

	switch kind {
	case SchemaKindOpenAPI:
		if cfg.Document != "" {
			if cfg.Component == "" {
				return nil, errors.New("schema: component is required with document")
			}
			return openapi.FromDocument(ctx, d.resolve(cfg.Document), cfg.Component)
		}
		raw, err := json.Marshal(cfg.Inline)
		if err != nil {
			return nil, fmt.Errorf("schema: encode inline schema: %w", err)
		}
		return openapi.FromJSON(raw)
	case SchemaKindJSONSchema:
		if len(cfg.Inline) == 0 {
			return nil, errors.New("schema: jsonschema requires an inline schema")
		}
		return jsonschema.FromMap(cfg.Inline)
	default:
		return nil, fmt.Errorf("schema: unknown kind %q", cfg.Kind)
	}
}

func (d Definition) resolve(path string) string {
	if filepath.IsAbs(path) || d.baseDir == "" {
		return path
	}
	return filepath.Join(d.baseDir, path)
}
