// Package openapi builds field descriptors from OpenAPI 3 component
// schemas. It gives hosts a schema-driven way to feed the dispatcher:
// load a document once, then ask for the descriptors of any named record.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-fieldwidgets/pkg/field"
)

// hintExtensionKey carries widget hints inline in the schema document.
const hintExtensionKey = "x-ui"

// Options controls document loading.
type Options struct {
	// ResolveReferences validates the document and resolves $ref targets,
	// including external ones.
	ResolveReferences bool
}

// Document wraps a parsed OpenAPI document and exposes its component
// schemas as field descriptors.
type Document struct {
	spec *openapi3.T
}

// Load parses an OpenAPI 3 document from raw YAML or JSON bytes.
func Load(ctx context.Context, data []byte, options Options) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi source: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: options.ResolveReferences,
	}

	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi source: load document: %w", err)
	}
	if options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi source: validate: %w", err)
		}
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi source: document has no component schemas")
	}

	return &Document{spec: spec}, nil
}

// LoadFile parses an OpenAPI 3 document from a file path.
func LoadFile(ctx context.Context, path string, options Options) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: options.ResolveReferences,
	}

	spec, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi source: load %s: %w", path, err)
	}
	if options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi source: validate: %w", err)
		}
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi source: document has no component schemas")
	}

	return &Document{spec: spec}, nil
}

// RecordNames returns the component schema names that describe records,
// sorted for deterministic iteration.
func (d *Document) RecordNames() []string {
	names := make([]string, 0, len(d.spec.Components.Schemas))
	for name, ref := range d.spec.Components.Schemas {
		if ref == nil || ref.Value == nil {
			continue
		}
		if isObjectSchema(ref.Value) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Descriptors converts the named component schema into a descriptor per
// property, ordered by property name.
func (d *Document) Descriptors(record string) ([]field.Descriptor, error) {
	ref, ok := d.spec.Components.Schemas[record]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi source: unknown record %q", record)
	}
	schema := ref.Value
	if !isObjectSchema(schema) {
		return nil, fmt.Errorf("openapi source: schema %q is not an object", record)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]field.Descriptor, 0, len(names))
	for _, name := range names {
		prop := schema.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		desc, err := convertProperty(name, prop, !required[name])
		if err != nil {
			return nil, fmt.Errorf("openapi source: %s.%s: %w", record, name, err)
		}
		fields = append(fields, desc)
	}
	return fields, nil
}

func convertProperty(name string, ref *openapi3.SchemaRef, optional bool) (field.Descriptor, error) {
	schema := ref.Value

	spec, err := convertType(ref)
	if err != nil {
		return field.Descriptor{}, err
	}
	spec.Optional = optional || schema.Nullable

	desc := field.Descriptor{
		Name:        name,
		Type:        spec,
		Title:       schema.Title,
		Description: schema.Description,
		Default:     schema.Default,
		Constraints: convertConstraints(schema),
		Hints:       convertHints(schema.Extensions),
	}
	return desc, nil
}

func convertType(ref *openapi3.SchemaRef) (field.TypeSpec, error) {
	schema := ref.Value

	if len(schema.OneOf) > 0 {
		variants := make([]field.TypeSpec, 0, len(schema.OneOf))
		for _, v := range schema.OneOf {
			if v == nil || v.Value == nil {
				continue
			}
			spec, err := convertType(v)
			if err != nil {
				return field.TypeSpec{}, err
			}
			variants = append(variants, spec)
		}
		if len(variants) == 0 {
			return field.TypeSpec{}, errors.New("oneOf has no usable variants")
		}
		return field.TypeSpec{Kind: field.KindUnion, Variants: variants}, nil
	}

	switch primary := firstSchemaType(schema.Type); primary {
	case "string":
		kind := field.KindString
		switch schema.Format {
		case "date":
			kind = field.KindDate
		case "time":
			kind = field.KindTime
		case "date-time":
			kind = field.KindDateTime
		case "path", "uri-reference":
			kind = field.KindPath
		}
		spec := field.TypeSpec{Kind: kind}
		if len(schema.Enum) > 0 {
			spec.Enum = append([]any(nil), schema.Enum...)
		}
		return spec, nil
	case "integer":
		spec := field.TypeSpec{Kind: field.KindInteger}
		if len(schema.Enum) > 0 {
			spec.Enum = append([]any(nil), schema.Enum...)
		}
		return spec, nil
	case "number":
		return field.TypeSpec{Kind: field.KindNumber}, nil
	case "boolean":
		return field.TypeSpec{Kind: field.KindBool}, nil
	case "array":
		if schema.Items == nil || schema.Items.Value == nil {
			return field.TypeSpec{}, errors.New("array schema has no items")
		}
		elem, err := convertType(schema.Items)
		if err != nil {
			return field.TypeSpec{}, err
		}
		kind := field.KindList
		if schema.UniqueItems {
			kind = field.KindSet
		}
		return field.TypeSpec{Kind: kind, Elem: &elem}, nil
	case "object", "":
		return convertRecord(ref)
	default:
		return field.TypeSpec{}, fmt.Errorf("unsupported schema type %q", primary)
	}
}

func convertRecord(ref *openapi3.SchemaRef) (field.TypeSpec, error) {
	schema := ref.Value

	spec := field.TypeSpec{Kind: field.KindRecord, Name: recordName(ref)}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := schema.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		desc, err := convertProperty(name, prop, !required[name])
		if err != nil {
			return field.TypeSpec{}, err
		}
		spec.Fields = append(spec.Fields, desc)
	}
	return spec, nil
}

// recordName recovers a stable type name from the $ref target so union
// variants and nested editors can label themselves.
func recordName(ref *openapi3.SchemaRef) string {
	if ref.Ref == "" {
		return ref.Value.Title
	}
	parts := strings.Split(ref.Ref, "/")
	return parts[len(parts)-1]
}

func convertConstraints(schema *openapi3.Schema) field.Constraints {
	var c field.Constraints
	if schema.Min != nil {
		value := *schema.Min
		c.Min = &value
	}
	if schema.Max != nil {
		value := *schema.Max
		c.Max = &value
	}
	if schema.MinLength != 0 {
		value := int(schema.MinLength)
		c.MinLength = &value
	}
	if schema.MaxLength != nil {
		value := int(*schema.MaxLength)
		c.MaxLength = &value
	}
	c.Pattern = schema.Pattern
	return c
}

func convertHints(extensions map[string]any) field.Hints {
	raw, ok := extensions[hintExtensionKey].(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	hints := make(field.Hints, len(raw))
	for key, value := range raw {
		hints[key] = value
	}
	return hints
}

func isObjectSchema(schema *openapi3.Schema) bool {
	primary := firstSchemaType(schema.Type)
	return primary == "object" || (primary == "" && len(schema.Properties) > 0)
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
