// ABOUTME: Loads schema documents from YAML into the schema model
// ABOUTME: Reports parse failures and shape problems as distinct error types
package schema

import (
	"fmt"
	"os"
	"regexp"

	"github.com/pipekit/pipekit/internal/value"
)

// Load reads and parses the schema at path
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}
	return Parse(data, path)
}

// Parse builds a Document from YAML content. path is only used in errors.
func Parse(data []byte, path string) (*Document, error) {
	root, err := value.Decode(data)
	if err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}
	top, ok := root.AsObject()
	if !ok {
		return nil, &ParseError{
			Path:  path,
			Cause: fmt.Errorf("document root must be a mapping, got %s", root.Kind()),
		}
	}

	p := parser{path: path}

	configSchema, err := p.object(top, "configuration_schema")
	if err != nil {
		return nil, err
	}
	required, err := p.stringList(configSchema, "configuration_schema", "required_fields")
	if err != nil {
		return nil, err
	}
	optional, err := p.stringList(configSchema, "configuration_schema", "optional_fields")
	if err != nil {
		return nil, err
	}
	definitions, err := p.object(top, "field_definitions")
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Path:           path,
		RequiredFields: required,
		OptionalFields: optional,
		Fields:         make(map[string]*FieldSpec, definitions.Len()),
	}
	for _, name := range definitions.Keys() {
		raw, _ := definitions.Get(name)
		spec, err := p.fieldSpec(raw, "field_definitions."+name)
		if err != nil {
			return nil, err
		}
		doc.Fields[name] = spec
		doc.fieldOrder = append(doc.fieldOrder, name)
	}
	doc.index()

	return doc, nil
}

type parser struct {
	path string
}

func (p parser) shapeError(key, format string, args ...any) error {
	return &ShapeError{Path: p.path, Key: key, Reason: fmt.Sprintf(format, args...)}
}

func (p parser) object(parent *value.Object, key string) (*value.Object, error) {
	raw, ok := parent.Get(key)
	if !ok {
		return nil, p.shapeError(key, "missing required key")
	}
	// An empty "field_definitions:" section decodes as null
	if raw.IsNull() {
		return value.NewObject(), nil
	}
	obj, ok := raw.AsObject()
	if !ok {
		return nil, p.shapeError(key, "expected a mapping, got %s", raw.Kind())
	}
	return obj, nil
}

func (p parser) stringList(parent *value.Object, parentKey, key string) ([]string, error) {
	location := parentKey + "." + key
	raw, ok := parent.Get(key)
	if !ok {
		return nil, p.shapeError(location, "missing required key")
	}
	if raw.IsNull() {
		return []string{}, nil
	}
	items, ok := raw.AsArray()
	if !ok {
		return nil, p.shapeError(location, "expected a list of field names, got %s", raw.Kind())
	}
	names := make([]string, 0, len(items))
	for i, item := range items {
		name, ok := item.AsString()
		if !ok {
			return nil, p.shapeError(fmt.Sprintf("%s[%d]", location, i), "expected a string, got %s", item.Kind())
		}
		names = append(names, name)
	}
	return names, nil
}

func (p parser) fieldSpec(raw value.Value, location string) (*FieldSpec, error) {
	if raw.IsNull() {
		return &FieldSpec{}, nil
	}
	def, ok := raw.AsObject()
	if !ok {
		return nil, p.shapeError(location, "expected a mapping, got %s", raw.Kind())
	}

	spec := &FieldSpec{}

	if t, ok := def.Get("type"); ok {
		name, ok := t.AsString()
		if !ok {
			return nil, p.shapeError(location+".type", "expected a string, got %s", t.Kind())
		}
		ft, err := ParseFieldType(name)
		if err != nil {
			return nil, p.shapeError(location+".type", "%v", err)
		}
		spec.Type = ft
	}

	if d, ok := def.Get("description"); ok {
		spec.Description, _ = d.AsString()
	}

	if pat, ok := def.Get("pattern"); ok {
		s, ok := pat.AsString()
		if !ok {
			return nil, p.shapeError(location+".pattern", "expected a string, got %s", pat.Kind())
		}
		re, err := regexp.Compile(`^(?:` + s + `)$`)
		if err != nil {
			return nil, p.shapeError(location+".pattern", "invalid regular expression: %v", err)
		}
		spec.Pattern = s
		spec.pattern = re
	}

	for _, bound := range []struct {
		key string
		dst **value.Value
	}{
		{"minimum", &spec.Minimum},
		{"maximum", &spec.Maximum},
	} {
		b, ok := def.Get(bound.key)
		if !ok {
			continue
		}
		if _, numeric := b.Number(); !numeric {
			return nil, p.shapeError(location+"."+bound.key, "expected a number, got %s", b.Kind())
		}
		*bound.dst = &b
	}

	if allowed, ok := def.Get("allowed_values"); ok {
		items, ok := allowed.AsArray()
		if !ok {
			return nil, p.shapeError(location+".allowed_values", "expected a list, got %s", allowed.Kind())
		}
		spec.AllowedValues = append([]value.Value{}, items...)
	}

	if d, ok := def.Get("default"); ok {
		spec.Default = &d
	}

	if props, ok := def.Get("properties"); ok {
		if spec.Type != TypeObject {
			return nil, p.shapeError(location+".properties", "only object fields may declare properties (type is %q)", spec.Type)
		}
		obj, ok := props.AsObject()
		if !ok {
			return nil, p.shapeError(location+".properties", "expected a mapping, got %s", props.Kind())
		}
		spec.Properties = make(map[string]*FieldSpec, obj.Len())
		for _, name := range obj.Keys() {
			child, _ := obj.Get(name)
			sub, err := p.fieldSpec(child, location+".properties."+name)
			if err != nil {
				return nil, err
			}
			spec.Properties[name] = sub
			spec.propertyOrder = append(spec.propertyOrder, name)
		}
	}

	return spec, nil
}
