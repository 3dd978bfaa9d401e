// ABOUTME: In-memory schema model: field lists and recursive field specifications
// ABOUTME: Built once per run by Load/Parse and read-only afterwards
package schema

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/pipekit/pipekit/internal/value"
)

// FieldType is the declared type of a configuration field
type FieldType string

const (
	TypeAny     FieldType = "" // no type declared; type check skipped
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
	TypeBoolean FieldType = "boolean"
	TypeArray   FieldType = "array"
	TypeObject  FieldType = "object"
)

// ParseFieldType converts a schema type name into a FieldType
func ParseFieldType(s string) (FieldType, error) {
	switch t := FieldType(s); t {
	case TypeString, TypeInteger, TypeBoolean, TypeArray, TypeObject:
		return t, nil
	default:
		return "", fmt.Errorf("unknown type %q (want string, integer, boolean, array or object)", s)
	}
}

// Accepts reports whether a value of kind k satisfies the type.
// Booleans never satisfy integer.
func (t FieldType) Accepts(k value.Kind) bool {
	switch t {
	case TypeAny:
		return true
	case TypeString:
		return k == value.KindString
	case TypeInteger:
		return k == value.KindInteger
	case TypeBoolean:
		return k == value.KindBoolean
	case TypeArray:
		return k == value.KindArray
	case TypeObject:
		return k == value.KindObject
	default:
		return false
	}
}

// FieldSpec is the constraint set for one field. Object fields may nest
// further specs under Properties.
type FieldSpec struct {
	Type          FieldType
	Description   string
	Pattern       string
	Minimum       *value.Value
	Maximum       *value.Value
	AllowedValues []value.Value
	Default       *value.Value
	Properties    map[string]*FieldSpec

	pattern       *regexp.Regexp
	propertyOrder []string
}

// Matches reports whether s fully matches the field's pattern. A field
// without a pattern matches everything.
func (f *FieldSpec) Matches(s string) bool {
	if f.pattern == nil {
		return true
	}
	return f.pattern.MatchString(s)
}

// HasPattern reports whether a pattern constraint is declared
func (f *FieldSpec) HasPattern() bool { return f.pattern != nil }

// PropertyNames returns nested field names in schema order
func (f *FieldSpec) PropertyNames() []string {
	return slices.Clone(f.propertyOrder)
}

// Property returns the nested spec for name
func (f *FieldSpec) Property(name string) (*FieldSpec, bool) {
	spec, ok := f.Properties[name]
	return spec, ok
}

// IsAllowed reports whether v is a member of AllowedValues. Fields
// without an enumeration allow everything.
func (f *FieldSpec) IsAllowed(v value.Value) bool {
	if f.AllowedValues == nil {
		return true
	}
	for _, allowed := range f.AllowedValues {
		if allowed.Equal(v) {
			return true
		}
	}
	return false
}

// Document is a loaded schema
type Document struct {
	Path           string
	RequiredFields []string
	OptionalFields []string
	Fields         map[string]*FieldSpec

	fieldOrder []string
	known      map[string]bool
}

// FieldNames returns the names under field_definitions in schema order
func (d *Document) FieldNames() []string {
	return slices.Clone(d.fieldOrder)
}

// Field returns the definition for name
func (d *Document) Field(name string) (*FieldSpec, bool) {
	spec, ok := d.Fields[name]
	return spec, ok
}

// IsKnown reports whether name is listed as a required or optional field
func (d *Document) IsKnown(name string) bool {
	return d.known[name]
}

func (d *Document) index() {
	d.known = make(map[string]bool, len(d.RequiredFields)+len(d.OptionalFields))
	for _, name := range d.RequiredFields {
		d.known[name] = true
	}
	for _, name := range d.OptionalFields {
		d.known[name] = true
	}
}
