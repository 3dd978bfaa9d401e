// ABOUTME: Validates configuration documents against a loaded schema
// ABOUTME: Accumulates every violation instead of stopping at the first one
package validator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pipekit/pipekit/internal/schema"
	"github.com/pipekit/pipekit/internal/value"
)

// Validator checks configuration documents against one schema
type Validator struct {
	schema *schema.Document
	rules  []Rule
}

// Option configures a Validator
type Option func(*Validator)

// WithRules replaces the default recommendation rules
func WithRules(rules ...Rule) Option {
	return func(v *Validator) {
		v.rules = rules
	}
}

// New creates a Validator for doc
func New(doc *schema.Document, opts ...Option) *Validator {
	v := &Validator{
		schema: doc,
		rules:  DefaultRules(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate reads the configuration file at path and validates it.
// Missing, unreadable and unparsable files produce a Result with Error set.
func (v *Validator) Validate(path string) *Result {
	cfg, failure := readConfig(path)
	if failure != nil {
		return failure
	}
	return v.ValidateDocument(cfg)
}

func readConfig(path string) (*value.Object, *Result) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Result{Error: fmt.Sprintf("Configuration file not found: %s", path)}
		}
		return nil, &Result{
			Error:  fmt.Sprintf("Cannot read configuration file: %s", path),
			Detail: err.Error(),
		}
	}

	doc, err := value.Decode(data)
	if err != nil {
		return nil, &Result{
			Error:  fmt.Sprintf("Invalid YAML syntax in %s", path),
			Detail: err.Error(),
		}
	}

	// An empty file is an empty configuration, not a parse failure
	if doc.IsNull() {
		return value.NewObject(), nil
	}
	cfg, ok := doc.AsObject()
	if !ok {
		return nil, &Result{
			Error:  fmt.Sprintf("Invalid YAML syntax in %s", path),
			Detail: fmt.Sprintf("configuration root must be a mapping, got %s", doc.Kind()),
		}
	}
	return cfg, nil
}

// ValidateDocument runs structural validation over an already parsed
// configuration. On success the result carries the defaulted copy.
func (v *Validator) ValidateDocument(cfg *value.Object) *Result {
	c := &collector{}

	for _, name := range v.schema.RequiredFields {
		if !cfg.Has(name) {
			c.errorf("missing required field: %s", name)
		}
	}

	for _, name := range cfg.Keys() {
		if !v.schema.IsKnown(name) {
			c.warnf("unknown field (will be ignored): %s", name)
		}
		// Fields without a definition are accepted unchecked
		spec, ok := v.schema.Field(name)
		if !ok {
			continue
		}
		val, _ := cfg.Get(name)
		c.field(name, val, spec)
	}

	result := &Result{
		Valid:    len(c.errors) == 0,
		Errors:   c.errors,
		Warnings: c.warnings,
	}
	if result.Valid {
		result.EnhancedConfig = v.ApplyDefaults(cfg)
	}
	return result
}

// ApplyDefaults returns a copy of cfg with schema defaults filled in for
// absent top-level fields. Present fields are never overwritten, even when
// invalid.
func (v *Validator) ApplyDefaults(cfg *value.Object) *value.Object {
	enhanced := cfg.Clone()
	for _, name := range v.schema.FieldNames() {
		spec, _ := v.schema.Field(name)
		if spec.Default == nil || enhanced.Has(name) {
			continue
		}
		enhanced.Set(name, spec.Default.Clone())
	}
	return enhanced
}

// collector accumulates messages in traversal order
type collector struct {
	errors   []string
	warnings []string
}

func (c *collector) errorf(format string, args ...any) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

func (c *collector) warnf(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// field applies every check in spec to val. The checks are independent,
// so one value can produce several errors.
func (c *collector) field(name string, val value.Value, spec *schema.FieldSpec) {
	if !spec.Type.Accepts(val.Kind()) {
		c.errorf("%s: Expected %s, got %s", name, spec.Type, val.Kind())
	}

	if s, ok := val.AsString(); ok && spec.HasPattern() && !spec.Matches(s) {
		c.errorf("%s: Value '%s' doesn't match pattern '%s'", name, s, spec.Pattern)
	}

	// Bounds only apply once the value has the declared type, so a float in
	// an integer field reports the type mismatch alone
	if n, ok := val.Number(); ok && spec.Type.Accepts(val.Kind()) {
		if spec.Minimum != nil {
			if lo, _ := spec.Minimum.Number(); n < lo {
				c.errorf("%s: Value %s below minimum %s", name, val, spec.Minimum)
			}
		}
		if spec.Maximum != nil {
			if hi, _ := spec.Maximum.Number(); n > hi {
				c.errorf("%s: Value %s above maximum %s", name, val, spec.Maximum)
			}
		}
	}

	if !spec.IsAllowed(val) {
		c.errorf("%s: Value '%s' not in allowed values %s", name, val, value.Array(spec.AllowedValues...))
	}

	obj, ok := val.AsObject()
	if !ok || spec.Type != schema.TypeObject || spec.Properties == nil {
		return
	}
	for _, key := range obj.Keys() {
		qualified := name + "." + key
		sub, ok := spec.Property(key)
		if !ok {
			c.warnf("unknown nested field (will be ignored): %s", qualified)
			continue
		}
		subVal, _ := obj.Get(key)
		c.field(qualified, subVal, sub)
	}
}
