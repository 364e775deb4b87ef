// Package schema models a project's input field schema: a recursive tree of
// typed field definitions as stored by the platform's schema endpoint. All
// functions are pure; interactive editing lives in the CLI layer.
package schema

import (
	"fmt"
)

// Kind is the type tag of a field definition.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindAny     Kind = "any"
)

var validKinds = map[Kind]bool{
	KindString:  true,
	KindNumber:  true,
	KindBoolean: true,
	KindArray:   true,
	KindObject:  true,
	KindAny:     true,
}

// Field is one field definition. Validation attributes only make sense for
// the matching kind; Validate rejects mismatches.
type Field struct {
	Name        string `json:"name"`
	Kind        Kind   `json:"kind"`
	Optional    bool   `json:"optional,omitempty"`
	Description string `json:"description,omitempty"`

	// string attributes
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// number attributes
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`

	// array element definition; its Name is ignored
	Elem *Field `json:"elem,omitempty"`

	// object child fields
	Fields []Field `json:"fields,omitempty"`
}

// Object is the root of a schema: an unnamed object.
type Object struct {
	Fields []Field `json:"fields"`
}

// Clone returns a deep copy.
func (o *Object) Clone() *Object {
	return &Object{Fields: cloneFields(o.Fields)}
}

func (f Field) clone() Field {
	out := f
	if f.MinLength != nil {
		v := *f.MinLength
		out.MinLength = &v
	}
	if f.MaxLength != nil {
		v := *f.MaxLength
		out.MaxLength = &v
	}
	if f.Min != nil {
		v := *f.Min
		out.Min = &v
	}
	if f.Max != nil {
		v := *f.Max
		out.Max = &v
	}
	if f.Elem != nil {
		e := f.Elem.clone()
		out.Elem = &e
	}
	out.Fields = cloneFields(f.Fields)
	return out
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = f.clone()
	}
	return out
}

// Validate checks the whole tree: kinds are known, names are non-empty and
// unique per container, attributes match their kind, arrays declare an
// element definition.
func (o *Object) Validate() error {
	return validateFields(o.Fields, "")
}

func validateFields(fields []Field, prefix string) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		at := f.Name
		if prefix != "" {
			at = prefix + "." + f.Name
		}

		if f.Name == "" {
			return fmt.Errorf("schema: field with empty name under %q", prefix)
		}
		if seen[f.Name] {
			return fmt.Errorf("schema: duplicate field %q", at)
		}
		seen[f.Name] = true

		if err := validateField(f, at); err != nil {
			return err
		}
	}
	return nil
}

func validateField(f Field, at string) error {
	if !validKinds[f.Kind] {
		return fmt.Errorf("schema: field %q has unknown kind %q", at, f.Kind)
	}

	if f.Kind != KindString && (f.MinLength != nil || f.MaxLength != nil || f.Pattern != "") {
		return fmt.Errorf("schema: field %q: length/pattern attributes require kind string", at)
	}
	if f.Kind != KindNumber && (f.Min != nil || f.Max != nil) {
		return fmt.Errorf("schema: field %q: min/max attributes require kind number", at)
	}
	if f.Kind != KindArray && f.Elem != nil {
		return fmt.Errorf("schema: field %q: elem requires kind array", at)
	}
	if f.Kind != KindObject && len(f.Fields) > 0 {
		return fmt.Errorf("schema: field %q: child fields require kind object", at)
	}

	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		return fmt.Errorf("schema: field %q: minLength > maxLength", at)
	}
	if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
		return fmt.Errorf("schema: field %q: min > max", at)
	}

	switch f.Kind {
	case KindArray:
		if f.Elem == nil {
			return fmt.Errorf("schema: array field %q missing element definition", at)
		}
		elem := *f.Elem
		if elem.Name == "" {
			elem.Name = "elem" // placeholder, element names are ignored
		}
		return validateField(elem, at+"[]")
	case KindObject:
		return validateFields(f.Fields, at)
	}

	return nil
}
