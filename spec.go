package jsonmodel

import (
	"context"
	"fmt"
	"strconv"
)

// ModelTypeKey is the reserved document key carrying the declared type name.
const ModelTypeKey = "model_type"

// RecordSpec is the declarative description of a record type. It is built
// once by NewRecordSpec and never mutated afterwards, so it is safe for
// concurrent use.
type RecordSpec struct {
	typeName    string
	immutable   bool
	genToJSON   bool
	genFromJSON bool
	genCopyWith bool
	fields      []FieldSpec
	byName      map[string]int
	byKey       map[string]int
}

// SpecOption adjusts record-level flags in NewRecordSpec.
type SpecOption func(*RecordSpec)

// Mutable allows Record.Set on instances of the spec.
func Mutable() SpecOption { return func(s *RecordSpec) { s.immutable = false } }

// WithoutToJSON disables ToJSON for the record type.
func WithoutToJSON() SpecOption { return func(s *RecordSpec) { s.genToJSON = false } }

// WithoutFromJSON disables FromJSON for the record type.
func WithoutFromJSON() SpecOption { return func(s *RecordSpec) { s.genFromJSON = false } }

// WithoutCopyWith disables CopyWith for the record type.
func WithoutCopyWith() SpecOption { return func(s *RecordSpec) { s.genCopyWith = false } }

// NewRecordSpec validates the declaration and returns an immutable spec.
// Records are immutable and all three operations are generated unless an
// option says otherwise. Defaults are coerced to their field type here, so a
// default that does not fit its type fails at definition time.
func NewRecordSpec(typeName string, fields []FieldSpec, opts ...SpecOption) (*RecordSpec, error) {
	s := &RecordSpec{
		typeName:    typeName,
		immutable:   true,
		genToJSON:   true,
		genFromJSON: true,
		genCopyWith: true,
		fields:      make([]FieldSpec, 0, len(fields)),
		byName:      make(map[string]int, len(fields)),
		byKey:       make(map[string]int, len(fields)),
	}
	for _, o := range opts {
		if o != nil {
			o(s)
		}
	}

	var iss Issues
	if typeName == "" {
		iss = AppendIssues(iss, specIssue("/", "type name is required"))
	}
	for i, f := range fields {
		path := "/fields/" + strconv.Itoa(i)
		if f.Name == "" {
			iss = AppendIssues(iss, specIssue(path, "field name is required"))
			continue
		}
		if _, dup := s.byName[f.Name]; dup {
			iss = AppendIssues(iss, specIssue(path, fmt.Sprintf("duplicate field name %q", f.Name)))
			continue
		}
		key := f.JSONKey()
		if key == ModelTypeKey {
			iss = AppendIssues(iss, specIssue(path, fmt.Sprintf("key %q is reserved", ModelTypeKey)))
			continue
		}
		if _, dup := s.byKey[key]; dup {
			iss = AppendIssues(iss, specIssue(path, fmt.Sprintf("duplicate JSON key %q", key)))
			continue
		}
		if err := f.Type.validate(); err != nil {
			iss = AppendIssues(iss, specIssue(path, fmt.Sprintf("field %q: %v", f.Name, err)))
			continue
		}
		if f.HasDefault {
			dv, di := checkDefault(typeName, f)
			if len(di) > 0 {
				iss = AppendIssues(iss, specIssue(path, fmt.Sprintf("default for %q: %v", f.Name, di)))
				continue
			}
			f.Default = dv
		}
		s.byName[f.Name] = len(s.fields)
		s.byKey[key] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return s, nil
}

// checkDefault coerces a default into stored form. Nested record defaults
// behind an unresolved RecordRef are kept as given and checked on use.
func checkDefault(typeName string, f FieldSpec) (any, Issues) {
	if f.Type.kind == KindRecord && f.Type.record == nil {
		if _, err := f.Type.Spec(); err != nil {
			if f.Default == nil {
				return nil, nil
			}
			if r, ok := f.Default.(*Record); ok && r != nil && r.spec.typeName == f.Type.ref {
				return r, nil
			}
			return nil, Issues{specIssue("/", "record defaults behind an unresolved reference must be a *Record or nil")}
		}
	}
	c := coercer{ctx: context.Background(), typeName: typeName, field: f.Name}
	return c.coerce(f.Type, f.Default, "/"+f.JSONKey())
}

// MustRecordSpec is like NewRecordSpec but panics on error.
func MustRecordSpec(typeName string, fields []FieldSpec, opts ...SpecOption) *RecordSpec {
	s, err := NewRecordSpec(typeName, fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *RecordSpec) TypeName() string        { return s.typeName }
func (s *RecordSpec) IsImmutable() bool       { return s.immutable }
func (s *RecordSpec) GeneratesToJSON() bool   { return s.genToJSON }
func (s *RecordSpec) GeneratesFromJSON() bool { return s.genFromJSON }
func (s *RecordSpec) GeneratesCopyWith() bool { return s.genCopyWith }

// Fields returns the field declarations in order.
func (s *RecordSpec) Fields() []FieldSpec {
	out := make([]FieldSpec, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the declaration of the named field.
func (s *RecordSpec) Field(name string) (FieldSpec, bool) {
	i, ok := s.byName[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.fields[i], true
}

// New builds a record from the declared initial values (defaults, else
// zero values), the same state FromJSON produces for an empty document when
// every read field has a default.
func (s *RecordSpec) New() *Record {
	vals := make([]any, len(s.fields))
	for i, f := range s.fields {
		vals[i] = f.initial()
	}
	return &Record{spec: s, values: vals}
}
