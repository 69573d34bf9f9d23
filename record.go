package jsonmodel

import (
	"context"

	"github.com/reoring/jsonmodel/i18n"
)

// Record is an instance of a RecordSpec. Values are held in stored
// representation (see Type). Records of an immutable spec never change after
// construction; records of a Mutable spec can be updated with Set, which is
// not safe for concurrent use.
//
// A record owns every mutable record stored in it: mutable records are copied
// when they are stored and again when they are read back, so a Set on one
// record never reaches another and record trees never contain cycles.
type Record struct {
	spec   *RecordSpec
	values []any
}

// Spec returns the record's declaration.
func (r *Record) Spec() *RecordSpec { return r.spec }

// TypeName returns the declared type name.
func (r *Record) TypeName() string { return r.spec.typeName }

// Get returns a copy of the named field's value.
func (r *Record) Get(name string) (any, bool) {
	i, ok := r.spec.byName[name]
	if !ok {
		return nil, false
	}
	return cloneValue(r.values[i]), true
}

// Int returns the named field as int64, or 0 when absent or not an int field.
func (r *Record) Int(name string) int64 {
	v, _ := r.Get(name)
	n, _ := v.(int64)
	return n
}

// Float returns the named field as float64.
func (r *Record) Float(name string) float64 {
	v, _ := r.Get(name)
	f, _ := v.(float64)
	return f
}

// Bool returns the named field as bool.
func (r *Record) Bool(name string) bool {
	v, _ := r.Get(name)
	b, _ := v.(bool)
	return b
}

// Text returns the named field as string.
func (r *Record) Text(name string) string {
	v, _ := r.Get(name)
	s, _ := v.(string)
	return s
}

// List returns a copy of the named list field.
func (r *Record) List(name string) []any {
	v, _ := r.Get(name)
	l, _ := v.([]any)
	return l
}

// Doc returns a copy of the named map field.
func (r *Record) Doc(name string) *Document {
	v, _ := r.Get(name)
	d, _ := v.(*Document)
	return d
}

// Nested returns the named nested record, nil when absent.
func (r *Record) Nested(name string) *Record {
	v, _ := r.Get(name)
	n, _ := v.(*Record)
	return n
}

// Set replaces a field value in place. It fails with CodeImmutable unless the
// spec was declared Mutable.
func (r *Record) Set(name string, v any) error {
	if r.spec.immutable {
		return singleIssue(CodeImmutable, "/", "record type "+r.spec.typeName+" is immutable; use CopyWith")
	}
	i, ok := r.spec.byName[name]
	if !ok {
		return unknownFieldIssues(name)
	}
	f := r.spec.fields[i]
	c := coercer{ctx: context.Background(), typeName: r.spec.typeName, field: f.Name}
	cv, iss := c.coerce(f.Type, v, "/"+f.JSONKey())
	if len(iss) > 0 {
		return iss
	}
	r.values[i] = cv
	return nil
}

// cloneRecord gives the caller a record it owns exclusively. A mutable
// record is copied down to its nested values; an immutable one is returned
// as is, since anything mutable below it is copied again on the way out.
func cloneRecord(r *Record) *Record {
	if r == nil || r.spec.immutable {
		return r
	}
	vals := make([]any, len(r.values))
	for i, v := range r.values {
		vals[i] = cloneValue(v)
	}
	return &Record{spec: r.spec, values: vals}
}

// Equal reports structural equality with o (see Equal).
func (r *Record) Equal(o *Record) bool { return Equal(r, o) }

// String renders the record's projection (see Format).
func (r *Record) String() string { return Format(r) }

func unknownFieldIssues(name string) Issues {
	return Issues{{
		Path:    "/",
		Code:    CodeUnknownField,
		Message: i18n.T(CodeUnknownField, map[string]string{"field": name}),
		Hint:    "no field named " + name,
		Params:  map[string]any{"field": name},
	}}
}

// NewRecord builds a record of spec from Go values keyed by field name.
// Fields not mentioned take their default or zero value. It is the entry
// point for code that holds typed values rather than documents.
func NewRecord(spec *RecordSpec, values map[string]any) (*Record, error) {
	if spec == nil {
		return nil, singleIssue(CodeInvalidSpec, "/", "nil spec")
	}
	r := spec.New()
	var iss Issues
	for _, name := range sortedKeys(values) {
		i, ok := spec.byName[name]
		if !ok {
			iss = AppendIssues(iss, unknownFieldIssues(name)...)
			continue
		}
		f := spec.fields[i]
		c := coercer{ctx: context.Background(), typeName: spec.typeName, field: f.Name}
		cv, ci := c.coerce(f.Type, values[name], "/"+f.JSONKey())
		if len(ci) > 0 {
			iss = AppendIssues(iss, ci...)
			continue
		}
		r.values[i] = cv
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return r, nil
}
