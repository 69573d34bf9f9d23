package dsl

import (
	"context"

	jsonmodel "github.com/reoring/jsonmodel"
)

// Model binds a Go type to a record spec. The two conversion functions move
// values between T and records keyed by field name; everything else runs
// through the record engine, so T gets the same serialization, copy and
// equality semantics as the spec.
type Model[T any] struct {
	spec *jsonmodel.RecordSpec
	to   func(T) map[string]any
	from func(*jsonmodel.Record) (T, error)
}

// Bind returns a Model for spec. to lists field values by name; from reads
// them back from a record.
func Bind[T any](spec *jsonmodel.RecordSpec, to func(T) map[string]any, from func(*jsonmodel.Record) (T, error)) (*Model[T], error) {
	if spec == nil || to == nil || from == nil {
		return nil, jsonmodel.Issues{{Path: "/", Code: jsonmodel.CodeInvalidSpec, Hint: "bind needs a spec and both conversion functions"}}
	}
	return &Model[T]{spec: spec, to: to, from: from}, nil
}

// MustBind is like Bind but panics on error.
func MustBind[T any](spec *jsonmodel.RecordSpec, to func(T) map[string]any, from func(*jsonmodel.Record) (T, error)) *Model[T] {
	m, err := Bind(spec, to, from)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Model[T]) Spec() *jsonmodel.RecordSpec { return m.spec }

// Record converts v into a record of the bound spec.
func (m *Model[T]) Record(v T) (*jsonmodel.Record, error) {
	return jsonmodel.NewRecord(m.spec, m.to(v))
}

func (m *Model[T]) FromJSON(ctx context.Context, doc any, opts ...jsonmodel.ParseOpt) (T, error) {
	r, err := jsonmodel.FromJSON(ctx, m.spec, doc, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return m.from(r)
}

func (m *Model[T]) FromJSONBytes(ctx context.Context, data []byte, opts ...jsonmodel.ParseOpt) (T, error) {
	r, err := jsonmodel.FromJSONBytes(ctx, m.spec, data, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return m.from(r)
}

func (m *Model[T]) ToJSON(v T) (*jsonmodel.Document, error) {
	r, err := m.Record(v)
	if err != nil {
		return nil, err
	}
	return jsonmodel.ToJSON(r)
}

func (m *Model[T]) ToJSONBytes(v T) ([]byte, error) {
	r, err := m.Record(v)
	if err != nil {
		return nil, err
	}
	return jsonmodel.ToJSONBytes(r)
}

// CopyWith returns v with the named fields replaced. v itself is untouched.
func (m *Model[T]) CopyWith(v T, overrides map[string]any) (T, error) {
	var zero T
	r, err := m.Record(v)
	if err != nil {
		return zero, err
	}
	c, err := jsonmodel.CopyWith(r, overrides)
	if err != nil {
		return zero, err
	}
	return m.from(c)
}

// Equal compares the projections of a and b. Values that do not convert are
// never equal.
func (m *Model[T]) Equal(a, b T) bool {
	ra, err := m.Record(a)
	if err != nil {
		return false
	}
	rb, err := m.Record(b)
	if err != nil {
		return false
	}
	return jsonmodel.Equal(ra, rb)
}

// Hash returns 0 for values that do not convert.
func (m *Model[T]) Hash(v T) uint64 {
	r, err := m.Record(v)
	if err != nil {
		return 0
	}
	return jsonmodel.Hash(r)
}

func (m *Model[T]) String(v T) string {
	r, err := m.Record(v)
	if err != nil {
		return "<invalid " + m.spec.TypeName() + ": " + err.Error() + ">"
	}
	return jsonmodel.Format(r)
}
