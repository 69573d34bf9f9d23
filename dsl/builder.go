package dsl

import (
	jsonmodel "github.com/reoring/jsonmodel"
)

type recordBuilder struct {
	typeName string
	fields   []jsonmodel.FieldSpec
	opts     []jsonmodel.SpecOption
}

type fieldStep struct {
	b *recordBuilder
	i int
}

// Record starts a builder for the named record type.
func Record(typeName string) *recordBuilder {
	return &recordBuilder{typeName: typeName}
}

// Field appends a field that takes part in both directions.
func (b *recordBuilder) Field(name string, t jsonmodel.Type) *fieldStep {
	b.fields = append(b.fields, jsonmodel.Field(name, t))
	return &fieldStep{b: b, i: len(b.fields) - 1}
}

// Mutable allows Set on instances.
func (b *recordBuilder) Mutable() *recordBuilder {
	b.opts = append(b.opts, jsonmodel.Mutable())
	return b
}

func (b *recordBuilder) WithoutToJSON() *recordBuilder {
	b.opts = append(b.opts, jsonmodel.WithoutToJSON())
	return b
}

func (b *recordBuilder) WithoutFromJSON() *recordBuilder {
	b.opts = append(b.opts, jsonmodel.WithoutFromJSON())
	return b
}

func (b *recordBuilder) WithoutCopyWith() *recordBuilder {
	b.opts = append(b.opts, jsonmodel.WithoutCopyWith())
	return b
}

// Build validates the declaration and returns the spec.
func (b *recordBuilder) Build() (*jsonmodel.RecordSpec, error) {
	return jsonmodel.NewRecordSpec(b.typeName, b.fields, b.opts...)
}

// MustBuild is like Build but panics on error.
func (b *recordBuilder) MustBuild() *jsonmodel.RecordSpec {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func (f *fieldStep) update(fn func(jsonmodel.FieldSpec) jsonmodel.FieldSpec) *fieldStep {
	f.b.fields[f.i] = fn(f.b.fields[f.i])
	return f
}

// Key overrides the JSON key of the current field.
func (f *fieldStep) Key(key string) *fieldStep {
	return f.update(func(fs jsonmodel.FieldSpec) jsonmodel.FieldSpec { return fs.WithKey(key) })
}

// Default sets the value used when the key is absent or null.
func (f *fieldStep) Default(v any) *fieldStep {
	return f.update(func(fs jsonmodel.FieldSpec) jsonmodel.FieldSpec { return fs.WithDefault(v) })
}

// ToJSONOnly writes the field but never reads it.
func (f *fieldStep) ToJSONOnly() *fieldStep {
	return f.update(func(fs jsonmodel.FieldSpec) jsonmodel.FieldSpec { return fs.Include(true, false) })
}

// FromJSONOnly reads the field but never writes it.
func (f *fieldStep) FromJSONOnly() *fieldStep {
	return f.update(func(fs jsonmodel.FieldSpec) jsonmodel.FieldSpec { return fs.Include(false, true) })
}

// Ignore keeps the field out of both directions.
func (f *fieldStep) Ignore() *fieldStep {
	return f.update(func(fs jsonmodel.FieldSpec) jsonmodel.FieldSpec { return fs.Include(false, false) })
}

func (f *fieldStep) Field(name string, t jsonmodel.Type) *fieldStep { return f.b.Field(name, t) }
func (f *fieldStep) Mutable() *recordBuilder                        { return f.b.Mutable() }
func (f *fieldStep) WithoutToJSON() *recordBuilder                  { return f.b.WithoutToJSON() }
func (f *fieldStep) WithoutFromJSON() *recordBuilder                { return f.b.WithoutFromJSON() }
func (f *fieldStep) WithoutCopyWith() *recordBuilder                { return f.b.WithoutCopyWith() }
func (f *fieldStep) Build() (*jsonmodel.RecordSpec, error)          { return f.b.Build() }
func (f *fieldStep) MustBuild() *jsonmodel.RecordSpec               { return f.b.MustBuild() }
