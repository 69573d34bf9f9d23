package jsonmodel

// FieldSpec is the per-field serialization configuration.
//
// Name identifies the field for CopyWith and accessors. Key overrides the JSON
// key (defaults to Name). ToJSON and FromJSON control participation in the two
// directions. When FromJSON is false the field always takes Default (or the
// type's zero value) regardless of the document.
type FieldSpec struct {
	Name       string
	Key        string
	Type       Type
	ToJSON     bool
	FromJSON   bool
	Default    any
	HasDefault bool
}

// Field returns a FieldSpec that takes part in both directions under its own
// name and has no default.
func Field(name string, t Type) FieldSpec {
	return FieldSpec{Name: name, Type: t, ToJSON: true, FromJSON: true}
}

// WithKey overrides the JSON key.
func (f FieldSpec) WithKey(key string) FieldSpec {
	f.Key = key
	return f
}

// WithDefault sets the value used when the key is absent or null.
func (f FieldSpec) WithDefault(v any) FieldSpec {
	f.Default = v
	f.HasDefault = true
	return f
}

// Include sets participation in ToJSON and FromJSON.
func (f FieldSpec) Include(toJSON, fromJSON bool) FieldSpec {
	f.ToJSON = toJSON
	f.FromJSON = fromJSON
	return f
}

// JSONKey returns the effective document key.
func (f FieldSpec) JSONKey() string {
	if f.Key != "" {
		return f.Key
	}
	return f.Name
}

// initial is the value a field takes when nothing was read for it.
func (f FieldSpec) initial() any {
	if f.HasDefault {
		return cloneValue(f.Default)
	}
	return f.Type.zero()
}
