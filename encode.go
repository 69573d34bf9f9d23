package jsonmodel

// ToJSON projects r into a Document: one entry per field written to JSON, in
// declaration order, followed by the reserved ModelTypeKey entry. Nested
// records, lists and maps are projected recursively.
func ToJSON(r *Record) (*Document, error) {
	if r == nil {
		return nil, singleIssue(CodeInvalidSpec, "/", "nil record")
	}
	if !r.spec.genToJSON {
		return nil, singleIssue(CodeNotGenerated, "/", "toJSON is not generated for "+r.spec.typeName)
	}
	return project(r), nil
}

// ToJSONBytes encodes the projection of r as JSON.
func ToJSONBytes(r *Record) ([]byte, error) {
	d, err := ToJSON(r)
	if err != nil {
		return nil, err
	}
	return d.MarshalJSON()
}

// project builds the toJSON document regardless of the generateToJSON flag.
// Equality, hashing and formatting depend on it.
func project(r *Record) *Document {
	d := &Document{keys: make([]string, 0, len(r.spec.fields)+1), values: make(map[string]any, len(r.spec.fields)+1)}
	for i, f := range r.spec.fields {
		if !f.ToJSON {
			continue
		}
		d.Set(f.JSONKey(), projectValue(r.values[i]))
	}
	d.Set(ModelTypeKey, r.spec.typeName)
	return d
}

func projectValue(v any) any {
	switch t := v.(type) {
	case *Record:
		if t == nil {
			return nil
		}
		return project(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = projectValue(t[i])
		}
		return out
	case *Document:
		out := &Document{keys: make([]string, 0, len(t.keys)), values: make(map[string]any, len(t.keys))}
		for _, k := range t.keys {
			out.Set(k, projectValue(t.values[k]))
		}
		return out
	}
	return v
}
