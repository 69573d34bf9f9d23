package jsonmodel

import "context"

// CopyWith returns a new record equal to r except for the fields named in
// overrides, which take the given values coerced to their declared types. r
// is never modified. Unknown names fail with CodeUnknownField.
func CopyWith(r *Record, overrides map[string]any) (*Record, error) {
	if r == nil {
		return nil, singleIssue(CodeInvalidSpec, "/", "nil record")
	}
	spec := r.spec
	if !spec.genCopyWith {
		return nil, singleIssue(CodeNotGenerated, "/", "copyWith is not generated for "+spec.typeName)
	}
	vals := make([]any, len(r.values))
	for i, v := range r.values {
		vals[i] = cloneValue(v)
	}
	var iss Issues
	for _, name := range sortedKeys(overrides) {
		i, ok := spec.byName[name]
		if !ok {
			iss = AppendIssues(iss, unknownFieldIssues(name)...)
			continue
		}
		f := spec.fields[i]
		c := coercer{ctx: context.Background(), typeName: spec.typeName, field: f.Name}
		cv, ci := c.coerce(f.Type, overrides[name], "/"+f.JSONKey())
		if len(ci) > 0 {
			iss = AppendIssues(iss, ci...)
			continue
		}
		vals[i] = cv
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return &Record{spec: spec, values: vals}, nil
}
