package jsonmodel

import (
	js "github.com/reoring/jsonmodel/jsonschema"
)

// JSONSchema describes the documents FromJSON accepts for spec. Fields not
// read from JSON are left out; fields without a default are required. Nested
// records are emitted once under $defs and referenced, so recursive records
// terminate.
func JSONSchema(spec *RecordSpec) (*js.Schema, error) {
	if spec == nil {
		return nil, singleIssue(CodeInvalidSpec, "/", "nil spec")
	}
	x := &schemaExporter{root: spec, defs: map[string]*js.Schema{}, specs: map[string]*RecordSpec{}}
	root, err := x.object(spec)
	if err != nil {
		return nil, err
	}
	delete(x.defs, spec.typeName)
	if len(x.defs) > 0 {
		root.Defs = x.defs
	}
	return root, nil
}

type schemaExporter struct {
	root  *RecordSpec
	defs  map[string]*js.Schema
	specs map[string]*RecordSpec
}

func (x *schemaExporter) object(spec *RecordSpec) (*js.Schema, error) {
	s := &js.Schema{Type: "object", Title: spec.typeName, Properties: map[string]*js.Schema{}}
	// registered before descending so self references stop here
	x.defs[spec.typeName] = s
	x.specs[spec.typeName] = spec
	for _, f := range spec.fields {
		if !f.FromJSON {
			continue
		}
		ps, err := x.typeSchema(f.Type)
		if err != nil {
			return nil, err
		}
		if f.HasDefault && f.Default != nil {
			cp := *ps
			cp.Default = projectValue(f.Default)
			ps = &cp
		}
		s.Properties[f.JSONKey()] = ps
		if !f.HasDefault {
			s.Required = append(s.Required, f.JSONKey())
		}
	}
	s.Properties[ModelTypeKey] = &js.Schema{Type: "string", Const: spec.typeName}
	return s, nil
}

func (x *schemaExporter) typeSchema(t Type) (*js.Schema, error) {
	switch t.kind {
	case KindBool:
		return &js.Schema{Type: "boolean"}, nil
	case KindInt:
		return &js.Schema{Type: "integer"}, nil
	case KindFloat:
		return &js.Schema{Type: "number"}, nil
	case KindString:
		return &js.Schema{Type: "string"}, nil
	case KindList:
		items, err := x.typeSchema(*t.elem)
		if err != nil {
			return nil, err
		}
		return &js.Schema{Type: "array", Items: items}, nil
	case KindMap:
		vals, err := x.typeSchema(*t.elem)
		if err != nil {
			return nil, err
		}
		return &js.Schema{Type: "object", AdditionalProperties: vals}, nil
	case KindRecord:
		spec, err := t.Spec()
		if err != nil {
			return nil, singleIssue(CodeInvalidSpec, "/", err.Error())
		}
		if prev, seen := x.specs[spec.typeName]; seen && prev != spec {
			return nil, singleIssue(CodeInvalidSpec, "/$defs/"+spec.typeName, "two different record specs are named "+spec.typeName)
		}
		if spec == x.root {
			return &js.Schema{Ref: "#"}, nil
		}
		if _, seen := x.specs[spec.typeName]; !seen {
			if _, err := x.object(spec); err != nil {
				return nil, err
			}
		}
		return &js.Schema{Ref: js.DefRef(spec.typeName)}, nil
	}
	return &js.Schema{}, nil
}
