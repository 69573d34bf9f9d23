package jsonmodel

import (
	"context"

	"github.com/rs/zerolog"
)

// FromJSON builds a record of spec from doc, which must be a *Document or a
// map[string]any.
//
// For every field read from JSON the value under its key is coerced to the
// declared type; nested records recurse. An absent or null value takes the
// field default, and without a default the field is reported with
// CodeMissingRequiredField. Fields not read from JSON always take their
// default or zero value. All issues are collected unless opt.FailFast is set;
// on any issue no record is returned.
//
// A logger attached to ctx (zerolog.Ctx) receives debug events.
func FromJSON(ctx context.Context, spec *RecordSpec, doc any, opts ...ParseOpt) (*Record, error) {
	if spec == nil {
		return nil, singleIssue(CodeInvalidSpec, "/", "nil spec")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	opt := lastOpt(opts)
	log := zerolog.Ctx(ctx)

	d, ok := asDocument(doc)
	if !ok {
		iss := Issues{mismatchIssue(spec.typeName, "", "/", "object", doc)}
		log.Debug().Str("type", spec.typeName).Str("got", describeValue(doc)).Msg("jsonmodel: document is not an object")
		return nil, iss
	}
	r, iss := fromDocument(ctx, spec, d, "", opt)
	if len(iss) > 0 {
		log.Debug().Str("type", spec.typeName).Int("issues", len(iss)).Err(iss).Msg("jsonmodel: fromJSON failed")
		return nil, iss
	}
	return r, nil
}

// fromDocument reads one record level. base is the JSON Pointer of doc.
func fromDocument(ctx context.Context, spec *RecordSpec, doc *Document, base string, opt ParseOpt) (*Record, Issues) {
	if !spec.genFromJSON {
		return nil, singleIssue(CodeNotGenerated, pointerOrRoot(base), "fromJSON is not generated for "+spec.typeName)
	}
	log := zerolog.Ctx(ctx)
	vals := make([]any, len(spec.fields))
	var iss Issues
	for i, f := range spec.fields {
		if !f.FromJSON {
			vals[i] = f.initial()
			continue
		}
		path := joinPointer(base, f.JSONKey())
		raw, present := doc.Get(f.JSONKey())
		if !present || raw == nil {
			if f.HasDefault {
				vals[i] = f.initial()
				log.Debug().Str("type", spec.typeName).Str("field", f.Name).Str("path", path).Msg("jsonmodel: default applied")
				continue
			}
			iss = AppendIssues(iss, missingIssue(spec.typeName, f.Name, path))
			if opt.FailFast {
				return nil, iss
			}
			continue
		}
		c := coercer{ctx: ctx, typeName: spec.typeName, field: f.Name, opt: opt}
		cv, ci := c.coerce(f.Type, raw, path)
		if len(ci) > 0 {
			iss = AppendIssues(iss, ci...)
			if opt.FailFast {
				return nil, iss
			}
			continue
		}
		vals[i] = cv
	}
	if opt.Unknown == UnknownStrict {
		for _, k := range doc.keys {
			if _, known := spec.byKey[k]; known || k == ModelTypeKey {
				continue
			}
			iss = AppendIssues(iss, Issue{Path: joinPointer(base, k), Code: CodeUnknownKey, Message: unknownKeyMessage(), Params: map[string]any{"key": k}})
			if opt.FailFast {
				return nil, iss
			}
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return &Record{spec: spec, values: vals}, nil
}
