// Package jsonmodel implements a declarative record serialization contract.
//
// A RecordSpec lists the fields of a record type in declaration order and,
// per field, whether it is written by ToJSON, read by FromJSON, which JSON key
// it uses and which default applies when the key is absent. The engine
// interprets the spec against generic documents:
//
//   - FromJSON builds a Record from a Document, applying defaults and
//     recursing into nested records. It never returns a partial record.
//   - ToJSON projects a Record into an ordered Document that always carries
//     the reserved "model_type" entry.
//   - CopyWith returns a new Record with selected fields replaced.
//
// Equality, hashing and the string form of a Record are derived from its
// ToJSON projection, so two records are equal iff their documents are.
//
// Errors are reported as Issues (JSON Pointer, code, message). Typed causes
// (*MissingRequiredFieldError, *TypeMismatchError) are reachable through
// errors.As.
//
// Typical usage:
//
//	spec := dsl.Record("Counter").
//		Field("count", jsonmodel.Int()).Default(0).
//		MustBuild()
//	rec, err := jsonmodel.FromJSONBytes(ctx, spec, data)
//	doc, err := jsonmodel.ToJSON(rec)
//	next, err := jsonmodel.CopyWith(rec, map[string]any{"count": 2})
package jsonmodel
