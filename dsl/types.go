package dsl

import jsonmodel "github.com/reoring/jsonmodel"

func Any() jsonmodel.Type    { return jsonmodel.Any() }
func Bool() jsonmodel.Type   { return jsonmodel.Bool() }
func Int() jsonmodel.Type    { return jsonmodel.Int() }
func Float() jsonmodel.Type  { return jsonmodel.Float() }
func String() jsonmodel.Type { return jsonmodel.String() }

// List declares a list of elem.
func List(elem jsonmodel.Type) jsonmodel.Type { return jsonmodel.ListOf(elem) }

// Map declares a string-keyed map of elem.
func Map(elem jsonmodel.Type) jsonmodel.Type { return jsonmodel.MapOf(elem) }

// Nested declares a nested record.
func Nested(spec *jsonmodel.RecordSpec) jsonmodel.Type { return jsonmodel.RecordOf(spec) }

// Ref declares a nested record looked up by name when used.
func Ref(typeName string, lookup jsonmodel.SpecLookup) jsonmodel.Type {
	return jsonmodel.RecordRef(typeName, lookup)
}
