// Package dsl provides a fluent builder for record specs and a typed binding
// between Go types and records.
//
// # Builder
//
//	spec := dsl.Record("User").
//		Field("id", dsl.String()).
//		Field("displayName", dsl.String()).Key("display_name").Default("").
//		Field("password", dsl.String()).FromJSONOnly().
//		Field("address", dsl.Nested(addressSpec)).
//		MustBuild()
//
// Every field takes part in both directions unless narrowed with
// ToJSONOnly, FromJSONOnly or Ignore. Record-level flags (Mutable,
// WithoutToJSON, WithoutFromJSON, WithoutCopyWith) mirror the options of
// jsonmodel.NewRecordSpec.
//
// # Typed binding
//
// Bind pairs a spec with two conversion functions, the shape generated code
// provides, and returns a Model[T] exposing FromJSON, ToJSON, CopyWith,
// Equal, Hash and String on T.
package dsl
