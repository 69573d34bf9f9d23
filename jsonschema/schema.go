package jsonschema

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	// Core
	Type    string `json:"type,omitempty"`
	Title   string `json:"title,omitempty"`
	Default any    `json:"default,omitempty"`
	Const   any    `json:"const,omitempty"`
	Ref     string `json:"$ref,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Definitions referenced through Ref ("#/$defs/Name").
	Defs map[string]*Schema `json:"$defs,omitempty"`
}

// DefRef returns the reference string for a definition name.
func DefRef(name string) string { return "#/$defs/" + name }
