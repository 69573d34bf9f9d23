package declare

import (
	"fmt"
	"strings"

	jsonmodel "github.com/reoring/jsonmodel"
)

// ParseType reads a type expression: any, bool, int, float, string,
// list<T>, map<T>, record<Name> or record:Name. Record names resolve through
// lookup when used.
func ParseType(expr string, lookup jsonmodel.SpecLookup) (jsonmodel.Type, error) {
	s := strings.TrimSpace(expr)
	switch s {
	case "any":
		return jsonmodel.Any(), nil
	case "bool":
		return jsonmodel.Bool(), nil
	case "int":
		return jsonmodel.Int(), nil
	case "float":
		return jsonmodel.Float(), nil
	case "string":
		return jsonmodel.String(), nil
	case "":
		return jsonmodel.Type{}, fmt.Errorf("type is required")
	}
	if name, ok := strings.CutPrefix(s, "record:"); ok {
		return recordRef(name, lookup)
	}
	head, inner, ok := generic(s)
	if !ok {
		return jsonmodel.Type{}, fmt.Errorf("unknown type %q", expr)
	}
	switch head {
	case "list", "map":
		elem, err := ParseType(inner, lookup)
		if err != nil {
			return jsonmodel.Type{}, err
		}
		if head == "list" {
			return jsonmodel.ListOf(elem), nil
		}
		return jsonmodel.MapOf(elem), nil
	case "record":
		return recordRef(inner, lookup)
	}
	return jsonmodel.Type{}, fmt.Errorf("unknown type %q", expr)
}

// generic splits "head<inner>".
func generic(s string) (head, inner string, ok bool) {
	open := strings.IndexByte(s, '<')
	if open <= 0 || !strings.HasSuffix(s, ">") {
		return "", "", false
	}
	return strings.TrimSpace(s[:open]), s[open+1 : len(s)-1], true
}

func recordRef(name string, lookup jsonmodel.SpecLookup) (jsonmodel.Type, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return jsonmodel.Type{}, fmt.Errorf("record type without name")
	}
	return jsonmodel.RecordRef(name, lookup), nil
}
