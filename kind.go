package jsonmodel

import "fmt"

// Kind enumerates the declared value kinds a field can hold.
type Kind uint8

const (
	KindAny Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindRecord:
		return "record"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// SpecLookup resolves record specs by type name. *Registry implements it.
type SpecLookup interface {
	Lookup(typeName string) (*RecordSpec, bool)
}

// Type is the declared type of a field. Values are built with the
// constructors below; the zero Type is Any.
//
// Stored representations: Int is int64, Float is float64, List is []any,
// Map is *Document and Record is *Record (nil when absent).
type Type struct {
	kind   Kind
	elem   *Type
	record *RecordSpec
	ref    string
	lookup SpecLookup
}

func Any() Type    { return Type{kind: KindAny} }
func Bool() Type   { return Type{kind: KindBool} }
func Int() Type    { return Type{kind: KindInt} }
func Float() Type  { return Type{kind: KindFloat} }
func String() Type { return Type{kind: KindString} }

// ListOf declares an ordered sequence of elem values.
func ListOf(elem Type) Type { return Type{kind: KindList, elem: &elem} }

// MapOf declares a string-keyed mapping of elem values.
func MapOf(elem Type) Type { return Type{kind: KindMap, elem: &elem} }

// RecordOf declares a nested record of the given spec.
func RecordOf(spec *RecordSpec) Type { return Type{kind: KindRecord, record: spec} }

// RecordRef declares a nested record resolved by name at use time. It allows
// self-referencing and mutually recursive records.
func RecordRef(typeName string, lookup SpecLookup) Type {
	return Type{kind: KindRecord, ref: typeName, lookup: lookup}
}

func (t Type) Kind() Kind { return t.kind }

// Elem returns the element type of a list or map.
func (t Type) Elem() (Type, bool) {
	if t.elem == nil {
		return Type{}, false
	}
	return *t.elem, true
}

// RecordName returns the nested record's type name for record types.
func (t Type) RecordName() string {
	if t.record != nil {
		return t.record.TypeName()
	}
	return t.ref
}

// Spec resolves the nested record spec.
func (t Type) Spec() (*RecordSpec, error) {
	if t.kind != KindRecord {
		return nil, fmt.Errorf("jsonmodel: %s is not a record type", t)
	}
	if t.record != nil {
		return t.record, nil
	}
	if t.lookup == nil {
		return nil, fmt.Errorf("jsonmodel: record %q has no lookup", t.ref)
	}
	s, ok := t.lookup.Lookup(t.ref)
	if !ok {
		return nil, fmt.Errorf("jsonmodel: record %q is not registered", t.ref)
	}
	return s, nil
}

func (t Type) String() string {
	switch t.kind {
	case KindList, KindMap:
		elem := "any"
		if t.elem != nil {
			elem = t.elem.String()
		}
		return t.kind.String() + "<" + elem + ">"
	case KindRecord:
		return "record<" + t.RecordName() + ">"
	}
	return t.kind.String()
}

func (t Type) validate() error {
	switch t.kind {
	case KindAny, KindBool, KindInt, KindFloat, KindString:
		return nil
	case KindList, KindMap:
		if t.elem == nil {
			return fmt.Errorf("%s without element type", t.kind)
		}
		return t.elem.validate()
	case KindRecord:
		if t.record == nil && t.ref == "" {
			return fmt.Errorf("record type without spec")
		}
		if t.record == nil && t.lookup == nil {
			return fmt.Errorf("record %q without lookup", t.ref)
		}
		return nil
	}
	return fmt.Errorf("unknown kind %d", t.kind)
}

// zero returns the type-specific zero value in stored representation.
func (t Type) zero() any {
	switch t.kind {
	case KindBool:
		return false
	case KindInt:
		return int64(0)
	case KindFloat:
		return float64(0)
	case KindString:
		return ""
	case KindList:
		return []any{}
	case KindMap:
		return NewDocument()
	}
	// Any and Record: absent
	return nil
}
