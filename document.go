package jsonmodel

import (
	"bytes"
	"encoding/json"
	"strings"

	j "github.com/goccy/go-json"
)

// Document is an ordered JSON object: keys keep insertion order for encoding,
// while Equal ignores order. Values are JSON-compatible: nil, bool, numbers,
// string, []any, nested *Document or map[string]any.
//
// A Document is not safe for concurrent mutation.
type Document struct {
	keys   []string
	values map[string]any
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{values: map[string]any{}}
}

// DocumentOf converts a plain map into a Document with keys in sorted order.
// Nested maps are converted as well.
func DocumentOf(m map[string]any) *Document {
	d := &Document{keys: make([]string, 0, len(m)), values: make(map[string]any, len(m))}
	for _, k := range sortedKeys(m) {
		d.Set(k, liftMaps(m[k]))
	}
	return d
}

func liftMaps(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return DocumentOf(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = liftMaps(t[i])
		}
		return out
	}
	return v
}

// Set stores v under key. An existing key keeps its position.
func (d *Document) Set(key string, v any) {
	if d.values == nil {
		d.values = map[string]any{}
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Get returns the value stored under key.
func (d *Document) Get(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether key is present (even with a null value).
func (d *Document) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Delete removes key.
func (d *Document) Delete(key string) {
	if d == nil {
		return
	}
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the keys in order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Range calls fn for each entry in order until fn returns false.
func (d *Document) Range(fn func(key string, v any) bool) {
	if d == nil {
		return
	}
	for _, k := range d.keys {
		if !fn(k, d.values[k]) {
			return
		}
	}
}

// Map converts the document into plain maps and slices, recursively.
func (d *Document) Map() map[string]any {
	if d == nil {
		return nil
	}
	out := make(map[string]any, len(d.keys))
	for _, k := range d.keys {
		out[k] = plainValue(d.values[k])
	}
	return out
}

func plainValue(v any) any {
	switch t := v.(type) {
	case *Document:
		return t.Map()
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = plainValue(t[i])
		}
		return out
	}
	return v
}

// Clone returns a deep copy of the document containers.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{keys: make([]string, len(d.keys)), values: make(map[string]any, len(d.values))}
	copy(out.keys, d.keys)
	for k, v := range d.values {
		out.values[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies containers so callers cannot alias stored state.
// Records of mutable specs are copied as well; immutable records are shared.
func cloneValue(v any) any {
	switch t := v.(type) {
	case *Record:
		return cloneRecord(t)
	case *Document:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	}
	return v
}

// Equal reports deep equality, ignoring key order. Numbers compare by value
// regardless of representation (json.Number, int64, float64).
func (d *Document) Equal(o *Document) bool {
	if d.Len() != o.Len() {
		return false
	}
	for _, k := range d.Keys() {
		ov, ok := o.Get(k)
		if !ok {
			return false
		}
		if !valuesEqual(d.values[k], ov) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	if ad, ok := asDocument(a); ok {
		bd, ok := asDocument(b)
		return ok && ad.Equal(bd)
	}
	if al, ok := asList(a); ok {
		bl, ok := asList(b)
		if !ok || len(al) != len(bl) {
			return false
		}
		for i := range al {
			if !valuesEqual(al[i], bl[i]) {
				return false
			}
		}
		return true
	}
	if an, ok := canonicalNumber(a); ok {
		bn, ok := canonicalNumber(b)
		return ok && an == bn
	}
	if ar, ok := a.(*Record); ok {
		br, ok := b.(*Record)
		return ok && Equal(ar, br)
	}
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	}
	return false
}

// MarshalJSON encodes the document with keys in insertion order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, d, false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keeping the input key order.
func (d *Document) UnmarshalJSON(data []byte) error {
	nd, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	*d = *nd
	return nil
}

// String renders the document as ordered JSON.
func (d *Document) String() string {
	b, err := d.MarshalJSON()
	if err != nil {
		return "<invalid document: " + err.Error() + ">"
	}
	return string(b)
}

// writeValue encodes v as JSON. With canonical set, object keys are sorted and
// numbers use their canonical form so equal values encode identically.
func writeValue(buf *bytes.Buffer, v any, canonical bool) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case *Document:
		if t == nil {
			buf.WriteString("null")
			return nil
		}
		keys := t.keys
		if canonical {
			keys = sortedKeys(t.values)
		}
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := j.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := writeValue(buf, t.values[k], canonical); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case map[string]any:
		return writeValue(buf, DocumentOf(t), canonical)
	case []any:
		buf.WriteByte('[')
		for i := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, t[i], canonical); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case *Record:
		if t == nil {
			buf.WriteString("null")
			return nil
		}
		return writeValue(buf, project(t), canonical)
	}
	if canonical {
		if n, ok := canonicalNumber(v); ok {
			buf.WriteString(n)
			return nil
		}
	}
	b, err := j.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// canonicalNumber renders numbers so that equal values produce equal text:
// integral values print as integers, others in shortest float form.
func canonicalNumber(v any) (string, bool) {
	switch v.(type) {
	case json.Number, float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
	default:
		return "", false
	}
	if n, ok := toInt64(v); ok {
		return formatInt(n), true
	}
	if jn, ok := v.(json.Number); ok {
		// out of int64 range but integral text: keep the digits
		if s := string(jn); s != "" && !strings.ContainsAny(s, ".eE") {
			return s, true
		}
	}
	f, ok := toFloat64(v)
	if !ok {
		// valid JSON beyond float64 range, such as 1e400: the text is all we have
		if jn, isNum := v.(json.Number); isNum && jn != "" {
			return string(jn), true
		}
		return "", false
	}
	return formatFloat(f), true
}
