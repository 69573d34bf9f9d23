package jsonmodel

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Equal reports whether a and b have the same declared type and equal
// projections. Key order does not matter.
func Equal(a, b *Record) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	if a.spec.typeName != b.spec.typeName {
		return false
	}
	return project(a).Equal(project(b))
}

// Hash returns a 64-bit hash of the record's projection. Equal records hash
// equally.
func Hash(r *Record) uint64 {
	if r == nil {
		return 0
	}
	return xxhash.Sum64(canonicalBytes(project(r)))
}

// canonicalBytes encodes d with sorted keys and canonical numbers.
func canonicalBytes(d *Document) []byte {
	var buf bytes.Buffer
	// only foreign values stored with Document.Set can fail here; they hash
	// by the prefix written so far
	_ = writeValue(&buf, d, true)
	return buf.Bytes()
}

// Format renders r as TypeName{key: value, ...} over the fields written by
// ToJSON, in declaration order. Nested records render the same way; other
// containers use JSON-like notation.
func Format(r *Record) string {
	if r == nil {
		return "<nil>"
	}
	var b strings.Builder
	writeRecord(&b, r)
	return b.String()
}

func writeRecord(b *strings.Builder, r *Record) {
	b.WriteString(r.spec.typeName)
	b.WriteByte('{')
	first := true
	for i, f := range r.spec.fields {
		if !f.ToJSON {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(f.JSONKey())
		b.WriteString(": ")
		renderValue(b, r.values[i])
	}
	b.WriteByte('}')
}

func renderValue(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
		return
	case string:
		b.WriteString(strconv.Quote(t))
		return
	case bool:
		b.WriteString(strconv.FormatBool(t))
		return
	case *Record:
		if t == nil {
			b.WriteString("null")
			return
		}
		writeRecord(b, t)
		return
	case []any:
		b.WriteByte('[')
		for i := range t {
			if i > 0 {
				b.WriteString(", ")
			}
			renderValue(b, t[i])
		}
		b.WriteByte(']')
		return
	case *Document:
		b.WriteByte('{')
		for i, k := range t.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(k))
			b.WriteString(": ")
			renderValue(b, t.values[k])
		}
		b.WriteByte('}')
		return
	}
	if n, ok := canonicalNumber(v); ok {
		b.WriteString(n)
		return
	}
	var buf bytes.Buffer
	if err := writeValue(&buf, v, false); err != nil {
		b.WriteString("<" + err.Error() + ">")
		return
	}
	b.WriteString(buf.String())
}

func formatInt(n int64) string { return strconv.FormatInt(n, 10) }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
