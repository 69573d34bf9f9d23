package jsonmodel

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// coercer converts incoming values (document values, defaults, overrides)
// into the stored representation of a declared Type.
type coercer struct {
	ctx      context.Context
	typeName string
	field    string
	opt      ParseOpt
}

func (c coercer) mismatch(t Type, v any, path string) Issues {
	return Issues{mismatchIssue(c.typeName, c.field, path, t.String(), v)}
}

func (c coercer) coerce(t Type, v any, path string) (any, Issues) {
	switch t.kind {
	case KindAny:
		out, ok := normalizeAny(v)
		if !ok {
			return nil, c.mismatch(t, v, path)
		}
		return out, nil
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindInt:
		if n, ok := toInt64(v); ok {
			return n, nil
		}
	case KindFloat:
		if f, ok := toFloat64(v); ok {
			return f, nil
		}
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindList:
		return c.coerceList(t, v, path)
	case KindMap:
		return c.coerceMap(t, v, path)
	case KindRecord:
		return c.coerceRecord(t, v, path)
	}
	return nil, c.mismatch(t, v, path)
}

func (c coercer) coerceList(t Type, v any, path string) (any, Issues) {
	items, ok := asList(v)
	if !ok {
		return nil, c.mismatch(t, v, path)
	}
	elem := *t.elem
	out := make([]any, 0, len(items))
	var iss Issues
	for i, it := range items {
		cv, ci := c.coerce(elem, it, path+"/"+strconv.Itoa(i))
		if len(ci) > 0 {
			iss = AppendIssues(iss, ci...)
			if c.opt.FailFast {
				return nil, iss
			}
			continue
		}
		out = append(out, cv)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (c coercer) coerceMap(t Type, v any, path string) (any, Issues) {
	src, ok := asDocument(v)
	if !ok {
		return nil, c.mismatch(t, v, path)
	}
	elem := *t.elem
	out := NewDocument()
	var iss Issues
	for _, k := range src.keys {
		cv, ci := c.coerce(elem, src.values[k], joinPointer(path, k))
		if len(ci) > 0 {
			iss = AppendIssues(iss, ci...)
			if c.opt.FailFast {
				return nil, iss
			}
			continue
		}
		out.Set(k, cv)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (c coercer) coerceRecord(t Type, v any, path string) (any, Issues) {
	if v == nil {
		return nil, nil
	}
	spec, err := t.Spec()
	if err != nil {
		return nil, Issues{specIssue(path, err.Error())}
	}
	if r, ok := v.(*Record); ok {
		if r == nil {
			return nil, nil
		}
		if r.spec != spec {
			return nil, c.mismatch(t, v, path)
		}
		return cloneRecord(r), nil
	}
	doc, ok := asDocument(v)
	if !ok {
		return nil, c.mismatch(t, v, path)
	}
	r, iss := fromDocument(c.ctx, spec, doc, path, c.opt)
	if len(iss) > 0 {
		return nil, iss
	}
	return r, nil
}

// asList accepts []any and the common typed slices callers pass to CopyWith.
func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []string:
		return liftSlice(t), true
	case []int:
		return liftSlice(t), true
	case []int64:
		return liftSlice(t), true
	case []float64:
		return liftSlice(t), true
	case []bool:
		return liftSlice(t), true
	case []*Record:
		return liftSlice(t), true
	case []*Document:
		return liftSlice(t), true
	case []map[string]any:
		return liftSlice(t), true
	}
	return nil, false
}

func liftSlice[E any](in []E) []any {
	out := make([]any, len(in))
	for i, e := range in {
		out[i] = e
	}
	return out
}

// asDocument accepts *Document and plain maps. Plain maps have no order, so
// their keys are taken in sorted order.
func asDocument(v any) (*Document, bool) {
	switch t := v.(type) {
	case *Document:
		if t == nil {
			return nil, false
		}
		return t, true
	case map[string]any:
		return DocumentOf(t), true
	case map[string]string:
		d := NewDocument()
		for _, k := range sortedKeys(t) {
			d.Set(k, t[k])
		}
		return d, true
	}
	return nil, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeAny checks that v is a JSON-compatible value and converts
// containers to their stored form.
func normalizeAny(v any) (any, bool) {
	switch t := v.(type) {
	case nil, bool, string, float64, json.Number:
		return t, true
	case float32:
		return float64(t), true
	case *Record:
		return cloneRecord(t), true
	}
	if n, ok := toInt64(v); ok {
		return n, true
	}
	if items, ok := asList(v); ok {
		out := make([]any, len(items))
		for i, it := range items {
			nv, ok := normalizeAny(it)
			if !ok {
				return nil, false
			}
			out[i] = nv
		}
		return out, true
	}
	if doc, ok := asDocument(v); ok {
		out := NewDocument()
		for _, k := range doc.keys {
			nv, ok := normalizeAny(doc.values[k])
			if !ok {
				return nil, false
			}
			out.Set(k, nv)
		}
		return out, true
	}
	return nil, false
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) <= math.MaxInt64 {
			return int64(n), true
		}
	case uint64:
		if n <= math.MaxInt64 {
			return int64(n), true
		}
	case float64:
		return integralFloat(n)
	case float32:
		return integralFloat(float64(n))
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return integralFloat(f)
		}
	}
	return 0, false
}

func integralFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

// describeValue names the runtime shape of a value for error messages.
func describeValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case json.Number, float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case *Record:
		if t == nil {
			return "null"
		}
		return "record<" + t.spec.typeName + ">"
	}
	if _, ok := asList(v); ok {
		return "list"
	}
	if _, ok := asDocument(v); ok {
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
