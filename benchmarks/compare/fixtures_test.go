package compare_test

import (
	"bytes"
	"strconv"
	"testing"

	jsonmodel "github.com/reoring/jsonmodel"
	"github.com/reoring/jsonmodel/dsl"
)

func userSpec(tb testing.TB) *jsonmodel.RecordSpec {
	tb.Helper()
	s, err := dsl.Record("User").
		Field("id", dsl.String()).
		Field("name", dsl.String()).Default("").
		Build()
	if err != nil {
		tb.Fatalf("spec build failed: %v", err)
	}
	return s
}

// itemSpec describes one element of the batch items array.
func itemSpec(tb testing.TB) *jsonmodel.RecordSpec {
	tb.Helper()
	meta := dsl.Record("Meta").
		Field("score", dsl.Int()).
		MustBuild()
	s, err := dsl.Record("Item").
		Field("id", dsl.String()).
		Field("name", dsl.String()).
		Field("age", dsl.Int()).
		Field("active", dsl.Bool()).Default(false).
		Field("meta", dsl.Nested(meta)).
		Build()
	if err != nil {
		tb.Fatalf("spec build failed: %v", err)
	}
	return s
}

// batchSpec describes {"items":[...]} documents built by generateBatch.
func batchSpec(tb testing.TB) *jsonmodel.RecordSpec {
	tb.Helper()
	s, err := dsl.Record("Batch").
		Field("items", dsl.List(dsl.Nested(itemSpec(tb)))).
		Build()
	if err != nil {
		tb.Fatalf("spec build failed: %v", err)
	}
	return s
}

func smallUserJSON() []byte { return []byte(`{"id":"u_1","name":"alice"}`) }

const (
	cmpHugeN = 10000
	cmpHugeK = 8
)

// generateBatch returns {"items":[{"id":"obj_0","name":"n0","age":0,"active":true,"meta":{"score":0},"k0":"v0_0",...}, ...]}.
func generateBatch(numObjects int, extraFields int) []byte {
	var buf bytes.Buffer
	buf.Grow(numObjects*(64+extraFields*16) + 16)
	buf.WriteString(`{"items":`)
	buf.Write(generateHugeJSONArray(numObjects, extraFields))
	buf.WriteByte('}')
	return buf.Bytes()
}

func generateHugeJSONArray(numObjects int, extraFields int) []byte {
	var buf bytes.Buffer
	buf.Grow(numObjects * (64 + extraFields*16))
	buf.WriteByte('[')
	for i := 0; i < numObjects; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		n := strconv.Itoa(i)
		buf.WriteString(`{"id":"obj_` + n + `","name":"n` + n + `","age":` + n + `,`)
		if i%2 == 0 {
			buf.WriteString(`"active":true,`)
		} else {
			buf.WriteString(`"active":false,`)
		}
		buf.WriteString(`"meta":{"score":` + n + `}`)
		for k := 0; k < extraFields; k++ {
			ks := strconv.Itoa(k)
			buf.WriteString(`,"k` + ks + `":"v` + n + `_` + ks + `"`)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// generateDeepNested returns {"a":{"a":{...{"z":1}...}}}.
func generateDeepNested(depth int) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < depth; i++ {
		buf.WriteString(`"a":{`)
	}
	buf.WriteString(`"z":1`)
	for i := 0; i < depth; i++ {
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes()
}
