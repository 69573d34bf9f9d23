package jsonmodel_test

import (
	"bytes"
	"context"
	"strconv"
	"testing"

	jsonmodel "github.com/reoring/jsonmodel"
	g "github.com/reoring/jsonmodel/dsl"
)

// Micro: small record with numeric fields
func numberModeSmallSpec(tb testing.TB) *jsonmodel.RecordSpec {
	tb.Helper()
	s, err := g.Record("Point").
		Field("a", g.Int()).
		Field("b", g.Float()).
		Field("c", g.Float()).
		Build()
	if err != nil {
		tb.Fatalf("spec build failed: %v", err)
	}
	return s
}

func Benchmark_NumberMode_Small_JSONNumber(b *testing.B) {
	ctx := context.Background()
	s := numberModeSmallSpec(b)
	data := []byte(`{"a":1,"b":2.5,"c":-3.75}`)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsonmodel.FromJSONBytes(ctx, s, data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_NumberMode_Small_Float64(b *testing.B) {
	ctx := context.Background()
	s := numberModeSmallSpec(b)
	data := []byte(`{"a":1,"b":2.5,"c":-3.75}`)
	opt := jsonmodel.ParseOpt{NumberMode: jsonmodel.NumberFloat64}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsonmodel.FromJSONBytes(ctx, s, data, opt); err != nil {
			b.Fatal(err)
		}
	}
}

// Macro: batch of small numeric records
func numberModeBatchSpec(tb testing.TB) *jsonmodel.RecordSpec {
	tb.Helper()
	item := g.Record("Sample").
		Field("x", g.Int()).
		Field("y", g.Float()).
		Field("z", g.Float()).
		MustBuild()
	s, err := g.Record("Samples").
		Field("items", g.List(g.Nested(item))).
		Build()
	if err != nil {
		tb.Fatalf("spec build failed: %v", err)
	}
	return s
}

func generateNumericBatch(num int) []byte {
	var buf bytes.Buffer
	buf.Grow(num*48 + 16)
	buf.WriteString(`{"items":[`)
	for i := 0; i < num; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		// oscillate values to avoid trivial constant folding
		buf.WriteString(`{"x":`)
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`,"y":`)
		if i%2 == 0 {
			buf.WriteString("1.5")
		} else {
			buf.WriteString("2.5")
		}
		buf.WriteString(`,"z":-3.75}`)
	}
	buf.WriteString(`]}`)
	return buf.Bytes()
}

const numberModeHugeN = 50000

func Benchmark_NumberMode_HugeBatch_JSONNumber(b *testing.B) {
	ctx := context.Background()
	s := numberModeBatchSpec(b)
	data := generateNumericBatch(numberModeHugeN)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsonmodel.FromJSONBytes(ctx, s, data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_NumberMode_HugeBatch_Float64(b *testing.B) {
	ctx := context.Background()
	s := numberModeBatchSpec(b)
	data := generateNumericBatch(numberModeHugeN)
	opt := jsonmodel.ParseOpt{NumberMode: jsonmodel.NumberFloat64}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsonmodel.FromJSONBytes(ctx, s, data, opt); err != nil {
			b.Fatal(err)
		}
	}
}
