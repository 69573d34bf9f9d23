package jsonmodel_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	jsonmodel "github.com/reoring/jsonmodel"
	g "github.com/reoring/jsonmodel/dsl"
)

type user struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func userSpec(tb testing.TB) *jsonmodel.RecordSpec {
	tb.Helper()
	s, err := g.Record("User").
		Field("id", g.String()).
		Field("name", g.String()).Default("").
		Field("active", g.Bool()).Default(false).
		Build()
	if err != nil {
		tb.Fatalf("spec build failed: %v", err)
	}
	return s
}

func userModel(tb testing.TB) *g.Model[user] {
	tb.Helper()
	return g.MustBind(userSpec(tb),
		func(u user) map[string]any { return map[string]any{"id": u.ID, "name": u.Name, "active": u.Active} },
		func(r *jsonmodel.Record) (user, error) {
			return user{ID: r.Text("id"), Name: r.Text("name"), Active: r.Bool("active")}, nil
		},
	)
}

func smallUserJSON() []byte { return []byte(`{"id":"u_1","name":"alice","active":true}`) }

func Benchmark_FromJSON_Record_Small_Bytes(b *testing.B) {
	ctx := context.Background()
	s := userSpec(b)
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsonmodel.FromJSONBytes(ctx, s, data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_FromJSON_Record_Small_Reader(b *testing.B) {
	ctx := context.Background()
	s := userSpec(b)
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsonmodel.FromJSONReader(ctx, s, bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_FromJSON_Bound_Small(b *testing.B) {
	ctx := context.Background()
	m := userModel(b)
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.FromJSONBytes(ctx, data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_ToJSON_Bound_Small(b *testing.B) {
	m := userModel(b)
	u := user{ID: "u_1", Name: "alice", Active: true}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.ToJSONBytes(u); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_CopyWith_Small(b *testing.B) {
	r, err := jsonmodel.FromJSONBytes(context.Background(), userSpec(b), smallUserJSON())
	if err != nil {
		b.Fatal(err)
	}
	overrides := map[string]any{"active": false}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsonmodel.CopyWith(r, overrides); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_EqualHash_Small(b *testing.B) {
	s := userSpec(b)
	x, _ := jsonmodel.FromJSONBytes(context.Background(), s, smallUserJSON())
	y, _ := jsonmodel.FromJSONBytes(context.Background(), s, smallUserJSON())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !jsonmodel.Equal(x, y) || jsonmodel.Hash(x) != jsonmodel.Hash(y) {
			b.Fatal("expected equal")
		}
	}
}

func Benchmark_encodingJSON_Unmarshal_SmallObject(b *testing.B) {
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var u user
		if err := json.Unmarshal(data, &u); err != nil {
			b.Fatal(err)
		}
	}
}
