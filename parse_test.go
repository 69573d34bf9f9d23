package jsonmodel_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	jsonmodel "github.com/reoring/jsonmodel"
	"github.com/rs/zerolog"
)

func TestDecodeJSON_KeepsKeyOrder(t *testing.T) {
	d, err := jsonmodel.DecodeJSON([]byte(`{"z":1,"a":{"y":true,"b":null},"m":[1,"x"]}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := strings.Join(d.Keys(), ","); got != "z,a,m" {
		t.Fatalf("unexpected order %s", got)
	}
	b, _ := d.MarshalJSON()
	if string(b) != `{"z":1,"a":{"y":true,"b":null},"m":[1,"x"]}` {
		t.Fatalf("unexpected encoding %s", b)
	}
	if v, _ := d.Get("z"); v != json.Number("1") {
		t.Fatalf("expected json.Number, got %#v", v)
	}
}

func TestDecodeJSON_NumberModeFloat64(t *testing.T) {
	d, err := jsonmodel.DecodeJSON([]byte(`{"n":2}`), jsonmodel.ParseOpt{NumberMode: jsonmodel.NumberFloat64})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v, _ := d.Get("n"); v != float64(2) {
		t.Fatalf("expected float64, got %#v", v)
	}
}

func TestDecodeJSON_DuplicateKeys(t *testing.T) {
	data := []byte(`{"a":1,"b":{"c":1,"c":2}}`)

	d, err := jsonmodel.DecodeJSON(data)
	if err != nil {
		t.Fatalf("ignore mode: %v", err)
	}
	b, _ := d.Get("b")
	if v, _ := b.(*jsonmodel.Document).Get("c"); v != json.Number("2") {
		t.Fatalf("last value should win, got %#v", v)
	}

	var warned []jsonmodel.Issue
	_, err = jsonmodel.DecodeJSON(data, jsonmodel.ParseOpt{
		Strictness: jsonmodel.Strictness{OnDuplicateKey: jsonmodel.Warn},
		OnWarning:  func(it jsonmodel.Issue) { warned = append(warned, it) },
	})
	if err != nil {
		t.Fatalf("warn mode: %v", err)
	}
	if len(warned) != 1 || warned[0].Code != jsonmodel.CodeDuplicateKey || warned[0].Path != "/b/c" {
		t.Fatalf("unexpected warnings %+v", warned)
	}

	_, err = jsonmodel.DecodeJSON(data, jsonmodel.ParseOpt{Strictness: jsonmodel.Strictness{OnDuplicateKey: jsonmodel.Error}})
	iss, ok := jsonmodel.AsIssues(err)
	if !ok || iss[0].Code != jsonmodel.CodeDuplicateKey || iss[0].Path != "/b/c" {
		t.Fatalf("error mode: expected duplicate_key at /b/c, got %v", err)
	}
}

func TestDecodeJSON_Limits(t *testing.T) {
	_, err := jsonmodel.DecodeJSON([]byte(`{"a":[[[1]]]}`), jsonmodel.ParseOpt{MaxDepth: 2})
	if iss, ok := jsonmodel.AsIssues(err); !ok || iss[0].Code != jsonmodel.CodeParseError {
		t.Fatalf("expected depth error, got %v", err)
	}
	_, err = jsonmodel.DecodeJSON([]byte(`{"a":"0123456789"}`), jsonmodel.ParseOpt{MaxBytes: 8})
	if iss, ok := jsonmodel.AsIssues(err); !ok || iss[0].Code != jsonmodel.CodeTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}
	_, err = jsonmodel.DecodeJSONReader(strings.NewReader(`{"a":"0123456789"}`), jsonmodel.ParseOpt{MaxBytes: 8})
	if iss, ok := jsonmodel.AsIssues(err); !ok || iss[0].Code != jsonmodel.CodeTruncated {
		t.Fatalf("reader: expected truncated, got %v", err)
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	for name, in := range map[string]string{
		"empty":      ``,
		"trailing":   `{"a":1} {"b":2}`,
		"not object": `[1,2]`,
		"broken":     `{"a":`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := jsonmodel.DecodeJSON([]byte(in)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestDocument_UnmarshalJSON(t *testing.T) {
	var holder struct {
		Doc *jsonmodel.Document `json:"doc"`
	}
	if err := json.Unmarshal([]byte(`{"doc":{"b":1,"a":2}}`), &holder); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := strings.Join(holder.Doc.Keys(), ","); got != "b,a" {
		t.Fatalf("unexpected order %s", got)
	}
}

func TestFromJSONReader(t *testing.T) {
	r, err := jsonmodel.FromJSONReader(context.Background(), personSpec(), strings.NewReader(`{"name":"r"}`))
	if err != nil || r.Text("name") != "r" {
		t.Fatalf("unexpected %v %v", r, err)
	}
}

func TestFromJSON_LogsThroughContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	if _, err := jsonmodel.FromJSON(ctx, personSpec(), map[string]any{"name": "n"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(buf.String(), "default applied") {
		t.Fatalf("expected default events, got %q", buf.String())
	}
	buf.Reset()
	if _, err := jsonmodel.FromJSON(ctx, personSpec(), map[string]any{}); err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(buf.String(), `"type":"Person"`) || !strings.Contains(buf.String(), "fromJSON failed") {
		t.Fatalf("expected failure event, got %q", buf.String())
	}
}
