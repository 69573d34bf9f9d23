// Package middleware decodes HTTP request bodies into records at the edge of
// a service. The net/http middleware here works with any router; echo and gin
// adapters live in their own modules.
package middleware

import (
	"context"
	"net/http"

	j "github.com/goccy/go-json"

	jsonmodel "github.com/reoring/jsonmodel"
	"github.com/reoring/jsonmodel/dsl"
)

// ctxKeyRecord keys decoded records by declared type name.
type ctxKeyRecord struct{ typeName string }

// ctxKeyValue is a typed context key for bound values; the generic struct
// type makes it unique per T.
type ctxKeyValue[T any] struct{}

// ContextWithRecord attaches r under its type name.
func ContextWithRecord(ctx context.Context, r *jsonmodel.Record) context.Context {
	return context.WithValue(ctx, ctxKeyRecord{r.TypeName()}, r)
}

// RecordFromContext retrieves the record of the given type.
func RecordFromContext(ctx context.Context, typeName string) (*jsonmodel.Record, bool) {
	r, ok := ctx.Value(ctxKeyRecord{typeName}).(*jsonmodel.Record)
	return r, ok
}

func ContextWithValue[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyValue[T]{}, v)
}

func ValueFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyValue[T]{}).(T)
	return v, ok
}

// DefaultParseOpt returns a recommended default for HTTP JSON boundaries.
// - Duplicate keys are errors
// - Bodies are limited to 1 MiB
func DefaultParseOpt() jsonmodel.ParseOpt {
	return jsonmodel.ParseOpt{
		Strictness: jsonmodel.Strictness{OnDuplicateKey: jsonmodel.Error},
		MaxBytes:   1 << 20,
	}
}

// ApplyDefaults returns opt, or DefaultParseOpt carrying opt's decoding
// choices when opt sets neither a duplicate-key severity nor a size limit.
func ApplyDefaults(opt jsonmodel.ParseOpt) jsonmodel.ParseOpt {
	if opt.Strictness.OnDuplicateKey == jsonmodel.Ignore && opt.MaxBytes == 0 {
		d := DefaultParseOpt()
		d.Unknown, d.FailFast, d.NumberMode, d.MaxDepth = opt.Unknown, opt.FailFast, opt.NumberMode, opt.MaxDepth
		return d
	}
	return opt
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues []jsonmodel.Issue) map[string]any {
	out := make([]map[string]any, 0, len(issues))
	for _, it := range issues {
		e := map[string]any{"path": it.Path, "code": it.Code, "message": it.Message}
		if it.Hint != "" {
			e["hint"] = it.Hint
		}
		out = append(out, e)
	}
	return map[string]any{"issues": out}
}

// ErrorBody is ErrorPayload for any error: Issues keep their detail, other
// errors become a single parse_error entry.
func ErrorBody(err error) map[string]any {
	if iss, ok := jsonmodel.AsIssues(err); ok {
		return ErrorPayload(iss)
	}
	return ErrorPayload([]jsonmodel.Issue{{Path: "/", Code: jsonmodel.CodeParseError, Message: err.Error()}})
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = j.NewEncoder(w).Encode(ErrorBody(err))
}

// DecodeRecord reads the request body as a record of spec and stores it in
// the request context, or answers 400 with the issues. A zero opt selects
// DefaultParseOpt limits.
func DecodeRecord(spec *jsonmodel.RecordSpec, opt jsonmodel.ParseOpt) func(http.Handler) http.Handler {
	opt = ApplyDefaults(opt)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			r, err := jsonmodel.FromJSONReader(req.Context(), spec, req.Body, opt)
			if err != nil {
				writeError(w, err)
				return
			}
			next.ServeHTTP(w, req.WithContext(ContextWithRecord(req.Context(), r)))
		})
	}
}

// DecodeValue is DecodeRecord for a bound model; handlers read the value
// with ValueFromContext[T].
func DecodeValue[T any](m *dsl.Model[T], opt jsonmodel.ParseOpt) func(http.Handler) http.Handler {
	opt = ApplyDefaults(opt)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			doc, err := jsonmodel.DecodeJSONReader(req.Body, opt)
			if err != nil {
				writeError(w, err)
				return
			}
			v, err := m.FromJSON(req.Context(), doc, opt)
			if err != nil {
				writeError(w, err)
				return
			}
			next.ServeHTTP(w, req.WithContext(ContextWithValue(req.Context(), v)))
		})
	}
}

// WriteRecord answers with the record's toJSON document.
func WriteRecord(w http.ResponseWriter, status int, r *jsonmodel.Record) error {
	b, err := jsonmodel.ToJSONBytes(r)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}
