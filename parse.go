package jsonmodel

import (
	"context"
	"errors"
	"io"

	eng "github.com/reoring/jsonmodel/internal/engine"
	"github.com/reoring/jsonmodel/source/gojson"
)

// DecodeJSON reads a JSON object into an order-preserving Document using the
// go-json token stream. Duplicate keys, nesting depth and input size are
// enforced according to opts.
func DecodeJSON(data []byte, opts ...ParseOpt) (*Document, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, singleIssue(CodeTruncated, "/", "max bytes exceeded")
	}
	return decodeSource(gojson.NewBytes(data), opt)
}

// DecodeJSONReader is like DecodeJSON for a stream. When MaxBytes is set the
// stream is read up to the limit first.
func DecodeJSONReader(r io.Reader, opts ...ParseOpt) (*Document, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return nil, singleIssue(CodeParseError, "/", err.Error())
		}
		return DecodeJSON(data, opt)
	}
	return decodeSource(gojson.NewReader(r), opt)
}

// FromJSONBytes decodes data and builds a record of spec from it.
func FromJSONBytes(ctx context.Context, spec *RecordSpec, data []byte, opts ...ParseOpt) (*Record, error) {
	doc, err := DecodeJSON(data, opts...)
	if err != nil {
		return nil, err
	}
	return FromJSON(ctx, spec, doc, opts...)
}

// FromJSONReader decodes a stream and builds a record of spec from it.
func FromJSONReader(ctx context.Context, spec *RecordSpec, r io.Reader, opts ...ParseOpt) (*Record, error) {
	doc, err := DecodeJSONReader(r, opts...)
	if err != nil {
		return nil, err
	}
	return FromJSON(ctx, spec, doc, opts...)
}

func decodeSource(src eng.TokenSource, opt ParseOpt) (*Document, error) {
	var sink func(eng.SimpleIssue)
	if opt.OnWarning != nil {
		sink = func(si eng.SimpleIssue) {
			opt.OnWarning(Issue{Path: si.Path, Code: si.Code, Message: si.Message})
		}
	}
	enforced := eng.WrapWithEnforcement(src, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   sink,
		FailFast:    opt.FailFast,
	})
	dec := eng.Decoder{
		NewObject: func() eng.ObjectSink { return NewDocument() },
		Number:    eng.JSONNumber,
	}
	if opt.NumberMode == NumberFloat64 {
		dec.Number = eng.Float64
	}
	v, err := dec.Decode(enforced)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, singleIssue(CodeParseError, "/", "empty input")
		}
		return nil, toIssues(err)
	}
	if _, err := enforced.NextToken(); !errors.Is(err, io.EOF) {
		return nil, singleIssue(CodeParseError, "/", "trailing data after top-level value")
	}
	doc, ok := v.(*Document)
	if !ok {
		return nil, Issues{mismatchIssue("", "", "/", "object", v)}
	}
	return doc, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func toIssues(err error) Issues {
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message}}
	}
	return Issues{Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
}
