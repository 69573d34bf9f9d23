package engine

import (
	"encoding/json"
	"io"
	"strconv"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ObjectSink receives object members in input order.
type ObjectSink interface {
	Set(key string, v any)
}

// NumberConv converts the textual form of a number token.
type NumberConv func(string) (any, error)

// JSONNumber keeps numbers as json.Number.
func JSONNumber(s string) (any, error) { return json.Number(s), nil }

// Float64 parses numbers into float64.
func Float64(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Decoder builds values from a TokenSource. Objects are materialized through
// NewObject so callers control key ordering; arrays become []any.
type Decoder struct {
	NewObject func() ObjectSink
	Number    NumberConv
}

// Decode reads exactly one value from src.
func (d Decoder) Decode(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return d.decodeValue(src, tok)
}

func (d Decoder) decodeValue(src TokenSource, tok Token) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return d.decodeObject(src)
	case KindBeginArray:
		return d.decodeArray(src)
	case KindString:
		return tok.String, nil
	case KindNumber:
		conv := d.Number
		if conv == nil {
			conv = JSONNumber
		}
		return conv(tok.Number)
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func (d Decoder) decodeObject(src TokenSource) (any, error) {
	obj := d.newObject()
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return obj, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		v, err := d.decodeValue(src, vt)
		if err != nil {
			return nil, err
		}
		obj.Set(tok.String, v)
	}
}

func (d Decoder) decodeArray(src TokenSource) (any, error) {
	arr := []any{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := d.decodeValue(src, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func (d Decoder) newObject() ObjectSink {
	if d.NewObject != nil {
		return d.NewObject()
	}
	return mapSink{}
}

type mapSink map[string]any

func (m mapSink) Set(key string, v any) { m[key] = v }
