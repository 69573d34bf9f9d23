// Package yaml reads YAML into order-preserving jsonmodel documents. Mapping
// keys keep their source order and duplicate keys are rejected with both
// positions.
package yaml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	jsonmodel "github.com/reoring/jsonmodel"
	"github.com/reoring/jsonmodel/i18n"
	yamlv3 "gopkg.in/yaml.v3"
)

// DuplicateKeyError reports a key defined twice in one mapping.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// Reader decodes a multi-document YAML stream. Every document must be a
// mapping; empty documents are skipped.
type Reader struct {
	dec *yamlv3.Decoder
}

func NewReader(r io.Reader) *Reader {
	return &Reader{dec: yamlv3.NewDecoder(r)}
}

// Next returns the next document, or io.EOF when the stream is exhausted.
// Failures are jsonmodel.Issues; duplicate keys carry a *DuplicateKeyError
// cause.
func (s *Reader) Next() (*jsonmodel.Document, error) {
	for {
		var root yamlv3.Node
		if err := s.dec.Decode(&root); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, jsonmodel.Issues{{Path: "/", Code: jsonmodel.CodeParseError, Message: i18n.T(jsonmodel.CodeParseError, nil), Hint: err.Error(), Cause: err}}
		}
		n := &root
		if n.Kind == yamlv3.DocumentNode {
			if len(n.Content) == 0 {
				continue
			}
			n = n.Content[0]
		}
		if isNull(n) {
			continue
		}
		v, err := convert(resolve(n), "")
		if err != nil {
			return nil, err
		}
		doc, ok := v.(*jsonmodel.Document)
		if !ok {
			return nil, jsonmodel.Issues{{
				Path:    "/",
				Code:    jsonmodel.CodeTypeMismatch,
				Message: i18n.T(jsonmodel.CodeTypeMismatch, map[string]string{"expected": "object", "got": nodeKind(n)}),
				Hint:    fmt.Sprintf("document at %d:%d is not a mapping", n.Line, n.Column),
			}}
		}
		return doc, nil
	}
}

// ReadAll reads every remaining document.
func (s *Reader) ReadAll() ([]*jsonmodel.Document, error) {
	var out []*jsonmodel.Document
	for {
		d, err := s.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, d)
	}
}

// DecodeYAML reads the first document of data.
func DecodeYAML(data []byte) (*jsonmodel.Document, error) {
	d, err := NewReader(bytes.NewReader(data)).Next()
	if errors.Is(err, io.EOF) {
		return nil, jsonmodel.Issues{{Path: "/", Code: jsonmodel.CodeParseError, Message: i18n.T(jsonmodel.CodeParseError, nil), Hint: "empty input"}}
	}
	return d, err
}

// FromYAML decodes data and builds a record of spec from it.
func FromYAML(ctx context.Context, spec *jsonmodel.RecordSpec, data []byte, opts ...jsonmodel.ParseOpt) (*jsonmodel.Record, error) {
	d, err := DecodeYAML(data)
	if err != nil {
		return nil, err
	}
	return jsonmodel.FromJSON(ctx, spec, d, opts...)
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func parseIssue(path string, n *yamlv3.Node, format string, args ...any) error {
	return jsonmodel.Issues{{
		Path:    pointerOrRoot(path),
		Code:    jsonmodel.CodeParseError,
		Message: i18n.T(jsonmodel.CodeParseError, nil),
		Hint:    fmt.Sprintf("%d:%d: ", n.Line, n.Column) + fmt.Sprintf(format, args...),
	}}
}

func convert(n *yamlv3.Node, path string) (any, error) {
	switch n.Kind {
	case yamlv3.MappingNode:
		return convertMapping(n, path)
	case yamlv3.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := convert(resolve(c), path+"/"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yamlv3.ScalarNode:
		return scalar(n, path)
	}
	return nil, nil
}

// convertMapping keeps source key order. Keys merged with "<<" land at the
// merge point; keys written in the mapping itself win over merged ones, and
// earlier merge sources win over later ones.
func convertMapping(n *yamlv3.Node, path string) (*jsonmodel.Document, error) {
	own := make(map[string][2]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := resolve(n.Content[i])
		if k.Kind != yamlv3.ScalarNode {
			return nil, parseIssue(path, k, "non-scalar key")
		}
		if isMerge(k) {
			continue
		}
		if pos, dup := own[k.Value]; dup {
			de := &DuplicateKeyError{Key: k.Value, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			kp := path + "/" + pointerEscaper.Replace(k.Value)
			return nil, jsonmodel.Issues{{Path: kp, Code: jsonmodel.CodeDuplicateKey, Message: i18n.T(jsonmodel.CodeDuplicateKey, nil), Hint: de.Error(), Cause: de}}
		}
		own[k.Value] = [2]int{k.Line, k.Column}
	}

	d := jsonmodel.NewDocument()
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := resolve(n.Content[i]), resolve(n.Content[i+1])
		if isMerge(k) {
			if err := mergeInto(d, v, own, path); err != nil {
				return nil, err
			}
			continue
		}
		val, err := convert(v, path+"/"+pointerEscaper.Replace(k.Value))
		if err != nil {
			return nil, err
		}
		d.Set(k.Value, val)
	}
	return d, nil
}

func isMerge(k *yamlv3.Node) bool {
	return k.Kind == yamlv3.ScalarNode && k.ShortTag() == "!!merge"
}

// mergeInto copies entries of a mapping, or of a sequence of mappings, into
// d unless the key is already set or owned by the merging mapping.
func mergeInto(d *jsonmodel.Document, src *yamlv3.Node, own map[string][2]int, path string) error {
	var sources []*yamlv3.Node
	switch src.Kind {
	case yamlv3.MappingNode:
		sources = []*yamlv3.Node{src}
	case yamlv3.SequenceNode:
		for _, c := range src.Content {
			sources = append(sources, resolve(c))
		}
	default:
		return parseIssue(path, src, "merge value must be a mapping or a list of mappings")
	}
	for _, m := range sources {
		if m.Kind != yamlv3.MappingNode {
			return parseIssue(path, m, "merge value must be a mapping or a list of mappings")
		}
		md, err := convertMapping(m, path)
		if err != nil {
			return err
		}
		md.Range(func(key string, v any) bool {
			if _, mine := own[key]; mine || d.Has(key) {
				return true
			}
			d.Set(key, v)
			return true
		})
	}
	return nil
}

// scalar resolves a plain or tagged scalar through yaml.v3's own decoding.
// Values a JSON document cannot hold (non-finite floats, integers outside
// int64) are parse errors rather than strings.
func scalar(n *yamlv3.Node, path string) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, parseIssue(path, n, "invalid bool %q", n.Value)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, parseIssue(path, n, "integer %q out of int64 range", n.Value)
		}
		return i, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, parseIssue(path, n, "invalid float %q", n.Value)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, parseIssue(path, n, "%s has no JSON representation", n.Value)
		}
		return f, nil
	}
	return n.Value, nil
}

// resolve follows aliases to their anchored node.
func resolve(n *yamlv3.Node) *yamlv3.Node {
	for n.Kind == yamlv3.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yamlv3.Node) bool {
	return n.Kind == yamlv3.ScalarNode && n.ShortTag() == "!!null"
}

func nodeKind(n *yamlv3.Node) string {
	switch n.Kind {
	case yamlv3.SequenceNode:
		return "list"
	case yamlv3.ScalarNode:
		return "scalar"
	}
	return "unknown"
}

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
