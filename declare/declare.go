// Package declare builds record specs from YAML declaration files.
//
//	records:
//	  - name: Address
//	    fields:
//	      - name: street
//	        type: string
//	      - name: zip
//	        type: string
//	        key: postal_code
//	        default: ""
//	  - name: Node
//	    mutable: true
//	    fields:
//	      - name: value
//	        type: int
//	      - name: children
//	        type: list<record<Node>>
//	        default: []
//
// Records refer to each other by name through the returned registry, so a
// record may contain itself.
package declare

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	jsonmodel "github.com/reoring/jsonmodel"
	"gopkg.in/yaml.v3"
)

// File is one declaration document.
type File struct {
	Records []Record `yaml:"records"`
}

// Record declares one record type. The generation switches default to true.
type Record struct {
	Name     string  `yaml:"name"`
	Mutable  bool    `yaml:"mutable"`
	ToJSON   *bool   `yaml:"toJSON"`
	FromJSON *bool   `yaml:"fromJSON"`
	CopyWith *bool   `yaml:"copyWith"`
	Fields   []Field `yaml:"fields"`
}

// Field declares one field. Include is one of both (default), toJSON,
// fromJSON or none. An explicit "default: null" declares a nil default.
type Field struct {
	Name    string    `yaml:"name"`
	Type    string    `yaml:"type"`
	Key     string    `yaml:"key"`
	Default yaml.Node `yaml:"default"`
	Include string    `yaml:"include"`
}

// ParseFile parses a declaration file.
func ParseFile(path string) (*jsonmodel.Registry, error) {
	f, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	return Build(f)
}

// Parse parses declarations from YAML bytes.
func Parse(data []byte) (*jsonmodel.Registry, error) {
	f, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Build(f)
}

func decodeFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read file %s: %w", path, err)
	}
	f, err := Decode(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode reads a declaration document without building specs. Unknown keys
// are rejected.
func Decode(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("parse yaml: %w", err)
	}
	return f, nil
}

// Build turns declarations into specs registered in a new registry. Records
// are built in declaration order; a record default may only name records
// declared before it.
func Build(files ...File) (*jsonmodel.Registry, error) {
	reg := jsonmodel.NewRegistry()
	var errs []error
	for _, f := range files {
		for _, rd := range f.Records {
			spec, err := buildRecord(rd, reg)
			if err != nil {
				errs = append(errs, fmt.Errorf("record %q: %w", rd.Name, err))
				continue
			}
			if err := reg.Register(spec); err != nil {
				errs = append(errs, fmt.Errorf("record %q: %w", rd.Name, err))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := reg.Check(); err != nil {
		return nil, fmt.Errorf("unresolved references: %w", err)
	}
	return reg, nil
}

func buildRecord(rd Record, reg *jsonmodel.Registry) (*jsonmodel.RecordSpec, error) {
	var opts []jsonmodel.SpecOption
	if rd.Mutable {
		opts = append(opts, jsonmodel.Mutable())
	}
	if rd.ToJSON != nil && !*rd.ToJSON {
		opts = append(opts, jsonmodel.WithoutToJSON())
	}
	if rd.FromJSON != nil && !*rd.FromJSON {
		opts = append(opts, jsonmodel.WithoutFromJSON())
	}
	if rd.CopyWith != nil && !*rd.CopyWith {
		opts = append(opts, jsonmodel.WithoutCopyWith())
	}
	fields := make([]jsonmodel.FieldSpec, 0, len(rd.Fields))
	for _, fd := range rd.Fields {
		fs, err := buildField(fd, reg)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fs)
	}
	return jsonmodel.NewRecordSpec(rd.Name, fields, opts...)
}

func buildField(fd Field, reg *jsonmodel.Registry) (jsonmodel.FieldSpec, error) {
	t, err := ParseType(fd.Type, reg)
	if err != nil {
		return jsonmodel.FieldSpec{}, fmt.Errorf("field %q: %w", fd.Name, err)
	}
	fs := jsonmodel.Field(fd.Name, t).WithKey(fd.Key)
	switch fd.Include {
	case "", "both":
	case "toJSON":
		fs = fs.Include(true, false)
	case "fromJSON":
		fs = fs.Include(false, true)
	case "none":
		fs = fs.Include(false, false)
	default:
		return jsonmodel.FieldSpec{}, fmt.Errorf("field %q: include must be both, toJSON, fromJSON or none, got %q", fd.Name, fd.Include)
	}
	if fd.Default.Kind != 0 {
		var v any
		if err := fd.Default.Decode(&v); err != nil {
			return jsonmodel.FieldSpec{}, fmt.Errorf("field %q: default: %w", fd.Name, err)
		}
		fs = fs.WithDefault(v)
	}
	return fs, nil
}
