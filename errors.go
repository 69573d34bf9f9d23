package jsonmodel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/jsonmodel/i18n"
)

// Issue codes
const (
	CodeMissingRequiredField = "missing_required_field"
	CodeTypeMismatch         = "type_mismatch"
	CodeUnknownKey           = "unknown_key"
	CodeDuplicateKey         = "duplicate_key"
	CodeParseError           = "parse_error"
	CodeTruncated            = "truncated"
	// Record operations
	CodeUnknownField = "unknown_field"
	CodeNotGenerated = "not_generated"
	CodeImmutable    = "immutable"
	// Definition time
	CodeInvalidSpec = "invalid_spec"
)

// Issue represents a single problem found while building or reading a record.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, expected types, etc.
	Cause   error  // Optional: underlying typed error.
	// Params carries structured parameters (e.g., {"field":"count"}) for i18n
	// and logging.
	Params map[string]any
}

// Issues is a collection of errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		// e.g. type_mismatch at /address
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Unwrap exposes the typed causes so errors.As can reach
// *MissingRequiredFieldError and *TypeMismatchError.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// MissingRequiredFieldError reports a field read from JSON that had neither a
// value nor a default.
type MissingRequiredFieldError struct {
	Type  string // declared record type name
	Field string
	Path  string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q at %s", e.Type, e.Field, e.Path)
}

// TypeMismatchError reports a document value whose shape does not match the
// declared field type.
type TypeMismatchError struct {
	Type     string
	Field    string
	Path     string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: field %q at %s: expected %s, got %s", e.Type, e.Field, e.Path, e.Expected, e.Got)
}

func missingIssue(typeName, field, path string) Issue {
	return Issue{
		Path:    path,
		Code:    CodeMissingRequiredField,
		Message: i18n.T(CodeMissingRequiredField, map[string]string{"field": field}),
		Cause:   &MissingRequiredFieldError{Type: typeName, Field: field, Path: path},
		Params:  map[string]any{"field": field},
	}
}

func mismatchIssue(typeName, field, path, expected string, got any) Issue {
	gs := describeValue(got)
	return Issue{
		Path:    path,
		Code:    CodeTypeMismatch,
		Message: i18n.T(CodeTypeMismatch, map[string]string{"expected": expected, "got": gs}),
		Hint:    "expected " + expected,
		Cause:   &TypeMismatchError{Type: typeName, Field: field, Path: path, Expected: expected, Got: gs},
		Params:  map[string]any{"field": field, "expected": expected, "got": gs},
	}
}

func singleIssue(code, path, hint string) Issues {
	return Issues{Issue{Path: path, Code: code, Message: i18n.T(code, nil), Hint: hint}}
}

func specIssue(path, hint string) Issue {
	return Issue{Path: path, Code: CodeInvalidSpec, Message: i18n.T(CodeInvalidSpec, nil), Hint: hint}
}
