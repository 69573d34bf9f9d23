package jsonmodel

// UnknownPolicy controls how document keys that match no field are handled.
type UnknownPolicy int

const (
	UnknownStrip  UnknownPolicy = iota // Ignore unknown keys.
	UnknownStrict                      // Reject unknown keys with an error.
)

// NumberMode dictates how JSON numbers are represented in decoded documents.
type NumberMode int

const (
	NumberJSONNumber NumberMode = iota // Preserve json.Number.
	NumberFloat64                      // Fast mode (with potential precision loss).
)

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement while reading raw input.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
}

// ParseOpt bundles decoding options. The zero value is lenient: duplicate keys
// are ignored (last wins), unknown keys are stripped, no size limits apply and
// all issues are collected.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
	NumberMode NumberMode
	Unknown    UnknownPolicy
	FailFast   bool
	// OnWarning receives non-fatal issues such as duplicate keys in Warn mode.
	OnWarning func(Issue)
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}
