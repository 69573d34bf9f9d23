package jsonmodel

import (
	"strings"

	"github.com/reoring/jsonmodel/i18n"
)

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// joinPointer appends one RFC 6901 reference token to base.
func joinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

func unknownKeyMessage() string { return i18n.T(CodeUnknownKey, nil) }
