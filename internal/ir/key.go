package ir

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FoldKey normalizes a system or pageset name for case-insensitive
// identity: trimmed, NFC normalized and Unicode case folded.
//
// A Caser is stateful, so one is built per call to keep FoldKey safe for
// concurrent use.
func FoldKey(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// SameName reports whether two names are equal under FoldKey.
func SameName(a, b string) bool {
	return FoldKey(a) == FoldKey(b)
}
