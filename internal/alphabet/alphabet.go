// Package alphabet resolves spelling layouts for a language and script.
//
// The planner treats alphabet lookup as an optional enrichment: a failed
// lookup becomes a note on the alphabet page and never fails a plan.
package alphabet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultLanguage is used when only a script is requested.
const DefaultLanguage = "en"

// ErrUnsupported is returned for languages or scripts without a table.
var ErrUnsupported = errors.New("unsupported alphabet")

// Layout is the ordered glyph set for one language and script.
// Slices are shared with the resolver's tables; treat them as read-only.
type Layout struct {
	Language  string
	Script    string
	Uppercase []string
	Lowercase []string
	Digits    []string
}

// Resolver looks up a spelling layout. script may be empty, in which case
// the language's usual script is used.
type Resolver interface {
	Resolve(ctx context.Context, lang, script string) (Layout, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, lang, script string) (Layout, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, lang, script string) (Layout, error) {
	return f(ctx, lang, script)
}

var digits = strings.Split("0123456789", "")

// uppercase tables keyed by ISO 639-1 base language.
var uppercase = map[string]string{
	"en": "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	"es": "ABCDEFGHIJKLMNÑOPQRSTUVWXYZ",
	"fr": "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	"de": "ABCDEFGHIJKLMNOPQRSTUVWXYZÄÖÜ",
	"it": "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	"pt": "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	"nl": "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	"sv": "ABCDEFGHIJKLMNOPQRSTUVWXYZÅÄÖ",
	"tr": "ABCÇDEFGĞHIİJKLMNOÖPRSŞTUÜVYZ",
	"el": "ΑΒΓΔΕΖΗΘΙΚΛΜΝΞΟΠΡΣΤΥΦΧΨΩ",
	"ru": "АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯ",
	"uk": "АБВГҐДЕЄЖЗИІЇЙКЛМНОПРСТУФХЦЧШЩЬЮЯ",
}

// Builtin resolves layouts from tables compiled into the binary.
type Builtin struct{}

// NewBuiltin returns the table-backed resolver.
func NewBuiltin() Builtin {
	return Builtin{}
}

// Languages lists the base languages the built-in tables cover.
func (Builtin) Languages() []string {
	return []string{"en", "es", "fr", "de", "it", "pt", "nl", "sv", "tr", "el", "ru", "uk"}
}

// Resolve implements Resolver.
func (Builtin) Resolve(ctx context.Context, lang, script string) (Layout, error) {
	if err := ctx.Err(); err != nil {
		return Layout{}, err
	}

	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return Layout{}, fmt.Errorf("%w: language %q: %v", ErrUnsupported, lang, err)
	}
	base, _ := tag.Base()
	glyphs, ok := uppercase[base.String()]
	if !ok {
		return Layout{}, fmt.Errorf("%w: no table for language %q", ErrUnsupported, base)
	}

	native, _ := tag.Script()
	if script = strings.TrimSpace(script); script != "" {
		requested, err := language.ParseScript(script)
		if err != nil {
			return Layout{}, fmt.Errorf("%w: script %q: %v", ErrUnsupported, script, err)
		}
		if requested != native {
			return Layout{}, fmt.Errorf("%w: %s is not written in %s", ErrUnsupported, base, requested)
		}
	}

	upper := strings.Split(glyphs, "")
	lower := make([]string, len(upper))
	caser := cases.Lower(language.Make(base.String()))
	for i, g := range upper {
		lower[i] = caser.String(g)
	}

	return Layout{
		Language:  base.String(),
		Script:    native.String(),
		Uppercase: upper,
		Lowercase: lower,
		Digits:    digits,
	}, nil
}
