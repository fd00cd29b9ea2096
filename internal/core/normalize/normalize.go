// Package normalize folds free text into series slugs
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKD so accents split off their base letter
// 3 Case folding
// 4 Remove combining marks and format chars
// 5 Width fold fullwidth to ASCII
// 6 Runs of anything outside [a-z0-9] become a single hyphen, trimmed at both ends
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// transformer chains are stateful so each call borrows one
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// Fold runs steps 1 to 5 and returns the folded text
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return s
	}
	return out
}

// Series returns the slug form of s, e.g. "Quick Cryptic" -> "quick-cryptic"
// the result is empty when s has no letters or digits
func Series(s string) string {
	s = Fold(s)
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}
