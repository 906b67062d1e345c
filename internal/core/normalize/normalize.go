// Package normalize derives deterministic text forms for product titles.
//
// Key is the canonical identity key used to decide whether two canonical names are the same item.
// Pipeline order
// 1 Sanitize: spaces flattened, controls and invalid UTF-8 dropped
// 2 NFKD decomposition (ligatures, compatibility forms, split accents)
// 3 Unicode case folding
// 4 Remove combining and format marks (accents, ZWJ, ZWSP, BOM)
// 5 Width fold fullwidth to ASCII
// 6 NFC recomposition
// 7 Collapse whitespace to single spaces and trim
//
// Title only does steps 1 and 7 and keeps the original case and accents, for display.
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

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
			norm.NFC,
		)
	},
}

// Key returns the canonical identity key of a canonical name
func Key(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ks, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// transformers only fail on malformed input, which Sanitize already removed
		ks = strings.ToLower(s)
	}
	return collapseSpaces(ks)
}

// Title cleans a raw title for display: control characters dropped, whitespace collapsed
func Title(s string) string {
	if s == "" {
		return ""
	}
	return collapseSpaces(Sanitize(s))
}

// SameItem reports whether two canonical names share an identity key
func SameItem(a, b string) bool { return Key(a) == Key(b) }

// collapseSpaces converts every whitespace run (newlines included) to one ASCII space and trims the edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
