// Package slug derives URL-safe identifiers from document titles and folder
// names. The derivation keeps lowercase latin letters, digits, and the CJK
// unified ideograph range so Chinese titles survive as readable slugs; every
// other run of characters collapses into a single hyphen.
package slug

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// SuffixLength is the number of random characters appended by WithSuffix.
const SuffixLength = 6

// Slugify normalizes a title or folder name into a slug. The result is
// deterministic: the same input always yields the same slug, and leading,
// trailing, and repeated separators are collapsed.
func Slugify(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	pendingHyphen := false
	for _, r := range strings.ToLower(value) {
		if keepRune(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}

// WithSuffix slugifies value and appends a random 6 character suffix so
// server-derived slugs stay unique without a retry loop. An empty base
// yields the bare suffix.
func WithSuffix(value string) string {
	base := Slugify(value)
	suffix := randomSuffix()
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

// IsValid reports whether value is already in slug form.
func IsValid(value string) bool {
	return value != "" && Slugify(value) == value
}

func keepRune(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return true
	}
	if r >= '0' && r <= '9' {
		return true
	}
	// CJK unified ideographs pass through untouched.
	return r >= 0x4E00 && r <= 0x9FFF
}

func randomSuffix() string {
	out := make([]byte, SuffixLength)
	max := big.NewInt(int64(len(suffixAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to a fixed character rather than panic.
			out[i] = 'x'
			continue
		}
		out[i] = suffixAlphabet[n.Int64()]
	}
	return string(out)
}
