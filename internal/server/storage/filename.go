package storage

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallbackName replaces an original name that sanitizes to nothing.
const fallbackName = "imagen"

// SanitizeFilename reduces name to a safe ASCII base name: accents are
// folded, path separators and whitespace become underscores, every other
// character outside [A-Za-z0-9._-] is dropped and leading or trailing
// dots and underscores are trimmed.
func SanitizeFilename(name string) string {
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, name)
	if err != nil {
		folded = name
	}

	folded = strings.NewReplacer("/", " ", `\`, " ").Replace(folded)
	folded = strings.Join(strings.Fields(folded), "_")

	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}

	return strings.Trim(b.String(), "._")
}

// UniqueName builds the stored name "<uuid>_<sanitized original>".
func UniqueName(original string) string {
	clean := SanitizeFilename(original)
	if clean == "" {
		clean = fallbackName
	}
	return uuid.NewString() + "_" + clean
}
