// Package slug derives URL-safe identifiers for listings.
package slug

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Make builds the slug for a listing created at t: the lowercased title with
// anything but letters, digits and hyphens collapsed away, suffixed with the
// creation time in unix milliseconds. The suffix keeps two listings with the
// same title apart without a uniqueness retry loop, and the slug is never
// re-derived on title edits so published links stay stable.
func Make(title string, t time.Time) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '-' || r == '_':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	base := strings.TrimRight(b.String(), "-")
	if base == "" {
		return fmt.Sprintf("%d", t.UnixMilli())
	}
	return fmt.Sprintf("%s-%d", base, t.UnixMilli())
}
