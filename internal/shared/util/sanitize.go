package util

import "strings"

// FileSlug lowercases a free-form label into a filename-safe token.
// Characters outside [a-z0-9] collapse to single underscores; an empty
// result is returned as "".
func FileSlug(label string) string {
	lower := strings.ToLower(strings.TrimSpace(label))

	var b strings.Builder
	lastUnderscore := false
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case r == '.', r == '\'':
			// Dropped outright so "Acme Corp." slugs to acme_corp.
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
