package apierr

import (
	"strings"
	"unicode"
)

// SnakeCasePath normalizes a dot-separated field path to lower_snake_case.
// Segments that already contain an underscore are treated as snake_case and
// only lowercased; anything else gets an underscore inserted before each
// non-leading uppercase boundary. The underscore guard makes the function
// idempotent: applying it twice never corrupts a field name.
func SnakeCasePath(path string) string {
	if path == "" {
		return path
	}
	parts := strings.Split(path, ".")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, snakeCase(part))
	}
	return strings.Join(out, ".")
}

func snakeCase(s string) string {
	if strings.ContainsRune(s, '_') {
		return strings.ToLower(s)
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
