package schema

import (
	"strings"
)

// SplitPointer turns a JSON pointer ("/owner/email", "#/title"), a dotted path
// ("(root).owner.email", "$.title") or a bracketed path ("tags[0]") into path
// segments. JSON pointer escapes (~0, ~1) are decoded.
func SplitPointer(pointer string) []string {
	clean := strings.TrimSpace(pointer)
	clean = strings.TrimPrefix(clean, "(root)")
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "$") ||
		strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") {
		clean = clean[1:]
	}

	replacer := strings.NewReplacer("[", ".", "]", "")
	clean = replacer.Replace(clean)
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// JoinPath renders segments as a dotted path.
func JoinPath(segments []string) string {
	return strings.Join(segments, ".")
}
