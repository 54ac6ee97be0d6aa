package textutil

import (
	"strings"
	"unicode"
)

// OutputName turns a user supplied render name into a single path element.
// Separators become dashes. Shell and Windows metacharacters are dropped, and
// so is '%', which ffmpeg would read as part of the frame pattern.
func OutputName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/', r == '\\', r == ':', r == '*':
			b.WriteByte('-')
		case strings.ContainsRune(`?"<>|%`, r), unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// IsLessonID reports whether id can name a lesson folder, as in "01_wo":
// lowercase ASCII letters, digits, '-' and '_', beginning and ending with a
// letter or digit.
func IsLessonID(id string) bool {
	if id == "" {
		return false
	}
	for i, r := range id {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			continue
		}
		if (r != '-' && r != '_') || i == 0 || i == len(id)-1 {
			return false
		}
	}
	return true
}
