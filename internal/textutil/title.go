package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleWords turns an identifier such as "core_lesson" into "Core Lesson".
func TitleWords(identifier string) string {
	words := strings.ReplaceAll(identifier, "_", " ")
	// Casers keep state between calls and must not be shared.
	return cases.Title(language.Und).String(words)
}
