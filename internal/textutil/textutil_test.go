package textutil_test

import (
	"testing"

	"hanzireel/internal/textutil"
)

func TestTitleWords(t *testing.T) {
	tests := map[string]string{
		"hook":            "Hook",
		"core_lesson":     "Core Lesson",
		"quick_example":   "Quick Example",
		"cultural_nugget": "Cultural Nugget",
		"call_to_action":  "Call To Action",
		"":                "",
	}
	for in, want := range tests {
		if got := textutil.TitleWords(in); got != want {
			t.Errorf("TitleWords(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOutputName(t *testing.T) {
	tests := map[string]string{
		"  chinese_word_animation ": "chinese_word_animation",
		"a/b:c*d":                   "a-b-c-d",
		"what?<>|\"":               "what",
		"100%_tea":                  "100_tea",
		"茶 tea":                     "茶 tea",
		"":                          "",
	}
	for in, want := range tests {
		if got := textutil.OutputName(in); got != want {
			t.Errorf("OutputName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsLessonID(t *testing.T) {
	tests := map[string]bool{
		"01_wo":     true,
		"02_ai":     true,
		"10-shui":   true,
		"7":         true,
		"03_NI":     false,
		"01 wo":     false,
		"_01":       false,
		"01_":       false,
		"../escape": false,
		"人":         false,
		"":          false,
	}
	for in, want := range tests {
		if got := textutil.IsLessonID(in); got != want {
			t.Errorf("IsLessonID(%q) = %v, want %v", in, got, want)
		}
	}
}
