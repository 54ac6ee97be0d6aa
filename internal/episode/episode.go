package episode

import "fmt"

// Episode is the text content of a single video.
type Episode struct {
	Day         int    `json:"day"`
	Character   string `json:"character"`
	Pinyin      string `json:"pinyin"`
	Translation string `json:"translation"`
	HookLine1   string `json:"hook_line_1"`
	HookLine2   string `json:"hook_line_2"`
	FunFact     string `json:"fun_fact"`
	Background  string `json:"background"`
	TextColor   string `json:"text_color"`
	Style       string `json:"style"`
}

const (
	DefaultBackground = "#f9f5f0"
	DefaultTextColor  = "#1d3557"
	DefaultStyle      = "ghibli"

	defaultHookLine2 = "You already know this word — even if you've never studied Chinese."
)

// Styles lists the accepted lesson styles. It matches the style enum of the
// lesson schema.
var Styles = []string{DefaultStyle, "kurzgesagt"}

// HookLine returns the first hook line for a given day.
func HookLine(day int) string {
	return fmt.Sprintf("🔥 1 Chinese word a day until we're fluent — Day %d", day)
}

// Sample returns the built-in tea episode.
func Sample() Episode {
	return Episode{
		Day:         1,
		Character:   "茶",
		Pinyin:      "chá",
		Translation: "tea",
		HookLine1:   HookLine(1),
		HookLine2:   defaultHookLine2,
		FunFact:     "Tea culture dates back over 2,000 years in China.",
		Background:  DefaultBackground,
		TextColor:   DefaultTextColor,
		Style:       DefaultStyle,
	}
}
