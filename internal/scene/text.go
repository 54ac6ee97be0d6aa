package scene

import (
	"strings"
	"unicode"

	"hanzireel/internal/palette"
)

const (
	// EmPerFontSize converts a font size into scene units per em.
	EmPerFontSize = 0.01
	// LineSpacing is the distance between baselines in ems.
	LineSpacing = 1.2

	wideAdvance   = 1.0
	narrowAdvance = 0.55
	boldFactor    = 1.05
)

// TextStyle describes how a text block is set.
type TextStyle struct {
	Font     string
	FontSize float64
	Bold     bool
	Color    palette.Color
	// MaxWidth wraps lines wider than this many scene units. Zero disables
	// wrapping.
	MaxWidth float64
}

type textBlock struct {
	content  string
	font     string
	bold     bool
	color    palette.Color
	em       float64
	maxWidth float64
	center   Vec
	lines    []string
}

// Text returns a text block centered at the origin.
func Text(content string, style TextStyle) *Mobject {
	em := style.FontSize * EmPerFontSize
	tb := &textBlock{
		content:  content,
		font:     style.Font,
		bold:     style.Bold,
		color:    style.Color,
		em:       em,
		maxWidth: style.MaxWidth,
	}
	tb.lines = WrapText(content, func(s string) float64 { return tb.measure(s) }, style.MaxWidth)
	return &Mobject{kind: KindText, text: tb}
}

func (tb *textBlock) measure(s string) float64 {
	w := EstimateWidth(s, tb.em)
	if tb.bold {
		w *= boldFactor
	}
	return w
}

func (tb *textBlock) size() (float64, float64) {
	var w float64
	for _, line := range tb.lines {
		if lw := tb.measure(line); lw > w {
			w = lw
		}
	}
	return w, float64(len(tb.lines)) * tb.em * LineSpacing
}

// IsWide reports runes that occupy a full em: CJK ideographs, kana, hangul,
// full-width forms and pictographs.
func IsWide(r rune) bool {
	switch {
	case unicode.Is(unicode.Han, r), unicode.Is(unicode.Hiragana, r),
		unicode.Is(unicode.Katakana, r), unicode.Is(unicode.Hangul, r):
		return true
	case r >= 0x3000 && r <= 0x303f, r >= 0xff00 && r <= 0xffef:
		return true
	case r >= 0x1f300 && r <= 0x1faff:
		return true
	}
	return false
}

// EstimateWidth approximates the set width of s in scene units for an em of
// the given size.
func EstimateWidth(s string, em float64) float64 {
	var w float64
	for _, r := range s {
		if IsWide(r) {
			w += wideAdvance
		} else {
			w += narrowAdvance
		}
	}
	return w * em
}

type token struct {
	text  string
	space bool
}

func tokenize(s string) []token {
	var (
		out     []token
		current strings.Builder
		space   bool
	)
	flush := func() {
		if current.Len() > 0 {
			out = append(out, token{text: current.String(), space: space})
			current.Reset()
			space = false
		}
	}
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			flush()
			if len(out) > 0 {
				space = true
			}
		case IsWide(r) && unicode.IsLetter(r):
			flush()
			out = append(out, token{text: string(r), space: space})
			space = false
		case IsWide(r) && current.Len() == 0 && len(out) > 0 && !space:
			// Full-width punctuation stays on the line of the preceding token.
			out[len(out)-1].text += string(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return out
}

// WrapText breaks s into lines no wider than maxWidth according to measure.
// Latin text breaks at spaces, CJK text between any two ideographs. A single
// token wider than maxWidth gets a line of its own. Explicit newlines are
// kept.
func WrapText(s string, measure func(string) float64, maxWidth float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		if maxWidth <= 0 {
			lines = append(lines, strings.TrimSpace(paragraph))
			continue
		}
		var line string
		for _, tok := range tokenize(paragraph) {
			candidate := tok.text
			if line != "" {
				if tok.space {
					candidate = line + " " + tok.text
				} else {
					candidate = line + tok.text
				}
			}
			if line != "" && measure(candidate) > maxWidth {
				lines = append(lines, line)
				line = tok.text
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}
