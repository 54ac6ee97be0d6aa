package episode

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ConfigFileName is the lesson config file inside a lesson directory.
const ConfigFileName = "config.json"

// ExampleSentence is a usage example for the lesson character.
type ExampleSentence struct {
	Chinese string `json:"chinese" jsonschema_description:"Example sentence in simplified Chinese"`
	Pinyin  string `json:"pinyin" jsonschema_description:"Pinyin transcription of the example sentence"`
	English string `json:"english" jsonschema_description:"English translation of the example sentence"`
}

// Colors are the lesson's base colors.
type Colors struct {
	Background string `json:"background" jsonschema:"pattern=^#[0-9a-fA-F]{6}$"`
	Text       string `json:"text" jsonschema:"pattern=^#[0-9a-fA-F]{6}$"`
}

// LessonConfig is the JSON document stored in each lesson folder. Field order
// matches the written key order.
type LessonConfig struct {
	Character       string          `json:"character" jsonschema:"minLength=1" jsonschema_description:"The Chinese character taught by the lesson"`
	Pinyin          string          `json:"pinyin" jsonschema:"minLength=1"`
	Translation     string          `json:"translation"`
	ExampleSentence ExampleSentence `json:"example_sentence"`
	Colors          Colors          `json:"colors"`
	Style           string          `json:"style" jsonschema:"enum=ghibli,enum=kurzgesagt"`
	Day             int             `json:"day,omitempty" jsonschema:"minimum=1"`
	FunFact         string          `json:"fun_fact,omitempty"`
}

// SampleLesson returns the lesson written into 01_wo.
func SampleLesson() LessonConfig {
	return LessonConfig{
		Character:   "我",
		Pinyin:      "wǒ",
		Translation: "I, me",
		ExampleSentence: ExampleSentence{
			Chinese: "我是学生。",
			Pinyin:  "Wǒ shì xuéshēng.",
			English: "I am a student.",
		},
		Colors: Colors{
			Background: DefaultBackground,
			Text:       DefaultTextColor,
		},
		Style: DefaultStyle,
	}
}

// ErrInvalidLesson marks lesson content that fails validation.
var ErrInvalidLesson = errors.New("invalid lesson")

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Normalize trims and NFC-normalizes every text field and fills default
// colors and style.
func (l *LessonConfig) Normalize() {
	clean := func(s string) string {
		return norm.NFC.String(strings.TrimSpace(s))
	}
	l.Character = clean(l.Character)
	l.Pinyin = clean(l.Pinyin)
	l.Translation = clean(l.Translation)
	l.ExampleSentence.Chinese = clean(l.ExampleSentence.Chinese)
	l.ExampleSentence.Pinyin = clean(l.ExampleSentence.Pinyin)
	l.ExampleSentence.English = clean(l.ExampleSentence.English)
	l.FunFact = clean(l.FunFact)
	l.Colors.Background = strings.TrimSpace(l.Colors.Background)
	l.Colors.Text = strings.TrimSpace(l.Colors.Text)
	l.Style = strings.ToLower(strings.TrimSpace(l.Style))
	if l.Colors.Background == "" {
		l.Colors.Background = DefaultBackground
	}
	if l.Colors.Text == "" {
		l.Colors.Text = DefaultTextColor
	}
	if l.Style == "" {
		l.Style = DefaultStyle
	}
}

// Validate reports missing required fields, malformed colors and unknown
// styles. Call Normalize first.
func (l LessonConfig) Validate() error {
	var problems []string
	if l.Character == "" {
		problems = append(problems, "character is required")
	}
	if l.Pinyin == "" {
		problems = append(problems, "pinyin is required")
	}
	if !hexColorPattern.MatchString(l.Colors.Background) {
		problems = append(problems, fmt.Sprintf("colors.background %q is not #rrggbb", l.Colors.Background))
	}
	if !hexColorPattern.MatchString(l.Colors.Text) {
		problems = append(problems, fmt.Sprintf("colors.text %q is not #rrggbb", l.Colors.Text))
	}
	if !slices.Contains(Styles, l.Style) {
		problems = append(problems, fmt.Sprintf("style %q must be one of %s", l.Style, strings.Join(Styles, ", ")))
	}
	if l.Day < 0 {
		problems = append(problems, "day must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidLesson, strings.Join(problems, "; "))
	}
	return nil
}

// Episode derives the video content for the lesson. A day stored in the
// lesson wins over the argument.
func (l LessonConfig) Episode(day int) Episode {
	if l.Day > 0 {
		day = l.Day
	}
	if day <= 0 {
		day = 1
	}
	fact := l.FunFact
	if fact == "" {
		fact = exampleFact(l.ExampleSentence)
	}
	return Episode{
		Day:         day,
		Character:   l.Character,
		Pinyin:      l.Pinyin,
		Translation: l.Translation,
		HookLine1:   HookLine(day),
		HookLine2:   defaultHookLine2,
		FunFact:     fact,
		Background:  l.Colors.Background,
		TextColor:   l.Colors.Text,
		Style:       l.Style,
	}
}

func exampleFact(s ExampleSentence) string {
	switch {
	case s.Chinese == "":
		return ""
	case s.Pinyin == "" && s.English == "":
		return s.Chinese
	case s.English == "":
		return fmt.Sprintf("%s (%s)", s.Chinese, s.Pinyin)
	case s.Pinyin == "":
		return fmt.Sprintf("%s means \"%s\"", s.Chinese, s.English)
	default:
		return fmt.Sprintf("%s (%s) means \"%s\"", s.Chinese, s.Pinyin, s.English)
	}
}

// LoadLesson reads a lesson from a config file or a lesson directory.
func LoadLesson(path string) (LessonConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		return LessonConfig{}, fmt.Errorf("stat lesson: %w", err)
	}
	if info.IsDir() {
		path = filepath.Join(path, ConfigFileName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return LessonConfig{}, fmt.Errorf("read lesson: %w", err)
	}
	var lesson LessonConfig
	if err := json.Unmarshal(data, &lesson); err != nil {
		return LessonConfig{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidLesson, path, err)
	}
	lesson.Normalize()
	if err := lesson.Validate(); err != nil {
		return LessonConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return lesson, nil
}

// Marshal encodes the lesson with 4-space indentation, keeping non-ASCII
// characters unescaped. The output has no trailing newline.
func Marshal(l LessonConfig) ([]byte, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(l); err != nil {
		return nil, fmt.Errorf("encode lesson: %w", err)
	}
	return []byte(strings.TrimSuffix(b.String(), "\n")), nil
}
