package episode_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hanzireel/internal/episode"
)

func TestSampleEpisode(t *testing.T) {
	ep := episode.Sample()
	want := episode.Episode{
		Day:         1,
		Character:   "茶",
		Pinyin:      "chá",
		Translation: "tea",
		HookLine1:   "🔥 1 Chinese word a day until we're fluent — Day 1",
		HookLine2:   "You already know this word — even if you've never studied Chinese.",
		FunFact:     "Tea culture dates back over 2,000 years in China.",
		Background:  "#f9f5f0",
		TextColor:   "#1d3557",
		Style:       "ghibli",
	}
	if diff := cmp.Diff(want, ep); diff != "" {
		t.Fatalf("sample episode mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalSampleLesson(t *testing.T) {
	data, err := episode.Marshal(episode.SampleLesson())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "{\n    \"character\": \"我\",\n    \"pinyin\": \"wǒ\",") {
		t.Fatalf("unexpected prefix:\n%s", text)
	}
	if strings.HasSuffix(text, "\n") {
		t.Fatal("expected no trailing newline")
	}
	if strings.Contains(text, "\\u") {
		t.Fatalf("expected unescaped unicode, got:\n%s", text)
	}
	for _, key := range []string{"day", "fun_fact"} {
		if strings.Contains(text, "\""+key+"\"") {
			t.Fatalf("optional key %q should be omitted", key)
		}
	}
	order := []string{"\"character\"", "\"pinyin\"", "\"translation\"", "\"example_sentence\"", "\"colors\"", "\"style\""}
	last := -1
	for _, key := range order {
		idx := strings.Index(text, key)
		if idx <= last {
			t.Fatalf("key %s out of order in:\n%s", key, text)
		}
		last = idx
	}
}

func TestLoadLessonFromDirectory(t *testing.T) {
	dir := t.TempDir()
	data, err := episode.Marshal(episode.SampleLesson())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, episode.ConfigFileName), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	lesson, err := episode.LoadLesson(dir)
	if err != nil {
		t.Fatalf("LoadLesson: %v", err)
	}
	if diff := cmp.Diff(episode.SampleLesson(), lesson); diff != "" {
		t.Fatalf("lesson mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLessonNormalizesText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lesson.json")
	// "wǒ" with a decomposed combining caron.
	raw := `{"character":" 爱 ","pinyin":"wo` + "\u030c" + `","translation":"love","colors":{},"style":" Kurzgesagt "}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	lesson, err := episode.LoadLesson(path)
	if err != nil {
		t.Fatalf("LoadLesson: %v", err)
	}
	if lesson.Character != "爱" {
		t.Fatalf("expected trimmed character, got %q", lesson.Character)
	}
	if lesson.Pinyin != "w\u01d2" {
		t.Fatalf("expected NFC pinyin, got %q", lesson.Pinyin)
	}
	if lesson.Style != "kurzgesagt" {
		t.Fatalf("expected lowercase style, got %q", lesson.Style)
	}
	if lesson.Colors.Background != episode.DefaultBackground || lesson.Colors.Text != episode.DefaultTextColor {
		t.Fatalf("expected default colors, got %+v", lesson.Colors)
	}
}

func TestLoadLessonRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{"},
		{name: "missing character", raw: `{"pinyin":"wǒ"}`},
		{name: "bad color", raw: `{"character":"我","pinyin":"wǒ","colors":{"background":"red"}}`},
		{name: "unknown style", raw: `{"character":"我","pinyin":"wǒ","style":"cyberpunk"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.raw), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, err := episode.LoadLesson(path)
			if !errors.Is(err, episode.ErrInvalidLesson) {
				t.Fatalf("expected ErrInvalidLesson, got %v", err)
			}
		})
	}
}

func TestLoadLessonMissing(t *testing.T) {
	_, err := episode.LoadLesson(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLessonEpisode(t *testing.T) {
	lesson := episode.SampleLesson()
	ep := lesson.Episode(4)
	if ep.Day != 4 || ep.HookLine1 != "🔥 1 Chinese word a day until we're fluent — Day 4" {
		t.Fatalf("unexpected day/hook: %+v", ep)
	}
	if ep.Character != "我" || ep.Pinyin != "wǒ" || ep.Translation != "I, me" {
		t.Fatalf("unexpected word fields: %+v", ep)
	}
	if ep.FunFact != `我是学生。 (Wǒ shì xuéshēng.) means "I am a student."` {
		t.Fatalf("unexpected fun fact fallback: %q", ep.FunFact)
	}

	lesson.Day = 9
	lesson.FunFact = "我 is one of the most common characters."
	ep = lesson.Episode(4)
	if ep.Day != 9 || ep.FunFact != lesson.FunFact {
		t.Fatalf("expected lesson day and fact to win: %+v", ep)
	}
	if got := (episode.LessonConfig{Character: "人"}).Episode(0).Day; got != 1 {
		t.Fatalf("expected day fallback of 1, got %d", got)
	}
}

func TestSchemaDescribesLesson(t *testing.T) {
	data, err := episode.SchemaJSON()
	if err != nil {
		t.Fatalf("SchemaJSON: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	props, ok := doc["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties: %s", data)
	}
	for _, key := range []string{"character", "pinyin", "translation", "example_sentence", "colors", "style", "day", "fun_fact"} {
		if _, ok := props[key]; !ok {
			t.Fatalf("schema missing property %q", key)
		}
	}
	style, _ := props["style"].(map[string]any)
	enum, _ := style["enum"].([]any)
	if len(enum) != len(episode.Styles) {
		t.Fatalf("style enum %v does not match accepted styles %v", enum, episode.Styles)
	}
	for i, v := range enum {
		if v != episode.Styles[i] {
			t.Fatalf("style enum %v does not match accepted styles %v", enum, episode.Styles)
		}
		lesson := episode.SampleLesson()
		lesson.Style = episode.Styles[i]
		if err := lesson.Validate(); err != nil {
			t.Fatalf("schema style %q rejected: %v", lesson.Style, err)
		}
	}
	required, _ := doc["required"].([]any)
	for _, r := range required {
		if r == "day" || r == "fun_fact" {
			t.Fatalf("optional field %v listed as required", r)
		}
	}
}
