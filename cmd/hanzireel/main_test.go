package main

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hanzireel/internal/scene"
)

func TestRootHelp(t *testing.T) {
	stdout, _, err := runCLI(t, []string{"--help"}, "")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	requireContains(t, stdout, "render", "scaffold", "lesson", "history", "doctor")
}

func TestScaffoldCommand(t *testing.T) {
	dir := t.TempDir()
	stdout, _, err := runCLI(t, []string{"scaffold", "--dir", dir}, "")
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	requireContains(t, stdout, "chinese_lessons/01_wo/config.json", "written", "11 written")
	if _, err := os.Stat(filepath.Join(dir, "render.py")); err != nil {
		t.Fatalf("render.py missing: %v", err)
	}

	stdout, _, err = runCLI(t, []string{"scaffold", "--dir", dir}, "")
	if err != nil {
		t.Fatalf("second scaffold: %v", err)
	}
	requireContains(t, stdout, "11 overwritten")
}

func TestScaffoldDryRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")
	stdout, _, err := runCLI(t, []string{"scaffold", "--dir", dir, "--dry-run"}, "")
	if err != nil {
		t.Fatalf("scaffold --dry-run: %v", err)
	}
	requireContains(t, stdout, "chinese_lessons/utils/base_scene.py", "json")
	if _, err := os.Stat(dir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("dry run must not create %s", dir)
	}
}

func TestLessonAddAndShow(t *testing.T) {
	root := t.TempDir()
	_, _, err := runCLI(t, []string{
		"lesson", "add", "03_ni", "--root", root,
		"--character", "你", "--pinyin", "nǐ", "--translation", "you", "--day", "3",
	}, "")
	if err != nil {
		t.Fatalf("lesson add: %v", err)
	}

	stdout, _, err := runCLI(t, []string{"lesson", "show", filepath.Join(root, "03_ni")}, "")
	if err != nil {
		t.Fatalf("lesson show: %v", err)
	}
	requireContains(t, stdout, `"character": "你"`, "Day 3", "ghibli")
}

func TestLessonAddRequiresCharacter(t *testing.T) {
	_, _, err := runCLI(t, []string{"lesson", "add", "03_ni", "--root", t.TempDir(), "--pinyin", "nǐ"}, "")
	if err == nil {
		t.Fatal("expected missing --character to fail")
	}
}

func TestLessonAddRejectsUnknownStyle(t *testing.T) {
	root := t.TempDir()
	_, _, err := runCLI(t, []string{"lesson", "add", "03_ni", "--root", root, "--character", "你", "--pinyin", "nǐ", "--style", "cyberpunk"}, "")
	if err == nil || !strings.Contains(err.Error(), "cyberpunk") {
		t.Fatalf("expected unknown style to fail, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(root, "03_ni")); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("rejected lesson must not be created, stat err=%v", statErr)
	}
}

func TestLessonSchema(t *testing.T) {
	stdout, _, err := runCLI(t, []string{"lesson", "schema"}, "")
	if err != nil {
		t.Fatalf("lesson schema: %v", err)
	}
	var schema map[string]any
	if err := json.Unmarshal([]byte(stdout), &schema); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok || props["character"] == nil || props["example_sentence"] == nil {
		t.Fatalf("schema missing lesson properties: %v", schema["properties"])
	}
}

func TestPlanCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	stdout, _, err := runCLI(t, []string{"plan", "--seed", "3", "--steps"}, env.configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, stdout, "茶", "seed 3", "word_explanation", "outro", "31.5s", "fade_in")
}

func TestPlanJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	stdout, _, err := runCLI(t, []string{"plan", "--seed", "3", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("plan --json: %v", err)
	}
	var tl scene.Timeline
	if err := json.Unmarshal([]byte(stdout), &tl); err != nil {
		t.Fatalf("decode timeline: %v", err)
	}
	if math.Abs(tl.Duration-31.5) > 1e-9 || len(tl.Sections) != 6 {
		t.Fatalf("unexpected timeline: duration=%v sections=%d", tl.Duration, len(tl.Sections))
	}
}

func TestRenderAndHistory(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, stderr, err := runCLI(t, []string{"render", "--fps", "1", "--output", "clip"}, env.configPath)
	if err != nil {
		t.Fatalf("render: %v\nstderr: %s", err, stderr)
	}
	requireContains(t, stdout, "Video:", filepath.Join("videos", "clip.mp4"), "Poster:")
	requireContains(t, stderr, "Rendering frame")
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.MediaDir, "videos", "clip.mp4")); err != nil {
		t.Fatalf("video missing: %v", err)
	}

	stdout, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, stdout, "茶", "succeeded", "32")
}

func TestHistoryEmpty(t *testing.T) {
	env := setupCLITestEnv(t)
	stdout, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, stdout, "No renders recorded yet")
}

func TestRenderMissingLesson(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"render", "--lesson", filepath.Join(env.baseDir, "missing")}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDoctorCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	stdout, _, _ := runCLI(t, []string{"doctor"}, env.configPath)
	requireContains(t, stdout, "Environment", "FFmpeg:", "ffmpeg version stub", "Render lock:")
}

func TestConfigCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, stdout, env.configPath, "Configuration valid")

	stdout, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, stdout, "[render]", "pixel_width = 36")

	target := filepath.Join(env.baseDir, "new", "config.toml")
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
	if _, _, err := runCLI(t, []string{"config", "validate"}, target); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[render]\nfps = 0\nunknown_key = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, []string{"plan"}, path); err == nil {
		t.Fatal("expected invalid config to fail")
	}
}
