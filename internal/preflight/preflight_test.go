package preflight

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hanzireel/internal/config"
	"hanzireel/internal/render"
	"hanzireel/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckMediaDir_Missing(t *testing.T) {
	result := CheckMediaDir(filepath.Join(t.TempDir(), "a", "b", "media"))
	if !result.Passed {
		t.Fatalf("missing media dir under a writable parent should pass, got: %s", result.Detail)
	}
}

func TestCheckCJKFont(t *testing.T) {
	if result := CheckCJKFont(config.Render{}); result.Passed {
		t.Fatal("expected failure without a configured CJK font")
	}
	bogus := filepath.Join(t.TempDir(), "bogus.ttf")
	if err := os.WriteFile(bogus, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckCJKFont(config.Render{CJKFont: bogus}); result.Passed {
		t.Fatal("expected failure for an unparsable font")
	}
}

func TestCheckLatinFonts_Embedded(t *testing.T) {
	result := CheckLatinFonts(config.Render{})
	if !result.Passed || result.Detail != "embedded Go fonts" {
		t.Fatalf("expected embedded fonts to pass, got %+v", result)
	}
}

func TestCheckRenderLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.lock")
	if result := CheckRenderLock(path); !result.Passed {
		t.Fatalf("expected idle lock, got %+v", result)
	}

	held, err := render.AcquireMediaLock(path)
	if err != nil {
		t.Fatalf("AcquireMediaLock: %v", err)
	}
	defer held.Release()

	result := CheckRenderLock(path)
	if result.Passed || !result.Optional {
		t.Fatalf("held lock should be an optional failure, got %+v", result)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_StubbedConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedFFmpeg())
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	cfg.Render.CJKFont = ""

	results := RunAll(context.Background(), cfg)
	if len(results) != 7 {
		t.Fatalf("expected 7 results, got %d", len(results))
	}
	byName := map[string]Result{}
	for _, r := range results {
		byName[r.Name] = r
	}
	for _, name := range []string{"Media directory", "State directory", "Log directory", "Latin fonts", "Render lock"} {
		if !byName[name].Passed {
			t.Errorf("check %q failed: %s", name, byName[name].Detail)
		}
	}
	if byName["CJK font"].Passed {
		t.Error("CJK font check should fail without a font")
	}
	if !Failed(results) {
		t.Error("Failed should report the missing CJK font")
	}
}
