package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"hanzireel/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Frames default to a tiny 36x64 canvas at 2 fps so render tests stay fast.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.MediaDir = filepath.Join(base, "media")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Render.PixelWidth = 36
	cfgVal.Render.PixelHeight = 64
	cfgVal.Render.FPS = 2
	cfgVal.Render.Seed = 1
	cfgVal.Render.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithFPS overrides the render frame rate.
func WithFPS(fps int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Render.FPS = fps
	}
}

// WithPixelSize overrides the output resolution.
func WithPixelSize(width, height int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Render.PixelWidth = width
		b.cfg.Render.PixelHeight = height
	}
}

// WithStubbedFFmpeg writes an ffmpeg stand-in that creates its output file
// and reports completion, and points the config at it.
func WithStubbedFFmpeg() ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		target := filepath.Join(binDir, "ffmpeg")
		if err := os.WriteFile(target, []byte(stubFFmpeg), 0o755); err != nil {
			b.t.Fatalf("write stub ffmpeg: %v", err)
		}
		b.cfg.Encoding.FFmpegBinary = target
	}
}

const stubFFmpeg = `#!/bin/sh
for arg; do
  if [ "$arg" = "-version" ]; then echo "ffmpeg version stub"; exit 0; fi
done
prev=""
out=""
for arg; do
  if [ "$arg" = "-y" ]; then out="$prev"; fi
  prev="$arg"
done
[ -n "$out" ] || out="$prev"
printf 'frame=1\nprogress=end\n'
: > "$out"
`

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
