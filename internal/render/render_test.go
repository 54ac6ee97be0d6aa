package render_test

import (
	"context"
	"encoding/json"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"hanzireel/internal/config"
	"hanzireel/internal/encoding"
	"hanzireel/internal/episode"
	"hanzireel/internal/logging"
	"hanzireel/internal/palette"
	"hanzireel/internal/render"
	"hanzireel/internal/scene"
	"hanzireel/internal/services"
	"hanzireel/internal/testsupport"
)

// 31.5 seconds at 2 fps.
const sampleFrames = 63

func TestRunProducesOutputs(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedFFmpeg())
	store := testsupport.MustOpenHistory(t, cfg)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.MediaDir, "stale.txt"), "old run")

	var (
		mu     sync.Mutex
		stages = map[string]bool{}
	)
	r := render.New(cfg, logging.NewNop(), store, nil)
	res, err := r.Run(context.Background(), render.Options{
		OnProgress: func(p render.Progress) {
			mu.Lock()
			stages[p.Stage] = true
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Frames != sampleFrames {
		t.Fatalf("frames = %d, want %d", res.Frames, sampleFrames)
	}
	if res.Episode.Character != "茶" {
		t.Fatalf("expected sample episode, got %q", res.Episode.Character)
	}
	for _, path := range []string{res.Video, res.Poster, res.Timeline} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected output %s: %v", path, err)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.MediaDir, "stale.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected media dir to be cleared, stat err=%v", err)
	}
	if _, err := os.Stat(res.Layout.FramesDir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected frames removed after encode, stat err=%v", err)
	}
	for _, stage := range []string{render.StageCompose, render.StageFrames, render.StagePoster, render.StageEncode, render.StageComplete} {
		if !stages[stage] {
			t.Errorf("progress never reported stage %q", stage)
		}
	}

	raw, err := os.ReadFile(res.Timeline)
	if err != nil {
		t.Fatalf("read timeline: %v", err)
	}
	var doc render.TimelineDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode timeline: %v", err)
	}
	if doc.RunID != res.RunID || doc.Frames != sampleFrames || doc.Seed != 1 {
		t.Fatalf("unexpected timeline header: %+v", doc)
	}
	if len(doc.Timeline.Sections) != 6 {
		t.Fatalf("expected 6 sections, got %d", len(doc.Timeline.Sections))
	}

	run, err := store.Get(context.Background(), res.RunID)
	if err != nil || run == nil {
		t.Fatalf("history lookup failed: run=%v err=%v", run, err)
	}
	if run.Status != services.StatusSucceeded || run.Frames != sampleFrames || run.OutputPath != res.Video {
		t.Fatalf("unexpected history row: %+v", run)
	}
}

func TestRunNoVideoKeepsFrames(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Render.Poster = false
	cfg.Render.CJKFont = ""
	r := render.New(cfg, logging.NewNop(), nil, failingEncoder{t: t})

	res, err := r.Run(context.Background(), render.Options{NoVideo: true, Output: "preview", FPS: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Video != "" || res.Poster != "" {
		t.Fatalf("expected no video or poster, got %+v", res)
	}
	if !res.MissingCJKFont {
		t.Fatal("expected the result to report the missing CJK font")
	}
	entries, err := os.ReadDir(res.Layout.FramesDir)
	if err != nil {
		t.Fatalf("read frames: %v", err)
	}
	if len(entries) != res.Frames || res.Frames != 32 {
		t.Fatalf("frames on disk = %d, result = %d, want 32", len(entries), res.Frames)
	}
	if _, err := os.Stat(filepath.Join(res.Layout.FramesDir, "frame_00000.png")); err != nil {
		t.Fatalf("expected zero-based frame names: %v", err)
	}
}

func TestRunFromLesson(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lessonDir := filepath.Join(t.TempDir(), "01_wo")
	data, err := episode.Marshal(episode.SampleLesson())
	if err != nil {
		t.Fatalf("marshal lesson: %v", err)
	}
	testsupport.WriteFile(t, filepath.Join(lessonDir, episode.ConfigFileName), string(data))

	r := render.New(cfg, logging.NewNop(), nil, nil)
	res, err := r.Run(context.Background(), render.Options{Lesson: lessonDir, NoVideo: true, Seed: 42})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Episode.Character != "我" || res.Seed != 42 {
		t.Fatalf("unexpected episode or seed: %+v", res)
	}
}

func TestRunRecordsEncoderFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Render.Poster = false
	store := testsupport.MustOpenHistory(t, cfg)
	r := render.New(cfg, logging.NewNop(), store, failingEncoder{t: t, fail: true})

	res, err := r.Run(context.Background(), render.Options{FPS: 1})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	run, getErr := store.Get(context.Background(), res.RunID)
	if getErr != nil || run == nil {
		t.Fatalf("history lookup failed: run=%v err=%v", run, getErr)
	}
	if run.Status != services.StatusFailed || run.Error == "" {
		t.Fatalf("expected failed run with message, got %+v", run)
	}
	if _, statErr := os.Stat(res.Layout.FramesDir); statErr != nil {
		t.Fatalf("frames should remain after a failed encode: %v", statErr)
	}
}

func TestRunMissingLesson(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	r := render.New(cfg, logging.NewNop(), store, nil)
	res, err := r.Run(context.Background(), render.Options{Lesson: filepath.Join(t.TempDir(), "nope")})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	run, getErr := store.Get(context.Background(), res.RunID)
	if getErr != nil || run == nil {
		t.Fatalf("history lookup failed: run=%v err=%v", run, getErr)
	}
	if run.Status != services.StatusInvalid || run.Error == "" || run.Character != "" {
		t.Fatalf("expected invalid run without episode, got %+v", run)
	}
}

func TestRunInvalidInputIsRecorded(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	lessonDir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(lessonDir, episode.ConfigFileName), `{"character":"","pinyin":""}`)

	r := render.New(cfg, logging.NewNop(), store, nil)
	for _, opts := range []render.Options{{Lesson: lessonDir}, {FPS: 500}, {Output: ".."}} {
		if _, err := r.Run(context.Background(), opts); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("options %+v: expected validation error, got %v", opts, err)
		}
	}

	runs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 recorded runs, got %d", len(runs))
	}
	for _, run := range runs {
		if run.Status != services.StatusInvalid || run.FinishedAt.IsZero() {
			t.Fatalf("expected finished invalid run, got %+v", run)
		}
	}
}

func TestRunRejectsBadOverrides(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	r := render.New(cfg, logging.NewNop(), nil, nil)
	for _, opts := range []render.Options{{FPS: -1}, {FPS: 500}, {Output: ".."}} {
		if _, err := r.Run(context.Background(), opts); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("options %+v: expected validation error, got %v", opts, err)
		}
	}
}

func TestRunFailsWhileLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lock, err := render.AcquireMediaLock(cfg.LockPath())
	if err != nil {
		t.Fatalf("AcquireMediaLock: %v", err)
	}
	defer lock.Release()

	r := render.New(cfg, logging.NewNop(), nil, nil)
	if _, err := r.Run(context.Background(), render.Options{NoVideo: true}); !errors.Is(err, services.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := render.New(cfg, logging.NewNop(), nil, nil)
	if _, err := r.Run(ctx, render.Options{NoVideo: true}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMediaLockExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "render.lock")
	first, err := render.AcquireMediaLock(path)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if _, err := render.AcquireMediaLock(path); !errors.Is(err, services.ErrBusy) {
		t.Fatalf("second acquire should be busy, got %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	again, err := render.AcquireMediaLock(path)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	_ = again.Release()
}

func TestPrepareSeedFallback(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Render.Seed = 7
	plan, err := render.Prepare(cfg, "", 0)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if plan.Seed != 7 {
		t.Fatalf("seed = %d, want config seed 7", plan.Seed)
	}
	plan, err = render.Prepare(cfg, "", 99)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if plan.Seed != 99 {
		t.Fatalf("seed = %d, want flag seed 99", plan.Seed)
	}
	if plan.Background != palette.MustColor(episode.DefaultBackground) {
		t.Fatalf("unexpected background %v", plan.Background)
	}
}

func TestPrepareRejectsEmptyPaletteOverride(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Palettes.Ghibli = []string{"not-a-color"}
	if _, err := render.Prepare(cfg, "", 1); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestPosterTime(t *testing.T) {
	tl := scene.Timeline{
		Duration: 31.5,
		Sections: []scene.SectionSummary{{Name: "background"}, {Name: "word_explanation", Start: 13.5}},
	}
	if got := render.PosterTime(tl); got != 15 {
		t.Fatalf("PosterTime = %v, want 15", got)
	}
	if got := render.PosterTime(scene.Timeline{Duration: 4}); got != 2 {
		t.Fatalf("PosterTime without sections = %v, want 2", got)
	}
}

func TestRenderStillFillsShapes(t *testing.T) {
	fonts, err := render.LoadFonts(config.Render{})
	if err != nil {
		t.Fatalf("LoadFonts: %v", err)
	}
	bg := palette.MustColor("#f9f5f0")
	red := palette.MustColor("#ff0000")
	square := scene.Square(2, scene.Filled(red, 1))
	src := staticSource{{
		Kind:        scene.KindRectangle,
		Points:      square.Points(),
		Closed:      true,
		Fill:        red,
		FillOpacity: 1,
	}}

	img, err := render.RenderStill(src, 0, scene.DefaultFrame, 90, 160, bg, fonts)
	if err != nil {
		t.Fatalf("RenderStill: %v", err)
	}
	if got := img.RGBAAt(45, 80); !near(got, color.RGBA{R: 255, A: 255}) {
		t.Fatalf("center pixel = %v, want opaque red", got)
	}
	if got := img.RGBAAt(2, 2); !near(got, color.RGBA{R: 0xf9, G: 0xf5, B: 0xf0, A: 255}) {
		t.Fatalf("corner pixel = %v, want background", got)
	}
}

func TestRenderStillClipsOffscreenShapes(t *testing.T) {
	fonts, err := render.LoadFonts(config.Render{})
	if err != nil {
		t.Fatalf("LoadFonts: %v", err)
	}
	blue := palette.MustColor("#0000ff")
	huge := scene.Rectangle(40, 40, scene.Filled(blue, 1))
	src := staticSource{{Kind: scene.KindRectangle, Points: huge.Points(), Closed: true, Fill: blue, FillOpacity: 1}}

	img, err := render.RenderStill(src, 0, scene.DefaultFrame, 18, 32, palette.White, fonts)
	if err != nil {
		t.Fatalf("RenderStill: %v", err)
	}
	for _, p := range [][2]int{{0, 0}, {17, 31}, {9, 16}} {
		if got := img.RGBAAt(p[0], p[1]); !near(got, color.RGBA{B: 255, A: 255}) {
			t.Fatalf("pixel %v = %v, want blue", p, got)
		}
	}
}

func TestRenderStillDrawsTextAndStrokes(t *testing.T) {
	fonts, err := render.LoadFonts(config.Render{})
	if err != nil {
		t.Fatalf("LoadFonts: %v", err)
	}
	black := palette.Black
	cases := map[string]staticSource{
		"text": {{
			Kind: scene.KindText,
			Text: &scene.TextDrawable{Lines: []string{"HW"}, Em: 2, Color: black, Opacity: 1, Visible: 2},
		}},
		"stroke": {{
			Kind:          scene.KindArc,
			Points:        []scene.Vec{{X: -3, Y: 0}, {X: 3, Y: 0}},
			Stroke:        black,
			StrokeOpacity: 1,
			StrokeWidth:   0.3,
		}},
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			img, err := render.RenderStill(src, 0, scene.DefaultFrame, 90, 160, palette.White, fonts)
			if err != nil {
				t.Fatalf("RenderStill: %v", err)
			}
			dark := 0
			for y := 0; y < 160; y++ {
				for x := 0; x < 90; x++ {
					if img.RGBAAt(x, y).R < 128 {
						dark++
					}
				}
			}
			if dark == 0 {
				t.Fatal("expected some dark pixels")
			}
		})
	}
}

func TestLoadFontsRejectsMissingCJKFont(t *testing.T) {
	_, err := render.LoadFonts(config.Render{CJKFont: filepath.Join(t.TempDir(), "missing.ttc")})
	if err == nil {
		t.Fatal("expected error for missing font file")
	}
}

func near(a, b color.RGBA) bool {
	diff := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return diff(a.R, b.R) <= 2 && diff(a.G, b.G) <= 2 && diff(a.B, b.B) <= 2 && diff(a.A, b.A) <= 2
}

type staticSource []scene.Drawable

func (s staticSource) Snapshot(float64) []scene.Drawable { return s }

type failingEncoder struct {
	t    *testing.T
	fail bool
}

func (f failingEncoder) Encode(_ context.Context, job encoding.Job) error {
	if !f.fail {
		f.t.Fatalf("encoder should not run, got job %+v", job)
	}
	return services.Wrap(services.ErrExternalTool, "encoder", "ffmpeg", "boom", nil)
}

var _ encoding.Encoder = failingEncoder{}
