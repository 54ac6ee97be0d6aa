package composer_test

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hanzireel/internal/composer"
	"hanzireel/internal/episode"
	"hanzireel/internal/palette"
	"hanzireel/internal/scene"
)

func newComposer(t *testing.T, seed int64) *composer.Composer {
	t.Helper()
	c, err := composer.New(composer.Options{
		Episode: episode.Sample(),
		Accent:  palette.Kurzgesagt(),
		Sky:     palette.Ghibli(),
		Seed:    seed,
		Frame:   scene.DefaultFrame,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestSectionsInOrder(t *testing.T) {
	want := []string{"background", "particles", "hook", "word_explanation", "fun_fact", "outro"}
	if diff := cmp.Diff(want, composer.Sections()); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
	tl, err := newComposer(t, 1).Plan()
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	var got []string
	for _, s := range tl.Sections {
		got = append(got, s.Name)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("timeline sections mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanDurations(t *testing.T) {
	tl, err := newComposer(t, 42).Plan()
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	want := map[string]struct {
		duration float64
		steps    int
	}{
		"background":       {0, 0},
		"particles":        {8, 1},
		"hook":             {5.5, 5},
		"word_explanation": {8.8, 6},
		"fun_fact":         {5, 3},
		"outro":            {4.2, 3},
	}
	for _, s := range tl.Sections {
		w := want[s.Name]
		if math.Abs(s.Duration-w.duration) > 1e-9 || s.Steps != w.steps {
			t.Fatalf("section %s: got duration %v steps %d, want %v/%d", s.Name, s.Duration, s.Steps, w.duration, w.steps)
		}
	}
	if math.Abs(tl.Duration-31.5) > 1e-9 {
		t.Fatalf("expected 31.5s total, got %v", tl.Duration)
	}
	particles := tl.Steps[0]
	if len(particles.Animations) != 40 {
		t.Fatalf("expected 40 particle animations, got %d", len(particles.Animations))
	}
	for _, a := range particles.Animations {
		if a.Duration != 8 || a.Rate != "ease_in_out_sine" {
			t.Fatalf("particle animation not overridden: %+v", a)
		}
	}
	outroIn := tl.Steps[len(tl.Steps)-3]
	if outroIn.Animations[0].Rate != "ease_out_elastic" {
		t.Fatalf("expected elastic outro entrance, got %+v", outroIn.Animations[0])
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	c := newComposer(t, 7)
	first, err := c.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	second, err := newComposer(t, 7).Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	for _, ts := range []float64{0, 4, 12.3, 20, 31} {
		if diff := cmp.Diff(first.Snapshot(ts), second.Snapshot(ts)); diff != "" {
			t.Fatalf("snapshots differ at %v:\n%s", ts, diff)
		}
	}
	again, err := c.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if diff := cmp.Diff(first.Snapshot(3), again.Snapshot(3)); diff != "" {
		t.Fatalf("recomposing changed the scene:\n%s", diff)
	}
	other, err := newComposer(t, 8).Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if cmp.Equal(first.Snapshot(0), other.Snapshot(0)) {
		t.Fatal("expected different seeds to produce different backgrounds")
	}
}

func TestStaticBackgroundAlwaysVisible(t *testing.T) {
	s, err := newComposer(t, 3).Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	for _, ts := range []float64{0, 15, 31.4} {
		frame := s.Snapshot(ts)
		// sky + 15 clouds + 3 mountains + 40 particles
		if len(frame) < 59 {
			t.Fatalf("expected background and particles at %v, got %d drawables", ts, len(frame))
		}
		sky := frame[0]
		if sky.Kind != scene.KindRectangle || sky.Fill != palette.Ghibli().At(0) {
			t.Fatalf("expected sky first at %v, got %+v", ts, sky)
		}
	}
}

func TestHookTextIsOnScreen(t *testing.T) {
	s, err := newComposer(t, 5).Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	var texts []*scene.TextDrawable
	for _, d := range s.Snapshot(12) {
		if d.Text != nil {
			texts = append(texts, d.Text)
		}
	}
	if len(texts) != 2 {
		t.Fatalf("expected both hook lines during the hook hold, got %d", len(texts))
	}
	frame := scene.DefaultFrame
	for _, txt := range texts {
		if txt.Center.Y > frame.Height/2 || txt.Center.Y < 0 {
			t.Fatalf("hook line outside upper half: %+v", txt.Center)
		}
		for _, line := range txt.Lines {
			if w := scene.EstimateWidth(line, txt.Em); w > frame.Width {
				t.Fatalf("hook line %q wider than frame: %v", line, w)
			}
		}
	}
}

func TestComposeUsesEpisodeContent(t *testing.T) {
	ep := episode.SampleLesson().Episode(3)
	c, err := composer.New(composer.Options{
		Episode: ep,
		Accent:  palette.Kurzgesagt(),
		Sky:     palette.Ghibli(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s, err := c.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	found := false
	// Lantern is fully visible after its fade in, 1s into the word section.
	for _, d := range s.Snapshot(13.5 + 1.5) {
		if d.Text != nil && len(d.Text.Lines) == 1 && d.Text.Lines[0] == "我" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected lesson character on the lantern")
	}
}

func TestNewRejectsEmptyPalettes(t *testing.T) {
	_, err := composer.New(composer.Options{Episode: episode.Sample(), Accent: palette.Palette{Name: "none"}, Sky: palette.Ghibli()})
	if !errors.Is(err, palette.ErrEmptyPalette) {
		t.Fatalf("expected ErrEmptyPalette for accent, got %v", err)
	}
	_, err = composer.New(composer.Options{Episode: episode.Sample(), Accent: palette.Ghibli(), Sky: palette.Palette{}})
	if !errors.Is(err, palette.ErrEmptyPalette) {
		t.Fatalf("expected ErrEmptyPalette for sky, got %v", err)
	}
	ep := episode.Sample()
	ep.TextColor = "blue"
	if _, err := composer.New(composer.Options{Episode: ep, Accent: palette.Ghibli(), Sky: palette.Ghibli()}); err == nil {
		t.Fatal("expected error for invalid text color")
	}
}

func randomPalette(t *testing.T, rng *rand.Rand, n int) palette.Palette {
	t.Helper()
	hex := make([]string, n)
	for i := range hex {
		hex[i] = fmt.Sprintf("#%06x", rng.Intn(1<<24))
	}
	p, err := palette.New("random", hex...)
	if err != nil {
		t.Fatalf("palette.New: %v", err)
	}
	return p
}

func TestAnyPaletteAndSeedComposes(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	seeds := []int64{0, 1, -1, math.MaxInt64, math.MinInt64, 123456789}
	for _, n := range []int{1, 2, 3, 9, 20} {
		for _, seed := range seeds {
			t.Run(fmt.Sprintf("len%d/seed%d", n, seed), func(t *testing.T) {
				c, err := composer.New(composer.Options{
					Episode: episode.Sample(),
					Accent:  randomPalette(t, rng, n),
					Sky:     randomPalette(t, rng, n),
					Seed:    seed,
				})
				if err != nil {
					t.Fatalf("New: %v", err)
				}
				s, err := c.Compose()
				if err != nil {
					t.Fatalf("Compose: %v", err)
				}
				for i := 0; i < s.FrameCount(2); i++ {
					s.Snapshot(scene.FrameTime(i, 2))
				}
			})
		}
	}
}
