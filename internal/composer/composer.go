package composer

import (
	"fmt"
	"math/rand"

	"hanzireel/internal/episode"
	"hanzireel/internal/palette"
	"hanzireel/internal/scene"
)

// Section names in composition order.
const (
	SectionBackground = "background"
	SectionParticles  = "particles"
	SectionHook       = "hook"
	SectionWord       = "word_explanation"
	SectionFunFact    = "fun_fact"
	SectionOutro      = "outro"
)

// Options configure a Composer.
type Options struct {
	Episode episode.Episode
	// Accent colors particles and decorations.
	Accent palette.Palette
	// Sky colors the backdrop and mountains.
	Sky   palette.Palette
	Seed  int64
	Frame scene.Frame
}

// Composer turns an episode into an animated scene.
type Composer struct {
	opts Options
	text palette.Color
	rng  *rand.Rand
}

type section struct {
	name  string
	build func(*scene.Scene) error
}

// New validates options and returns a Composer.
func New(opts Options) (*Composer, error) {
	if err := opts.Accent.Validate(); err != nil {
		return nil, fmt.Errorf("accent palette: %w", err)
	}
	if err := opts.Sky.Validate(); err != nil {
		return nil, fmt.Errorf("sky palette: %w", err)
	}
	if opts.Frame.Width <= 0 || opts.Frame.Height <= 0 {
		opts.Frame = scene.DefaultFrame
	}
	textColor := palette.MustColor(episode.DefaultTextColor)
	if opts.Episode.TextColor != "" {
		c, err := palette.ParseColor(opts.Episode.TextColor)
		if err != nil {
			return nil, fmt.Errorf("episode text color: %w", err)
		}
		textColor = c
	}
	return &Composer{opts: opts, text: textColor}, nil
}

// Sections lists section names in the order Compose builds them.
func Sections() []string {
	return []string{SectionBackground, SectionParticles, SectionHook, SectionWord, SectionFunFact, SectionOutro}
}

func (c *Composer) sections() []section {
	return []section{
		{name: SectionBackground, build: c.background},
		{name: SectionParticles, build: c.particles},
		{name: SectionHook, build: c.hook},
		{name: SectionWord, build: c.wordExplanation},
		{name: SectionFunFact, build: c.funFact},
		{name: SectionOutro, build: c.outro},
	}
}

// Compose builds a new scene. Each call reseeds the random source, so
// repeated calls return identical scenes.
func (c *Composer) Compose() (*scene.Scene, error) {
	c.rng = rand.New(rand.NewSource(c.opts.Seed))
	s := scene.New(c.opts.Frame)
	for _, sec := range c.sections() {
		s.BeginSection(sec.name)
		if err := sec.build(s); err != nil {
			return nil, fmt.Errorf("compose %s: %w", sec.name, err)
		}
	}
	return s, nil
}

// Plan composes the scene and returns its timeline without rendering.
func (c *Composer) Plan() (scene.Timeline, error) {
	s, err := c.Compose()
	if err != nil {
		return scene.Timeline{}, err
	}
	return s.Timeline(), nil
}

// Seed returns the seed used for random draws.
func (c *Composer) Seed() int64 { return c.opts.Seed }

func (c *Composer) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*c.rng.Float64()
}

func (c *Composer) accent() palette.Color {
	return c.opts.Accent.Pick(c.rng)
}

func play(s *scene.Scene, runTime float64, anims ...scene.Animation) error {
	return s.Play(scene.PlayOptions{RunTime: runTime}, anims...)
}
