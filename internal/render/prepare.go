package render

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"hanzireel/internal/composer"
	"hanzireel/internal/config"
	"hanzireel/internal/episode"
	"hanzireel/internal/palette"
	"hanzireel/internal/scene"
	"hanzireel/internal/services"
)

// Plan is everything needed to compose a scene, resolved from config and
// command-line overrides.
type Plan struct {
	Episode    episode.Episode
	Seed       int64
	Frame      scene.Frame
	Background palette.Color
	Composer   *composer.Composer
}

// Prepare resolves the episode, palettes and seed. An empty lessonPath uses
// the built-in sample episode. A zero seed falls back to render.seed and then
// to the current time.
func Prepare(cfg *config.Config, lessonPath string, seed int64) (*Plan, error) {
	ep, err := resolveEpisode(lessonPath)
	if err != nil {
		return nil, err
	}
	seed = resolveSeed(seed, cfg.Render.Seed)

	accent, err := palette.Resolve("kurzgesagt", cfg.Palettes.Kurzgesagt, palette.Kurzgesagt())
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "render", "palette", "palettes.kurzgesagt", err)
	}
	sky, err := palette.Resolve("ghibli", cfg.Palettes.Ghibli, palette.Ghibli())
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "render", "palette", "palettes.ghibli", err)
	}

	background := cfg.Render.Background
	if strings.TrimSpace(ep.Background) != "" {
		background = ep.Background
	}
	bg, err := palette.ParseColor(background)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "render", "background", "", err)
	}

	frame := scene.Frame{Width: cfg.Render.FrameWidth, Height: cfg.Render.FrameHeight}
	comp, err := composer.New(composer.Options{
		Episode: ep,
		Accent:  accent,
		Sky:     sky,
		Seed:    seed,
		Frame:   frame,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "render", "composer", "", err)
	}
	return &Plan{Episode: ep, Seed: seed, Frame: frame, Background: bg, Composer: comp}, nil
}

func resolveEpisode(lessonPath string) (episode.Episode, error) {
	if strings.TrimSpace(lessonPath) == "" {
		return episode.Sample(), nil
	}
	lesson, err := episode.LoadLesson(lessonPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return episode.Episode{}, services.Wrap(services.ErrNotFound, "render", "lesson", fmt.Sprintf("lesson %s not found", lessonPath), err)
		}
		return episode.Episode{}, services.Wrap(services.ErrValidation, "render", "lesson", "", err)
	}
	return lesson.Episode(0), nil
}

func resolveSeed(flag, configured int64) int64 {
	switch {
	case flag != 0:
		return flag
	case configured != 0:
		return configured
	default:
		return time.Now().UnixNano()
	}
}
