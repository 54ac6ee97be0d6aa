package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"hanzireel/internal/config"
	"hanzireel/internal/encoding"
	"hanzireel/internal/episode"
	"hanzireel/internal/fileutil"
	"hanzireel/internal/history"
	"hanzireel/internal/logging"
	"hanzireel/internal/scene"
	"hanzireel/internal/services"
	"hanzireel/internal/staging"
	"hanzireel/internal/textutil"
)

// Stage names reported through Progress.
const (
	StageCompose  = "compose"
	StageFrames   = "frames"
	StagePoster   = "poster"
	StageEncode   = "encode"
	StageComplete = "complete"
)

// Options are per-run overrides of the render config.
type Options struct {
	// Lesson is a lesson config file or directory. Empty renders the sample
	// episode.
	Lesson     string
	Seed       int64
	FPS        int
	Output     string
	NoVideo    bool
	KeepFrames bool
	OnProgress func(Progress)
}

// Progress reports how far a run has come.
type Progress struct {
	Stage   string
	Done    int
	Total   int
	Message string
}

// Result summarizes a finished run.
type Result struct {
	RunID    string
	Episode  episode.Episode
	Seed     int64
	FPS      int
	Frames   int
	Duration float64
	Layout   staging.Layout
	// Video and Poster are empty when they were not produced.
	Video    string
	Poster   string
	Timeline string
	Elapsed  time.Duration
	// MissingCJKFont is set when no font covering Chinese was loaded and
	// the character was left blank in every frame.
	MissingCJKFont bool
}

// TimelineDocument is the JSON written next to each video.
type TimelineDocument struct {
	RunID     string          `json:"run_id"`
	Seed      int64           `json:"seed"`
	FPS       int             `json:"fps"`
	Frames    int             `json:"frames"`
	Width     int             `json:"pixel_width"`
	Height    int             `json:"pixel_height"`
	Episode   episode.Episode `json:"episode"`
	Timeline  scene.Timeline  `json:"timeline"`
	CreatedAt time.Time       `json:"created_at"`
}

// Renderer runs the full pipeline from episode to video.
type Renderer struct {
	cfg     *config.Config
	logger  *slog.Logger
	encoder encoding.Encoder
	history *history.Store
}

// New builds a Renderer. A nil encoder uses ffmpeg from cfg; a nil store
// skips history.
func New(cfg *config.Config, logger *slog.Logger, store *history.Store, encoder encoding.Encoder) *Renderer {
	if logger == nil {
		logger = logging.NewNop()
	}
	if encoder == nil {
		encoder = encoding.NewFFmpeg(cfg, logger)
	}
	return &Renderer{
		cfg:     cfg,
		logger:  logging.NewComponentLogger(logger, "render"),
		encoder: encoder,
		history: store,
	}
}

// Run renders one video. It clears the media directory first, so it holds
// the media lock for its whole duration.
func (r *Renderer) Run(ctx context.Context, opts Options) (res *Result, err error) {
	started := time.Now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	lock, err := AcquireMediaLock(r.cfg.LockPath())
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			logger.Warn("failed to release media lock", logging.Error(releaseErr), logging.String("lock", lock.Path()))
		}
	}()

	res = &Result{RunID: runID}
	if r.history != nil {
		if n, err := r.history.MarkAbandoned(ctx); err != nil {
			logger.Warn("failed to finalize abandoned runs", logging.Error(err))
		} else if n > 0 {
			logger.Info("marked interrupted renders as failed", logging.Int64("count", n))
		}
		// Character and pinyin are recorded by Describe once the lesson resolves.
		if err := r.history.Begin(ctx, history.Run{ID: runID, Seed: opts.Seed, StartedAt: started}); err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
		defer func() {
			finishErr := r.history.Finish(context.WithoutCancel(ctx), runID, services.FailureStatus(err), res.Frames, res.Duration, res.Video, err)
			if finishErr != nil {
				logger.Warn("failed to record run outcome", logging.Error(finishErr))
			}
		}()
	}

	output, fps, err := r.resolveOutput(opts)
	if err != nil {
		logger.Warn("render rejected", logging.Error(err), logging.String(logging.FieldEventType, "render_invalid"))
		return res, err
	}
	plan, err := Prepare(r.cfg, opts.Lesson, opts.Seed)
	if err != nil {
		logger.Warn("render rejected", logging.Error(err), logging.String(logging.FieldEventType, "render_invalid"))
		return res, err
	}
	layout := staging.NewLayout(r.cfg.Paths.MediaDir, output)
	res.Episode = plan.Episode
	res.Seed = plan.Seed
	res.FPS = fps
	res.Layout = layout

	if r.history != nil {
		if err := r.history.Describe(ctx, runID, plan.Episode.Character, plan.Episode.Pinyin, plan.Seed, layout.Video); err != nil {
			logger.Warn("failed to record run episode", logging.Error(err))
		}
	}

	logger.Info("render started",
		logging.String("character", plan.Episode.Character),
		logging.Int64("seed", plan.Seed),
		logging.Int("fps", fps),
		logging.String("output", output),
		logging.String(logging.FieldEventType, "render_started"),
	)

	if err := r.execute(ctx, logger, plan, layout, fps, opts, res); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("render cancelled")
		} else {
			logger.Error("render failed", logging.Error(err), logging.String(logging.FieldEventType, "render_failed"))
		}
		return res, err
	}

	res.Elapsed = time.Since(started)
	logger.Info("render complete",
		logging.Int("frames", res.Frames),
		logging.Float64("duration_seconds", res.Duration),
		logging.String("video", res.Video),
		logging.Duration("elapsed", res.Elapsed),
		logging.String(logging.FieldEventType, "render_complete"),
	)
	emit(opts.OnProgress, Progress{Stage: StageComplete, Done: res.Frames, Total: res.Frames, Message: "Render complete"})
	return res, nil
}

func (r *Renderer) resolveOutput(opts Options) (string, int, error) {
	output := r.cfg.Render.OutputFile
	if strings.TrimSpace(opts.Output) != "" {
		output = textutil.OutputName(opts.Output)
	}
	if output == "" || output == "." || output == ".." {
		return "", 0, services.Wrap(services.ErrValidation, "render", "output", fmt.Sprintf("invalid output name %q", opts.Output), nil)
	}
	fps := r.cfg.Render.FPS
	if opts.FPS != 0 {
		fps = opts.FPS
	}
	if fps <= 0 || fps > 120 {
		return "", 0, services.Wrap(services.ErrValidation, "render", "fps", fmt.Sprintf("fps must be between 1 and 120, got %d", fps), nil)
	}
	return output, fps, nil
}

func (r *Renderer) execute(ctx context.Context, logger *slog.Logger, plan *Plan, layout staging.Layout, fps int, opts Options, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	emit(opts.OnProgress, Progress{Stage: StageCompose, Message: "Composing scene"})
	sc, err := plan.Composer.Compose()
	if err != nil {
		return services.Wrap(services.ErrValidation, "render", "compose", "", err)
	}
	timeline := sc.Timeline()
	res.Duration = timeline.Duration
	res.Frames = sc.FrameCount(fps)
	logger.Info("scene composed",
		logging.Int("objects", timeline.Objects),
		logging.Int("steps", len(timeline.Steps)),
		logging.Float64("duration_seconds", timeline.Duration),
	)

	if err := staging.Reset(ctx, layout.Root, logger, r.cfg.Paths.StateDir, r.cfg.Paths.LogDir); err != nil {
		return services.Wrap(services.ErrConfiguration, "render", "media", "", err)
	}
	if err := layout.Ensure(); err != nil {
		return services.Wrap(services.ErrConfiguration, "render", "media", "", err)
	}

	fonts, err := LoadFonts(r.cfg.Render)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "render", "fonts", "", err)
	}
	if fonts.CJK == nil {
		res.MissingCJKFont = true
		logger.Warn("no CJK font configured",
			logging.String(logging.FieldErrorHint, "set render.cjk_font or HANZIREEL_CJK_FONT"),
			logging.String(logging.FieldImpact, "Chinese characters are left blank in the frames"),
		)
	}

	width, height := r.cfg.Render.PixelWidth, r.cfg.Render.PixelHeight
	frameStart := time.Now()
	err = RenderFrames(ctx, FrameJob{
		Source:     sc,
		Frame:      plan.Frame,
		Width:      width,
		Height:     height,
		FPS:        fps,
		Count:      res.Frames,
		Background: plan.Background,
		Fonts:      fonts,
		Workers:    r.cfg.Render.Workers,
		Path:       layout.FramePath,
		OnFrame: func(done, total int) {
			emit(opts.OnProgress, Progress{
				Stage:   StageFrames,
				Done:    done,
				Total:   total,
				Message: fmt.Sprintf("Rendering frame %d/%d", done, total),
			})
		},
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("render frames: %w", err)
	}
	logger.Info("frames rendered",
		logging.Int("frames", res.Frames),
		logging.String("dir", layout.FramesDir),
		logging.Duration("elapsed", time.Since(frameStart)),
	)

	doc := TimelineDocument{
		RunID:     res.RunID,
		Seed:      plan.Seed,
		FPS:       fps,
		Frames:    res.Frames,
		Width:     width,
		Height:    height,
		Episode:   plan.Episode,
		Timeline:  timeline,
		CreatedAt: time.Now().UTC(),
	}
	if err := fileutil.WriteJSON(layout.Timeline, doc); err != nil {
		return fmt.Errorf("write timeline: %w", err)
	}
	res.Timeline = layout.Timeline

	if r.cfg.Render.Poster {
		emit(opts.OnProgress, Progress{Stage: StagePoster, Message: "Writing poster"})
		img, err := RenderStill(sc, PosterTime(timeline), plan.Frame, width, height, plan.Background, fonts)
		if err != nil {
			return fmt.Errorf("render poster: %w", err)
		}
		if err := WritePoster(layout.Poster, img, r.cfg.Render.PosterQuality); err != nil {
			return fmt.Errorf("write poster: %w", err)
		}
		res.Poster = layout.Poster
	}

	if opts.NoVideo {
		return nil
	}

	err = r.encoder.Encode(ctx, encoding.Job{
		FramePattern: layout.FrameGlob(),
		FPS:          fps,
		Output:       layout.Video,
		TotalFrames:  res.Frames,
		OnProgress: func(p encoding.Progress) {
			emit(opts.OnProgress, Progress{Stage: StageEncode, Done: p.Frame, Total: p.Total, Message: p.Message()})
		},
	})
	if err != nil {
		return err
	}
	res.Video = layout.Video

	if !opts.KeepFrames && !r.cfg.Render.KeepFrames {
		staging.RemoveFrames(layout, logger)
	}
	return nil
}

func emit(fn func(Progress), p Progress) {
	if fn != nil {
		fn(p)
	}
}
