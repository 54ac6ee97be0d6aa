package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"hanzireel/internal/history"
	"hanzireel/internal/render"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var opts render.Options

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an episode to MP4",
		Long: "Render clears the media directory, composes the episode, rasterizes every frame,\n" +
			"encodes the video with ffmpeg and writes a poster image and a timeline JSON.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := ctx.logger()
			if err != nil {
				return err
			}
			defer closeLog()
			out := cmd.OutOrStdout()
			printer := newProgressPrinter(cmd.ErrOrStderr())
			opts.OnProgress = printer.update

			return ctx.withHistory(func(store *history.Store) error {
				res, err := render.New(cfg, logger, store, nil).Run(cmd.Context(), opts)
				printer.finish()
				if err != nil {
					return err
				}
				writeRenderSummary(out, res, shouldColorize(out))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Lesson, "lesson", "l", "", "Lesson config file or directory (default: built-in sample)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Random seed (default: render.seed, else time based)")
	cmd.Flags().IntVar(&opts.FPS, "fps", 0, "Frame rate override")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output name (default: render.output_file)")
	cmd.Flags().BoolVar(&opts.NoVideo, "no-video", false, "Stop after writing frames, poster and timeline")
	cmd.Flags().BoolVar(&opts.KeepFrames, "keep-frames", false, "Keep the PNG frames after encoding")
	return cmd
}

func writeRenderSummary(w io.Writer, res *render.Result, colorize bool) {
	b := newStatusBlock("Render", colorize).
		add("Run", statusInfo, res.RunID).
		add("Character", statusInfo, fmt.Sprintf("%s (%s) %s", res.Episode.Character, res.Episode.Pinyin, res.Episode.Translation)).
		add("Seed", statusInfo, fmt.Sprintf("%d", res.Seed)).
		add("Frames", statusInfo, fmt.Sprintf("%d at %d fps (%.1fs)", res.Frames, res.FPS, res.Duration))
	if res.Video != "" {
		b.add("Video", statusOK, res.Video)
	} else {
		b.add("Frames dir", statusOK, res.Layout.FramesDir)
	}
	if res.Poster != "" {
		b.add("Poster", statusOK, res.Poster)
	}
	if res.MissingCJKFont {
		b.add("CJK font", statusWarn, "none found, Chinese characters are blank (set render.cjk_font or HANZIREEL_CJK_FONT)")
	}
	b.add("Timeline", statusOK, res.Timeline).
		add("Elapsed", statusInfo, res.Elapsed.Round(100*time.Millisecond).String()).
		write(w)
}

// progressPrinter rewrites one status line on terminals and prints a line
// per stage and every tenth of the frames otherwise.
type progressPrinter struct {
	mu      sync.Mutex
	w       io.Writer
	tty     bool
	stage   string
	decile  int
	pending bool
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{w: w, tty: shouldColorize(w), decile: -1}
}

func (p *progressPrinter) update(pr render.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pr.Stage == render.StageComplete {
		return
	}
	if p.tty {
		fmt.Fprintf(p.w, "\r\x1b[2K%s", pr.Message)
		p.pending = true
		return
	}
	decile := -1
	if pr.Total > 0 {
		decile = pr.Done * 10 / pr.Total
	}
	if pr.Stage == p.stage && decile == p.decile {
		return
	}
	p.stage, p.decile = pr.Stage, decile
	fmt.Fprintln(p.w, strings.TrimSpace(pr.Message))
}

func (p *progressPrinter) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending {
		fmt.Fprintln(p.w)
		p.pending = false
	}
}
