package encoding

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os/exec"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"hanzireel/internal/config"
	"hanzireel/internal/logging"
	"hanzireel/internal/services"
)

// Job describes one frame-sequence encode.
type Job struct {
	// FramePattern is a printf-style image2 pattern such as frame_%05d.png.
	FramePattern string
	FPS          int
	Output       string
	TotalFrames  int
	OnProgress   func(Progress)
}

// Encoder converts a frame sequence into a video file.
type Encoder interface {
	Encode(ctx context.Context, job Job) error
}

// FFmpeg encodes with an external ffmpeg binary.
type FFmpeg struct {
	Binary      string
	VideoCodec  string
	PixelFormat string
	Preset      string
	CRF         int
	logger      *slog.Logger
}

// NewFFmpeg returns an encoder using the [encoding] settings of cfg.
func NewFFmpeg(cfg *config.Config, logger *slog.Logger) *FFmpeg {
	return &FFmpeg{
		Binary:      cfg.Encoding.FFmpegBinary,
		VideoCodec:  cfg.Encoding.VideoCodec,
		PixelFormat: cfg.Encoding.PixelFormat,
		Preset:      cfg.Encoding.Preset,
		CRF:         cfg.Encoding.CRF,
		logger:      logging.NewComponentLogger(logger, "encoder"),
	}
}

// Args compiles the ffmpeg argument list for job, without the binary name.
func (f *FFmpeg) Args(job Job) []string {
	input := ffmpeg.Input(job.FramePattern, ffmpeg.KwArgs{
		"format":    "image2",
		"framerate": job.FPS,
	})
	args := input.Output(job.Output, ffmpeg.KwArgs{
		"c:v":      f.VideoCodec,
		"pix_fmt":  f.PixelFormat,
		"preset":   f.Preset,
		"crf":      f.CRF,
		"movflags": "+faststart",
	}).OverWriteOutput().GetArgs()
	return append(append([]string(nil), globalArgs...), args...)
}

var globalArgs = []string{"-hide_banner", "-loglevel", "error", "-nostats", "-progress", "pipe:1"}

// Command returns the full command line as a single string for logs.
func (f *FFmpeg) Command(job Job) string {
	return f.binary() + " " + strings.Join(f.Args(job), " ")
}

func (f *FFmpeg) binary() string {
	if strings.TrimSpace(f.Binary) == "" {
		return "ffmpeg"
	}
	return f.Binary
}

// Encode runs ffmpeg until the video is written or ctx is cancelled.
func (f *FFmpeg) Encode(ctx context.Context, job Job) error {
	if strings.TrimSpace(job.FramePattern) == "" || strings.TrimSpace(job.Output) == "" {
		return services.Wrap(services.ErrValidation, "encoder", "encode", "frame pattern and output are required", nil)
	}
	if job.FPS <= 0 {
		return services.Wrap(services.ErrValidation, "encoder", "encode", fmt.Sprintf("invalid fps %d", job.FPS), nil)
	}
	logger := logging.WithContext(ctx, f.logger)
	logger.Info("launching ffmpeg encode",
		logging.String("command", f.Command(job)),
		logging.String("output", job.Output),
		logging.Int("frames", job.TotalFrames),
	)

	cmd := exec.CommandContext(ctx, f.binary(), f.Args(job)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "encoder", "stdout pipe", "", err)
	}
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrConfiguration, "encoder", "start", fmt.Sprintf("ffmpeg binary %q not found", f.binary()), err)
		}
		return services.Wrap(services.ErrExternalTool, "encoder", "start", "", err)
	}

	parser := NewProgressParser(job.TotalFrames)
	parseErr := parser.Consume(stdout, func(p Progress) {
		if job.OnProgress != nil {
			job.OnProgress(p)
		}
	})
	// Drain so ffmpeg never blocks on a full pipe if parsing stopped early.
	_, _ = io.Copy(io.Discard, stdout)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return services.Wrap(services.ErrExternalTool, "encoder", "ffmpeg", tail(stderr.String(), 5), err)
	}
	if parseErr != nil {
		logger.Warn("ffmpeg progress parsing failed", logging.Error(parseErr))
	}
	logger.Info("ffmpeg encode complete", logging.String("output", job.Output))
	return nil
}

func tail(text string, lines int) string {
	parts := strings.Split(strings.TrimSpace(text), "\n")
	if len(parts) > lines {
		parts = parts[len(parts)-lines:]
	}
	return strings.Join(parts, "; ")
}
