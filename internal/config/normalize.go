package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeRender(); err != nil {
		return err
	}
	c.normalizeEncoding()
	c.normalizePalettes()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.MediaDir) == "" {
		c.Paths.MediaDir = defaultMediaDir
	}
	if c.Paths.MediaDir, err = expandPath(strings.TrimSpace(c.Paths.MediaDir)); err != nil {
		return fmt.Errorf("paths.media_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRender() error {
	r := &c.Render
	r.Background = strings.ToLower(strings.TrimSpace(r.Background))
	if r.Background == "" {
		r.Background = defaultBackground
	}
	r.OutputFile = strings.TrimSpace(r.OutputFile)
	if r.OutputFile == "" {
		r.OutputFile = defaultOutputFile
	}
	if r.CJKFont == "" {
		if value, ok := os.LookupEnv("HANZIREEL_CJK_FONT"); ok {
			r.CJKFont = value
		}
	}
	if strings.TrimSpace(r.CJKFont) == "" {
		r.CJKFont = detectCJKFont()
	}

	var err error
	if r.LatinFont, err = expandPath(strings.TrimSpace(r.LatinFont)); err != nil {
		return fmt.Errorf("render.latin_font: %w", err)
	}
	if r.LatinBoldFont, err = expandPath(strings.TrimSpace(r.LatinBoldFont)); err != nil {
		return fmt.Errorf("render.latin_bold_font: %w", err)
	}
	if r.CJKFont, err = expandPath(strings.TrimSpace(r.CJKFont)); err != nil {
		return fmt.Errorf("render.cjk_font: %w", err)
	}
	if r.PosterQuality == 0 {
		r.PosterQuality = defaultPosterQuality
	}
	return nil
}

func (c *Config) normalizeEncoding() {
	e := &c.Encoding
	if strings.TrimSpace(e.FFmpegBinary) == "" {
		if value, ok := os.LookupEnv("FFMPEG_BINARY"); ok && strings.TrimSpace(value) != "" {
			e.FFmpegBinary = value
		} else {
			e.FFmpegBinary = defaultFFmpegBinary
		}
	}
	e.FFmpegBinary = strings.TrimSpace(e.FFmpegBinary)
	if strings.TrimSpace(e.VideoCodec) == "" {
		e.VideoCodec = defaultVideoCodec
	}
	if strings.TrimSpace(e.PixelFormat) == "" {
		e.PixelFormat = defaultPixelFormat
	}
	if strings.TrimSpace(e.Preset) == "" {
		e.Preset = defaultPreset
	}
}

func (c *Config) normalizePalettes() {
	c.Palettes.Kurzgesagt = trimList(c.Palettes.Kurzgesagt)
	c.Palettes.Ghibli = trimList(c.Palettes.Ghibli)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func detectCJKFont() string {
	for _, candidate := range cjkFontCandidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
