package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validatePalettes(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRender() error {
	r := c.Render
	if r.PixelWidth <= 0 || r.PixelHeight <= 0 {
		return errors.New("render.pixel_width and render.pixel_height must be positive")
	}
	if r.PixelWidth%2 != 0 || r.PixelHeight%2 != 0 {
		return errors.New("render.pixel_width and render.pixel_height must be even for yuv420p output")
	}
	if r.FrameWidth <= 0 || r.FrameHeight <= 0 {
		return errors.New("render.frame_width and render.frame_height must be positive")
	}
	if r.FPS <= 0 || r.FPS > 120 {
		return errors.New("render.fps must be between 1 and 120")
	}
	if r.Workers < 0 {
		return errors.New("render.workers must be zero (auto) or positive")
	}
	if !hexColorPattern.MatchString(r.Background) {
		return fmt.Errorf("render.background must be a #rrggbb color, got %q", r.Background)
	}
	if strings.ContainsAny(r.OutputFile, `/\`) {
		return fmt.Errorf("render.output_file must be a bare name, got %q", r.OutputFile)
	}
	if r.PosterQuality < 1 || r.PosterQuality > 100 {
		return errors.New("render.poster_quality must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if c.Encoding.CRF < 0 || c.Encoding.CRF > 51 {
		return errors.New("encoding.crf must be between 0 and 51")
	}
	return nil
}

func (c *Config) validatePalettes() error {
	for name, colors := range map[string][]string{
		"palettes.kurzgesagt": c.Palettes.Kurzgesagt,
		"palettes.ghibli":     c.Palettes.Ghibli,
	} {
		for _, value := range colors {
			if !hexColorPattern.MatchString(value) {
				return fmt.Errorf("%s: %q is not a #rrggbb color", name, value)
			}
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
