// Package config loads, normalizes, and validates hanzireel configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// HANZIREEL_CJK_FONT and FFMPEG_BINARY. The Config type centralizes every knob
// the renderer, encoder, and CLI need so output locations and render settings
// are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
