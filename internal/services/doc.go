// Package services defines shared utilities consumed by the render pipeline,
// the scaffolder, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp render run IDs and section names for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent history statuses (failed vs invalid).
//
// Use these helpers when wiring new pipeline steps so error handling and
// observability stay uniform across commands.
package services
