package preflight

import (
	"context"

	"hanzireel/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Optional checks are reported but never fail doctor.
	Optional bool
	Detail   string
}

// RunAll executes every check for cfg in display order.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckFFmpeg(ctx, cfg.Encoding.FFmpegBinary),
		CheckMediaDir(cfg.Paths.MediaDir),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckLatinFonts(cfg.Render),
		CheckCJKFont(cfg.Render),
		CheckRenderLock(cfg.LockPath()),
	}
}

// Failed reports whether any required check failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
