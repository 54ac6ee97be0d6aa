package staging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"hanzireel/internal/logging"
)

// ErrUnsafeMediaDir is returned when the media directory resolves to a path
// that must never be deleted.
var ErrUnsafeMediaDir = errors.New("refusing to clear media directory")

// Reset deletes mediaDir if it exists and recreates it empty. It refuses to
// touch a media directory that equals or contains the working directory, the
// home directory or any of the protected paths.
func Reset(ctx context.Context, mediaDir string, logger *slog.Logger, protected ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mediaDir = strings.TrimSpace(mediaDir)
	if err := checkSafe(mediaDir, protected); err != nil {
		return err
	}

	if _, err := os.Stat(mediaDir); err == nil {
		if err := os.RemoveAll(mediaDir); err != nil {
			return fmt.Errorf("clear media directory: %w", err)
		}
		if logger != nil {
			logger.Info("cleared previous media folder",
				logging.String("path", mediaDir),
				logging.String(logging.FieldEventType, "media_reset"),
			)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat media directory: %w", err)
	}

	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		return fmt.Errorf("create media directory: %w", err)
	}
	return nil
}

func checkSafe(dir string, protected []string) error {
	if dir == "" {
		return fmt.Errorf("%w: path is empty", ErrUnsafeMediaDir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve media directory: %w", err)
	}
	if abs == filepath.Dir(abs) {
		return fmt.Errorf("%w: %s is a filesystem root", ErrUnsafeMediaDir, abs)
	}
	if home, err := os.UserHomeDir(); err == nil && contains(abs, home) {
		return fmt.Errorf("%w: %s contains the home directory", ErrUnsafeMediaDir, abs)
	}
	if cwd, err := os.Getwd(); err == nil && contains(abs, cwd) {
		return fmt.Errorf("%w: %s contains the working directory", ErrUnsafeMediaDir, abs)
	}
	for _, p := range protected {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if target, err := filepath.Abs(p); err == nil && contains(abs, target) {
			return fmt.Errorf("%w: %s contains %s", ErrUnsafeMediaDir, abs, target)
		}
	}
	return nil
}

// contains reports whether target is dir itself or lives beneath it.
func contains(dir, target string) bool {
	rel, err := filepath.Rel(dir, filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// RemoveFrames deletes the frame directory once a video has been encoded.
func RemoveFrames(layout Layout, logger *slog.Logger) {
	if err := os.RemoveAll(layout.FramesDir); err != nil && logger != nil {
		logger.Warn("failed to remove rendered frames",
			logging.String("path", layout.FramesDir),
			logging.Error(err),
			logging.String(logging.FieldEventType, "frames_cleanup_failed"),
			logging.String(logging.FieldErrorHint, "check media_dir permissions"),
			logging.String(logging.FieldImpact, "disk space not reclaimed"),
		)
	}
	// Drop the parent when no other output left frames behind.
	_ = os.Remove(filepath.Dir(layout.FramesDir))
}
