package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"hanzireel/internal/config"
	"hanzireel/internal/deps"
	"hanzireel/internal/render"
	"hanzireel/internal/services"
)

// CheckFFmpeg verifies the encoder binary runs.
func CheckFFmpeg(ctx context.Context, binary string) Result {
	status := deps.CheckFFmpeg(ctx, binary)
	if !status.Available {
		return Result{Name: status.Name, Detail: status.Detail}
	}
	return Result{Name: status.Name, Passed: true, Detail: fmt.Sprintf("%s (%s)", status.Command, status.Detail)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckMediaDir accepts a missing media directory as long as the nearest
// existing ancestor is writable, since render recreates it on every run.
func CheckMediaDir(path string) Result {
	const name = "Media directory"
	if _, err := os.Stat(path); err == nil {
		return CheckDirectoryAccess(name, path)
	}
	parent := filepath.Dir(path)
	for {
		if _, err := os.Stat(parent); err == nil {
			break
		}
		next := filepath.Dir(parent)
		if next == parent {
			break
		}
		parent = next
	}
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (created on first render)", path)}
}

// CheckLatinFonts verifies the regular and bold Latin fonts parse.
func CheckLatinFonts(cfg config.Render) Result {
	const name = "Latin fonts"
	if _, err := render.LoadFonts(config.Render{LatinFont: cfg.LatinFont, LatinBoldFont: cfg.LatinBoldFont}); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	detail := "embedded Go fonts"
	if strings.TrimSpace(cfg.LatinFont) != "" || strings.TrimSpace(cfg.LatinBoldFont) != "" {
		detail = strings.TrimSpace(strings.Join([]string{cfg.LatinFont, cfg.LatinBoldFont}, " "))
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckCJKFont verifies a font covering Chinese characters is configured and
// parses. Without one, characters are left out of the video.
func CheckCJKFont(cfg config.Render) Result {
	const name = "CJK font"
	path := strings.TrimSpace(cfg.CJKFont)
	if path == "" {
		return Result{Name: name, Detail: fmt.Sprintf("%v (set render.cjk_font or HANZIREEL_CJK_FONT)", render.ErrNoCJKFont)}
	}
	if _, err := render.ParseFontFile(path); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckRenderLock reports whether another render currently owns the media
// directory. A held lock is informational.
func CheckRenderLock(path string) Result {
	const name = "Render lock"
	lock, err := render.AcquireMediaLock(path)
	if err != nil {
		if errors.Is(err, services.ErrBusy) {
			return Result{Name: name, Optional: true, Detail: "a render is in progress"}
		}
		return Result{Name: name, Detail: err.Error()}
	}
	if err := lock.Release(); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("release: %v", err)}
	}
	return Result{Name: name, Passed: true, Detail: "idle"}
}
