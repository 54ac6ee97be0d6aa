package staging

import (
	"fmt"
	"os"
	"path/filepath"
)

// FramePattern is the printf pattern frame files are written with.
const FramePattern = "frame_%05d.png"

// Layout is the set of output paths for one rendered video.
type Layout struct {
	Root      string
	FramesDir string
	Video     string
	Poster    string
	Timeline  string
}

// NewLayout computes the paths for output name under mediaDir.
func NewLayout(mediaDir, output string) Layout {
	return Layout{
		Root:      mediaDir,
		FramesDir: filepath.Join(mediaDir, "frames", output),
		Video:     filepath.Join(mediaDir, "videos", output+".mp4"),
		Poster:    filepath.Join(mediaDir, "images", output+"_poster.webp"),
		Timeline:  filepath.Join(mediaDir, "timeline", output+".json"),
	}
}

// FramePath returns the file for frame index i.
func (l Layout) FramePath(i int) string {
	return filepath.Join(l.FramesDir, fmt.Sprintf(FramePattern, i))
}

// FrameGlob is the ffmpeg image2 input pattern for the frames.
func (l Layout) FrameGlob() string {
	return filepath.Join(l.FramesDir, FramePattern)
}

// Ensure creates every directory of the layout.
func (l Layout) Ensure() error {
	for _, dir := range []string{
		l.FramesDir,
		filepath.Dir(l.Video),
		filepath.Dir(l.Poster),
		filepath.Dir(l.Timeline),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
