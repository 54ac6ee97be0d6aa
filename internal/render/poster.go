package render

import (
	"fmt"
	"image"
	"io"

	"github.com/gen2brain/webp"

	"hanzireel/internal/composer"
	"hanzireel/internal/fileutil"
	"hanzireel/internal/scene"
)

// posterDelay is how far into the word explanation the poster is taken, once
// the lantern and character have faded in.
const posterDelay = 1.5

// PosterTime picks the moment used for the poster image.
func PosterTime(tl scene.Timeline) float64 {
	for _, sec := range tl.Sections {
		if sec.Name == composer.SectionWord {
			return min(sec.Start+posterDelay, tl.Duration)
		}
	}
	return tl.Duration / 2
}

// WritePoster encodes img as a lossy WebP at path.
func WritePoster(path string, img image.Image, quality int) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		if err := webp.Encode(w, img, webp.Options{Lossless: false, Quality: quality}); err != nil {
			return fmt.Errorf("encode webp: %w", err)
		}
		return nil
	})
}
