package render

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"hanzireel/internal/fileutil"
	"hanzireel/internal/palette"
	"hanzireel/internal/scene"
)

// Source yields the drawables visible at a point in time. *scene.Scene
// implements it and is safe for concurrent reads once composed.
type Source interface {
	Snapshot(t float64) []scene.Drawable
}

// FrameJob describes a PNG sequence to rasterize.
type FrameJob struct {
	Source     Source
	Frame      scene.Frame
	Width      int
	Height     int
	FPS        int
	Count      int
	Background palette.Color
	Fonts      *FontSet
	Workers    int
	// Path returns the output file for frame i.
	Path func(i int) string
	// OnFrame is called after each frame is written, one call at a time.
	OnFrame func(done, total int)
}

// RenderFrames rasterizes every frame of job on a bounded pool of workers.
// Each worker owns its canvas and font faces. The first error cancels the
// remaining work.
func RenderFrames(ctx context.Context, job FrameJob) error {
	if err := job.validate(); err != nil {
		return err
	}
	workers := job.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > job.Count {
		workers = job.Count
	}

	g, gctx := errgroup.WithContext(ctx)
	indexes := make(chan int)
	g.Go(func() error {
		defer close(indexes)
		for i := 0; i < job.Count; i++ {
			select {
			case indexes <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var (
		mu   sync.Mutex
		done int
	)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			cv := newCanvas(job.Width, job.Height, job.Frame, job.Background, job.Fonts)
			defer cv.close()
			for i := range indexes {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := cv.draw(job.Source.Snapshot(scene.FrameTime(i, job.FPS))); err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				if err := writePNG(job.Path(i), cv.img); err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				mu.Lock()
				done++
				if job.OnFrame != nil {
					job.OnFrame(done, job.Count)
				}
				mu.Unlock()
			}
			return nil
		})
	}
	return g.Wait()
}

func (job FrameJob) validate() error {
	switch {
	case job.Source == nil:
		return fmt.Errorf("frame job: source is required")
	case job.Fonts == nil:
		return fmt.Errorf("frame job: fonts are required")
	case job.Path == nil:
		return fmt.Errorf("frame job: path function is required")
	case job.Width <= 0 || job.Height <= 0:
		return fmt.Errorf("frame job: invalid size %dx%d", job.Width, job.Height)
	case job.FPS <= 0:
		return fmt.Errorf("frame job: invalid fps %d", job.FPS)
	case job.Count <= 0:
		return fmt.Errorf("frame job: no frames to render")
	case job.Frame.Width <= 0 || job.Frame.Height <= 0:
		return fmt.Errorf("frame job: invalid scene frame")
	}
	return nil
}

var pngEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

func writePNG(path string, img image.Image) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		if err := pngEncoder.Encode(w, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
		return nil
	})
}

// RenderStill rasterizes a single moment of src.
func RenderStill(src Source, t float64, frame scene.Frame, width, height int, background palette.Color, fonts *FontSet) (*image.RGBA, error) {
	if fonts == nil {
		return nil, fmt.Errorf("render still: fonts are required")
	}
	cv := newCanvas(width, height, frame, background, fonts)
	defer cv.close()
	if err := cv.draw(src.Snapshot(t)); err != nil {
		return nil, err
	}
	return cv.snapshotImage(), nil
}
