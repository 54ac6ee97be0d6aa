package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"hanzireel/internal/palette"
	"hanzireel/internal/scene"
)

const jointSegments = 12

type point struct{ x, y float64 }

// canvas rasterizes snapshots into an RGBA image. A canvas belongs to a
// single worker.
type canvas struct {
	img    *image.RGBA
	bg     *image.Uniform
	frame  scene.Frame
	sx, sy float64
	raster *vector.Rasterizer
	faces  *faceCache
}

func newCanvas(width, height int, frame scene.Frame, background palette.Color, fonts *FontSet) *canvas {
	return &canvas{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		bg:     image.NewUniform(background.NRGBA(1)),
		frame:  frame,
		sx:     float64(width) / frame.Width,
		sy:     float64(height) / frame.Height,
		raster: vector.NewRasterizer(width, height),
		faces:  newFaceCache(fonts),
	}
}

func (c *canvas) close() { c.faces.close() }

// draw paints the drawables over a cleared background.
func (c *canvas) draw(items []scene.Drawable) error {
	draw.Draw(c.img, c.img.Bounds(), c.bg, image.Point{}, draw.Src)
	for i := range items {
		item := &items[i]
		if item.Text != nil {
			if err := c.drawText(item.Text); err != nil {
				return err
			}
			continue
		}
		c.drawShape(item)
	}
	return nil
}

func (c *canvas) toPixel(v scene.Vec) point {
	return point{
		x: (v.X + c.frame.Width/2) * c.sx,
		y: (c.frame.Height/2 - v.Y) * c.sy,
	}
}

func (c *canvas) drawShape(d *scene.Drawable) {
	pts := make([]point, len(d.Points))
	for i, p := range d.Points {
		pts[i] = c.toPixel(p)
	}
	if d.Closed && d.FillOpacity > 0 && len(pts) >= 3 {
		c.fillPolygons([][]point{pts}, d.Fill.NRGBA(d.FillOpacity))
	}
	if d.StrokeOpacity > 0 && d.StrokeWidth > 0 && len(pts) >= 2 {
		half := d.StrokeWidth * c.sy / 2
		c.fillPolygons(strokePolygons(pts, d.Closed, half), d.Stroke.NRGBA(d.StrokeOpacity))
	}
}

// fillPolygons rasterizes every polygon into one coverage mask and composites
// it once, so overlapping pieces of a stroke do not darken.
func (c *canvas) fillPolygons(polys [][]point, col color.NRGBA) {
	bounds := c.img.Bounds()
	box := image.Rectangle{}
	clipped := make([][]point, 0, len(polys))
	for _, poly := range polys {
		poly = clipPolygon(poly, float64(bounds.Dx()), float64(bounds.Dy()))
		if len(poly) < 3 {
			continue
		}
		clipped = append(clipped, orient(poly))
		box = box.Union(polygonBounds(poly))
	}
	box = box.Intersect(bounds)
	if box.Empty() {
		return
	}
	c.raster.Reset(box.Dx(), box.Dy())
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	for _, poly := range clipped {
		c.raster.MoveTo(float32(poly[0].x-ox), float32(poly[0].y-oy))
		for _, p := range poly[1:] {
			c.raster.LineTo(float32(p.x-ox), float32(p.y-oy))
		}
		c.raster.ClosePath()
	}
	c.raster.Draw(c.img, box, image.NewUniform(col), image.Point{})
}

func polygonBounds(poly []point) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}

// orient returns poly with a positive signed area. The rasterizer sums
// signed coverage, so pieces of one mask must share a winding direction.
func orient(poly []point) []point {
	var area float64
	for i := range poly {
		j := (i + 1) % len(poly)
		area += poly[i].x*poly[j].y - poly[j].x*poly[i].y
	}
	if area >= 0 {
		return poly
	}
	out := make([]point, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}
	return out
}

// strokePolygons outlines a polyline as one quad per segment plus a round
// joint at every vertex.
func strokePolygons(pts []point, closed bool, half float64) [][]point {
	var polys [][]point
	segments := len(pts) - 1
	if closed {
		segments = len(pts)
	}
	for i := 0; i < segments; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		dx, dy := b.x-a.x, b.y-a.y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*half, dx/length*half
		polys = append(polys, []point{
			{a.x + nx, a.y + ny},
			{b.x + nx, b.y + ny},
			{b.x - nx, b.y - ny},
			{a.x - nx, a.y - ny},
		})
	}
	for _, p := range pts {
		polys = append(polys, disc(p, half))
	}
	return polys
}

func disc(center point, radius float64) []point {
	out := make([]point, jointSegments)
	for i := range out {
		theta := 2 * math.Pi * float64(i) / jointSegments
		out[i] = point{center.x + radius*math.Cos(theta), center.y + radius*math.Sin(theta)}
	}
	return out
}

// clipPolygon clips poly to the rectangle [0,w]x[0,h] (Sutherland-Hodgman).
func clipPolygon(poly []point, w, h float64) []point {
	type edge struct {
		inside    func(point) bool
		intersect func(a, b point) point
	}
	lerpX := func(a, b point, x float64) point {
		t := (x - a.x) / (b.x - a.x)
		return point{x, a.y + t*(b.y-a.y)}
	}
	lerpY := func(a, b point, y float64) point {
		t := (y - a.y) / (b.y - a.y)
		return point{a.x + t*(b.x-a.x), y}
	}
	edges := []edge{
		{func(p point) bool { return p.x >= 0 }, func(a, b point) point { return lerpX(a, b, 0) }},
		{func(p point) bool { return p.x <= w }, func(a, b point) point { return lerpX(a, b, w) }},
		{func(p point) bool { return p.y >= 0 }, func(a, b point) point { return lerpY(a, b, 0) }},
		{func(p point) bool { return p.y <= h }, func(a, b point) point { return lerpY(a, b, h) }},
	}
	out := poly
	for _, e := range edges {
		if len(out) == 0 {
			return nil
		}
		in := out
		out = make([]point, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur):
				if !e.inside(prev) {
					out = append(out, e.intersect(prev, cur))
				}
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.intersect(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

func (c *canvas) drawText(t *scene.TextDrawable) error {
	px := t.Em * c.sy
	if px < 0.5 || t.Visible <= 0 {
		return nil
	}
	src := image.NewUniform(t.Color.NRGBA(t.Opacity))
	metricsFont := c.faces.fonts.Regular
	if t.Bold {
		metricsFont = c.faces.fonts.Bold
	}
	metricsFace, err := c.faces.face(metricsFont, px)
	if err != nil {
		return err
	}
	m := metricsFace.Metrics()
	baselineOffset := float64(m.Ascent-m.Descent) / 64 / 2

	lineHeight := t.Em * scene.LineSpacing
	remaining := t.Visible
	n := len(t.Lines)
	for i, line := range t.Lines {
		if remaining <= 0 {
			break
		}
		centerY := t.Center.Y + (float64(n-1)/2-float64(i))*lineHeight
		width, err := c.lineWidth(line, t.Bold, px)
		if err != nil {
			return err
		}
		x := (t.Center.X+c.frame.Width/2)*c.sx - width/2
		baseline := (c.frame.Height/2-centerY)*c.sy + baselineOffset
		for _, r := range line {
			if remaining <= 0 {
				break
			}
			remaining--
			f := c.faces.fontFor(r, t.Bold)
			if f == nil {
				x += fallbackAdvance(r, px)
				continue
			}
			face, err := c.faces.face(f, px)
			if err != nil {
				return err
			}
			d := font.Drawer{
				Dst:  c.img,
				Src:  src,
				Face: face,
				Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(baseline)},
			}
			d.DrawString(string(r))
			x = float64(d.Dot.X) / 64
		}
	}
	return nil
}

func (c *canvas) lineWidth(line string, bold bool, px float64) (float64, error) {
	var w float64
	for _, r := range line {
		f := c.faces.fontFor(r, bold)
		if f == nil {
			w += fallbackAdvance(r, px)
			continue
		}
		face, err := c.faces.face(f, px)
		if err != nil {
			return 0, err
		}
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			w += fallbackAdvance(r, px)
			continue
		}
		w += float64(adv) / 64
	}
	return w, nil
}

func fallbackAdvance(r rune, px float64) float64 {
	return scene.EstimateWidth(string(r), px)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// snapshotImage returns a copy of the canvas contents.
func (c *canvas) snapshotImage() *image.RGBA {
	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out
}
