package scene

import (
	"math"
	"unicode/utf8"

	"hanzireel/internal/palette"
)

// Drawable is one leaf evaluated at a point in time, in scene units.
type Drawable struct {
	Kind          Kind
	Points        []Vec
	Closed        bool
	Fill          palette.Color
	FillOpacity   float64
	Stroke        palette.Color
	StrokeOpacity float64
	// StrokeWidth is already converted to scene units.
	StrokeWidth float64
	Text        *TextDrawable
}

// TextDrawable is the evaluated state of a text block.
type TextDrawable struct {
	Lines   []string
	Center  Vec
	Em      float64
	Font    string
	Bold    bool
	Color   palette.Color
	Opacity float64
	// Visible is the number of runes revealed across all lines.
	Visible int
}

// Runes counts the runes of every line.
func (t *TextDrawable) Runes() int {
	n := 0
	for _, line := range t.Lines {
		n += utf8.RuneCountInString(line)
	}
	return n
}

// Snapshot evaluates every leaf visible at time t, in drawing order.
func (s *Scene) Snapshot(t float64) []Drawable {
	out := make([]Drawable, 0, len(s.tracks))
	for _, tr := range s.tracks {
		if t < tr.added || t >= tr.removed {
			continue
		}
		st := tr.stateAt(t)
		if d, ok := drawableFor(tr.leaf, st); ok {
			out = append(out, d)
		}
	}
	return out
}

func (tr *track) stateAt(t float64) leafState {
	st := restingState
	for _, seg := range tr.segments {
		if seg.start > t {
			break
		}
		if t >= seg.end {
			st = seg.to
			continue
		}
		alpha := seg.rate.At((t - seg.start) / (seg.end - seg.start))
		st = interpolate(seg.from, seg.to, alpha)
	}
	return st
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }

func drawableFor(leaf *Mobject, st leafState) (Drawable, bool) {
	opacity := clamp01(st.opacity)
	if leaf.text != nil {
		tb := leaf.text
		td := &TextDrawable{
			Lines:   tb.lines,
			Center:  st.xf.apply(tb.center),
			Em:      tb.em * math.Abs(st.xf.scale),
			Font:    tb.font,
			Bold:    tb.bold,
			Color:   tb.color,
			Opacity: opacity,
		}
		td.Visible = int(math.Round(clamp01(st.reveal) * float64(td.Runes())))
		if td.Visible == 0 || opacity == 0 {
			return Drawable{}, false
		}
		return Drawable{Kind: KindText, Text: td}, true
	}
	style := leaf.style
	pts := make([]Vec, len(leaf.points))
	for i, p := range leaf.points {
		pts[i] = st.xf.apply(p)
	}
	d := Drawable{
		Kind:          leaf.kind,
		Points:        pts,
		Closed:        leaf.closed,
		Fill:          style.Fill,
		FillOpacity:   clamp01(style.FillOpacity * opacity),
		Stroke:        style.Stroke,
		StrokeOpacity: clamp01(style.StrokeOpacity * opacity),
		StrokeWidth:   style.StrokeWidth * StrokeUnit,
	}
	if !leaf.closed {
		d.FillOpacity = 0
	}
	if d.FillOpacity == 0 && (d.StrokeOpacity == 0 || d.StrokeWidth <= 0) {
		return Drawable{}, false
	}
	return d, true
}
