package scene

import "math"

// Kind identifies the geometry of a Mobject.
type Kind int

const (
	KindGroup Kind = iota
	KindCircle
	KindEllipse
	KindRectangle
	KindRoundedRectangle
	KindPolygon
	KindArc
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	case KindRectangle:
		return "rectangle"
	case KindRoundedRectangle:
		return "rounded_rectangle"
	case KindPolygon:
		return "polygon"
	case KindArc:
		return "arc"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Mobject is a scene object: a shape, a text block or a group of other
// objects. Shapes and text may also carry children; a group has no geometry
// of its own.
type Mobject struct {
	kind     Kind
	style    Style
	points   []Vec
	closed   bool
	text     *textBlock
	children []*Mobject
}

// Kind reports the object's geometry kind.
func (m *Mobject) Kind() Kind { return m.kind }

// Style returns the object's fill and stroke settings.
func (m *Mobject) Style() Style { return m.style }

// Points returns a copy of the flattened outline.
func (m *Mobject) Points() []Vec {
	return append([]Vec(nil), m.points...)
}

// Content returns the text of a text object.
func (m *Mobject) Content() string {
	if m.text == nil {
		return ""
	}
	return m.text.content
}

// Lines returns the wrapped lines of a text object.
func (m *Mobject) Lines() []string {
	if m.text == nil {
		return nil
	}
	return append([]string(nil), m.text.lines...)
}

// Children returns the direct children.
func (m *Mobject) Children() []*Mobject {
	return append([]*Mobject(nil), m.children...)
}

func (m *Mobject) hasGeometry() bool {
	return m.kind != KindGroup
}

// Leaves returns every object with geometry in drawing order: the object
// itself first, then its children depth first.
func (m *Mobject) Leaves() []*Mobject {
	var out []*Mobject
	m.walk(func(leaf *Mobject) { out = append(out, leaf) })
	return out
}

func (m *Mobject) walk(fn func(*Mobject)) {
	if m.hasGeometry() {
		fn(m)
	}
	for _, c := range m.children {
		c.walk(fn)
	}
}

// Add appends children and returns m.
func (m *Mobject) Add(children ...*Mobject) *Mobject {
	for _, c := range children {
		if c != nil && c != m {
			m.children = append(m.children, c)
		}
	}
	return m
}

func (m *Mobject) ownBounds() Rect {
	if m.text != nil {
		w, h := m.text.size()
		half := Vec{X: w / 2, Y: h / 2}
		return Rect{Min: m.text.center.Sub(half), Max: m.text.center.Add(half)}
	}
	return boundsOf(m.points)
}

// Bounds returns the bounding box of every leaf. An empty group reports a
// zero box at the origin.
func (m *Mobject) Bounds() Rect {
	var (
		r     Rect
		first = true
	)
	m.walk(func(leaf *Mobject) {
		b := leaf.ownBounds()
		if first {
			r, first = b, false
			return
		}
		r = r.union(b)
	})
	return r
}

// Center is the center of the bounding box.
func (m *Mobject) Center() Vec { return m.Bounds().Center() }

// Top is the middle of the bounding box's top edge.
func (m *Mobject) Top() Vec {
	b := m.Bounds()
	return Vec{X: b.Center().X, Y: b.Max.Y}
}

// Bottom is the middle of the bounding box's bottom edge.
func (m *Mobject) Bottom() Vec {
	b := m.Bounds()
	return Vec{X: b.Center().X, Y: b.Min.Y}
}

// Width of the bounding box.
func (m *Mobject) Width() float64 { return m.Bounds().Width() }

// Height of the bounding box.
func (m *Mobject) Height() float64 { return m.Bounds().Height() }

func (m *Mobject) mapLeaves(fn func(Vec) Vec, textScale float64) {
	m.walk(func(leaf *Mobject) {
		for i, p := range leaf.points {
			leaf.points[i] = fn(p)
		}
		if leaf.text != nil {
			leaf.text.center = fn(leaf.text.center)
			leaf.text.em *= textScale
			leaf.text.maxWidth *= textScale
		}
	})
}

// Shift translates the object by v.
func (m *Mobject) Shift(v Vec) *Mobject {
	m.mapLeaves(func(p Vec) Vec { return p.Add(v) }, 1)
	return m
}

// MoveTo moves the object's center to p.
func (m *Mobject) MoveTo(p Vec) *Mobject {
	return m.Shift(p.Sub(m.Center()))
}

// Scale scales the object about its center.
func (m *Mobject) Scale(factor float64) *Mobject {
	c := m.Center()
	m.mapLeaves(func(p Vec) Vec { return c.Add(p.Sub(c).Scale(factor)) }, math.Abs(factor))
	return m
}

// Rotate rotates the object counter-clockwise about its center. Text blocks
// move with the rotation but their glyphs stay upright.
func (m *Mobject) Rotate(angle float64) *Mobject {
	c := m.Center()
	m.mapLeaves(func(p Vec) Vec { return c.Add(p.Sub(c).Rotate(angle)) }, 1)
	return m
}

// ToEdge aligns the object against the frame edge in direction dir, leaving
// buff units of space.
func (m *Mobject) ToEdge(frame Frame, dir Vec, buff float64) *Mobject {
	b := m.Bounds()
	var delta Vec
	switch {
	case dir.Y > 0:
		delta.Y = frame.Height/2 - buff - b.Max.Y
	case dir.Y < 0:
		delta.Y = -frame.Height/2 + buff - b.Min.Y
	}
	switch {
	case dir.X > 0:
		delta.X = frame.Width/2 - buff - b.Max.X
	case dir.X < 0:
		delta.X = -frame.Width/2 + buff - b.Min.X
	}
	return m.Shift(delta)
}

// NextTo places the object beside other in direction dir with buff units of
// space, centered on other along the perpendicular axis.
func (m *Mobject) NextTo(other *Mobject, dir Vec, buff float64) *Mobject {
	b, o := m.Bounds(), other.Bounds()
	target := o.Center()
	switch {
	case dir.Y < 0:
		target.Y = o.Min.Y - buff - b.Height()/2
	case dir.Y > 0:
		target.Y = o.Max.Y + buff + b.Height()/2
	}
	switch {
	case dir.X < 0:
		target.X = o.Min.X - buff - b.Width()/2
	case dir.X > 0:
		target.X = o.Max.X + buff + b.Width()/2
	}
	return m.MoveTo(target)
}
