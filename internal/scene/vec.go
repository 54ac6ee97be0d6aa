package scene

import "math"

// Vec is a point or direction in scene units.
type Vec struct {
	X, Y float64
}

var (
	Origin = Vec{}
	Up     = Vec{Y: 1}
	Down   = Vec{Y: -1}
	Left   = Vec{X: -1}
	Right  = Vec{X: 1}
)

func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec) Scale(f float64) Vec { return Vec{X: v.X * f, Y: v.Y * f} }

// Len returns the Euclidean length.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rotate rotates v counter-clockwise about the origin.
func (v Vec) Rotate(angle float64) Vec {
	sin, cos := math.Sincos(angle)
	return Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Polar returns the point at radius r and angle (radians).
func Polar(r, angle float64) Vec {
	sin, cos := math.Sincos(angle)
	return Vec{X: r * cos, Y: r * sin}
}

func lerp(a, b, alpha float64) float64 { return a + (b-a)*alpha }

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min, Max Vec
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
func (r Rect) Center() Vec     { return r.Min.Add(r.Max).Scale(0.5) }

func (r Rect) union(o Rect) Rect {
	return Rect{
		Min: Vec{X: math.Min(r.Min.X, o.Min.X), Y: math.Min(r.Min.Y, o.Min.Y)},
		Max: Vec{X: math.Max(r.Max.X, o.Max.X), Y: math.Max(r.Max.Y, o.Max.Y)},
	}
}

func boundsOf(points []Vec) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// Frame is the visible area of a scene in scene units.
type Frame struct {
	Width, Height float64
}

// DefaultFrame is the 9x16 portrait frame.
var DefaultFrame = Frame{Width: 9, Height: 16}
