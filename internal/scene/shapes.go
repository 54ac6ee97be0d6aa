package scene

import "math"

const (
	curveSegments  = 96
	cornerSegments = 12
)

// Group collects objects so they can be positioned and animated together.
func Group(children ...*Mobject) *Mobject {
	return (&Mobject{kind: KindGroup}).Add(children...)
}

func ellipsePoints(rx, ry float64) []Vec {
	pts := make([]Vec, curveSegments)
	for i := range pts {
		angle := 2 * math.Pi * float64(i) / curveSegments
		pts[i] = Vec{X: rx * math.Cos(angle), Y: ry * math.Sin(angle)}
	}
	return pts
}

// Circle returns a circle of the given radius centered at the origin.
func Circle(radius float64, style Style) *Mobject {
	return &Mobject{kind: KindCircle, style: style, points: ellipsePoints(radius, radius), closed: true}
}

// Ellipse returns an axis-aligned ellipse with the given full width and height.
func Ellipse(width, height float64, style Style) *Mobject {
	return &Mobject{kind: KindEllipse, style: style, points: ellipsePoints(width/2, height/2), closed: true}
}

// Rectangle returns a width x height rectangle centered at the origin.
func Rectangle(width, height float64, style Style) *Mobject {
	w, h := width/2, height/2
	return &Mobject{
		kind:   KindRectangle,
		style:  style,
		points: []Vec{{X: w, Y: h}, {X: -w, Y: h}, {X: -w, Y: -h}, {X: w, Y: -h}},
		closed: true,
	}
}

// Square returns a rectangle with equal sides.
func Square(side float64, style Style) *Mobject {
	return Rectangle(side, side, style)
}

// RoundedRectangle returns a rectangle whose corners are quarter circles.
func RoundedRectangle(width, height, radius float64, style Style) *Mobject {
	radius = math.Max(0, math.Min(radius, math.Min(width, height)/2))
	w, h := width/2-radius, height/2-radius
	centers := []Vec{{X: w, Y: h}, {X: -w, Y: h}, {X: -w, Y: -h}, {X: w, Y: -h}}
	pts := make([]Vec, 0, 4*(cornerSegments+1))
	for corner, c := range centers {
		start := float64(corner) * math.Pi / 2
		for i := 0; i <= cornerSegments; i++ {
			angle := start + math.Pi/2*float64(i)/cornerSegments
			pts = append(pts, c.Add(Polar(radius, angle)))
		}
	}
	return &Mobject{kind: KindRoundedRectangle, style: style, points: pts, closed: true}
}

// RegularPolygon returns an n-gon inscribed in the unit circle. Polygons with
// an odd vertex count point upward.
func RegularPolygon(n int, style Style) *Mobject {
	if n < 3 {
		n = 3
	}
	start := 0.0
	if n%2 == 1 {
		start = math.Pi / 2
	}
	pts := make([]Vec, n)
	for i := range pts {
		pts[i] = Polar(1, start+2*math.Pi*float64(i)/float64(n))
	}
	return &Mobject{kind: KindPolygon, style: style, points: pts, closed: true}
}

// Triangle returns an upward-pointing equilateral triangle inscribed in the
// unit circle.
func Triangle(style Style) *Mobject {
	return RegularPolygon(3, style)
}

// Polygon returns a closed polygon through the given vertices.
func Polygon(style Style, vertices ...Vec) *Mobject {
	return &Mobject{kind: KindPolygon, style: style, points: append([]Vec(nil), vertices...), closed: true}
}

// Arc returns an open circular arc centered at the origin, sweeping angle
// radians counter-clockwise from start. Arcs are outlines only.
func Arc(radius, start, angle float64, style Style) *Mobject {
	steps := int(math.Ceil(math.Abs(angle) / (2 * math.Pi) * curveSegments))
	if steps < 2 {
		steps = 2
	}
	pts := make([]Vec, steps+1)
	for i := range pts {
		pts[i] = Polar(radius, start+angle*float64(i)/float64(steps))
	}
	style.FillOpacity = 0
	return &Mobject{kind: KindArc, style: style, points: pts}
}
