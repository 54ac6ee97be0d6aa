package scene

// AnimationKind identifies what an animation does to its target.
type AnimationKind int

const (
	AnimFadeIn AnimationKind = iota
	AnimFadeOut
	AnimWrite
	AnimMoveTo
	AnimShift
	AnimScale
)

func (k AnimationKind) String() string {
	switch k {
	case AnimFadeIn:
		return "fade_in"
	case AnimFadeOut:
		return "fade_out"
	case AnimWrite:
		return "write"
	case AnimMoveTo:
		return "move_to"
	case AnimShift:
		return "shift"
	case AnimScale:
		return "scale"
	default:
		return "unknown"
	}
}

// DefaultRunTime applies to animations without an explicit run time.
const DefaultRunTime = 1.0

// Animation is a timed change applied to every leaf of a target object.
type Animation struct {
	Kind    AnimationKind
	Target  *Mobject
	Shift   Vec
	Factor  float64
	Point   Vec
	RunTime float64
	Rate    Rate
}

// FadeIn fades target in from transparent. The object starts offset by
// -shift and scaled by factor, and settles into its current placement.
func FadeIn(target *Mobject, shift Vec, factor float64) Animation {
	return Animation{Kind: AnimFadeIn, Target: target, Shift: shift, Factor: factor}
}

// FadeOut fades target to transparent while moving it by shift and scaling
// it by factor. The object leaves the scene when the animation ends.
func FadeOut(target *Mobject, shift Vec, factor float64) Animation {
	return Animation{Kind: AnimFadeOut, Target: target, Shift: shift, Factor: factor}
}

// Write reveals text left to right. Shapes inside target fade in.
func Write(target *Mobject) Animation {
	return Animation{Kind: AnimWrite, Target: target, Factor: 1}
}

// MoveTo moves the target's center to point.
func MoveTo(target *Mobject, point Vec) Animation {
	return Animation{Kind: AnimMoveTo, Target: target, Point: point, Factor: 1}
}

// ShiftBy translates the target by v.
func ShiftBy(target *Mobject, v Vec) Animation {
	return Animation{Kind: AnimShift, Target: target, Shift: v, Factor: 1}
}

// ScaleBy scales the target about its center.
func ScaleBy(target *Mobject, factor float64) Animation {
	return Animation{Kind: AnimScale, Target: target, Factor: factor}
}

// WithRunTime returns a copy with an explicit run time in seconds.
func (a Animation) WithRunTime(seconds float64) Animation {
	a.RunTime = seconds
	return a
}

// WithRate returns a copy using rate r.
func (a Animation) WithRate(r Rate) Animation {
	a.Rate = r
	return a
}

func (a Animation) duration() float64 {
	if a.RunTime > 0 {
		return a.RunTime
	}
	return DefaultRunTime
}

func (a Animation) factor() float64 {
	if a.Factor == 0 {
		return 1
	}
	return a.Factor
}

// transform is p' = scale*p + offset.
type transform struct {
	scale  float64
	offset Vec
}

var identity = transform{scale: 1}

func (t transform) apply(p Vec) Vec { return p.Scale(t.scale).Add(t.offset) }

// then returns the transform applying t first and u second.
func (t transform) then(u transform) transform {
	return transform{scale: t.scale * u.scale, offset: t.offset.Scale(u.scale).Add(u.offset)}
}

func translate(v Vec) transform { return transform{scale: 1, offset: v} }

func scaleAbout(k float64, pivot Vec) transform {
	return transform{scale: k, offset: pivot.Scale(1 - k)}
}

// leafState is the animated state of one leaf on top of its geometry.
type leafState struct {
	xf      transform
	opacity float64
	reveal  float64
}

var restingState = leafState{xf: identity, opacity: 1, reveal: 1}

func interpolate(a, b leafState, alpha float64) leafState {
	return leafState{
		xf: transform{
			scale:  lerp(a.xf.scale, b.xf.scale, alpha),
			offset: Vec{X: lerp(a.xf.offset.X, b.xf.offset.X, alpha), Y: lerp(a.xf.offset.Y, b.xf.offset.Y, alpha)},
		},
		opacity: lerp(a.opacity, b.opacity, alpha),
		reveal:  lerp(a.reveal, b.reveal, alpha),
	}
}
