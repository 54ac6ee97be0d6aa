package scene

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNilTarget is returned when an animation has no target object.
	ErrNilTarget = errors.New("animation has no target")
	// ErrInvalidDuration is returned for non-positive or non-finite durations.
	ErrInvalidDuration = errors.New("duration must be positive and finite")
)

// PlayOptions apply to every animation in one Play step.
type PlayOptions struct {
	// RunTime overrides each animation's own run time when positive.
	RunTime float64
	// Rate overrides each animation's rate unless it is RateDefault.
	Rate Rate
}

type segment struct {
	start, end float64
	from, to   leafState
	rate       Rate
}

type track struct {
	leaf     *Mobject
	added    float64
	removed  float64
	current  leafState
	segments []segment
}

// Scene accumulates objects and timed animations.
type Scene struct {
	frame    Frame
	tracks   []*track
	live     map[*Mobject]*track
	now      float64
	section  string
	steps    []Step
	sections []Section
}

// New returns an empty scene for the given frame.
func New(frame Frame) *Scene {
	return &Scene{frame: frame, live: make(map[*Mobject]*track)}
}

// Frame returns the scene's frame.
func (s *Scene) Frame() Frame { return s.frame }

// Now returns the current end of the timeline in seconds.
func (s *Scene) Now() float64 { return s.now }

// BeginSection starts a named section at the current time. Later steps are
// attributed to it.
func (s *Scene) BeginSection(name string) {
	s.section = name
	s.sections = append(s.sections, Section{Name: name, Start: s.now, FirstStep: len(s.steps)})
}

// Add places objects on the scene immediately. Objects already present are
// left unchanged.
func (s *Scene) Add(objs ...*Mobject) {
	for _, obj := range objs {
		if obj == nil {
			continue
		}
		for _, leaf := range obj.Leaves() {
			s.ensure(leaf)
		}
	}
}

func (s *Scene) ensure(leaf *Mobject) *track {
	if tr, ok := s.live[leaf]; ok {
		return tr
	}
	tr := &track{leaf: leaf, added: s.now, removed: math.Inf(1), current: restingState}
	s.tracks = append(s.tracks, tr)
	s.live[leaf] = tr
	return tr
}

// currentBounds is the bounding box of obj's leaves under their current
// animated state.
func (s *Scene) currentBounds(obj *Mobject) Rect {
	var (
		r     Rect
		first = true
	)
	for _, leaf := range obj.Leaves() {
		b := leaf.ownBounds()
		if tr, ok := s.live[leaf]; ok {
			b = Rect{Min: tr.current.xf.apply(b.Min), Max: tr.current.xf.apply(b.Max)}
			if b.Min.X > b.Max.X {
				b.Min, b.Max = b.Max, b.Min
			}
		}
		if first {
			r, first = b, false
			continue
		}
		r = r.union(b)
	}
	return r
}

// Play runs animations concurrently as one step.
func (s *Scene) Play(opts PlayOptions, anims ...Animation) error {
	if len(anims) == 0 {
		return errors.New("play: no animations")
	}
	if opts.RunTime != 0 && !validDuration(opts.RunTime) {
		return fmt.Errorf("play: run time %v: %w", opts.RunTime, ErrInvalidDuration)
	}
	for i, a := range anims {
		if a.Target == nil {
			return fmt.Errorf("play: animation %d: %w", i, ErrNilTarget)
		}
		if a.RunTime != 0 && !validDuration(a.RunTime) {
			return fmt.Errorf("play: animation %d run time %v: %w", i, a.RunTime, ErrInvalidDuration)
		}
	}

	start := s.now
	step := Step{Index: len(s.steps), Section: s.section, Start: start}
	pivots := make([]Vec, len(anims))
	for i, a := range anims {
		pivots[i] = s.currentBounds(a.Target).Center()
	}

	var removals []*track
	for i, a := range anims {
		d := a.duration()
		if opts.RunTime > 0 {
			d = opts.RunTime
		}
		rate := a.Rate
		if opts.Rate != RateDefault {
			rate = opts.Rate
		}
		step.Duration = math.Max(step.Duration, d)
		step.Animations = append(step.Animations, AnimationInfo{
			Kind:     a.Kind.String(),
			Target:   a.Target.Kind().String(),
			Leaves:   len(a.Target.Leaves()),
			Duration: d,
			Rate:     rate.String(),
		})

		for _, leaf := range a.Target.Leaves() {
			tr := s.ensure(leaf)
			from, to := s.keyframes(a, tr.current, pivots[i], leaf)
			tr.segments = append(tr.segments, segment{start: start, end: start + d, from: from, to: to, rate: rate})
			tr.current = to
			if a.Kind == AnimFadeOut {
				tr.removed = start + d
				removals = append(removals, tr)
			}
		}
	}
	s.now = start + step.Duration
	s.steps = append(s.steps, step)
	for _, tr := range removals {
		if s.live[tr.leaf] == tr {
			delete(s.live, tr.leaf)
		}
	}
	return nil
}

func (s *Scene) keyframes(a Animation, cur leafState, pivot Vec, leaf *Mobject) (leafState, leafState) {
	from, to := cur, cur
	k := a.factor()
	switch a.Kind {
	case AnimFadeIn:
		origin := pivot.Sub(a.Shift)
		from.xf = cur.xf.then(translate(a.Shift.Scale(-1))).then(scaleAbout(k, origin))
		from.opacity = 0
		to.opacity = 1
	case AnimFadeOut:
		dest := pivot.Add(a.Shift)
		to.xf = cur.xf.then(translate(a.Shift)).then(scaleAbout(k, dest))
		to.opacity = 0
	case AnimWrite:
		if leaf.Kind() == KindText {
			from.reveal = 0
			from.opacity = 1
		} else {
			from.opacity = 0
		}
		to.reveal = 1
		to.opacity = 1
	case AnimMoveTo:
		to.xf = cur.xf.then(translate(a.Point.Sub(pivot)))
	case AnimShift:
		to.xf = cur.xf.then(translate(a.Shift))
	case AnimScale:
		to.xf = cur.xf.then(scaleAbout(k, pivot))
	}
	return from, to
}

// Wait holds the current picture for the given number of seconds.
func (s *Scene) Wait(seconds float64) error {
	if !validDuration(seconds) {
		return fmt.Errorf("wait %v: %w", seconds, ErrInvalidDuration)
	}
	s.steps = append(s.steps, Step{
		Index:    len(s.steps),
		Section:  s.section,
		Start:    s.now,
		Duration: seconds,
		Wait:     true,
	})
	s.now += seconds
	return nil
}

func validDuration(d float64) bool {
	return d > 0 && !math.IsInf(d, 0) && !math.IsNaN(d)
}

// Duration is the total length of the timeline in seconds.
func (s *Scene) Duration() float64 { return s.now }

// ObjectCount reports how many leaves have ever been placed on the scene.
func (s *Scene) ObjectCount() int { return len(s.tracks) }
