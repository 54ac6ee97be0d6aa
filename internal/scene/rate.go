package scene

import "math"

// Rate maps linear animation progress in [0, 1] to eased progress.
type Rate int

const (
	// RateDefault is Smooth on an animation and "no override" on a Play.
	RateDefault Rate = iota
	Linear
	Smooth
	EaseInOutSine
	EaseOutElastic
)

func (r Rate) String() string {
	switch r {
	case Linear:
		return "linear"
	case RateDefault, Smooth:
		return "smooth"
	case EaseInOutSine:
		return "ease_in_out_sine"
	case EaseOutElastic:
		return "ease_out_elastic"
	default:
		return "unknown"
	}
}

// At evaluates the rate function. Results may leave [0, 1] for elastic
// easing.
func (r Rate) At(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	switch r {
	case Linear:
		return t
	case EaseInOutSine:
		return -(math.Cos(math.Pi*t) - 1) / 2
	case EaseOutElastic:
		return easeOutElastic(t)
	default:
		return smooth(t)
	}
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

func smooth(t float64) float64 {
	const inflection = 10.0
	floor := sigmoid(-inflection / 2)
	v := (sigmoid(inflection*(t-0.5)) - floor) / (1 - 2*floor)
	return math.Max(0, math.Min(1, v))
}

func easeOutElastic(t float64) float64 {
	const c4 = 2 * math.Pi / 3
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return math.Pow(2, -10*t)*math.Sin((10*t-0.75)*c4) + 1
}
