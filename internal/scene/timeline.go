package scene

import "math"

// AnimationInfo describes one animation of a step.
type AnimationInfo struct {
	Kind     string  `json:"kind"`
	Target   string  `json:"target"`
	Leaves   int     `json:"leaves"`
	Duration float64 `json:"duration"`
	Rate     string  `json:"rate"`
}

// Step is one Play or Wait call.
type Step struct {
	Index      int             `json:"index"`
	Section    string          `json:"section,omitempty"`
	Start      float64         `json:"start"`
	Duration   float64         `json:"duration"`
	Wait       bool            `json:"wait,omitempty"`
	Animations []AnimationInfo `json:"animations,omitempty"`
}

// Section marks where a named section begins.
type Section struct {
	Name      string  `json:"name"`
	Start     float64 `json:"start"`
	FirstStep int     `json:"first_step"`
}

// SectionSummary aggregates the steps of one section.
type SectionSummary struct {
	Name       string  `json:"name"`
	Start      float64 `json:"start"`
	Duration   float64 `json:"duration"`
	Steps      int     `json:"steps"`
	Animations int     `json:"animations"`
}

// Timeline is an exportable description of a composed scene.
type Timeline struct {
	FrameWidth  float64          `json:"frame_width"`
	FrameHeight float64          `json:"frame_height"`
	Duration    float64          `json:"duration"`
	Objects     int              `json:"objects"`
	Sections    []SectionSummary `json:"sections"`
	Steps       []Step           `json:"steps"`
}

// Timeline returns the steps and per-section totals recorded so far.
func (s *Scene) Timeline() Timeline {
	return Timeline{
		FrameWidth:  s.frame.Width,
		FrameHeight: s.frame.Height,
		Duration:    s.now,
		Objects:     len(s.tracks),
		Sections:    s.summarizeSections(),
		Steps:       append([]Step(nil), s.steps...),
	}
}

func (s *Scene) summarizeSections() []SectionSummary {
	out := make([]SectionSummary, 0, len(s.sections))
	for i, sec := range s.sections {
		end, lastStep := s.now, len(s.steps)
		if i+1 < len(s.sections) {
			end, lastStep = s.sections[i+1].Start, s.sections[i+1].FirstStep
		}
		sum := SectionSummary{Name: sec.Name, Start: sec.Start, Duration: end - sec.Start}
		for _, st := range s.steps[sec.FirstStep:lastStep] {
			sum.Steps++
			sum.Animations += len(st.Animations)
		}
		out = append(out, sum)
	}
	return out
}

// FrameCount is the number of frames needed to cover the timeline at fps.
// A scene without steps still produces one frame.
func (s *Scene) FrameCount(fps int) int {
	if fps <= 0 {
		return 0
	}
	n := int(math.Round(s.now * float64(fps)))
	if n < 1 {
		n = 1
	}
	return n
}

// FrameTime returns the timestamp of frame i at fps.
func FrameTime(i, fps int) float64 {
	return float64(i) / float64(fps)
}
