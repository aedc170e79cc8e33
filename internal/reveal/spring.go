package reveal

import (
	"math"
	"time"
)

// Spring eases a value towards a moving target with a damped spring of unit
// mass. It smooths the parallax drift so a scroll jump does not snap.
type Spring struct {
	Stiffness float64
	Damping   float64
	RestDelta float64

	value    float64
	velocity float64
	primed   bool
}

// maxStep bounds one integration step so large frame gaps stay stable.
const maxStep = time.Second / 120

// NewSpring returns a spring with stiffness 100, damping 30 and rest delta 0.001.
func NewSpring() *Spring {
	return &Spring{Stiffness: 100, Damping: 30, RestDelta: 0.001}
}

// Value is the current smoothed value.
func (s *Spring) Value() float64 {
	return s.value
}

// Reset jumps straight to v with no velocity.
func (s *Spring) Reset(v float64) {
	s.value = v
	s.velocity = 0
	s.primed = true
}

// Step advances the spring by dt towards target and returns the new value.
// The first step jumps to the target.
func (s *Spring) Step(target float64, dt time.Duration) float64 {
	if !s.primed {
		s.Reset(target)
		return s.value
	}
	for dt > 0 {
		step := dt
		if step > maxStep {
			step = maxStep
		}
		dt -= step
		h := step.Seconds()
		accel := -s.Stiffness*(s.value-target) - s.Damping*s.velocity
		s.velocity += accel * h
		s.value += s.velocity * h
	}
	if math.Abs(s.velocity) < s.RestDelta && math.Abs(s.value-target) < s.RestDelta {
		s.value = target
		s.velocity = 0
	}
	return s.value
}

// AtRest reports whether the spring has settled on target.
func (s *Spring) AtRest(target float64) bool {
	return s.velocity == 0 && s.value == target
}
