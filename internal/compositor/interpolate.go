package compositor

import "math"

// Easing reshapes the progress of one interpolation segment.
type Easing func(t float64) float64

// Smoothstep is the easing used for camera moves.
func Smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// Interpolate maps input through piecewise-linear keyframes with clamped
// extrapolation on both sides. inputRange must be non-decreasing and the two
// ranges must have equal length >= 2.
func Interpolate(input float64, inputRange, outputRange []float64, easing Easing) float64 {
	n := len(inputRange)
	if n < 2 || len(outputRange) != n {
		return 0
	}
	if input <= inputRange[0] {
		return outputRange[0]
	}
	if input >= inputRange[n-1] {
		return outputRange[n-1]
	}
	for i := 0; i < n-1; i++ {
		lo, hi := inputRange[i], inputRange[i+1]
		if input > hi {
			continue
		}
		if hi == lo {
			return outputRange[i+1]
		}
		t := (input - lo) / (hi - lo)
		if easing != nil {
			t = easing(t)
		}
		return outputRange[i] + t*(outputRange[i+1]-outputRange[i])
	}
	return outputRange[n-1]
}

// springPosition evaluates a unit spring (rest 0 -> 1) after t seconds. It
// drives the HUD entrance; stiffness 100 and damping 10 settle in about a
// second with a slight overshoot.
func springPosition(t, stiffness, damping float64) float64 {
	if t <= 0 {
		return 0
	}
	omega := math.Sqrt(stiffness)
	zeta := damping / (2 * math.Sqrt(stiffness))

	switch {
	case zeta < 1:
		omegaD := omega * math.Sqrt(1-zeta*zeta)
		decay := math.Exp(-zeta * omega * t)
		return 1 - decay*(math.Cos(omegaD*t)+(zeta*omega/omegaD)*math.Sin(omegaD*t))
	case zeta == 1:
		return 1 - math.Exp(-omega*t)*(1+omega*t)
	default:
		r1 := -omega * (zeta - math.Sqrt(zeta*zeta-1))
		r2 := -omega * (zeta + math.Sqrt(zeta*zeta-1))
		c1 := r2 / (r2 - r1)
		c2 := 1 - c1
		return 1 - c1*math.Exp(r1*t) - c2*math.Exp(r2*t)
	}
}
