package carousel

import "math"

// Easing maps linear animation progress in [0,1] to eased progress
type Easing func(p float64) float64

// Linear moves at constant speed
func Linear(p float64) float64 { return p }

// Swing starts and ends slowly
func Swing(p float64) float64 { return 0.5 - math.Cos(p*math.Pi)/2 }

// EasingByName returns the named easing, defaulting to Swing
func EasingByName(name string) Easing {
	if name == "linear" {
		return Linear
	}
	return Swing
}
