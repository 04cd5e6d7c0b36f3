// Package tick defines the contract between the fixed-step driver and the
// objects it advances.
package tick

import "errors"

// ErrNoFixedUpdater is returned when an object that needs a fixed-step
// driver is attached without one.
var ErrNoFixedUpdater = errors.New("no fixed updater found")

// Progressor exposes how far the driver is between the previous and the
// next fixed tick, in [0, 1).
type Progressor interface {
	FixedProgressionRatio() float64
}

// FixedUpdater runs once per fixed tick
type FixedUpdater interface {
	FixedUpdate()
}

// Lerp interpolates between from and to by ratio
func Lerp(ratio, from, to float64) float64 {
	return from + (to-from)*ratio
}

// Ratio returns the progression ratio of p, or 1 when p is nil so that
// unattached objects render at their latest position.
func Ratio(p Progressor) float64 {
	if p == nil {
		return 1
	}
	return p.FixedProgressionRatio()
}
