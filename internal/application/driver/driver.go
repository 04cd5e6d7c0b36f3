// Package driver runs the fixed/variable step loop of a scene.
//
// Render time is accumulated and consumed in whole fixed ticks, so the
// simulation advances at the same rate whatever the frame rate. What is
// left over becomes the progression ratio that entities use to interpolate
// their draw position between the last two ticks.
package driver

import (
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/younwookim/gridsim/internal/domain/tick"
)

// DefaultMaxTicksPerStep bounds how many ticks a single Step may run
const DefaultMaxTicksPerStep = 8

// PreUpdater runs once per frame before Update
type PreUpdater interface {
	PreUpdate(dt time.Duration)
}

// Updater runs once per frame
type Updater interface {
	Update(dt time.Duration)
}

// PostUpdater runs once per frame after Update
type PostUpdater interface {
	PostUpdate(dt time.Duration)
}

// attacher is implemented by objects that need the driver's ratio
type attacher interface {
	Attach(p tick.Progressor) error
}

// Driver dispatches fixed and per-frame phases to registered objects in
// registration order. Cameras always run after every other object.
type Driver struct {
	// MaxTicksPerStep drops accumulated time beyond this many ticks per
	// Step. Zero disables the limit.
	MaxTicksPerStep int

	tickDuration time.Duration
	targetFPS    float64
	accumulator  time.Duration
	ratio        float64
	tmod         float64
	ticks        uint64

	objects []any
	cameras []any
}

// New creates a driver running tickRate fixed ticks per second. targetFPS
// is the frame rate at which TMod is 1.
func New(tickRate, targetFPS int) *Driver {
	if tickRate <= 0 {
		tickRate = 60
	}
	if targetFPS <= 0 {
		targetFPS = 60
	}
	return &Driver{
		MaxTicksPerStep: DefaultMaxTicksPerStep,
		tickDuration:    time.Second / time.Duration(tickRate),
		targetFPS:       float64(targetFPS),
		tmod:            1,
	}
}

// Register adds an object. Objects implementing Attach are bound to the
// driver first; the object is not registered if that fails.
func (d *Driver) Register(obj any) error {
	if err := d.attach(obj); err != nil {
		return err
	}
	d.objects = append(d.objects, obj)
	return nil
}

// RegisterCamera adds an object that must see the post-integration state
// of every other object in the same tick.
func (d *Driver) RegisterCamera(cam tick.FixedUpdater) error {
	if err := d.attach(cam); err != nil {
		return err
	}
	d.cameras = append(d.cameras, cam)
	return nil
}

func (d *Driver) attach(obj any) error {
	a, ok := obj.(attacher)
	if !ok {
		return nil
	}
	if err := a.Attach(d); err != nil {
		return fmt.Errorf("failed to register %T: %w", obj, err)
	}
	return nil
}

// Unregister removes an object, keeping the order of the others. It is
// safe to call from inside a phase; the removal applies from the next
// phase on.
func (d *Driver) Unregister(obj any) {
	match := func(o any) bool { return o == obj }
	d.objects = slices.DeleteFunc(slices.Clone(d.objects), match)
	d.cameras = slices.DeleteFunc(slices.Clone(d.cameras), match)
}

// Len returns the number of registered objects, cameras included
func (d *Driver) Len() int {
	return len(d.objects) + len(d.cameras)
}

// Step advances the loop by one rendered frame of length dt
func (d *Driver) Step(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	d.tmod = dt.Seconds() * d.targetFPS
	d.accumulator += dt

	n := 0
	for d.accumulator >= d.tickDuration {
		if d.MaxTicksPerStep > 0 && n >= d.MaxTicksPerStep {
			dropped := d.accumulator / d.tickDuration
			log.Printf("driver: running behind, dropped %d ticks", dropped)
			d.accumulator %= d.tickDuration
			break
		}
		d.accumulator -= d.tickDuration
		d.fixedUpdate()
		n++
	}
	d.ratio = float64(d.accumulator) / float64(d.tickDuration)

	d.each(func(o any) {
		if p, ok := o.(PreUpdater); ok {
			p.PreUpdate(dt)
		}
	})
	d.each(func(o any) {
		if u, ok := o.(Updater); ok {
			u.Update(dt)
		}
	})
	d.each(func(o any) {
		if p, ok := o.(PostUpdater); ok {
			p.PostUpdate(dt)
		}
	})
}

func (d *Driver) fixedUpdate() {
	d.each(func(o any) {
		if f, ok := o.(tick.FixedUpdater); ok {
			f.FixedUpdate()
		}
	})
	d.ticks++
}

func (d *Driver) each(fn func(o any)) {
	for _, o := range d.objects {
		fn(o)
	}
	for _, c := range d.cameras {
		fn(c)
	}
}

// FixedProgressionRatio returns how far the loop is toward the next tick,
// in [0, 1).
func (d *Driver) FixedProgressionRatio() float64 { return d.ratio }

// TMod returns the last frame length relative to the target frame rate
func (d *Driver) TMod() float64 { return d.tmod }

// Ticks returns the number of fixed ticks run so far
func (d *Driver) Ticks() uint64 { return d.ticks }

// TickDuration returns the length of one fixed tick
func (d *Driver) TickDuration() time.Duration { return d.tickDuration }
