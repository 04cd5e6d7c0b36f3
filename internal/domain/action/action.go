// Package action provides a cooperative cutscene scheduler.
//
// A Creator holds a tree of deferred steps. Steps are queued in FIFO order
// and run from inside Execute, which the host calls once per frame. Nothing
// blocks: a waiting step is simply re-checked on the next frame.
//
//	c := action.New(func(c *action.Creator) {
//		c.Run(func() { hero.WalkTo(8, 8) })
//		c.WaitFor(hero.Arrived, nil)
//		c.Wait(time.Second, func() { hero.Say("I have arrived") })
//		c.WaitForSignal("door", func() { door.Open() })
//	})
//
// Nodes live in an arena owned by the Creator and refer to each other by
// index, so the tree has no pointer cycles and finished nodes are recycled.
package action

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultSignal is the anonymous signal key used by WaitForDefaultSignal
const DefaultSignal = ""

const rootIndex = 0

type kind uint8

const (
	kindSequence  kind = iota // container with its own child queue
	kindTimed                 // runs after a countdown
	kindCondition             // holds the head until a predicate is true
	kindSignal                // runs once a named signal is raised
	kindTween                 // holds the head until a tween completes
)

type node struct {
	kind     kind
	time     time.Duration
	signal   string
	gated    bool
	executed bool
	until    func() bool
	do       func()

	// sequence
	init        func(c *Creator)
	initialized bool
	children    []int

	// tween
	tweenDuration time.Duration
	from, to      float64
	easing        ease.TweenFunc
	apply         func(float64)
	tween         *gween.Tween
	tweenElapsed  time.Duration
	tweenDone     bool
}

// Action describes a general step. The zero value is a step that runs
// immediately and completes at once.
type Action struct {
	// Time is the countdown that must elapse before Do runs.
	Time time.Duration
	// Signal names the gate checked when Gated is set.
	Signal string
	Gated  bool
	// Until keeps the step at the head of the queue after Do has run
	// until it reports true. Nil means no extra condition.
	Until func() bool
	Do    func()
}

// Creator is a single-threaded scheduler of cutscene steps
type Creator struct {
	nodes    []node
	free     []int
	signals  map[string]bool
	building int
}

// New creates a scheduler. init runs once, on the first Execute, and is
// expected to enqueue the top-level steps.
func New(init func(c *Creator)) *Creator {
	c := &Creator{
		nodes:   make([]node, 1, 16),
		signals: make(map[string]bool),
	}
	c.nodes[rootIndex] = node{kind: kindSequence, init: init}
	return c
}

// Action enqueues a general step on the sequence currently being built
func (c *Creator) Action(a Action) {
	k := kindTimed
	switch {
	case a.Gated:
		k = kindSignal
	case a.Until != nil:
		k = kindCondition
	}
	idx := c.alloc(k)
	n := &c.nodes[idx]
	n.time = a.Time
	n.signal = a.Signal
	n.gated = a.Gated
	n.until = a.Until
	n.do = a.Do
	c.enqueue(idx)
}

// Run enqueues a zero-duration step
func (c *Creator) Run(do func()) {
	c.Action(Action{Do: do})
}

// Wait enqueues a step that runs do after d has elapsed
func (c *Creator) Wait(d time.Duration, do func()) {
	c.Action(Action{Time: d, Do: do})
}

// WaitFor enqueues a step that runs do as soon as it reaches the head of the
// queue and then holds the queue until pred reports true. pred is polled
// once or more per Execute.
func (c *Creator) WaitFor(pred func() bool, do func()) {
	c.Action(Action{Until: pred, Do: do})
}

// WaitForSignal enqueues a step gated on the named signal. Firing consumes
// the signal so the name can be reused by later steps.
func (c *Creator) WaitForSignal(name string, do func()) {
	c.Action(Action{
		Signal: name,
		Gated:  true,
		Do: func() {
			delete(c.signals, name)
			if do != nil {
				do()
			}
		},
	})
}

// WaitForDefaultSignal is WaitForSignal on the anonymous key
func (c *Creator) WaitForDefaultSignal(do func()) {
	c.WaitForSignal(DefaultSignal, do)
}

// Sequence enqueues a nested sub-sequence. init runs when the sequence
// reaches the head of the queue; steps it enqueues run before anything
// queued after the sequence.
func (c *Creator) Sequence(init func(c *Creator)) {
	idx := c.alloc(kindSequence)
	c.nodes[idx].init = init
	c.enqueue(idx)
}

// Tween enqueues a step that eases a value from one end to the other over
// d, calling apply on every Execute until the tween finishes.
func (c *Creator) Tween(d time.Duration, from, to float64, easing ease.TweenFunc, apply func(float64)) {
	if easing == nil {
		easing = ease.Linear
	}
	idx := c.alloc(kindTween)
	n := &c.nodes[idx]
	n.tweenDuration = d
	n.from = from
	n.to = to
	n.easing = easing
	n.apply = apply
	c.enqueue(idx)
}

// Signal raises a named signal. Signals persist until a gated step consumes
// them, so raising one before its step reaches the head still counts.
func (c *Creator) Signal(name string) {
	c.signals[name] = true
}

// Raised reports whether the named signal is raised and not yet consumed
func (c *Creator) Raised(name string) bool {
	return c.signals[name]
}

// Done reports whether init has run and every queued step has finished
func (c *Creator) Done() bool {
	root := &c.nodes[rootIndex]
	return root.initialized && len(root.children) == 0
}

// Pending returns the number of top-level steps still queued
func (c *Creator) Pending() int {
	return len(c.nodes[rootIndex].children)
}

// Execute advances the scheduler by dt. Steps whose conditions are met fire
// in order within the same call; the first step that cannot finish stops
// the pass. Countdown and tween time consumed by one step is not available
// to the steps after it, while time left over once a step completes carries
// on to the next, so any split of the same total dt yields the same result.
func (c *Creator) Execute(dt time.Duration) {
	c.execute(rootIndex, dt)
}

// execute runs one pass over the sequence at idx and returns the unspent
// part of budget.
func (c *Creator) execute(idx int, budget time.Duration) time.Duration {
	prev := c.building
	c.building = idx
	defer func() { c.building = prev }()

	if !c.nodes[idx].initialized {
		c.nodes[idx].initialized = true
		c.nodes[idx].executed = true
		if init := c.nodes[idx].init; init != nil {
			init(c)
		}
	}

	for len(c.nodes[idx].children) > 0 {
		head := c.nodes[idx].children[0]

		if t := c.nodes[head].time; t > 0 && budget > 0 {
			spent := min(t, budget)
			c.nodes[head].time -= spent
			budget -= spent
		}

		ran := false
		if c.ready(head) {
			budget = c.run(head, budget)
			ran = true
		}
		if c.finished(head) {
			c.dequeue(idx)
			continue
		}

		if !ran && c.nodes[head].executed {
			switch c.nodes[head].kind {
			case kindSequence:
				budget = c.execute(head, budget)
			case kindTween:
				budget = c.advanceTween(head, budget)
			}
			if c.finished(head) {
				c.dequeue(idx)
				continue
			}
		}
		break
	}
	return budget
}

func (c *Creator) ready(idx int) bool {
	n := &c.nodes[idx]
	if n.executed || n.time > 0 {
		return false
	}
	return !n.gated || c.signals[n.signal]
}

func (c *Creator) run(idx int, budget time.Duration) time.Duration {
	n := &c.nodes[idx]
	n.executed = true
	n.gated = false

	switch n.kind {
	case kindSequence:
		return c.execute(idx, budget)
	case kindTween:
		n.tween = gween.New(float32(n.from), float32(n.to), float32(n.tweenDuration.Seconds()), n.easing)
		if n.apply != nil {
			n.apply(n.from)
		}
		return c.advanceTween(idx, budget)
	}

	// do may enqueue more steps and grow the arena; n is not used after this.
	if do := n.do; do != nil {
		do()
	}
	return budget
}

func (c *Creator) advanceTween(idx int, budget time.Duration) time.Duration {
	n := &c.nodes[idx]
	n.tweenElapsed += budget
	v, _ := n.tween.Update(float32(budget.Seconds()))
	// completion is counted in whole nanoseconds; gween's float32 clock
	// would let the leftover drift with how dt is split
	done := n.tweenElapsed >= n.tweenDuration
	n.tweenDone = done
	left := time.Duration(0)
	if done {
		v = float32(n.to)
		left = n.tweenElapsed - n.tweenDuration
	}
	if apply := n.apply; apply != nil {
		apply(float64(v))
	}
	return left
}

func (c *Creator) finished(idx int) bool {
	n := &c.nodes[idx]
	if !n.executed || n.time > 0 || n.gated {
		return false
	}
	switch n.kind {
	case kindSequence:
		return len(n.children) == 0
	case kindTween:
		return n.tweenDone
	}
	return n.until == nil || n.until()
}

func (c *Creator) enqueue(idx int) {
	parent := &c.nodes[c.building]
	parent.children = append(parent.children, idx)
}

func (c *Creator) dequeue(parent int) {
	children := c.nodes[parent].children
	head := children[0]
	copy(children, children[1:])
	c.nodes[parent].children = children[:len(children)-1]
	c.release(head)
}

func (c *Creator) alloc(k kind) int {
	if n := len(c.free); n > 0 {
		idx := c.free[n-1]
		c.free = c.free[:n-1]
		children := c.nodes[idx].children[:0]
		c.nodes[idx] = node{kind: k, children: children}
		return idx
	}
	c.nodes = append(c.nodes, node{kind: k})
	return len(c.nodes) - 1
}

func (c *Creator) release(idx int) {
	for _, child := range c.nodes[idx].children {
		c.release(child)
	}
	children := c.nodes[idx].children[:0]
	c.nodes[idx] = node{children: children}
	c.free = append(c.free, idx)
}
