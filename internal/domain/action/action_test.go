package action

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

type trace struct {
	events []string
}

func (tr *trace) mark(name string) func() {
	return func() { tr.events = append(tr.events, name) }
}

func TestCreator_InitRunsOnce(t *testing.T) {
	calls := 0
	c := New(func(c *Creator) { calls++ })

	c.Execute(0)
	c.Execute(time.Second)

	assert.Equal(t, 1, calls)
	assert.True(t, c.Done())
}

func TestCreator_ZeroDurationCascade(t *testing.T) {
	tr := &trace{}
	c := New(func(c *Creator) {
		c.Run(tr.mark("a"))
		c.Run(tr.mark("b"))
		c.Run(tr.mark("c"))
	})

	c.Execute(0)
	assert.Equal(t, []string{"a", "b", "c"}, tr.events)
	assert.True(t, c.Done())
}

func TestCreator_TimedOrdering(t *testing.T) {
	tr := &trace{}
	c := New(func(c *Creator) {
		c.Run(tr.mark("A"))
		c.Wait(time.Second, tr.mark("B"))
		c.Run(tr.mark("C"))
	})

	c.Execute(0)
	assert.Equal(t, []string{"A"}, tr.events)

	c.Execute(time.Second)
	assert.Equal(t, []string{"A", "B", "C"}, tr.events)
	assert.True(t, c.Done())
}

func TestCreator_ChunkingDoesNotChangeOutcome(t *testing.T) {
	build := func(tr *trace) *Creator {
		return New(func(c *Creator) {
			c.Run(tr.mark("A"))
			c.Wait(time.Second, tr.mark("B"))
			c.Wait(500*time.Millisecond, tr.mark("C"))
			c.Run(tr.mark("D"))
		})
	}

	tests := []struct {
		name   string
		chunks []time.Duration
		want   []string
	}{
		{"single", []time.Duration{1500 * time.Millisecond}, []string{"A", "B", "C", "D"}},
		{"halves", []time.Duration{750 * time.Millisecond, 750 * time.Millisecond}, []string{"A", "B", "C", "D"}},
		{"frames", repeat(16*time.Millisecond+666*time.Microsecond, 91), []string{"A", "B", "C", "D"}},
		{"short", []time.Duration{time.Second, 499 * time.Millisecond}, []string{"A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &trace{}
			c := build(tr)
			for _, dt := range tt.chunks {
				c.Execute(dt)
			}
			assert.Equal(t, tt.want, tr.events)
		})
	}
}

func TestCreator_WaitsDoNotShareTime(t *testing.T) {
	tr := &trace{}
	c := New(func(c *Creator) {
		c.Wait(time.Second, tr.mark("first"))
		c.Wait(time.Second, tr.mark("second"))
	})

	c.Execute(time.Second)
	assert.Equal(t, []string{"first"}, tr.events)

	c.Execute(time.Second)
	assert.Equal(t, []string{"first", "second"}, tr.events)
}

func TestCreator_WaitForCondition(t *testing.T) {
	tr := &trace{}
	arrived := false
	c := New(func(c *Creator) {
		c.WaitFor(func() bool { return arrived }, tr.mark("walk"))
		c.Run(tr.mark("talk"))
	})

	c.Execute(time.Second)
	c.Execute(time.Second)
	assert.Equal(t, []string{"walk"}, tr.events, "queue holds until predicate is true")

	arrived = true
	c.Execute(0)
	assert.Equal(t, []string{"walk", "talk"}, tr.events)
}

func TestCreator_SignalGate(t *testing.T) {
	tr := &trace{}
	c := New(func(c *Creator) {
		c.Wait(time.Second, tr.mark("intro"))
		c.WaitForSignal("go", tr.mark("X"))
	})

	c.Execute(time.Second)
	c.Execute(time.Second)
	assert.Equal(t, []string{"intro"}, tr.events)

	c.Signal("go")
	assert.True(t, c.Raised("go"))
	c.Execute(0)
	assert.Equal(t, []string{"intro", "X"}, tr.events)
	assert.False(t, c.Raised("go"), "firing consumes the signal")
}

func TestCreator_SignalBeforeHeadStillCounts(t *testing.T) {
	tr := &trace{}
	c := New(func(c *Creator) {
		c.Wait(time.Second, nil)
		c.WaitForSignal("go", tr.mark("X"))
	})

	c.Execute(0)
	c.Signal("go")
	c.Execute(500 * time.Millisecond)
	assert.Empty(t, tr.events)

	c.Execute(500 * time.Millisecond)
	assert.Equal(t, []string{"X"}, tr.events)
}

func TestCreator_SignalReuse(t *testing.T) {
	count := 0
	c := New(func(c *Creator) {
		c.WaitForDefaultSignal(func() { count++ })
		c.WaitForDefaultSignal(func() { count++ })
	})

	c.Signal(DefaultSignal)
	c.Execute(0)
	assert.Equal(t, 1, count, "second gate needs a fresh signal")

	c.Signal(DefaultSignal)
	c.Execute(0)
	assert.Equal(t, 2, count)
	assert.True(t, c.Done())
}

func TestCreator_NestedSequenceRunsDepthFirst(t *testing.T) {
	tr := &trace{}
	c := New(func(c *Creator) {
		c.Run(tr.mark("before"))
		c.Sequence(func(c *Creator) {
			c.Run(tr.mark("inner-1"))
			c.Wait(time.Second, tr.mark("inner-2"))
		})
		c.Run(tr.mark("after"))
	})

	c.Execute(0)
	assert.Equal(t, []string{"before", "inner-1"}, tr.events)

	c.Execute(500 * time.Millisecond)
	assert.Equal(t, []string{"before", "inner-1"}, tr.events)

	c.Execute(500 * time.Millisecond)
	assert.Equal(t, []string{"before", "inner-1", "inner-2", "after"}, tr.events)
	assert.True(t, c.Done())
}

func TestCreator_NestedSignalsShareTable(t *testing.T) {
	tr := &trace{}
	c := New(func(c *Creator) {
		c.Sequence(func(c *Creator) {
			c.Run(func() { c.Signal("door") })
		})
		c.WaitForSignal("door", tr.mark("open"))
	})

	c.Execute(0)
	assert.Equal(t, []string{"open"}, tr.events)
}

func TestCreator_StepEnqueuedAtRuntimeGoesToEnclosingSequence(t *testing.T) {
	tr := &trace{}
	c := New(func(c *Creator) {
		c.Run(func() {
			tr.mark("say")()
			c.Wait(time.Second, tr.mark("reply"))
		})
		c.Run(tr.mark("next"))
	})

	c.Execute(0)
	assert.Equal(t, []string{"say", "next"}, tr.events)

	c.Execute(time.Second)
	assert.Equal(t, []string{"say", "next", "reply"}, tr.events)
}

func TestCreator_Tween(t *testing.T) {
	var values []float64
	tr := &trace{}
	c := New(func(c *Creator) {
		c.Tween(time.Second, 0, 10, ease.Linear, func(v float64) { values = append(values, v) })
		c.Run(tr.mark("done"))
	})

	c.Execute(0)
	require.NotEmpty(t, values)
	assert.Equal(t, 0.0, values[0])

	c.Execute(500 * time.Millisecond)
	assert.InDelta(t, 5.0, values[len(values)-1], 1e-3)
	assert.Empty(t, tr.events)

	c.Execute(600 * time.Millisecond)
	assert.Equal(t, 10.0, values[len(values)-1])
	assert.Equal(t, []string{"done"}, tr.events)
}

func TestCreator_TweenLeftoverCarriesOver(t *testing.T) {
	build := func(tr *trace) *Creator {
		return New(func(c *Creator) {
			c.Tween(time.Second, 0, 1, ease.Linear, nil)
			c.Wait(time.Second, tr.mark("waited"))
		})
	}
	tests := []struct {
		name string
		dts  []time.Duration
	}{
		{"one call", []time.Duration{0, 2 * time.Second}},
		{"two calls", []time.Duration{0, time.Second, time.Second}},
		{"uneven split", []time.Duration{0, 300 * time.Millisecond, 1500 * time.Millisecond, 200 * time.Millisecond}},
		{"ragged nanoseconds", []time.Duration{time.Second / 3, time.Second / 3, time.Second/3 + 1, time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &trace{}
			c := build(tr)
			for _, dt := range tt.dts {
				c.Execute(dt)
			}
			assert.Equal(t, []string{"waited"}, tr.events)
			assert.True(t, c.Done())
		})
	}

	tr := &trace{}
	c := build(tr)
	c.Execute(2*time.Second - 1)
	assert.Empty(t, tr.events, "one nanosecond short")
	c.Execute(1)
	assert.Equal(t, []string{"waited"}, tr.events)
}

func TestCreator_NodesAreRecycled(t *testing.T) {
	c := New(func(c *Creator) {
		for i := 0; i < 4; i++ {
			c.Run(nil)
		}
	})
	c.Execute(0)
	require.True(t, c.Done())
	arena := len(c.nodes)

	c.Run(nil)
	c.Wait(time.Millisecond, nil)
	assert.Equal(t, arena, len(c.nodes), "finished nodes should be reused")

	c.Execute(time.Millisecond)
	assert.True(t, c.Done())
}

func repeat(d time.Duration, n int) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = d
	}
	return out
}
