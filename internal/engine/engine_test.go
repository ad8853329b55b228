package engine_test

import (
	"testing"
	"time"

	"github.com/clambin/cubecycler/internal/cube"
	"github.com/clambin/cubecycler/internal/engine"
	"github.com/clambin/cubecycler/internal/output"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var cfg = engine.Configuration{
	Bounds:    cube.DefaultBounds,
	StepDelay: time.Millisecond,
	Rest:      100 * time.Millisecond,
}

type fataler interface {
	Helper()
	Fatal(args ...any)
}

// run drives e until it completes, advancing the clock by tick between invocations
func run(t fataler, e *engine.Engine, clock *clockwork.FakeClock, target cube.Coordinate, tick time.Duration) int {
	t.Helper()
	for calls := 1; calls < 100000; calls++ {
		if e.Traverse(target) {
			return calls
		}
		clock.Advance(tick)
	}
	t.Fatal("traversal did not complete")
	return 0
}

func TestEngine_Traverse_BlackToWhite(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var r output.Recorder
	e := engine.New(cfg, &r, clock)

	white := cfg.Bounds.Materialize(cube.Vertices[7])
	run(t, e, clock, white, time.Millisecond)

	writes := r.Writes()
	require.Len(t, writes, 245)
	for i, c := range writes {
		v := 11 + i
		assert.Equal(t, cube.Coordinate{X: v, Y: v, Z: v}, c)
	}
	assert.Equal(t, white, writes[len(writes)-1])
	assert.Equal(t, white, e.Coordinate())
	assert.True(t, e.Idle())
}

func TestEngine_Traverse_SameVertex(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var r output.Recorder
	e := engine.New(cfg, &r, clock)

	assert.True(t, e.Traverse(cfg.Bounds.Materialize(cube.Vertices[0])))
	assert.Zero(t, r.Count())
	assert.Equal(t, engine.Init, e.Phase())
}

func TestEngine_Traverse_NonBlocking(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var r output.Recorder
	e := engine.New(cfg, &r, clock)
	target := cfg.Bounds.Materialize(cube.Vertices[1])

	assert.False(t, e.Traverse(target))
	assert.Equal(t, 1, r.Count())
	assert.Equal(t, engine.StepWait, e.Phase())

	// time has not moved: nothing happens
	for i := 0; i < 10; i++ {
		assert.False(t, e.Traverse(target))
	}
	assert.Equal(t, 1, r.Count())

	// irregular scheduling: several steps' worth of time only yields one step per invocation
	clock.Advance(10 * time.Millisecond)
	assert.False(t, e.Traverse(target))
	assert.Equal(t, 2, r.Count())
	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, cube.Coordinate{X: 12, Y: 10, Z: 10}, last)
}

func TestEngine_Traverse_Rest(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var r output.Recorder
	e := engine.New(engine.Configuration{Bounds: cube.Bounds{Min: 0, Max: 2}, StepDelay: time.Millisecond, Rest: time.Second}, &r, clock)
	target := cube.Coordinate{X: 2, Y: 0, Z: 0}

	assert.False(t, e.Traverse(target))
	clock.Advance(time.Millisecond)
	assert.False(t, e.Traverse(target))
	assert.Equal(t, 2, r.Count())
	clock.Advance(time.Millisecond)
	assert.False(t, e.Traverse(target))
	assert.Equal(t, engine.EndWait, e.Phase())

	clock.Advance(999 * time.Millisecond)
	assert.False(t, e.Traverse(target))
	clock.Advance(time.Millisecond)
	assert.True(t, e.Traverse(target))
	assert.Equal(t, 2, r.Count())
	assert.True(t, e.Idle())
}

func TestEngine_Traverse_Idempotent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var r output.Recorder
	e := engine.New(cfg, &r, clock)
	target := cfg.Bounds.Materialize(cube.Vertices[5])

	run(t, e, clock, target, time.Millisecond)
	count := r.Count()

	for i := 0; i < 10; i++ {
		clock.Advance(time.Second)
		assert.True(t, e.Traverse(target))
	}
	assert.Equal(t, target, e.Coordinate())
	assert.Equal(t, count, r.Count())
}

func TestEngine_Anchor(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var r output.Recorder
	e := engine.New(cfg, &r, clock)

	assert.True(t, e.Anchor(cfg.Bounds.Materialize(cube.Vertices[0])))
	assert.Zero(t, r.Count())

	assert.False(t, e.Traverse(cfg.Bounds.Materialize(cube.Vertices[2])))
	assert.False(t, e.Anchor(cfg.Bounds.Materialize(cube.Vertices[0])))

	run(t, e, clock, cfg.Bounds.Materialize(cube.Vertices[2]), time.Millisecond)
	r.Reset()
	assert.True(t, e.Anchor(cube.Coordinate{X: 0, Y: 300, Z: 10}))
	assert.Equal(t, cube.Coordinate{X: 10, Y: 255, Z: 10}, e.Coordinate())
	assert.Zero(t, r.Count())

	// off-vertex: anchoring moves the coordinate and writes it once
	assert.True(t, e.Anchor(cube.Coordinate{X: 12, Y: 250, Z: 10}))
	assert.True(t, e.Anchor(cfg.Bounds.Materialize(cube.Vertices[2])))
	assert.Equal(t, []cube.Coordinate{{X: 12, Y: 250, Z: 10}, {X: 10, Y: 255, Z: 10}}, r.Writes())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "init", engine.Init.String())
	assert.Equal(t, "stepping", engine.Stepping.String())
	assert.Equal(t, "step-wait", engine.StepWait.String())
	assert.Equal(t, "end-wait", engine.EndWait.String())
	assert.Equal(t, "unknown", engine.Phase(-1).String())
}

func TestEngine_Traverse_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		low := rapid.IntRange(0, 250).Draw(t, "min")
		bounds := cube.Bounds{Min: low, Max: rapid.IntRange(low+1, 255).Draw(t, "max")}
		from := rapid.IntRange(0, cube.VertexCount-1).Draw(t, "from")
		to := rapid.IntRange(0, cube.VertexCount-1).Draw(t, "to")
		tick := time.Duration(rapid.IntRange(1, 5).Draw(t, "tick")) * time.Millisecond

		clock := clockwork.NewFakeClock()
		var r output.Recorder
		e := engine.New(engine.Configuration{Bounds: bounds, StepDelay: 2 * time.Millisecond, Rest: 5 * time.Millisecond}, &r, clock)
		start := bounds.Materialize(cube.Vertices[from])
		target := bounds.Materialize(cube.Vertices[to])
		e.Anchor(start)
		r.Reset()

		calls := run(t, e, clock, target, tick)

		if from == to {
			if calls != 1 || r.Count() != 0 {
				t.Fatalf("same vertex: %d calls, %d writes", calls, r.Count())
			}
			return
		}
		if r.Count() != bounds.Span() {
			t.Fatalf("got %d writes, want %d", r.Count(), bounds.Span())
		}
		if e.Coordinate() != target {
			t.Fatalf("ended at %v, want %v", e.Coordinate(), target)
		}
		previous := start
		for _, c := range r.Writes() {
			if !between(c.X, start.X, target.X) || !between(c.Y, start.Y, target.Y) || !between(c.Z, start.Z, target.Z) {
				t.Fatalf("%v not between %v and %v", c, start, target)
			}
			if abs(c.X-previous.X) > 1 || abs(c.Y-previous.Y) > 1 || abs(c.Z-previous.Z) > 1 {
				t.Fatalf("jump from %v to %v", previous, c)
			}
			previous = c
		}
	})
}

func TestEngine_Traverse_NoDelay(t *testing.T) {
	var r output.Recorder
	e := engine.New(engine.Configuration{Bounds: cube.DefaultBounds}, &r, clockwork.NewFakeClock())

	assert.True(t, e.Traverse(cube.DefaultBounds.Materialize(cube.Vertices[6])))
	assert.Equal(t, cube.DefaultBounds.Span(), r.Count())
}

func between(v, a, b int) bool {
	if a > b {
		a, b = b, a
	}
	return v >= a && v <= b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
