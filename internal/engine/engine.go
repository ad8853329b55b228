package engine

import (
	"time"

	"github.com/clambin/cubecycler/internal/cube"
	"github.com/clambin/cubecycler/internal/output"
	"github.com/jonboulle/clockwork"
)

// Phase is the state of the traversal engine
type Phase int

const (
	Init Phase = iota
	Stepping
	StepWait
	EndWait
)

func (p Phase) String() string {
	switch p {
	case Init:
		return "init"
	case Stepping:
		return "stepping"
	case StepWait:
		return "step-wait"
	case EndWait:
		return "end-wait"
	}
	return "unknown"
}

// Configuration holds the bounds and timing of a traversal
type Configuration struct {
	Bounds    cube.Bounds
	StepDelay time.Duration
	Rest      time.Duration
}

// Engine moves a coordinate towards a target one unit per step, without ever blocking the caller.
// Waiting is done by comparing the clock against the time the current timer started.
type Engine struct {
	cfg   Configuration
	sink  output.Sink
	clock clockwork.Clock

	coordinate cube.Coordinate
	phase      Phase
	direction  cube.Delta
	steps      int
	timer      time.Time
}

// New creates an idle Engine, displaying the lowest vertex of the cube
func New(cfg Configuration, sink output.Sink, clock clockwork.Clock) *Engine {
	return &Engine{
		cfg:        cfg,
		sink:       sink,
		clock:      clock,
		coordinate: cfg.Bounds.Materialize(cube.Vertices[0]),
	}
}

// Traverse advances the coordinate towards target as far as the elapsed time allows.
// It returns true once the target has been reached and the end-of-traversal rest has passed,
// or immediately if the coordinate already equals target.
func (e *Engine) Traverse(target cube.Coordinate) bool {
	for {
		switch e.phase {
		case Init:
			delta := target.Sub(e.coordinate)
			if delta.IsZero() {
				return true
			}
			e.direction = delta.Direction()
			e.steps = 0
			e.phase = Stepping
		case Stepping:
			if e.steps >= e.cfg.Bounds.Span() {
				e.timer = e.clock.Now()
				e.phase = EndWait
				continue
			}
			e.coordinate = e.cfg.Bounds.Clamp(e.coordinate.Add(e.direction))
			e.sink.Write(e.coordinate)
			e.steps++
			e.timer = e.clock.Now()
			e.phase = StepWait
		case StepWait:
			if e.clock.Since(e.timer) < e.cfg.StepDelay {
				return false
			}
			e.phase = Stepping
		case EndWait:
			if e.clock.Since(e.timer) < e.cfg.Rest {
				return false
			}
			e.reset()
			return true
		default:
			e.reset()
		}
	}
}

func (e *Engine) reset() {
	e.phase = Init
	e.direction = cube.Delta{}
	e.steps = 0
}

// Idle reports whether no traversal is in progress
func (e *Engine) Idle() bool {
	return e.phase == Init
}

// Phase returns the current state of the engine
func (e *Engine) Phase() Phase {
	return e.phase
}

// Coordinate returns the coordinate last written to the sink
func (e *Engine) Coordinate() cube.Coordinate {
	return e.coordinate
}

// Anchor snaps the coordinate to c. It only takes effect while the engine is idle and returns whether it did.
// The sink is only written if the coordinate actually changed.
func (e *Engine) Anchor(c cube.Coordinate) bool {
	if !e.Idle() {
		return false
	}
	c = e.cfg.Bounds.Clamp(c)
	if c != e.coordinate {
		e.coordinate = c
		e.sink.Write(c)
	}
	return true
}
