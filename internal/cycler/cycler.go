package cycler

import (
	"context"
	"time"

	"github.com/clambin/cubecycler/internal/cube"
	"github.com/clambin/cubecycler/internal/engine"
	"github.com/clambin/cubecycler/internal/output"
	"github.com/clambin/cubecycler/internal/selector"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

// Cycler walks the vertices of the color cube: it asks the selector for the next vertex and drives the
// engine until that vertex is reached, over and over again.
type Cycler struct {
	Metrics  *Metrics
	bounds   cube.Bounds
	sink     output.Sink
	selector selector.Selector
	engine   *engine.Engine
	clock    clockwork.Clock
	start    time.Time

	previous int
	target   int
	wrapped  bool
	active   bool
}

// New creates a Cycler. The displayed coordinate starts at vertex 0.
func New(cfg engine.Configuration, s selector.Selector, sink output.Sink, clock clockwork.Clock) *Cycler {
	m := NewMetrics()
	sink = output.Multi{sink, m}
	return &Cycler{
		Metrics:  m,
		bounds:   cfg.Bounds,
		sink:     sink,
		selector: s,
		engine:   engine.New(cfg, sink, clock),
		clock:    clock,
		start:    clock.Now(),
	}
}

// Tick runs one cooperative pass: pick a new target if the previous one was reached, then advance the engine.
// It never blocks.
func (c *Cycler) Tick() {
	if !c.active {
		sel := c.selector.Next(c.clock.Since(c.start), cube.VertexCount)
		c.target, c.wrapped, c.active = sel.Index, sel.Wrapped, true
		log.WithFields(log.Fields{
			"from":  c.previous,
			"to":    c.target,
			"color": c.bounds.Materialize(cube.Vertices[c.target]).Hex(),
		}).Debug("next vertex")
	}

	target := c.bounds.Materialize(cube.Vertices[c.target])
	if !c.engine.Traverse(target) {
		return
	}

	if c.wrapped {
		// path started over. The bridging traversal already ends on the vertex, so this is a no-op
		// safeguard: it only writes if the coordinate ever drifted off the vertex.
		c.engine.Anchor(target)
	}
	c.Metrics.traversal(c.target)
	c.previous = c.target
	c.active = false
}

// Run writes the current coordinate and then calls Tick every interval until the context is cancelled
func (c *Cycler) Run(ctx context.Context, interval time.Duration) error {
	log.WithField("interval", interval).Info("cycler started")
	defer log.Info("cycler stopped")

	c.sink.Write(c.engine.Coordinate())
	ticker := c.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			c.Tick()
		}
	}
}

// Coordinate returns the coordinate currently displayed
func (c *Cycler) Coordinate() cube.Coordinate {
	return c.engine.Coordinate()
}

// Previous returns the last vertex that was reached
func (c *Cycler) Previous() int {
	return c.previous
}
