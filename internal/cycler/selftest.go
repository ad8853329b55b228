package cycler

import (
	"context"
	"time"

	"github.com/clambin/cubecycler/internal/cube"
	"github.com/clambin/cubecycler/internal/output"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

// SelfTest switches each channel fully on and then off again, red first, to verify the wiring.
// Each state is held for hold.
func SelfTest(ctx context.Context, sink output.Sink, hold time.Duration, clock clockwork.Clock) error {
	log.Info("running self test")
	steps := []struct {
		channel string
		c       cube.Coordinate
	}{
		{"red", cube.Coordinate{X: 255}},
		{"", cube.Coordinate{}},
		{"green", cube.Coordinate{Y: 255}},
		{"", cube.Coordinate{}},
		{"blue", cube.Coordinate{Z: 255}},
		{"", cube.Coordinate{}},
	}
	for _, step := range steps {
		if step.channel != "" {
			log.WithField("channel", step.channel).Debug("self test")
		}
		sink.Write(step.c)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(hold):
		}
	}
	log.Info("self test done")
	return nil
}
