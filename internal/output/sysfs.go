package output

import (
	"fmt"

	"github.com/clambin/cubecycler/internal/cube"
	"github.com/clambin/cubecycler/pkg/ledberry"
	log "github.com/sirupsen/logrus"
)

// Sysfs drives three LEDs of the Linux LED class driver, one per color channel
type Sysfs struct {
	health
	channels [3]*ledberry.LED
}

var _ Sink = &Sysfs{}

// NewSysfs opens the red, green and blue LED directories and puts each LED under manual control
func NewSysfs(red, green, blue string) (*Sysfs, error) {
	s := Sysfs{health: health{name: "sysfs"}}
	for i, path := range []string{red, green, blue} {
		l, err := ledberry.New(path)
		if err != nil {
			return nil, err
		}
		trigger, err := l.GetActiveMode()
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read trigger mode: %w", path, err)
		}
		if err = l.SetActiveMode("none"); err != nil {
			return nil, fmt.Errorf("%s: failed to set trigger mode: %w", path, err)
		}
		log.WithFields(log.Fields{
			"led":            path,
			"trigger":        trigger,
			"max_brightness": l.MaxBrightness(),
		}).Debug("led opened")
		s.channels[i] = l
	}
	return &s, nil
}

// Write sets the brightness of each LED. A failing channel does not prevent the others from being set.
func (s *Sysfs) Write(c cube.Coordinate) {
	var firstErr error
	for i, value := range [3]int{c.X, c.Y, c.Z} {
		if err := s.channels[i].SetBrightness(value); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", s.channels[i].Path, err)
		}
	}
	s.record(firstErr)
}
