package output

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// health tracks consecutive write failures of a sink, so a broken channel is logged once rather than on every step
type health struct {
	name     string
	failures int
	lock     sync.Mutex
}

func (h *health) record(err error) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if err != nil {
		if h.failures == 0 {
			log.WithError(err).WithField("sink", h.name).Warning("failed to set led")
		}
		h.failures++
		return
	}
	if h.failures > 0 {
		log.WithFields(log.Fields{"sink": h.name, "failures": h.failures}).Info("led recovered")
	}
	h.failures = 0
}

// Failures returns the number of consecutive failed writes
func (h *health) Failures() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.failures
}
