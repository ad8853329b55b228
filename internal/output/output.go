package output

import (
	"sync"

	"github.com/clambin/cubecycler/internal/cube"
)

// Sink receives every coordinate the traversal engine produces and sets the three color channels accordingly.
// Sinks handle their own I/O failures: a failing write must never stop the light show.
type Sink interface {
	Write(c cube.Coordinate)
}

// Multi writes every coordinate to all of its sinks
type Multi []Sink

var _ Sink = Multi{}

func (m Multi) Write(c cube.Coordinate) {
	for _, s := range m {
		s.Write(c)
	}
}

// Recorder keeps every coordinate written to it
type Recorder struct {
	writes []cube.Coordinate
	lock   sync.RWMutex
}

var _ Sink = &Recorder{}

func (r *Recorder) Write(c cube.Coordinate) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.writes = append(r.writes, c)
}

// Writes returns a copy of all recorded coordinates
func (r *Recorder) Writes() []cube.Coordinate {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return append([]cube.Coordinate(nil), r.writes...)
}

// Count returns the number of recorded coordinates
func (r *Recorder) Count() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.writes)
}

// Last returns the last recorded coordinate
func (r *Recorder) Last() (cube.Coordinate, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if len(r.writes) == 0 {
		return cube.Coordinate{}, false
	}
	return r.writes[len(r.writes)-1], true
}

// Reset discards all recorded coordinates
func (r *Recorder) Reset() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.writes = nil
}
