package selector

import (
	"time"

	"k8s.io/apimachinery/pkg/util/rand"
)

// Uniform picks a vertex at random, seeded from the elapsed time on first use.
// It tries not to pick the same vertex twice in a row.
type Uniform struct {
	seeded bool
	last   int
}

var _ Selector = &Uniform{}

// Next returns an index in [0, count)
func (s *Uniform) Next(elapsed time.Duration, count int) Selection {
	if !s.seeded {
		rand.Seed(int64(elapsed) + time.Now().UnixNano())
		s.seeded = true
		s.last = -1
	}
	if count <= 1 {
		return Selection{}
	}

	var next int
	for i := 0; i < 5; i++ {
		next = rand.Intn(count)
		if next != s.last {
			break
		}
	}
	s.last = next
	return Selection{Index: next}
}
