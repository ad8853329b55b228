package selector

import (
	"fmt"
	"time"
)

// Selection is the vertex a Selector picked. Wrapped is set when a fixed path started over,
// telling the caller to re-anchor the displayed coordinate once the vertex is reached.
type Selection struct {
	Index   int
	Wrapped bool
}

// Selector determines the next cube vertex to move towards
type Selector interface {
	Next(elapsed time.Duration, count int) Selection
}

const (
	ModeRandom  = "random"
	ModeUniform = "uniform"
	ModePath    = "path"
)

// Modes lists the supported selection strategies
var Modes = []string{
	ModeRandom,
	ModeUniform,
	ModePath,
}

// New creates the Selector for the provided mode. path is only used in path mode. If path is empty, DefaultPath is used.
func New(mode string, path Path) (Selector, error) {
	switch mode {
	case ModeRandom:
		return &DigitSum{}, nil
	case ModeUniform:
		return &Uniform{}, nil
	case ModePath:
		if len(path) == 0 {
			path = DefaultPath
		}
		if err := path.Validate(); err != nil {
			return nil, err
		}
		return &PathSelector{Path: path}, nil
	}
	return nil, fmt.Errorf("invalid mode: %s", mode)
}
