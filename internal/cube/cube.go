package cube

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Coordinate holds the value of the three color channels (red, green, blue)
type Coordinate struct {
	X int
	Y int
	Z int
}

// Sub returns the per-axis difference c - other
func (c Coordinate) Sub(other Coordinate) Delta {
	return Delta{X: c.X - other.X, Y: c.Y - other.Y, Z: c.Z - other.Z}
}

// Add moves the coordinate by the provided delta
func (c Coordinate) Add(d Delta) Coordinate {
	return Coordinate{X: c.X + d.X, Y: c.Y + d.Y, Z: c.Z + d.Z}
}

// Hex renders the coordinate as an RGB hex string, e.g. #0a0aff
func (c Coordinate) Hex() string {
	return colorful.Color{
		R: float64(clamp(c.X, 0, 255)) / 255,
		G: float64(clamp(c.Y, 0, 255)) / 255,
		B: float64(clamp(c.Z, 0, 255)) / 255,
	}.Hex()
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Delta is a signed per-axis difference between two coordinates
type Delta struct {
	X int
	Y int
	Z int
}

// IsZero reports whether no axis changes
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// Direction reduces every axis to its sign: -1, 0 or 1
func (d Delta) Direction() Delta {
	return Delta{X: sign(d.X), Y: sign(d.Y), Z: sign(d.Z)}
}

// Bounds is the closed range [Min, Max] every axis of a Coordinate is kept in
type Bounds struct {
	Min int
	Max int
}

// DefaultBounds keeps the LED from switching off completely at the low end
var DefaultBounds = Bounds{Min: 10, Max: 255}

// Validate checks that the bounds describe a usable PWM range
func (b Bounds) Validate() error {
	if b.Min < 0 || b.Max > 255 {
		return fmt.Errorf("bounds [%d, %d] outside of PWM range [0, 255]", b.Min, b.Max)
	}
	if b.Min >= b.Max {
		return errors.New("min must be lower than max")
	}
	return nil
}

// Span returns the number of unit steps needed to cross one edge of the cube
func (b Bounds) Span() int {
	return b.Max - b.Min
}

// Clamp moves every axis of c inside the bounds
func (b Bounds) Clamp(c Coordinate) Coordinate {
	return Coordinate{
		X: clamp(c.X, b.Min, b.Max),
		Y: clamp(c.Y, b.Min, b.Max),
		Z: clamp(c.Z, b.Min, b.Max),
	}
}

// Contains reports whether every axis of c lies inside the bounds
func (b Bounds) Contains(c Coordinate) bool {
	return b.Clamp(c) == c
}

// Materialize maps each boolean axis of the vertex to Min or Max
func (b Bounds) Materialize(v Vertex) Coordinate {
	return Coordinate{X: b.level(v.X), Y: b.level(v.Y), Z: b.level(v.Z)}
}

func (b Bounds) level(on bool) int {
	if on {
		return b.Max
	}
	return b.Min
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
