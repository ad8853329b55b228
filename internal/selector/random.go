package selector

import "time"

// DigitSum picks a vertex by summing the decimal digits of the elapsed time in milliseconds.
// It needs no seed and varies with real time, which is all a light show needs.
type DigitSum struct{}

var _ Selector = DigitSum{}

// Next returns an index in [0, count)
func (DigitSum) Next(elapsed time.Duration, count int) Selection {
	if count <= 1 {
		return Selection{}
	}
	return Selection{Index: digitSum(elapsed.Milliseconds()) % count}
}

func digitSum(value int64) int {
	if value < 0 {
		value = -value
	}
	var sum int
	for ; value > 0; value /= 10 {
		sum += int(value % 10)
	}
	return sum
}
