package output

import (
	"errors"
	"fmt"

	"github.com/clambin/cubecycler/internal/cube"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// PWM drives three PWM-capable GPIO pins, one per color channel
type PWM struct {
	health
	pins      [3]gpio.PinIO
	frequency physic.Frequency
}

var _ Sink = &PWM{}

// NewPWM initialises the host drivers and looks up the red, green and blue pins by name (e.g. GPIO12)
func NewPWM(red, green, blue string, frequency physic.Frequency) (*PWM, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph: %w", err)
	}
	var pins [3]gpio.PinIO
	for i, name := range []string{red, green, blue} {
		if pins[i] = gpioreg.ByName(name); pins[i] == nil {
			return nil, fmt.Errorf("unknown pin: %s", name)
		}
	}
	return NewPWMFromPins(pins, frequency)
}

// NewPWMFromPins creates a PWM sink for pins that have already been looked up
func NewPWMFromPins(pins [3]gpio.PinIO, frequency physic.Frequency) (*PWM, error) {
	if frequency <= 0 {
		return nil, errors.New("pwm frequency must be positive")
	}
	for _, p := range pins {
		if p == nil {
			return nil, errors.New("missing pin")
		}
	}
	return &PWM{health: health{name: "pwm"}, pins: pins, frequency: frequency}, nil
}

// Write sets the duty cycle of each pin
func (p *PWM) Write(c cube.Coordinate) {
	var firstErr error
	for i, value := range [3]int{c.X, c.Y, c.Z} {
		if err := p.pins[i].PWM(Duty(value), p.frequency); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", p.pins[i].Name(), err)
		}
	}
	p.record(firstErr)
}

// Halt stops PWM output on all pins
func (p *PWM) Halt() error {
	var err error
	for _, pin := range p.pins {
		err = errors.Join(err, pin.Halt())
	}
	return err
}

// Duty converts a channel value in [0, 255] to a duty cycle
func Duty(value int) gpio.Duty {
	if value <= 0 {
		return 0
	}
	if value >= 255 {
		return gpio.DutyMax
	}
	return gpio.Duty(int64(value) * int64(gpio.DutyMax) / 255)
}
