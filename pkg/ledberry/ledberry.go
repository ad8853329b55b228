// Package ledberry drives a LED exposed by the Linux LED class driver (/sys/class/leds/<name>).
package ledberry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FullScale is the brightness range callers work in. Values are scaled to the device's max_brightness.
const FullScale = 255

// LED is a single sysfs LED
type LED struct {
	Path           string
	brightnessPath string
	triggerPath    string
	maxBrightness  int
}

// New opens the LED in path. If the device does not report a max_brightness, FullScale is assumed.
func New(path string) (*LED, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("led: %w", err)
	}
	l := LED{
		Path:           path,
		brightnessPath: filepath.Join(path, "brightness"),
		triggerPath:    filepath.Join(path, "trigger"),
		maxBrightness:  FullScale,
	}
	if value, err := readInt(filepath.Join(path, "max_brightness")); err == nil && value > 0 {
		l.maxBrightness = value
	}
	return &l, nil
}

// MaxBrightness returns the highest raw value the device accepts
func (l *LED) MaxBrightness() int {
	return l.maxBrightness
}

// SetBrightness sets the LED to value, in the range [0, FullScale]
func (l *LED) SetBrightness(value int) error {
	if value < 0 {
		value = 0
	}
	if value > FullScale {
		value = FullScale
	}
	raw := value * l.maxBrightness / FullScale
	return os.WriteFile(l.brightnessPath, []byte(strconv.Itoa(raw)), 0644)
}

func (l *LED) getBrightness() (int, error) {
	raw, err := readInt(l.brightnessPath)
	if err != nil {
		return 0, err
	}
	return raw * FullScale / l.maxBrightness, nil
}

// GetActiveMode returns the active trigger, or an empty string if none is marked as active
func (l *LED) GetActiveMode() (string, error) {
	_, active, err := l.readTrigger()
	return active, err
}

// SetActiveMode sets the LED's trigger. "none" hands control of the brightness to the caller.
func (l *LED) SetActiveMode(mode string) error {
	modes, active, err := l.readTrigger()
	if err != nil {
		return err
	}
	if active == mode {
		return nil
	}
	for _, m := range modes {
		if m == mode {
			return os.WriteFile(l.triggerPath, []byte(mode), 0644)
		}
	}
	return errors.New("invalid mode: " + mode)
}

func (l *LED) readTrigger() (modes []string, active string, err error) {
	content, err := os.ReadFile(l.triggerPath)
	if err != nil {
		return nil, "", err
	}
	for _, mode := range strings.Fields(string(content)) {
		if length := len(mode); length > 2 && mode[0] == '[' && mode[length-1] == ']' {
			mode = mode[1 : length-1]
			active = mode
		}
		modes = append(modes, mode)
	}
	if len(modes) == 0 {
		return nil, "", errors.New("no triggers found")
	}
	return modes, active, nil
}

func readInt(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(content)))
}
