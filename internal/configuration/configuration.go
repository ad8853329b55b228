package configuration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/clambin/cubecycler/internal/cube"
	"github.com/clambin/cubecycler/internal/engine"
	"github.com/clambin/cubecycler/internal/selector"
	"gopkg.in/alecthomas/kingpin.v2"
	"periph.io/x/conn/v3/physic"
)

// BuildVersion is set at build time
var BuildVersion = "change-me"

const (
	OutputSysfs = "sysfs"
	OutputPWM   = "pwm"
	OutputLog   = "log"
)

type Configuration struct {
	Debug          bool
	PrometheusAddr string
	Poll           time.Duration
	Traversal      TraversalConfiguration
	Selector       SelectorConfiguration
	Output         OutputConfiguration
	SelfTest       SelfTestConfiguration
}

type TraversalConfiguration struct {
	Min       int
	Max       int
	StepDelay time.Duration
	Rest      time.Duration
}

type SelectorConfiguration struct {
	Mode string
	Path selector.Path
}

type OutputConfiguration struct {
	Mode         string
	Red          string
	Green        string
	Blue         string
	PWMFrequency physic.Frequency
}

type SelfTestConfiguration struct {
	Enabled bool
	Hold    time.Duration
}

// Bounds returns the configured range of each color channel
func (t TraversalConfiguration) Bounds() cube.Bounds {
	return cube.Bounds{Min: t.Min, Max: t.Max}
}

// Engine returns the traversal engine's configuration
func (t TraversalConfiguration) Engine() engine.Configuration {
	return engine.Configuration{Bounds: t.Bounds(), StepDelay: t.StepDelay, Rest: t.Rest}
}

// GetConfigFromArgs parses the command line arguments and validates the resulting configuration
func GetConfigFromArgs(args []string) (Configuration, error) {
	var cfg Configuration
	var path string

	a := kingpin.New(filepath.Base(os.Args[0]), "RGB cube color cycler")
	a.Version(BuildVersion)
	a.HelpFlag.Short('h')
	a.VersionFlag.Short('v')
	a.Flag("debug", "Log debug messages").Short('d').Default("false").BoolVar(&cfg.Debug)
	a.Flag("prometheus", "Prometheus metrics listener address (empty: no metrics)").Default("").StringVar(&cfg.PrometheusAddr)
	a.Flag("poll", "Interval between two passes of the cycler").Default("1ms").DurationVar(&cfg.Poll)
	a.Flag("min", "Lowest value of a color channel").Default("10").IntVar(&cfg.Traversal.Min)
	a.Flag("max", "Highest value of a color channel").Default("255").IntVar(&cfg.Traversal.Max)
	a.Flag("step-delay", "Delay between two steps of a traversal").Default("4ms").DurationVar(&cfg.Traversal.StepDelay)
	a.Flag("rest", "Delay after reaching a vertex").Default("500ms").DurationVar(&cfg.Traversal.Rest)
	a.Flag("mode", "Vertex selection mode (random, uniform or path)").Short('m').Default(selector.ModeRandom).EnumVar(&cfg.Selector.Mode, selector.Modes...)
	a.Flag("path", "Vertex pairs to follow in path mode, as hex bytes (e.g. 01,37,64)").Default(selector.DefaultPath.String()).StringVar(&path)
	a.Flag("output", "LED output (sysfs, pwm or log)").Short('o').Default(OutputSysfs).EnumVar(&cfg.Output.Mode, OutputSysfs, OutputPWM, OutputLog)
	a.Flag("red", "Red channel: sysfs LED directory or GPIO pin name").Default("/sys/class/leds/red").StringVar(&cfg.Output.Red)
	a.Flag("green", "Green channel: sysfs LED directory or GPIO pin name").Default("/sys/class/leds/green").StringVar(&cfg.Output.Green)
	a.Flag("blue", "Blue channel: sysfs LED directory or GPIO pin name").Default("/sys/class/leds/blue").StringVar(&cfg.Output.Blue)
	a.Flag("pwm-frequency", "PWM frequency in pwm output mode").Default("1kHz").SetValue(&cfg.Output.PWMFrequency)
	a.Flag("self-test", "Switch each channel on and off at startup").Default("false").BoolVar(&cfg.SelfTest.Enabled)
	a.Flag("self-test-hold", "Time each channel is held on or off during the self test").Default("500ms").DurationVar(&cfg.SelfTest.Hold)

	if _, err := a.Parse(args); err != nil {
		return cfg, fmt.Errorf("invalid command line arguments: %w", err)
	}

	var err error
	if cfg.Selector.Path, err = selector.ParsePath(path); err != nil {
		return cfg, fmt.Errorf("invalid path: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration. Any error is a fatal misconfiguration.
func (c Configuration) Validate() error {
	if err := c.Traversal.Bounds().Validate(); err != nil {
		return fmt.Errorf("invalid bounds: %w", err)
	}
	if c.Traversal.StepDelay < 0 || c.Traversal.Rest < 0 || c.SelfTest.Hold < 0 {
		return errors.New("delays cannot be negative")
	}
	if c.Poll <= 0 {
		return errors.New("poll interval must be positive")
	}
	if c.Selector.Mode == selector.ModePath {
		if err := c.Selector.Path.Validate(); err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}
	if c.Output.Mode != OutputLog && (c.Output.Red == "" || c.Output.Green == "" || c.Output.Blue == "") {
		return errors.New("red, green and blue outputs must be set")
	}
	if c.Output.Mode == OutputPWM && c.Output.PWMFrequency <= 0 {
		return errors.New("pwm frequency must be positive")
	}
	return nil
}
