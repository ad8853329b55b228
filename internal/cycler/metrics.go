package cycler

import (
	"strconv"

	"github.com/clambin/cubecycler/internal/cube"
	"github.com/clambin/cubecycler/internal/output"
	"github.com/prometheus/client_golang/prometheus"
)

var _ prometheus.Collector = &Metrics{}
var _ output.Sink = &Metrics{}

// Metrics records the progress of the light show. It sits next to the LED sink, so it sees every step.
type Metrics struct {
	traversals *prometheus.CounterVec
	steps      prometheus.Counter
	channel    *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		traversals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cubecycler_traversals_total",
				Help: "Number of completed traversals, by destination vertex",
			},
			[]string{"vertex"},
		),
		steps: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cubecycler_steps_total",
				Help: "Number of coordinates written to the LEDs",
			},
		),
		channel: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cubecycler_channel_value",
				Help: "Current value of each color channel",
			},
			[]string{"channel"},
		),
	}
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.traversals.Describe(ch)
	m.steps.Describe(ch)
	m.channel.Describe(ch)
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.traversals.Collect(ch)
	m.steps.Collect(ch)
	m.channel.Collect(ch)
}

// Write records a coordinate written to the LEDs
func (m *Metrics) Write(c cube.Coordinate) {
	m.steps.Inc()
	m.channel.WithLabelValues("red").Set(float64(c.X))
	m.channel.WithLabelValues("green").Set(float64(c.Y))
	m.channel.WithLabelValues("blue").Set(float64(c.Z))
}

func (m *Metrics) traversal(to int) {
	m.traversals.WithLabelValues(strconv.Itoa(to)).Inc()
}
