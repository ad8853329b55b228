package output

import (
	"github.com/clambin/cubecycler/internal/cube"
	log "github.com/sirupsen/logrus"
)

// Log writes every coordinate to the log at debug level. Used when no LED hardware is available.
type Log struct {
	Logger log.FieldLogger
}

var _ Sink = Log{}

func (l Log) Write(c cube.Coordinate) {
	logger := l.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	logger.WithFields(log.Fields{"red": c.X, "green": c.Y, "blue": c.Z, "color": c.Hex()}).Debug("led")
}
