// Package logging builds the stderr diagnostic logger. The core parse and
// compute packages never log; only the CLI layer carries a logger.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a timestamped logger writing to stderr at the given
// threshold. verbosity raises the threshold one level per step (-v),
// capping at debug.
func New(level string, verbosity int) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	for i := 0; i < verbosity; i++ {
		if lvl >= logrus.DebugLevel {
			break
		}
		lvl++
	}
	log.SetLevel(lvl)
	return log
}
