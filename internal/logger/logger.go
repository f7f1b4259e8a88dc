package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init with logrus
// defaults so library code and tests never see a nil logger.
var Log = logrus.New()

// Init configures the global logger from the configured level and format.
// LOG_LEVEL and LOG_FORMAT override the configured values when set.
func Init(level, format string) {
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		level = v
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if v, ok := os.LookupEnv("LOG_FORMAT"); ok {
		format = v
	}
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Silence discards all output, for tests and batch jobs
func Silence() {
	Log.SetOutput(io.Discard)
}

// For returns an entry tagged with the component name
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
