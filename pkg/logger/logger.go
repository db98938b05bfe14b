package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	verboseMode bool
	log         = logrus.New()
)

func init() {
	// Diagnostics go to stderr so stdout stays clean for the summary table
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
}

// Configure sets the log level ("debug", "info", "warn", "error") and format ("text" or "json").
// An invalid level falls back to info.
func Configure(level, format string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.Warnf("Invalid log level '%s', using 'info' instead", level)
		lvl = logrus.InfoLevel
	}
	if verboseMode {
		lvl = logrus.DebugLevel
	}
	log.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(verbose bool) {
	verboseMode = verbose
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else if log.GetLevel() == logrus.DebugLevel {
		log.SetLevel(logrus.InfoLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return verboseMode
}

// Debugf logs a formatted debug message if verbose mode is enabled.
func Debugf(format string, v ...interface{}) {
	log.Debugf(format, v...)
}

// Infof logs a formatted informational message.
func Infof(format string, v ...interface{}) {
	log.Infof(format, v...)
}

// Warnf logs a formatted warning.
func Warnf(format string, v ...interface{}) {
	log.Warnf(format, v...)
}

// Errorf logs a formatted error message.
func Errorf(format string, v ...interface{}) {
	log.Errorf(format, v...)
}

// WithField returns an entry carrying one structured field.
func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}
