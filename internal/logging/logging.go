package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup returns a logger configured from the log.level and log.format
// config keys. Unknown values fall back to info / text.
func Setup(level, format string) *logrus.Logger {
	log := logrus.New()

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// Discard returns a logger that drops everything. Commands fall back to
// it when no configured logger is available, as in tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
