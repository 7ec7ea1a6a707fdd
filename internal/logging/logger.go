package logging

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// New builds the process logger: JSON output in production, readable text
// everywhere else. Unknown levels fall back to info.
func New(logLevel, environment string) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.ToLower(environment) == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}

// WithComponent tags log entries with the owning component name. A nil
// logger yields a standalone entry so tests can skip logger setup.
func WithComponent(logger *logrus.Logger, component string) *logrus.Entry {
	if logger == nil {
		logger = logrus.New()
	}
	return logger.WithField("component", component)
}
