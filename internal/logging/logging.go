// Package logging configures the process-wide logrus logger.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger with the given level and format.
// Unknown levels fall back to info.
func Setup(level, format string) {
	logrus.SetOutput(os.Stdout)

	if strings.EqualFold(format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logrus.SetLevel(logrus.InfoLevel)
		if level != "" {
			logrus.WithField("level", level).Warn("Unknown log level, using info")
		}
		return
	}
	logrus.SetLevel(lvl)
}
