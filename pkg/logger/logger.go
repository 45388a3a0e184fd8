package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a configured logger. The instance is passed into services
// explicitly; nothing in this module reaches for a package-global logger.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return log
}
