package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func InitLogger() {
	// Output to stdout instead of the default stderr
	Log.Out = os.Stdout

	// Set JSON formatter for structured logging
	Log.SetFormatter(&logrus.JSONFormatter{})

	// Log level can be changed depending on environment
	if os.Getenv("APP_ENV") == "production" {
		Log.SetLevel(logrus.InfoLevel)
	} else {
		Log.SetLevel(logrus.DebugLevel)
	}
}
