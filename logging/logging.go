package logging

import (
	"io"
	"os"

	"github.com/kmcsr/go-logger"
	logrusl "github.com/kmcsr/go-logger/logrus"
	"github.com/sirupsen/logrus"
)

// New returns a logrus-backed logger writing to stderr.
func New(debug bool) logger.Logger {
	loger := logrusl.New()
	logrusl.Unwrap(loger).SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05.000",
		FullTimestamp:   true,
	})
	loger.SetOutput(os.Stderr)
	if debug {
		loger.SetLevel(logger.DebugLevel)
	} else {
		loger.SetLevel(logger.InfoLevel)
	}
	return loger
}

// Discard returns a logger that drops everything.
func Discard() logger.Logger {
	loger := logrusl.New()
	loger.SetOutput(io.Discard)
	return loger
}
