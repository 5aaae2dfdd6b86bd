// Package logging builds the logrus logger shared by the CLI and server.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// TimestampFormat is used for every log line.
const TimestampFormat = "2006-01-02 15:04:05"

// New returns a text logger at level, writing to console and, when file is
// set, appending to it as well. Unknown levels fall back to info. The
// returned close func releases the log file and is never nil.
func New(level, file string, console io.Writer) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: TimestampFormat,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{console}
	closeFn := func() error { return nil }
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closeFn, fmt.Errorf("logging: open %s: %w", file, err)
		}
		writers = append(writers, f)
		closeFn = f.Close
	}
	logger.SetOutput(io.MultiWriter(writers...))

	return logger, closeFn, nil
}
