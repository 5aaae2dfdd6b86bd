package form

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-pestel/pkg/analysis"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger. Failures are always logged here even
// when the caller discards the returned error.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithInitialInput seeds the draft, e.g. with values from flags.
func WithInitialInput(input analysis.FormInput) Option {
	return func(c *Controller) {
		c.draft = input.Normalized()
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
