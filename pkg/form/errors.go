package form

import (
	"errors"
	"fmt"
)

// ErrSubmitInProgress is returned when Submit is called while another
// submission is still running.
var ErrSubmitInProgress = errors.New("form: submission already in progress")

// Kind classifies submission failures.
type Kind string

const (
	// KindValidation means a required field was empty; nothing was sent.
	KindValidation Kind = "validation"
	// KindNetwork covers transport failures and unexpected statuses.
	KindNetwork Kind = "network"
	// KindBackend means the backend answered with an explicit error message.
	KindBackend Kind = "backend"
)

// SubmitError describes a failed submission.
type SubmitError struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("form: %s error", e.Kind)
	if e.Op != "" {
		msg += " during " + e.Op
	}
	switch {
	case e.Message != "":
		msg += ": " + e.Message
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SubmitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf returns the Kind of err when it wraps a *SubmitError.
func KindOf(err error) (Kind, bool) {
	var submitErr *SubmitError
	if errors.As(err, &submitErr) {
		return submitErr.Kind, true
	}
	return "", false
}
