// Package form drives a PESTEL analysis request: it owns the draft input,
// submits it to the backend and reports the outcome.
package form

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-pestel/pkg/analysis"
)

// Backend is the pair of calls a submission makes. *client.Client satisfies
// it.
type Backend interface {
	Analyze(ctx context.Context, input analysis.FormInput) error
	Summary(ctx context.Context, businessName string) (analysis.SummaryPayload, error)
}

// State is the submission state of a Controller.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
)

const (
	opValidate = "validate"
	opAnalyze  = "analyze"
	opSummary  = "summary"
)

// Controller holds the draft input and runs submissions one at a time.
type Controller struct {
	backend Backend
	logger  logrus.FieldLogger

	mu    sync.Mutex
	draft analysis.FormInput
	state State
}

// NewController returns an idle controller with an empty draft.
func NewController(backend Backend, options ...Option) *Controller {
	c := &Controller{
		backend: backend,
		logger:  discardLogger(),
		draft:   analysis.NewFormInput(),
		state:   StateIdle,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// SetField updates one scalar field of the draft.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.SetField(name, value)
}

// SetFactor checks or unchecks a political factor on the draft. Unknown
// factor names are rejected.
func (c *Controller) SetFactor(name string, checked bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.SetFactor(name, checked)
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() analysis.FormInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Clone()
}

// State reports whether a submission is running.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SubmitDraft submits a snapshot of the current draft.
func (c *Controller) SubmitDraft(ctx context.Context) (*analysis.Result, error) {
	return c.Submit(ctx, c.Draft())
}

// Submit validates input, posts it to the backend and fetches the summary.
// Exactly two sequential calls are made on the happy path and none when
// validation fails.
//
// Cancelling ctx does not abort a running submission; the backend client's
// timeout bounds it instead. Every failure is logged before it is returned.
func (c *Controller) Submit(ctx context.Context, input analysis.FormInput) (*analysis.Result, error) {
	if !c.begin() {
		c.logger.WithField("business_name", input.BusinessName).Warn("form: submit ignored, submission in progress")
		return nil, ErrSubmitInProgress
	}
	defer c.end()

	ctx = context.WithoutCancel(ctx)
	input = input.Normalized()
	log := c.logger.WithField("business_name", input.BusinessName)

	if err := input.Validate(); err != nil {
		return nil, c.fail(log, &SubmitError{Kind: KindValidation, Op: opValidate, Err: err})
	}

	log.WithField("factors", input.EnabledFactors()).Info("form: submitting analysis")
	if err := c.backend.Analyze(ctx, input); err != nil {
		return nil, c.fail(log, &SubmitError{Kind: KindNetwork, Op: opAnalyze, Err: err})
	}

	payload, err := c.backend.Summary(ctx, input.BusinessName)
	if err != nil {
		return nil, c.fail(log, &SubmitError{Kind: KindNetwork, Op: opSummary, Err: err})
	}
	if payload.Error != "" {
		return nil, c.fail(log, &SubmitError{
			Kind:    KindBackend,
			Op:      opSummary,
			Message: payload.Error,
			Err:     errors.New(payload.Error),
		})
	}

	log.Info("form: summary received")
	return payload.Result(), nil
}

func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return false
	}
	c.state = StateSubmitting
	return true
}

func (c *Controller) end() {
	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()
}

func (c *Controller) fail(log logrus.FieldLogger, err *SubmitError) error {
	log.WithFields(logrus.Fields{
		"kind": err.Kind,
		"op":   err.Op,
	}).WithError(err.Err).Error("form: submission failed")
	return err
}
