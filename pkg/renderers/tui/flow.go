// Package tui collects the analysis form interactively in a terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-pestel/pkg/analysis"
	"github.com/goliatone/go-pestel/pkg/model"
)

// Target receives the answers. *form.Controller satisfies it.
type Target interface {
	SetField(name, value string) error
	SetFactor(name string, checked bool) error
	Draft() analysis.FormInput
}

// Submitter is a Target that can also submit its draft.
type Submitter interface {
	Target
	SubmitDraft(ctx context.Context) (*analysis.Result, error)
}

// Flow walks a form model and prompts for each field.
type Flow struct {
	driver  PromptDriver
	theme   Theme
	confirm bool
}

// New builds a Flow backed by survey unless WithPromptDriver is given.
func New(options ...Option) *Flow {
	f := &Flow{theme: DefaultTheme}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver()
	}
	return f
}

// Collect prompts for every field of form in order and writes each answer to
// target. Current draft values are offered as defaults. Required fields are
// asked again until they are non-blank.
func (f *Flow) Collect(ctx context.Context, form model.FormModel, target Target) error {
	draft := target.Draft().Normalized()
	for _, field := range form.Fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		switch {
		case field.IsGroup():
			err = f.askFactors(ctx, field, draft, target)
		case len(field.Enum) > 0:
			err = f.askChoice(ctx, field, draft, target)
		default:
			err = f.askText(ctx, field, draft, target)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Run collects the form, optionally confirms, and submits the draft.
func (f *Flow) Run(ctx context.Context, form model.FormModel, target Submitter) (*analysis.Result, error) {
	if err := f.Collect(ctx, form, target); err != nil {
		return nil, err
	}
	if f.confirm {
		ok, err := f.driver.Confirm(ctx, ConfirmConfig{Message: "Submit analysis?", Default: true})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDeclined
		}
	}
	_ = f.info(ctx, "Submitting analysis, this can take a while...")
	return target.SubmitDraft(ctx)
}

func (f *Flow) askText(ctx context.Context, field model.Field, draft analysis.FormInput, target Target) error {
	current, err := draft.Field(field.Name)
	if err != nil {
		return fmt.Errorf("tui: field %q: %w", field.Name, err)
	}
	validate := requiredValidator(field)

	for {
		answer, err := f.driver.Input(ctx, InputConfig{
			Message:   promptMessage(field),
			Default:   current,
			Help:      helpText(field),
			Validator: validate,
		})
		if err != nil {
			return err
		}
		answer = strings.TrimSpace(answer)
		if verr := validate(answer); verr != nil {
			if err := f.fail(ctx, verr); err != nil {
				return err
			}
			continue
		}
		return target.SetField(field.Name, answer)
	}
}

func (f *Flow) askChoice(ctx context.Context, field model.Field, draft analysis.FormInput, target Target) error {
	current, err := draft.Field(field.Name)
	if err != nil {
		return fmt.Errorf("tui: field %q: %w", field.Name, err)
	}
	if current == "" {
		current = field.Default
	}
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      promptMessage(field),
		Options:      field.Enum,
		DefaultIndex: indexOf(field.Enum, current),
		Help:         field.Description,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(field.Enum) {
		return fmt.Errorf("tui: field %q: selection %d out of range", field.Name, idx)
	}
	return target.SetField(field.Name, field.Enum[idx])
}

func (f *Flow) askFactors(ctx context.Context, field model.Field, draft analysis.FormInput, target Target) error {
	names := field.NestedNames()
	labels := make([]string, len(field.Nested))
	var defaults []int
	for i, nested := range field.Nested {
		labels[i] = nested.Label
		if draft.Factor(nested.Name) {
			defaults = append(defaults, i)
		}
	}

	picked, err := f.driver.MultiSelect(ctx, SelectConfig{
		Message:  promptMessage(field),
		Options:  labels,
		Defaults: defaults,
		Help:     field.Description,
	})
	if err != nil {
		return err
	}

	checked := make(map[int]bool, len(picked))
	for _, idx := range picked {
		checked[idx] = true
	}
	for i, name := range names {
		if err := target.SetFactor(name, checked[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *Flow) info(ctx context.Context, msg string) error {
	return f.driver.Info(ctx, f.theme.InfoPrefix+msg)
}

func (f *Flow) fail(ctx context.Context, err error) error {
	return f.driver.Info(ctx, f.theme.ErrorPrefix+err.Error())
}

func requiredValidator(field model.Field) func(string) error {
	return func(value string) error {
		if field.Required && strings.TrimSpace(value) == "" {
			return errors.New(field.Label + " is required")
		}
		return nil
	}
}

func promptMessage(field model.Field) string {
	label := field.Label
	if label == "" {
		label = model.DefaultLabeler(field.Name)
	}
	if field.Required {
		return label + " *"
	}
	return label
}

func helpText(field model.Field) string {
	switch {
	case field.Description != "" && field.Placeholder != "":
		return field.Description + " e.g. " + field.Placeholder
	case field.Description != "":
		return field.Description
	default:
		return field.Placeholder
	}
}
