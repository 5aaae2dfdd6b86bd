package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pestel/pkg/analysis"
	"github.com/goliatone/go-pestel/pkg/form"
	"github.com/goliatone/go-pestel/pkg/renderers/text"
	"github.com/goliatone/go-pestel/pkg/renderers/tui"
)

type askFlags struct {
	input   analysis.FormInput
	factors []string
	confirm bool
	plain   bool
	json    bool
}

func newAskCmd(a *app) *cobra.Command {
	flags := askFlags{input: analysis.NewFormInput()}
	var timeFrame string

	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Fill in the analysis form interactively and print the summary",
		Long:  "ask prompts for each field of the analysis form. Values given as flags are\noffered as defaults.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if timeFrame != "" {
				flags.input.TimeFrame = analysis.TimeFrame(timeFrame)
			}
			for _, factor := range flags.factors {
				if err := flags.input.SetFactor(factor, true); err != nil {
					return err
				}
			}

			formModel, err := a.formModel(ctx)
			if err != nil {
				return err
			}
			ctrl, err := a.controller(form.WithInitialInput(flags.input))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderer := text.New()
			if flags.plain {
				renderer = text.New(text.WithPlain())
			}

			result, err := tui.New(tui.WithConfirm(flags.confirm)).Run(ctx, formModel, ctrl)
			if err != nil {
				if errors.Is(err, tui.ErrAborted) || errors.Is(err, tui.ErrDeclined) {
					return nil
				}
				if _, isSubmit := form.KindOf(err); isSubmit && !a.cfg.UI.ShowErrors {
					return errReported
				}
				_ = renderer.RenderError(cmd.ErrOrStderr(), err)
				return errReported
			}

			if flags.json {
				return text.RenderJSON(out, result)
			}
			return renderer.Render(out, result)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.input.BusinessName, "business-name", "", "default business name")
	f.StringVar(&flags.input.Industry, "industry", "", "default industry")
	f.StringVar(&flags.input.GeographicalFocus, "geographical-focus", "", "default geographical focus")
	f.StringVar(&flags.input.TargetMarket, "target-market", "", "default target market")
	f.StringVar(&flags.input.Competitors, "competitors", "", "default competitors, comma-separated")
	f.StringVar(&timeFrame, "time-frame", "", "default time frame (Short-term or Long-term)")
	f.StringSliceVar(&flags.factors, "factor", nil, "political factor to pre-select (repeatable)")
	f.BoolVar(&flags.confirm, "confirm", true, "ask for confirmation before submitting")
	f.BoolVar(&flags.plain, "plain", false, "disable colours")
	f.BoolVar(&flags.json, "json", false, "print the formatted result as JSON")
	return cmd
}
