package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pestel/pkg/analysis"
	"github.com/goliatone/go-pestel/pkg/renderers/text"
)

func newFormatCmd(a *app) *cobra.Command {
	var asJSON, plain bool

	cmd := &cobra.Command{
		Use:   "format [file|-]",
		Short: "Format a stored summary without contacting the backend",
		Long: "format reads a summary from a file or stdin and prints it as headings and\n" +
			"bullets. The input may be raw summary text or a JSON body such as\n" +
			`{"summary": "..."}` + ".",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("pestel: open summary: %w", err)
				}
				defer f.Close()
				src = f
			}
			raw, err := io.ReadAll(src)
			if err != nil {
				return fmt.Errorf("pestel: read summary: %w", err)
			}

			result, err := decodeSummary(raw)
			if err != nil {
				return err
			}
			a.logger.WithField("bytes", len(raw)).Debug("pestel: formatting summary")

			if asJSON {
				return text.RenderJSON(cmd.OutOrStdout(), result)
			}
			renderer := text.New()
			if plain {
				renderer = text.New(text.WithPlain())
			}
			return renderer.Render(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print blocks as JSON")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colours")
	return cmd
}

// decodeSummary accepts either a summary payload or plain text. A payload
// carrying an error is reported as such.
func decodeSummary(raw []byte) (*analysis.Result, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var payload analysis.SummaryPayload
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if payload.Error != "" {
				return nil, fmt.Errorf("pestel: summary payload carries an error: %s", payload.Error)
			}
			return payload.Result(), nil
		}
	}
	return &analysis.Result{Summary: string(raw)}, nil
}
