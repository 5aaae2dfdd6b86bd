package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the analysis backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			if err := c.Ping(cmd.Context()); err != nil {
				a.logger.WithError(err).Error("pestel: backend unreachable")
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "backend ok: %s\n", c.BaseURL())
			return err
		},
	}
}
