package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pestel/internal/server"
	"github.com/goliatone/go-pestel/pkg/renderers/html"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web form and results page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			formModel, err := a.formModel(ctx)
			if err != nil {
				return err
			}
			page, err := html.New(html.WithTheme(a.cfg.UI.Theme, a.cfg.UI.Variant))
			if err != nil {
				return err
			}
			ctrl, err := a.controller()
			if err != nil {
				return err
			}

			srv := server.New(ctrl, page, formModel,
				server.WithLogger(a.logger),
				server.WithShowErrors(a.cfg.UI.ShowErrors),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "PESTEL UI on http://%s (backend %s)\n", displayAddr(addr), a.cfg.Backend.BaseURL)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
