package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/takeparts/partsite"
)

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
	cmd.Flags().String("addr", ":3000", "listen address")
	cmd.Flags().Bool("watch", false, "reload content when files change")
	_ = c.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = c.v.BindPFlag("watch", cmd.Flags().Lookup("watch"))
	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	app := partsite.New(c.s.config(), partsite.ViewFuncs{})
	defer app.Close()
	app.Echo.Logger.Infof("serving %s on %s", c.s.ContentDir, c.s.Addr)
	return app.Start(ctx)
}
