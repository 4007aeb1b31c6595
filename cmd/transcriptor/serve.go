package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/transcriptor/app"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transcription API",
		Long: `Serve the upload page on / and the transcription endpoint on POST /transcribe
until SIGINT or SIGTERM.

Examples:
  transcriptor serve
  transcriptor serve --port 9000 --config ./config.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8000, "listen port (overrides server.port)")
	return cmd
}
