package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/transcriptor/app"
)

func newTranscribeCommand(opts *rootOptions) *cobra.Command {
	var language string
	cmd := &cobra.Command{
		Use:   "transcribe <file>",
		Short: "Transcribe one audio file and print the text",
		Long: `Run the same pipeline as POST /transcribe on a local file and print the
transcript to stdout. Logs go to stderr.

Examples:
  transcriptor transcribe nota.opus
  transcriptor transcribe entrevista.m4a --language en`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			cfg.Logging.Output = "stderr"
			if language != "" {
				cfg.Transcriber.Language = language
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			return a.RunTask(cmd.Context(), func(ctx context.Context) error {
				text, err := a.Service.TranscribeFile(ctx, args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "target language (overrides transcriber.language)")
	return cmd
}
