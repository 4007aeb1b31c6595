package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/transcriptor/app"
	"github.com/kbukum/transcriptor/config"
)

type rootOptions struct {
	configFile string
	envFile    string
}

// NewRootCommand returns the root command with all subcommands attached.
func NewRootCommand(ctx context.Context) *cobra.Command {
	opts := &rootOptions{}
	cobra.EnableCommandSorting = false
	rootCmd := &cobra.Command{
		Use:   app.ServiceName,
		Short: "Speech-to-text for uploaded audio files.",
		Long: `Transcriptor normalizes audio with ffmpeg, cuts long recordings into
30-second windows, and transcribes them in order with a Whisper engine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetContext(ctx)
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "path to config.yml (searched in ./cmd/transcriptor, ./config, . when empty)")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "path to a .env file")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newTranscribeCommand(opts))
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

// load reads the configuration from file, .env, and environment.
func (o *rootOptions) load() (*app.Config, error) {
	var loaderOpts []config.LoaderOption
	if o.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(o.configFile))
	}
	if o.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(o.envFile))
	}

	cfg := &app.Config{}
	if err := config.LoadConfig(app.ServiceName, cfg, loaderOpts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
