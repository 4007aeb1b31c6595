// Package app wires the transcription service together: configuration,
// logging, telemetry, the speech engine, the ffmpeg adapter, the
// orchestrator, and the HTTP server, all under one component lifecycle.
//
// Example:
//
//	var cfg app.Config
//	if err := config.LoadConfig("transcriptor", &cfg); err != nil {
//	    return err
//	}
//	a, err := app.New(&cfg)
//	if err != nil {
//	    return err
//	}
//	return a.Run(ctx)
package app
