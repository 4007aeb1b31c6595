// Package transcription defines the speech engine contract and the
// registry that selects a backend by name at startup.
//
// # Backends
//
//   - transcription/whisper: faster-whisper HTTP sidecar, model loaded once by the sidecar
//   - transcription/openai: OpenAI audio transcription API
//
// # Usage
//
//	reg := transcription.NewRegistry()
//	reg.Register(whisper.ProviderName, whisper.Factory())
//	engine, err := reg.Create(cfg)
//	engine = transcription.Serialized(engine, cfg.MaxConcurrent)
//	resp, err := engine.Transcribe(ctx, transcription.Request{AudioPath: p, Language: "es"})
package transcription
