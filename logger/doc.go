// Package logger provides structured logging for the transcription service
// using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers carrying structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(cfg, "transcriptor").WithComponent("media")
//	log.Info("segment written", logger.Fields("index", 2, "path", p))
package logger
