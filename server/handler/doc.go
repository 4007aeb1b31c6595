// Package handler serves the transcription routes: the upload landing page,
// its static assets, and POST /transcribe.
package handler
