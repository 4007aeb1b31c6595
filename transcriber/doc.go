// Package transcriber turns one uploaded audio file into one transcript.
//
// For each call Service creates a private workspace, normalizes the audio,
// decides from its duration whether to transcribe it whole or in fixed
// windows, sends the windows to the speech engine strictly in order and
// joins the texts. The workspace is removed on every exit path.
package transcriber
