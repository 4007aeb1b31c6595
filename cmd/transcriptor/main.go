// Command transcriptor serves the audio transcription API and transcribes
// single files from the command line.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand(context.Background()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
