// Package version exposes build information set through -ldflags, falling
// back to the VCS stamps the Go toolchain embeds.
//
//	go build -ldflags "-X github.com/kbukum/transcriptor/version.Version=1.2.0"
package version
