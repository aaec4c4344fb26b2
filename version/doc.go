// Package version reports build information for gopar binaries.
//
// Version, git commit, branch and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/gopar/version.Version=1.0.0" ./cmd/parbench
//
// Unset values fall back to the VCS stamps the Go toolchain embeds.
package version
