// Package main is the single-binary entrypoint for the Ekima engine.
package main

import "github.com/ekima-network/ekima/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
