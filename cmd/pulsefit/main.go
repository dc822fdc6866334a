// Package main is the single-binary entrypoint for PulseFit.
package main

import "github.com/pulsefit-app/pulsefit/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
