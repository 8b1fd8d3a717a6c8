// Package main provides the apidoc documentation generator.
package main

import (
	"os"

	"github.com/example/apidoc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
