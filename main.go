package main

import (
	"os"

	"github.com/temirov/ghrepo/cmd/cli"
)

// main executes the ghrepo command-line application.
func main() {
	os.Exit(cli.Run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
