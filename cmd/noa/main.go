package main

import (
	"os"

	"github.com/spf13/afero"
)

func main() {
	a := newApp(afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr)
	os.Exit(a.run(os.Args[1:]))
}
