package main

import (
	"os"

	"github.com/metaforge/metalink/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
