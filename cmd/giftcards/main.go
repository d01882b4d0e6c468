package main

import (
	"os"

	"github.com/EdgeApp/edge-gift-cards/internal/cli"
)

func main() {
	os.Exit(cli.NewRunner().Run(os.Args[1:], os.Stdout, os.Stderr))
}
