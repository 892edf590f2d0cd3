package main

import (
	"os"

	"github.com/datallboy/otmget/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
