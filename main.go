package main

import (
	"os"

	"hycu-check/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
