package main

import (
	"os"

	"netrecon/cli"
)

func main() {
	os.Exit(cli.Run())
}
