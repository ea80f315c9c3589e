package main

import (
	"os"

	"github.com/ZanzyTHEbar/fsquery/fsq/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
