package main

import (
	"os"

	"github.com/guiyumin/vlink/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
