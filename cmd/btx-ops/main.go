package main

import (
	"fmt"
	"os"

	"github.com/glipgg/btx-ops/pkg/app"
	"github.com/glipgg/btx-ops/pkg/app/cli"
)

func main() {
	var runner app.Runner = cli.New(os.Args[1:])
	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
