// CLI-only version (no GUI dependencies)
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"scaleview/internal/cli"
)

func main() {
	if len(os.Args) < 2 {
		cli.Usage(os.Stdout, false)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cli.Info(os.Stdout, args)

	case "render":
		err = cli.Render(os.Stdout, args)

	case "simulate":
		err = cli.Simulate(os.Stdout, args)

	case "help", "-h", "--help":
		cli.Usage(os.Stdout, false)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		cli.Usage(os.Stdout, false)
		os.Exit(1)
	}

	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
