package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"scaleview/internal/cli"
	"scaleview/internal/gui"
	"scaleview/pkg/gesture"
)

func main() {
	if len(os.Args) < 2 {
		cmdGUI(nil)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		run(cli.Info(os.Stdout, args))

	case "render":
		run(cli.Render(os.Stdout, args))

	case "simulate":
		run(cli.Simulate(os.Stdout, args))

	case "gui":
		cmdGUI(args)

	case "help", "-h", "--help":
		cli.Usage(os.Stdout, true)

	default:
		// Anything that is not a command is taken as an image to open.
		if strings.HasPrefix(command, "-") {
			fmt.Printf("Unknown command: %s\n", command)
			cli.Usage(os.Stdout, true)
			os.Exit(1)
		}
		cmdGUI(os.Args[1:])
	}
}

func run(err error) {
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdGUI(args []string) {
	fs := flag.NewFlagSet("gui", flag.ExitOnError)
	configPath := fs.String("config", "", "TOML configuration file")
	verbose := fs.Bool("v", false, "debug logging")

	var path string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		path, args = args[0], args[1:]
	}
	fs.Parse(args)
	if path == "" && fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	if *verbose {
		l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(l)
		gesture.SetLogger(l)
	}

	app, err := gui.NewApp(*configPath)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if path != "" {
		app.RunWithFile(path)
	} else {
		app.Run()
	}
}
