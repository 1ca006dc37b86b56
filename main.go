package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/utils"
)

const defaultConfigFile = "config.json"

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"Usage: %s [flags] <width> <height> <cycles> <x,y> <x,y> <x,y> [x,y ...]\n\n"+
			"  width, height and coordinates are 0-255, (0,0) is the bottom-left cell\n"+
			"  cycles 0 runs until interrupted\n\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	configFile := flag.String("config", defaultConfigFile, "JSON settings file")
	rendererName := flag.String("renderer", "", "renderer override: text or screen")
	flag.Usage = usage
	flag.Parse()

	config, err := utils.ParseArgs(flag.Args())
	if err != nil {
		fmt.Printf("Problem parsing arguments: %v\n", err)
		os.Exit(1)
	}

	// Load settings - fallback to defaults if file doesn't exist
	settings, err := utils.LoadSettings(*configFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("ignoring settings: %v", err)
		}
		settings = utils.DefaultSettings()
	}
	if *rendererName != "" {
		settings.Renderer = *rendererName
	}
	if err = settings.Validate(); err != nil {
		fmt.Printf("Problem parsing arguments: %v\n", err)
		os.Exit(1)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, config, settings, os.Stdout)
	stop()
	if err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}
