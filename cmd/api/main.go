package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wayfinder.app/internal/appconf"
	"wayfinder.app/internal/logging"
)

func main() {
	var configFile string
	var port int

	flag.StringVar(&configFile, "config", "", "Path to a YAML or JSON config file")
	flag.IntVar(&port, "port", 0, "API server port (overrides the config file)")
	flag.Parse()

	cfg, err := appconf.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if port > 0 {
		cfg.Port = port
	}

	logger := logging.NewStructuredLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *cfg, logger); err != nil {
		logging.LogError(logger, "server stopped with error", err)
		os.Exit(1)
	}
}
