package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"agentbuddy/pkg/agent/stub"
	"agentbuddy/pkg/config"
	"agentbuddy/pkg/logging"
	"agentbuddy/pkg/version"
)

func main() {
	var (
		addr        = flag.String("addr", "127.0.0.1:7860", "Listen address")
		key         = flag.String("key", "", "Required x-api-key value; empty accepts any request")
		logLevel    = flag.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
		showVersion = flag.Bool("version", false, "Print version information and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info("agentstub"))
		return
	}

	cfg := config.Default()
	cfg.LogLevel = *logLevel
	if _, err := logging.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	srv, err := stub.Listen(*addr, stub.Options{APIKey: *key})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("agent stub listening on %s\n", srv.URL("<flow>"))
	if err := srv.Serve(ctx); err != nil {
		slog.Error("stub_server_failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
