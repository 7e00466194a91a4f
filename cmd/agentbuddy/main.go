package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"agentbuddy/pkg/agent"
	"agentbuddy/pkg/agent/stub"
	"agentbuddy/pkg/chat"
	"agentbuddy/pkg/config"
	"agentbuddy/pkg/logging"
	"agentbuddy/pkg/repl"
	"agentbuddy/pkg/ui"
	"agentbuddy/pkg/ui/appctx"
	"agentbuddy/pkg/version"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/sync/errgroup"
)

const dryRunFlow = "dry-run"

func main() {
	var (
		configPath  = flag.String("config", config.GetConfigPath(), "Path to config JSON file")
		envFile     = flag.String("env-file", ".env", "Optional dotenv file read before the environment")
		dryRun      = flag.Bool("dry-run", false, "Answer from an in-process stub agent")
		showVersion = flag.Bool("version", false, "Print version information and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info("agentbuddy"))
		return
	}

	cfg, err := loadConfig(*configPath, *envFile, *dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := logging.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	slog.Info("agentbuddy_start",
		"version", version.Summary(),
		"config_path", *configPath,
		"dry_run", cfg.DryRun,
		"theme", cfg.Theme,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("agentbuddy_exit", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path, envFile string, dryRun bool) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}

	cfg, err = config.ApplyEnv(cfg, envFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("applying environment: %w", err)
	}

	if dryRun {
		cfg.DryRun = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// run starts the stub agent when dry_run is set and then the front-end.
// The stub is stopped once the front-end returns.
func run(ctx context.Context, cfg config.Config) error {
	g, gctx := errgroup.WithContext(ctx)
	frontCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	if cfg.DryRun {
		srv, err := stub.Listen("127.0.0.1:0", stub.Options{APIKey: cfg.AgentKey})
		if err != nil {
			return fmt.Errorf("starting stub agent: %w", err)
		}
		cfg.AgentURL = srv.URL(dryRunFlow)
		g.Go(func() error { return srv.Serve(frontCtx) })
	}

	client, err := agent.NewClient(cfg)
	if err != nil {
		cancel()
		_ = g.Wait()
		return fmt.Errorf("creating agent client: %w", err)
	}
	slog.Debug("agent_client_ready", "url", client.URL())

	g.Go(func() error {
		defer cancel()
		return runFrontEnd(frontCtx, cfg, client)
	})

	return g.Wait()
}

func runFrontEnd(ctx context.Context, cfg config.Config, client chat.Agent) error {
	if !repl.IsInteractive(os.Stdin) || !repl.IsInteractive(os.Stdout) {
		return repl.Run(ctx, os.Stdin, os.Stdout, chat.NewSession(client))
	}

	model := ui.NewModel(ui.Options{
		Agent:           client,
		View:            appctx.NewView(),
		Theme:           appctx.NewTheme(cfg.Theme),
		LoadingInterval: cfg.LoadingInterval(),
	})

	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
