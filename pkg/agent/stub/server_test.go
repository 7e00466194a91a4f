package stub

import (
	"context"
	"testing"
	"time"

	"agentbuddy/pkg/agent"
	"agentbuddy/pkg/config"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	srv, err := Listen("127.0.0.1:0", Options{APIKey: "k"})
	if err != nil {
		t.Fatalf("Listen() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	cfg := config.Default()
	cfg.AgentURL = srv.URL("dry-run")
	cfg.AgentKey = "k"
	client, err := agent.NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}

	raw, err := client.Ask(context.Background(), "sess", "ping")
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if got := agent.Normalize(raw); got != "You said: ping" {
		t.Errorf("Unexpected reply %q", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}

func TestListen_BadAddress(t *testing.T) {
	if _, err := Listen("not-an-address", Options{}); err == nil {
		t.Error("Expected error for invalid address")
	}
}
