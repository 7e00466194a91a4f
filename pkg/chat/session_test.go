package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"agentbuddy/pkg/agent"
)

type fakeAgent struct {
	mu       sync.Mutex
	reply    string
	err      error
	calls    int
	sessions []string
	inputs   []string
}

func (f *fakeAgent) Ask(_ context.Context, sessionID, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.sessions = append(f.sessions, sessionID)
	f.inputs = append(f.inputs, text)
	return f.reply, f.err
}

// blockingAgent holds each request until release is closed.
type blockingAgent struct {
	started chan struct{}
	release chan struct{}
	reply   string
}

func newBlockingAgent(reply string) *blockingAgent {
	return &blockingAgent{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		reply:   reply,
	}
}

func (b *blockingAgent) Ask(ctx context.Context, _, _ string) (string, error) {
	b.started <- struct{}{}
	<-b.release
	return b.reply, nil
}

func TestSession_SubmitAppendsTwoMessages(t *testing.T) {
	fake := &fakeAgent{reply: "Hello back"}
	s := NewSession(fake)

	reply, accepted := s.Submit(context.Background(), "  hello  ")
	if !accepted {
		t.Fatal("Expected submission to be accepted")
	}

	messages := s.Messages()
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != RoleUser || messages[0].Content != "hello" {
		t.Errorf("Unexpected user message: %+v", messages[0])
	}
	if messages[1].Role != RoleAssistant || messages[1].Content != "Hello back" {
		t.Errorf("Unexpected assistant message: %+v", messages[1])
	}
	if reply.ID != messages[1].ID {
		t.Errorf("Expected returned reply to be the appended message")
	}
	if messages[0].ID == "" || messages[0].ID == messages[1].ID {
		t.Errorf("Expected unique message IDs, got %q and %q", messages[0].ID, messages[1].ID)
	}
	if s.IsSending() {
		t.Error("Expected sending to be cleared")
	}
	if fake.inputs[0] != "hello" {
		t.Errorf("Expected trimmed input sent to agent, got %q", fake.inputs[0])
	}
	if fake.sessions[0] != s.ID() {
		t.Errorf("Expected session ID %q sent to agent, got %q", s.ID(), fake.sessions[0])
	}
}

func TestSession_CountGrowsByTwoPerTurn(t *testing.T) {
	fake := &fakeAgent{reply: "ok"}
	s := NewSession(fake)

	for i := 1; i <= 3; i++ {
		if _, ok := s.Submit(context.Background(), fmt.Sprintf("question %d", i)); !ok {
			t.Fatalf("Turn %d rejected", i)
		}
		if got := s.Conversation().Len(); got != 2*i {
			t.Errorf("After %d turns expected %d messages, got %d", i, 2*i, got)
		}
	}

	for _, id := range fake.sessions {
		if id != s.ID() {
			t.Errorf("Expected every turn to use session %q, got %q", s.ID(), id)
		}
	}
}

func TestSession_RejectsBlankInput(t *testing.T) {
	fake := &fakeAgent{reply: "unused"}
	s := NewSession(fake)

	for _, input := range []string{"", "   ", "\n\t "} {
		if _, ok := s.Submit(context.Background(), input); ok {
			t.Errorf("Expected %q to be rejected", input)
		}
	}

	if s.Conversation().Len() != 0 {
		t.Errorf("Expected no messages, got %d", s.Conversation().Len())
	}
	if fake.calls != 0 {
		t.Errorf("Expected no agent calls, got %d", fake.calls)
	}
}

func TestSession_RejectsWhileSending(t *testing.T) {
	blocking := newBlockingAgent("done")
	s := NewSession(blocking)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Submit(context.Background(), "first")
	}()
	<-blocking.started

	if !s.IsSending() {
		t.Fatal("Expected session to be sending")
	}
	if _, ok := s.Begin("second"); ok {
		t.Error("Expected second submission to be dropped")
	}
	if got := s.Conversation().Len(); got != 1 {
		t.Errorf("Expected only the first user message, got %d messages", got)
	}

	close(blocking.release)
	<-done

	messages := s.Messages()
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[0].Content != "first" || messages[1].Content != "done" {
		t.Errorf("Unexpected messages: %+v", messages)
	}
}

func TestSession_FailureUsesFallback(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"network", errors.New("dial tcp: connection refused")},
		{"missing path", fmt.Errorf("%w: outputs.0 not found", agent.ErrUnexpectedShape)},
		{"status", &agent.StatusError{StatusCode: 502}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(&fakeAgent{err: tt.err})

			reply, ok := s.Submit(context.Background(), "hi")
			if !ok {
				t.Fatal("Expected submission to be accepted")
			}
			if reply.Content != "Sorry, I am unable to process your request." {
				t.Errorf("Expected fallback reply, got %q", reply.Content)
			}
			if reply.Role != RoleAssistant {
				t.Errorf("Expected assistant role, got %q", reply.Role)
			}
			if s.Conversation().Len() != 2 {
				t.Errorf("Expected 2 messages, got %d", s.Conversation().Len())
			}
			if s.IsSending() {
				t.Error("Expected sending to be cleared after failure")
			}
		})
	}
}

func TestSession_NormalizesReply(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`Hello\nWorld`, "Hello\nWorld"},
		{`"quoted text"`, "quoted text"},
		{`"nested "quotes""`, `nested "quotes"`},
	}

	for _, tt := range tests {
		s := NewSession(&fakeAgent{reply: tt.raw})
		reply, _ := s.Submit(context.Background(), "q")
		if reply.Content != tt.want {
			t.Errorf("raw %q: expected %q, got %q", tt.raw, tt.want, reply.Content)
		}
	}
}

func TestSession_CloseDiscardsLateReply(t *testing.T) {
	s := NewSession(&fakeAgent{reply: "late"})

	turn, ok := s.Begin("question")
	if !ok {
		t.Fatal("Expected Begin to accept")
	}

	s.Close()

	if _, ok := s.Resolve(turn, "late", nil); ok {
		t.Error("Expected late reply to be discarded")
	}
	if got := s.Conversation().Len(); got != 1 {
		t.Errorf("Expected only the user message, got %d", got)
	}
	if s.IsSending() {
		t.Error("Expected sending to be cleared")
	}
	if _, ok := s.Begin("again"); ok {
		t.Error("Expected closed session to reject new turns")
	}
}

func TestSession_FreshIDs(t *testing.T) {
	a := NewSession(&fakeAgent{})
	b := NewSession(&fakeAgent{})

	if a.ID() == "" || b.ID() == "" {
		t.Fatal("Expected non-empty session IDs")
	}
	if a.ID() == b.ID() {
		t.Error("Expected distinct session IDs per activation")
	}
}

func TestConversation_MessagesIsCopy(t *testing.T) {
	s := NewSession(&fakeAgent{reply: "r"})
	s.Submit(context.Background(), "q")

	messages := s.Messages()
	messages[0].Content = "mutated"

	if s.Messages()[0].Content != "q" {
		t.Error("Messages should return a copy")
	}
}

func TestConversation_LastAssistant(t *testing.T) {
	s := NewSession(&fakeAgent{reply: "answer"})

	if _, ok := s.Conversation().LastAssistant(); ok {
		t.Error("Expected no assistant message yet")
	}

	s.Submit(context.Background(), "q")

	msg, ok := s.Conversation().LastAssistant()
	if !ok || msg.Content != "answer" {
		t.Errorf("Expected last assistant 'answer', got %+v (ok=%v)", msg, ok)
	}
}
