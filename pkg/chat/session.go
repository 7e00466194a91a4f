package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"agentbuddy/pkg/agent"
)

// FallbackReply is shown whenever the agent call fails or returns nothing usable.
const FallbackReply = "Sorry, I am unable to process your request."

// Agent answers one utterance within a session.
type Agent interface {
	Ask(ctx context.Context, sessionID, text string) (string, error)
}

// Turn is an accepted submission waiting for its reply.
type Turn struct {
	User      Message
	SessionID string
	started   time.Time
}

// Session drives one conversation against an agent. At most one turn is in
// flight at a time; submissions made while sending are dropped, not queued.
type Session struct {
	agent Agent
	conv  *Conversation

	mu       sync.Mutex
	sending  bool
	detached bool
}

// NewSession starts a fresh conversation against a.
func NewSession(a Agent) *Session {
	return &Session{
		agent: a,
		conv:  NewConversation(),
	}
}

// ID returns the conversation's session identifier.
func (s *Session) ID() string {
	return s.conv.ID()
}

// Conversation exposes the underlying message list.
func (s *Session) Conversation() *Conversation {
	return s.conv
}

// Messages returns a copy of the conversation in display order.
func (s *Session) Messages() []Message {
	return s.conv.Messages()
}

// IsSending reports whether a turn is in flight.
func (s *Session) IsSending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}

// Begin accepts text as a new turn: it appends the user message and enters
// the sending state. It returns false, changing nothing, when the trimmed
// text is empty, a turn is already in flight, or the session is closed.
func (s *Session) Begin(text string) (Turn, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Turn{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sending {
		slog.Debug("chat_submit_dropped", "session_id", s.conv.ID(), "reason", "sending")
		return Turn{}, false
	}
	if s.detached {
		return Turn{}, false
	}

	msg := newMessage(RoleUser, trimmed)
	s.conv.append(msg)
	s.sending = true

	slog.Info("chat_turn_start", "session_id", s.conv.ID(), "message_id", msg.ID, "length", len(trimmed))

	return Turn{User: msg, SessionID: s.conv.ID(), started: time.Now()}, true
}

// Call runs the agent request for turn. It does not touch session state and
// may be invoked from any goroutine.
func (s *Session) Call(ctx context.Context, turn Turn) (string, error) {
	return s.agent.Ask(ctx, turn.SessionID, turn.User.Content)
}

// Resolve completes turn with the agent's raw reply or error, appending
// exactly one assistant message and leaving the sending state. After Close
// the outcome is discarded and ok is false.
func (s *Session) Resolve(turn Turn, reply string, err error) (Message, bool) {
	content := FallbackReply
	if err != nil {
		slog.Warn("chat_turn_failed", "session_id", turn.SessionID, "error", err)
	} else {
		content = agent.Normalize(reply)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sending = false
	if s.detached {
		slog.Debug("chat_turn_discarded", "session_id", turn.SessionID)
		return Message{}, false
	}

	msg := newMessage(RoleAssistant, content)
	s.conv.append(msg)

	slog.Info("chat_turn_done",
		"session_id", turn.SessionID,
		"message_id", msg.ID,
		"fallback", err != nil,
		"elapsed_ms", time.Since(turn.started).Milliseconds(),
	)

	return msg, true
}

// Submit runs a whole turn synchronously. accepted is false when Begin
// rejected the text; otherwise reply is the appended assistant message.
func (s *Session) Submit(ctx context.Context, text string) (reply Message, accepted bool) {
	turn, ok := s.Begin(text)
	if !ok {
		return Message{}, false
	}

	raw, err := s.Call(ctx, turn)
	reply, _ = s.Resolve(turn, raw, err)
	return reply, true
}

// Close detaches the session. A request already in flight keeps running,
// but its outcome is dropped when it arrives.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.detached {
		slog.Debug("chat_session_closed", "session_id", s.conv.ID(), "sending", s.sending)
	}
	s.detached = true
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detached
}
