package chatscreen

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"agentbuddy/pkg/chat"
	"agentbuddy/pkg/ui/components/testutils"
	"agentbuddy/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

type agentFunc func(ctx context.Context, sessionID, text string) (string, error)

func (f agentFunc) Ask(ctx context.Context, sessionID, text string) (string, error) {
	return f(ctx, sessionID, text)
}

func echoAgent() chat.Agent {
	return agentFunc(func(_ context.Context, _ string, text string) (string, error) {
		return `"You said: ` + text + `"`, nil
	})
}

func newScreen(a chat.Agent) *ChatScreen {
	c := New(chat.NewSession(a), time.Millisecond, styles.New(styles.Dark))
	c.SetSize(60, 20)
	return c
}

// runBatch executes every command produced by cmd and collects the messages.
func runBatch(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("Expected a command")
	}

	var msgs []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			if c != nil {
				msgs = append(msgs, c())
			}
		}
	default:
		msgs = append(msgs, msg)
	}
	return msgs
}

func findReply(t *testing.T, msgs []tea.Msg) ReplyMsg {
	t.Helper()
	for _, msg := range msgs {
		if reply, ok := msg.(ReplyMsg); ok {
			return reply
		}
	}
	t.Fatalf("No ReplyMsg in %v", msgs)
	return ReplyMsg{}
}

func findTick(t *testing.T, msgs []tea.Msg) LoadingTickMsg {
	t.Helper()
	for _, msg := range msgs {
		if tick, ok := msg.(LoadingTickMsg); ok {
			return tick
		}
	}
	t.Fatalf("No LoadingTickMsg in %v", msgs)
	return LoadingTickMsg{}
}

func TestChatScreen_SubmitAndReply(t *testing.T) {
	c := newScreen(echoAgent())

	cmd := c.Submit("  hello  ")
	if !c.Loading() {
		t.Error("Expected loading after submit")
	}
	if got := len(c.Session().Messages()); got != 1 {
		t.Fatalf("Expected user message appended immediately, got %d", got)
	}

	msgs := runBatch(t, cmd)
	c.HandleReply(findReply(t, msgs))

	messages := c.Session().Messages()
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[1].Content != "You said: hello" {
		t.Errorf("Expected normalized reply, got %q", messages[1].Content)
	}
	if c.Loading() || c.LoadingIndex() != 0 {
		t.Errorf("Expected loading reset, loading=%v index=%d", c.Loading(), c.LoadingIndex())
	}
}

func TestChatScreen_SubmitEmptyRejected(t *testing.T) {
	c := newScreen(echoAgent())
	if cmd := c.Submit("   "); cmd != nil {
		t.Error("Expected nil command for blank input")
	}
	if len(c.Session().Messages()) != 0 {
		t.Error("Expected no messages")
	}
}

func TestChatScreen_TypeAndEnter(t *testing.T) {
	c := newScreen(echoAgent())

	c.Update(testutils.NewTextKeyPressMsg("h"))
	c.Update(testutils.NewTextKeyPressMsg("i"))
	if c.Input() != "hi" {
		t.Fatalf("Expected input 'hi', got %q", c.Input())
	}

	cmd := c.Update(testutils.TestKeyEnter)
	if cmd == nil {
		t.Fatal("Expected submit command on enter")
	}
	if c.Input() != "" {
		t.Errorf("Expected input cleared, got %q", c.Input())
	}
	if msgs := c.Session().Messages(); len(msgs) != 1 || msgs[0].Content != "hi" {
		t.Errorf("Expected user message 'hi', got %+v", msgs)
	}
}

func TestChatScreen_ShiftEnterInsertsNewline(t *testing.T) {
	c := newScreen(echoAgent())

	c.Update(testutils.NewTextKeyPressMsg("a"))
	c.Update(testutils.TestKeyShiftEnter)
	c.Update(testutils.NewCtrlKeyPressMsg('j'))
	c.Update(testutils.NewTextKeyPressMsg("b"))

	if got := c.Input(); got != "a\n\nb" {
		t.Errorf("Expected multi-line input, got %q", got)
	}
	if len(c.Session().Messages()) != 0 {
		t.Error("Expected nothing submitted")
	}

	c.Update(testutils.TestKeyEnter)
	msgs := c.Session().Messages()
	if len(msgs) != 1 || msgs[0].Content != "a\n\nb" {
		t.Errorf("Expected the multi-line text submitted on enter, got %+v", msgs)
	}
}

func TestChatScreen_InputDisabledWhileSending(t *testing.T) {
	c := newScreen(echoAgent())
	c.Submit("first")

	if cmd := c.Update(testutils.TestKeyEnter); cmd != nil {
		t.Error("Expected enter ignored while sending")
	}
	c.Update(testutils.NewTextKeyPressMsg("x"))
	if c.Input() != "" {
		t.Errorf("Expected keys ignored while sending, got %q", c.Input())
	}
	c.HandlePaste("pasted")
	if c.Input() != "" {
		t.Errorf("Expected paste ignored while sending, got %q", c.Input())
	}
	if got := len(c.Session().Messages()); got != 1 {
		t.Errorf("Expected a single user message, got %d", got)
	}
}

func TestChatScreen_LoadingTicks(t *testing.T) {
	c := newScreen(echoAgent())
	msgs := runBatch(t, c.Submit("hello"))
	tick := findTick(t, msgs)

	for want := 1; want <= len(chat.LoadingMessages); want++ {
		next := c.HandleTick(tick)
		if next == nil {
			t.Fatalf("Expected next tick at step %d", want)
		}
		if got := c.LoadingIndex(); got != want%len(chat.LoadingMessages) {
			t.Errorf("step %d: index = %d", want, got)
		}
	}

	c.HandleReply(findReply(t, msgs))
	if cmd := c.HandleTick(tick); cmd != nil {
		t.Error("Expected tick after reply to be dropped")
	}
	if c.LoadingIndex() != 0 {
		t.Errorf("Expected index 0 after reply, got %d", c.LoadingIndex())
	}
}

func TestChatScreen_FallbackOnError(t *testing.T) {
	c := newScreen(agentFunc(func(context.Context, string, string) (string, error) {
		return "", errors.New("connection refused")
	}))

	c.HandleReply(findReply(t, runBatch(t, c.Submit("hello"))))

	messages := c.Session().Messages()
	if len(messages) != 2 || messages[1].Content != chat.FallbackReply {
		t.Errorf("Expected fallback reply, got %+v", messages)
	}
}

func TestChatScreen_CloseDiscardsLateReply(t *testing.T) {
	c := newScreen(echoAgent())
	msgs := runBatch(t, c.Submit("hello"))

	c.Close()
	c.HandleReply(findReply(t, msgs))

	if got := len(c.Session().Messages()); got != 1 {
		t.Errorf("Expected late reply discarded, got %d messages", got)
	}
	if c.Session().IsSending() {
		t.Error("Expected sending cleared")
	}
}

func TestChatScreen_ReplyForOtherSession(t *testing.T) {
	old := newScreen(echoAgent())
	msgs := runBatch(t, old.Submit("hello"))
	old.Close()

	c := newScreen(echoAgent())
	c.HandleReply(findReply(t, msgs))

	if len(c.Session().Messages()) != 0 {
		t.Error("Expected other session's reply not to land here")
	}
	if old.Session().IsSending() {
		t.Error("Expected old session released")
	}
}

func TestChatScreen_View(t *testing.T) {
	c := newScreen(echoAgent())

	view := ansi.Strip(c.View())
	if !strings.Contains(view, introTitle) {
		t.Errorf("Expected intro in empty view, got:\n%s", view)
	}
	if lines := strings.Split(c.View(), "\n"); len(lines) != 20 {
		t.Errorf("Expected 20 lines, got %d", len(lines))
	}

	c.Submit("hello")
	view = ansi.Strip(c.View())
	if !strings.Contains(view, chat.LoadingMessages[0]) {
		t.Errorf("Expected loading placeholder, got:\n%s", view)
	}
	if !strings.Contains(view, sendingLabel) {
		t.Errorf("Expected sending status, got:\n%s", view)
	}
	if strings.Contains(view, introTitle) {
		t.Error("Expected intro hidden once a message exists")
	}
}

func TestChatScreen_Scroll(t *testing.T) {
	long := strings.Repeat("line\\n", 40)
	c := newScreen(agentFunc(func(context.Context, string, string) (string, error) {
		return long, nil
	}))
	c.HandleReply(findReply(t, runBatch(t, c.Submit("hello"))))

	bottom := c.ScrollOffset()
	if bottom == 0 {
		t.Fatal("Expected view to follow the newest message")
	}

	c.Update(testutils.TestKeyPgUp)
	if got := c.ScrollOffset(); got != bottom-scrollPage {
		t.Errorf("Expected offset %d after pgup, got %d", bottom-scrollPage, got)
	}
	c.Update(testutils.TestKeyPgDown)
	if got := c.ScrollOffset(); got != bottom {
		t.Errorf("Expected offset %d after pgdown, got %d", bottom, got)
	}
}

func TestChatScreen_CopyWithoutReply(t *testing.T) {
	c := newScreen(echoAgent())
	if cmd := c.Update(testutils.NewCtrlKeyPressMsg('y')); cmd != nil {
		t.Error("Expected no copy command without an assistant reply")
	}
}
