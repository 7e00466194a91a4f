// Package chatscreen is the conversation view inside the agent modal: a
// scrollable message list above a textarea, driven by a chat.Session.
package chatscreen

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"agentbuddy/pkg/chat"
	"agentbuddy/pkg/ui/components/markdown"
	"agentbuddy/pkg/ui/components/utils"
	"agentbuddy/pkg/ui/styles"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

const (
	inputHeight  = 3
	scrollPage   = 10
	placeholder  = "Ask anything..."
	introTitle   = "Chat with Indus AI Buddy"
	introBody    = "Ask anything, get answers about Pakistan's national AI platform, policies, and innovation."
	introHint    = "Get to know about Indus AI Week, events, talent, and more. Start by typing a message below."
	introLink    = "indusai.gov.pk"
	sendingLabel = "Waiting for the agent..."
)

// ReplyMsg carries the outcome of an agent request back to the UI loop.
type ReplyMsg struct {
	Session *chat.Session
	Turn    chat.Turn
	Reply   string
	Err     error
}

// LoadingTickMsg advances the loading placeholder of one loading period.
type LoadingTickMsg struct {
	Session    *chat.Session
	Generation int
}

// ChatScreen renders one session and owns its input.
type ChatScreen struct {
	session  *chat.Session
	interval time.Duration
	st       styles.Styles

	rotator  chat.LoadingRotator
	textarea textarea.Model
	spinner  spinner.Model

	width   int
	height  int
	lines   []string
	scrollY int
	follow  bool
}

// New builds a chat screen for session. interval is the loading
// placeholder period; non-positive values use chat.DefaultLoadingInterval.
func New(session *chat.Session, interval time.Duration, st styles.Styles) *ChatScreen {
	if interval <= 0 {
		interval = chat.DefaultLoadingInterval
	}

	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetHeight(inputHeight)
	// enter submits, so line breaks need their own keys
	ta.KeyMap.InsertNewline = key.NewBinding(
		key.WithKeys("shift+enter", "ctrl+j"),
		key.WithHelp("shift+enter", "insert newline"),
	)
	ta.Focus()

	c := &ChatScreen{
		session:  session,
		interval: interval,
		textarea: ta,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		follow:   true,
	}
	c.SetStyles(st)
	return c
}

// Session returns the session this screen drives.
func (c *ChatScreen) Session() *chat.Session {
	return c.session
}

// Owns reports whether s is this screen's session.
func (c *ChatScreen) Owns(s *chat.Session) bool {
	return c.session == s
}

// Loading reports whether a reply is pending.
func (c *ChatScreen) Loading() bool {
	return c.rotator.Loading()
}

// LoadingIndex returns the current placeholder index.
func (c *ChatScreen) LoadingIndex() int {
	return c.rotator.Index()
}

// Input returns the current textarea content.
func (c *ChatScreen) Input() string {
	return c.textarea.Value()
}

// SetStyles switches the palette used to render.
func (c *ChatScreen) SetStyles(st styles.Styles) {
	c.st = st
	c.spinner.Style = st.Spinner
	c.reflow()
}

// SetSize sets the area available to the screen, excluding any frame.
func (c *ChatScreen) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.textarea.SetWidth(max(width, 1))
	c.reflow()
}

// Submit starts a turn with text. On acceptance the input is cleared and
// the returned command runs the request, the loading ticker and the
// spinner. It returns nil when the session rejects text.
func (c *ChatScreen) Submit(text string) tea.Cmd {
	turn, ok := c.session.Begin(text)
	if !ok {
		return nil
	}

	c.textarea.Reset()
	gen := c.rotator.Start()
	c.follow = true
	c.reflow()

	sess := c.session
	request := func() tea.Msg {
		reply, err := sess.Call(context.Background(), turn)
		return ReplyMsg{Session: sess, Turn: turn, Reply: reply, Err: err}
	}

	return tea.Batch(request, c.scheduleTick(gen), c.spinner.Tick)
}

func (c *ChatScreen) scheduleTick(gen int) tea.Cmd {
	sess := c.session
	return tea.Tick(c.interval, func(time.Time) tea.Msg {
		return LoadingTickMsg{Session: sess, Generation: gen}
	})
}

// HandleReply completes the turn carried by msg.
func (c *ChatScreen) HandleReply(msg ReplyMsg) {
	msg.Session.Resolve(msg.Turn, msg.Reply, msg.Err)
	if !c.Owns(msg.Session) {
		return
	}
	c.rotator.Stop()
	c.follow = true
	c.reflow()
}

// HandleTick advances the placeholder and schedules the next tick while
// the same loading period is still running.
func (c *ChatScreen) HandleTick(msg LoadingTickMsg) tea.Cmd {
	if !c.Owns(msg.Session) || !c.rotator.Advance(msg.Generation) {
		return nil
	}
	c.reflow()
	return c.scheduleTick(msg.Generation)
}

// HandleSpinner animates the spinner while a request is in flight.
func (c *ChatScreen) HandleSpinner(msg spinner.TickMsg) tea.Cmd {
	if !c.session.IsSending() {
		return nil
	}
	var cmd tea.Cmd
	c.spinner, cmd = c.spinner.Update(msg)
	return cmd
}

// HandlePaste inserts pasted text unless the input is disabled.
func (c *ChatScreen) HandlePaste(content string) {
	if c.session.IsSending() {
		return
	}
	c.textarea.InsertString(content)
}

// Update handles a key press routed to the chat screen.
func (c *ChatScreen) Update(msg tea.KeyPressMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "enter":
		if c.session.IsSending() {
			return nil
		}
		return c.Submit(c.textarea.Value())
	case "up", "down", "pgup", "pgdown":
		c.scroll(key)
		return nil
	case "ctrl+y":
		return c.copyLastReply()
	}

	if c.session.IsSending() {
		return nil
	}
	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	return cmd
}

// Close detaches the session so a reply still in flight is dropped.
func (c *ChatScreen) Close() {
	c.session.Close()
	c.rotator.Stop()
	c.textarea.Blur()
}

func (c *ChatScreen) scroll(key string) {
	maxScroll := c.maxScroll()

	switch key {
	case "up":
		if c.scrollY > 0 {
			c.scrollY--
		}
		c.follow = false
	case "down":
		if c.scrollY < maxScroll {
			c.scrollY++
		}
		c.follow = c.scrollY >= maxScroll
	case "pgup":
		c.scrollY = max(c.scrollY-scrollPage, 0)
		c.follow = false
	case "pgdown":
		c.scrollY = min(c.scrollY+scrollPage, maxScroll)
		c.follow = c.scrollY >= maxScroll
	}
}

// ScrollOffset returns the index of the first visible message line.
func (c *ChatScreen) ScrollOffset() int {
	return c.scrollY
}

func (c *ChatScreen) copyLastReply() tea.Cmd {
	last, ok := c.session.Conversation().LastAssistant()
	if !ok {
		return nil
	}
	text := last.Content
	return func() tea.Msg {
		_, _ = fmt.Fprint(os.Stdout, osc52.New(text))
		return nil
	}
}

func (c *ChatScreen) viewportHeight() int {
	// input plus the separator line above it
	return max(c.height-inputHeight-1, 1)
}

func (c *ChatScreen) maxScroll() int {
	return max(len(c.lines)-c.viewportHeight(), 0)
}

func (c *ChatScreen) reflow() {
	if c.width <= 0 {
		c.lines = nil
		c.scrollY = 0
		return
	}

	c.lines = c.renderMessages(c.width)
	if c.follow || c.scrollY > c.maxScroll() {
		c.scrollY = c.maxScroll()
	}
}

func (c *ChatScreen) renderMessages(width int) []string {
	messages := c.session.Messages()
	if len(messages) == 0 && !c.rotator.Loading() {
		return c.renderIntro(width)
	}

	var lines []string
	for i, msg := range messages {
		if i > 0 {
			lines = append(lines, "")
		}
		if msg.Role == chat.RoleUser {
			lines = append(lines, c.st.UserLabel.Render(msg.Role.Label()))
			for _, line := range utils.WrapWords(msg.Content, width) {
				lines = append(lines, c.st.UserText.Render(line))
			}
			continue
		}
		lines = append(lines, c.st.AssistantLabel.Render(msg.Role.Label()))
		lines = append(lines, markdown.Render(msg.Content, width, c.st)...)
	}

	if c.rotator.Loading() {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, c.st.Loading.Render(utils.TruncateToWidth(c.rotator.Current(), width)))
	}
	return lines
}

func (c *ChatScreen) renderIntro(width int) []string {
	lines := []string{""}
	lines = append(lines, utils.CenterStyled(c.st.Title.Render(utils.TruncateToWidth(introTitle, width)), width))
	lines = append(lines, "")
	for _, text := range []string{introBody, introHint} {
		for _, line := range utils.WrapWords(text, width) {
			lines = append(lines, utils.CenterStyled(c.st.Subtitle.Render(line), width))
		}
		lines = append(lines, "")
	}
	lines = append(lines, utils.CenterStyled(c.st.Link.Render(introLink), width))
	return lines
}

// View renders the message list, a separator and the input area.
func (c *ChatScreen) View() string {
	if c.width <= 0 || c.height <= 0 {
		return ""
	}

	vh := c.viewportHeight()
	out := make([]string, 0, c.height)

	end := min(c.scrollY+vh, len(c.lines))
	for i := c.scrollY; i < end; i++ {
		out = append(out, utils.PadStyled(c.lines[i], c.width))
	}
	for len(out) < vh {
		out = append(out, strings.Repeat(" ", c.width))
	}

	out = append(out, c.st.Separator.Render(strings.Repeat("─", c.width)))

	if c.session.IsSending() {
		status := c.spinner.View() + " " + c.st.TextMuted.Render(sendingLabel)
		out = append(out, utils.PadStyled(status, c.width))
		for i := 1; i < inputHeight; i++ {
			out = append(out, strings.Repeat(" ", c.width))
		}
	} else {
		for i, line := range strings.Split(c.textarea.View(), "\n") {
			if i >= inputHeight {
				break
			}
			out = append(out, utils.PadStyled(line, c.width))
		}
		for len(out) < vh+1+inputHeight {
			out = append(out, strings.Repeat(" ", c.width))
		}
	}

	return strings.Join(out, "\n")
}
