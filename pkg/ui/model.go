// Package ui is the agentbuddy terminal front-end: the dashboard home view
// with the agent modal (splash, then chat) on top of it.
package ui

import (
	"log/slog"
	"time"

	"agentbuddy/pkg/chat"
	"agentbuddy/pkg/ui/appctx"
	"agentbuddy/pkg/ui/components/chatscreen"
	"agentbuddy/pkg/ui/components/dashboard"
	"agentbuddy/pkg/ui/components/splash"
	"agentbuddy/pkg/ui/components/statusbar"
	"agentbuddy/pkg/ui/render"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// SplashRestoreDelay is how long after closing the modal the splash
// screen comes back.
const SplashRestoreDelay = 300 * time.Millisecond

const (
	hintsDashboard = "←/→ metal · ↑/↓ scroll · a agent · ctrl+t theme · q quit"
	hintsSplash    = "enter start · ctrl+t theme · esc close"
	hintsChat      = "enter send · shift+enter newline · ↑/↓ scroll · ctrl+y copy · esc close"
	copiedMessage  = "Reply copied to clipboard"
)

type splashRestoreMsg struct {
	generation int
}

// Options configures the root model.
type Options struct {
	Agent           chat.Agent
	View            *appctx.View
	Theme           *appctx.Theme
	LoadingInterval time.Duration
}

// Model represents the Bubble Tea application state
type Model struct {
	agent           chat.Agent
	view            *appctx.View
	theme           *appctx.Theme
	loadingInterval time.Duration

	dashboard *dashboard.Dashboard
	statusBar *statusbar.StatusBarView
	chat      *chatscreen.ChatScreen // nil unless the chat screen is mounted

	showSplash bool
	splashGen  int

	width  int
	height int
	ready  bool
}

// NewModel creates the root model.
func NewModel(opts Options) Model {
	view := opts.View
	if view == nil {
		view = appctx.NewView()
	}
	theme := opts.Theme
	if theme == nil {
		theme = appctx.NewTheme("dark")
	}

	sb := statusbar.NewStatusBarView()
	sb.SetTheme(theme.Name())

	return Model{
		agent:           opts.Agent,
		view:            view,
		theme:           theme,
		loadingInterval: opts.LoadingInterval,
		dashboard:       dashboard.New(view, theme),
		statusBar:       sb,
		showSplash:      true,
	}
}

// Init initializes the model (Bubble Tea lifecycle method)
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates model state (Bubble Tea lifecycle method)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeChat()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.PasteMsg:
		if m.chat != nil {
			m.chat.HandlePaste(msg.Content)
		}
		return m, nil

	case splash.ContinueMsg:
		if m.view.AgentOpen() && m.showSplash {
			m.showSplash = false
			m.mountChat()
		}
		return m, nil

	case splashRestoreMsg:
		if msg.generation == m.splashGen && !m.view.AgentOpen() {
			m.showSplash = true
		}
		return m, nil

	case chatscreen.ReplyMsg:
		if m.chat != nil && m.chat.Owns(msg.Session) {
			m.chat.HandleReply(msg)
		} else {
			msg.Session.Resolve(msg.Turn, msg.Reply, msg.Err)
		}
		return m, nil

	case chatscreen.LoadingTickMsg:
		if m.chat != nil {
			return m, m.chat.HandleTick(msg)
		}
		return m, nil

	case spinner.TickMsg:
		if m.chat != nil {
			return m, m.chat.HandleSpinner(msg)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.statusBar.SetMessage("")

	switch msg.String() {
	case "ctrl+c":
		m.closeChat()
		return m, tea.Quit
	case "ctrl+t":
		name := m.theme.Toggle()
		m.statusBar.SetTheme(name)
		if m.chat != nil {
			m.chat.SetStyles(m.theme.Styles())
		}
		slog.Debug("theme_toggled", "theme", name)
		return m, nil
	}

	if !m.view.AgentOpen() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "a":
			return m.openAgent()
		}
		return m, m.dashboard.Update(msg)
	}

	switch msg.String() {
	case "esc", "ctrl+w":
		return m.closeAgent()
	}

	if m.chat == nil {
		return m, splash.Update(msg)
	}

	cmd := m.chat.Update(msg)
	if msg.String() == "ctrl+y" && cmd != nil {
		m.statusBar.SetMessage(copiedMessage)
	}
	return m, cmd
}

func (m Model) openAgent() (tea.Model, tea.Cmd) {
	m.view.SetAgentOpen(true)
	// a restore still pending from the last close must not fire now
	m.splashGen++
	if !m.showSplash {
		m.mountChat()
	}
	slog.Info("agent_modal_open", "splash", m.showSplash)
	return m, nil
}

func (m Model) closeAgent() (tea.Model, tea.Cmd) {
	m.view.SetAgentOpen(false)
	m.closeChat()
	m.splashGen++
	gen := m.splashGen
	slog.Info("agent_modal_closed")
	return m, tea.Tick(SplashRestoreDelay, func(time.Time) tea.Msg {
		return splashRestoreMsg{generation: gen}
	})
}

func (m *Model) mountChat() {
	m.chat = chatscreen.New(chat.NewSession(m.agent), m.loadingInterval, m.theme.Styles())
	m.resizeChat()
	slog.Info("chat_session_start", "session_id", m.chat.Session().ID())
}

func (m *Model) closeChat() {
	if m.chat == nil {
		return
	}
	m.chat.Close()
	m.chat = nil
}

// modalSize returns the inner size of the agent modal.
func (m Model) modalSize() (int, int) {
	w := min(m.width-4, 100)
	h := render.ViewportHeight(m.height) - 2
	// rounded border on every side
	return max(w-2, 1), max(h-2, 1)
}

func (m *Model) resizeChat() {
	if m.chat == nil || !m.ready {
		return
	}
	m.chat.SetSize(m.modalSize())
}

// Session returns the mounted chat session, or nil.
func (m Model) Session() *chat.Session {
	if m.chat == nil {
		return nil
	}
	return m.chat.Session()
}

// ShowingSplash reports whether the modal will show (or shows) the splash.
func (m Model) ShowingSplash() bool {
	return m.showSplash
}

// View renders the UI (Bubble Tea lifecycle method)
func (m Model) View() tea.View {
	if !m.ready {
		return tea.NewView("Initializing...")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	st := m.theme.Styles()
	bodyHeight := max(render.ViewportHeight(m.height), 1)

	body := m.dashboard.View(m.width, bodyHeight)
	if m.view.AgentOpen() {
		w, h := m.modalSize()
		var inner string
		if m.chat != nil {
			inner = m.chat.View()
		} else {
			inner = splash.View(w, h, st)
		}
		panel := st.ModalBox.Render(inner)
		x, y, _, _ := render.CenterRect(lipgloss.Width(panel), lipgloss.Height(panel), m.width, bodyHeight)
		body = render.Overlay(body, panel, x, y)
	}

	m.statusBar.SetWidth(m.width)
	switch {
	case !m.view.AgentOpen():
		m.statusBar.SetHints(hintsDashboard)
		m.statusBar.SetSession("")
		m.statusBar.SetSending(false)
	case m.chat == nil:
		m.statusBar.SetHints(hintsSplash)
		m.statusBar.SetSession("")
		m.statusBar.SetSending(false)
	default:
		m.statusBar.SetHints(hintsChat)
		m.statusBar.SetSession(m.chat.Session().ID())
		m.statusBar.SetSending(m.chat.Session().IsSending())
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar.Render(st))
}
