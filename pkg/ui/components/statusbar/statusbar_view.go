package statusbar

import (
	"fmt"
	"strings"

	"agentbuddy/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
)

const shortIDLen = 8

// StatusBarView renders the single status line under the main view.
type StatusBarView struct {
	sessionID string
	sending   bool
	theme     string
	hints     string
	message   string
	width     int
}

// NewStatusBarView creates a new status bar view
func NewStatusBarView() *StatusBarView {
	return &StatusBarView{
		theme: "dark",
		width: 80,
	}
}

// SetSession sets the session shown; empty means no chat is open.
func (s *StatusBarView) SetSession(id string) {
	s.sessionID = id
}

// SetSending switches the state label between idle and sending.
func (s *StatusBarView) SetSending(sending bool) {
	s.sending = sending
}

// SetTheme updates the theme name displayed.
func (s *StatusBarView) SetTheme(name string) {
	s.theme = name
}

// SetHints sets the key hints for the active screen.
func (s *StatusBarView) SetHints(hints string) {
	s.hints = strings.TrimSpace(hints)
}

// SetMessage sets a temporary message that replaces the hints.
func (s *StatusBarView) SetMessage(msg string) {
	s.message = msg
}

// SetWidth updates the width for rendering
func (s *StatusBarView) SetWidth(width int) {
	s.width = width
}

// ShortID returns the first characters of a session ID.
func ShortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// Render returns the styled status bar string
func (s *StatusBarView) Render(st styles.Styles) string {
	session := "-"
	if s.sessionID != "" {
		session = ShortID(s.sessionID)
	}
	state := "idle"
	if s.sending {
		state = "sending"
	}

	tail := s.hints
	if s.message != "" {
		tail = s.message
	}

	content := fmt.Sprintf("[agentbuddy] session %s | %s | theme %s", session, state, s.theme)
	if tail != "" {
		content += " | " + tail
	}

	// Truncate if too long (ANSI-aware width).
	maxWidth := max(s.width-2, 10)
	if ansi.StringWidth(content) > maxWidth {
		content = ansi.Truncate(content, maxWidth, "...")
	}

	// Style first, then pad to fill width
	styled := st.StatusBar.Render(content)
	if w := ansi.StringWidth(styled); w < s.width {
		styled += strings.Repeat(" ", s.width-w)
	}

	return styled
}
