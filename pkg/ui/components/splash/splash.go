// Package splash renders the agent modal's landing card.
package splash

import (
	"strings"

	"agentbuddy/pkg/ui/components/utils"
	"agentbuddy/pkg/ui/styles"
	"agentbuddy/pkg/version"

	tea "charm.land/bubbletea/v2"
)

const (
	Title   = "Indus AI Buddy"
	Tagline = "Your intelligent assistant, reimagined"
	Button  = "Get started →"
	hint    = "enter continue · ctrl+t theme · esc close"
)

// ContinueMsg is emitted when the user leaves the splash for the chat.
type ContinueMsg struct{}

// Update handles a key press on the splash screen.
func Update(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "space":
		return func() tea.Msg { return ContinueMsg{} }
	}
	return nil
}

// View renders the splash centered in a width x height area.
func View(width, height int, st styles.Styles) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	divider := strings.Repeat("─", min(len(Title)+4, width))
	card := []string{
		st.Title.Render(utils.TruncateToWidth(Title, width)),
		st.Separator.Render(divider),
		st.Subtitle.Render(utils.TruncateToWidth(Tagline, width)),
		"",
		st.Button.Render(Button),
		"",
		st.Footer.Render(utils.TruncateToWidth(hint, width)),
		st.TextMuted.Render(utils.TruncateToWidth(version.Summary(), width)),
	}

	top := max((height-len(card))/2, 0)
	lines := make([]string, 0, height)
	for range top {
		lines = append(lines, strings.Repeat(" ", width))
	}
	for _, line := range card {
		if len(lines) >= height {
			break
		}
		lines = append(lines, utils.CenterStyled(line, width))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}
