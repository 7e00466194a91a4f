// Package appctx holds the application-wide state shared by UI components.
// Each value is built once in main and handed to the components that need
// it; nothing here is a package-level singleton.
package appctx

import (
	"agentbuddy/pkg/config"
	"agentbuddy/pkg/ui/styles"
)

// View tracks whether the agent modal is open.
type View struct {
	agentOpen bool
}

// NewView returns a View with the agent modal closed.
func NewView() *View {
	return &View{}
}

// AgentOpen reports whether the agent modal is open.
func (v *View) AgentOpen() bool {
	return v.agentOpen
}

// SetAgentOpen opens or closes the agent modal.
func (v *View) SetAgentOpen(open bool) {
	v.agentOpen = open
}

// Theme tracks the active palette.
type Theme struct {
	palette styles.Palette
	styles  styles.Styles
}

// NewTheme returns a Theme starting on the named palette.
func NewTheme(name string) *Theme {
	t := &Theme{}
	t.Set(name)
	return t
}

// Name returns the active theme name.
func (t *Theme) Name() string {
	return t.palette.Name
}

// IsDark reports whether the dark palette is active.
func (t *Theme) IsDark() bool {
	return t.palette.Name == config.ThemeDark
}

// Set switches to the named palette.
func (t *Theme) Set(name string) {
	t.palette = styles.PaletteFor(name)
	t.styles = styles.New(t.palette)
}

// Toggle flips between dark and light and returns the new name.
func (t *Theme) Toggle() string {
	if t.IsDark() {
		t.Set(config.ThemeLight)
	} else {
		t.Set(config.ThemeDark)
	}
	return t.Name()
}

// Styles returns the styles for the active palette.
func (t *Theme) Styles() styles.Styles {
	return t.styles
}
