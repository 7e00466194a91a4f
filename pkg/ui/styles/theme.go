// Package styles provides the dark and light palettes for the agentbuddy UI
// and the component styles derived from them.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is the set of colors one theme is built from.
type Palette struct {
	Name string

	Accent      color.Color // brand magenta
	AccentDeep  color.Color
	Text        color.Color
	TextMuted   color.Color
	TextBright  color.Color
	Surface     color.Color // user bubble / status bar background
	Border      color.Color
	Placeholder color.Color
	Code        color.Color
	CodeBg      color.Color

	Up   color.Color
	Down color.Color

	UrgencyHigh   color.Color
	UrgencyMedium color.Color
	UrgencyLow    color.Color
}

// Dark and Light mirror the web front-end's two themes.
var (
	Dark = Palette{
		Name:          "dark",
		Accent:        lipgloss.Color("#e82baf"),
		AccentDeep:    lipgloss.Color("#150029"),
		Text:          lipgloss.Color("252"),
		TextMuted:     lipgloss.Color("245"),
		TextBright:    lipgloss.Color("15"),
		Surface:       lipgloss.Color("236"),
		Border:        lipgloss.Color("#e82baf"),
		Placeholder:   lipgloss.Color("240"),
		Code:          lipgloss.Color("213"),
		CodeBg:        lipgloss.Color("235"),
		Up:            lipgloss.Color("42"),
		Down:          lipgloss.Color("196"),
		UrgencyHigh:   lipgloss.Color("#f87171"),
		UrgencyMedium: lipgloss.Color("#fbbf24"),
		UrgencyLow:    lipgloss.Color("#38bdf8"),
	}

	Light = Palette{
		Name:          "light",
		Accent:        lipgloss.Color("#e82baf"),
		AccentDeep:    lipgloss.Color("#150029"),
		Text:          lipgloss.Color("235"),
		TextMuted:     lipgloss.Color("242"),
		TextBright:    lipgloss.Color("0"),
		Surface:       lipgloss.Color("254"),
		Border:        lipgloss.Color("#150029"),
		Placeholder:   lipgloss.Color("248"),
		Code:          lipgloss.Color("90"),
		CodeBg:        lipgloss.Color("255"),
		Up:            lipgloss.Color("28"),
		Down:          lipgloss.Color("160"),
		UrgencyHigh:   lipgloss.Color("#dc2626"),
		UrgencyMedium: lipgloss.Color("#b45309"),
		UrgencyLow:    lipgloss.Color("#0369a1"),
	}
)

// PaletteFor returns the palette with the given name, defaulting to Dark.
func PaletteFor(name string) Palette {
	if name == Light.Name {
		return Light
	}
	return Dark
}

// Styles holds every reusable style for one palette.
type Styles struct {
	Palette Palette

	// Panels
	ModalBox  lipgloss.Style
	Separator lipgloss.Style

	// Text
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Text      lipgloss.Style
	TextMuted lipgloss.Style
	TextBold  lipgloss.Style
	Link      lipgloss.Style
	Footer    lipgloss.Style

	// Chat
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	UserText       lipgloss.Style
	Code           lipgloss.Style
	Loading        lipgloss.Style
	Spinner        lipgloss.Style

	// Splash
	Button lipgloss.Style

	// Dashboard
	Up            lipgloss.Style
	Down          lipgloss.Style
	Selected      lipgloss.Style
	UrgencyHigh   lipgloss.Style
	UrgencyMedium lipgloss.Style
	UrgencyLow    lipgloss.Style
	FloatButton   lipgloss.Style

	StatusBar lipgloss.Style
}

// New builds the component styles for p.
func New(p Palette) Styles {
	return Styles{
		Palette: p,

		ModalBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),
		Separator: lipgloss.NewStyle().Foreground(p.Placeholder),

		Title:     lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Subtitle:  lipgloss.NewStyle().Foreground(p.TextMuted),
		Text:      lipgloss.NewStyle().Foreground(p.Text),
		TextMuted: lipgloss.NewStyle().Foreground(p.TextMuted).Italic(true),
		TextBold:  lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Link:      lipgloss.NewStyle().Foreground(p.Accent).Underline(true),
		Footer:    lipgloss.NewStyle().Foreground(p.TextMuted).Italic(true),

		UserLabel:      lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		AssistantLabel: lipgloss.NewStyle().Foreground(p.TextBright).Bold(true),
		UserText:       lipgloss.NewStyle().Foreground(p.TextBright),
		Code:           lipgloss.NewStyle().Foreground(p.Code).Background(p.CodeBg),
		Loading:        lipgloss.NewStyle().Foreground(p.TextMuted).Italic(true),
		Spinner:        lipgloss.NewStyle().Foreground(p.Accent),

		Button: lipgloss.NewStyle().
			Foreground(p.Surface).
			Background(p.Text).
			Bold(true).
			Padding(0, 3),

		Up:            lipgloss.NewStyle().Foreground(p.Up),
		Down:          lipgloss.NewStyle().Foreground(p.Down),
		Selected:      lipgloss.NewStyle().Foreground(p.TextBright).Background(p.AccentDeep).Bold(true),
		UrgencyHigh:   lipgloss.NewStyle().Foreground(p.UrgencyHigh).Bold(true),
		UrgencyMedium: lipgloss.NewStyle().Foreground(p.UrgencyMedium).Bold(true),
		UrgencyLow:    lipgloss.NewStyle().Foreground(p.UrgencyLow).Bold(true),
		FloatButton: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#4f46e5")).
			Bold(true).
			Padding(0, 2),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface).
			Padding(0, 1),
	}
}
