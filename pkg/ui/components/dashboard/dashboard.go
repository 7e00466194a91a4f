// Package dashboard renders the home view: a quote board over the mock
// metals data, the price and procurement tables and the recommendation
// cards. The body scrolls when it does not fit.
package dashboard

import (
	"fmt"
	"math"
	"strings"

	"agentbuddy/pkg/ui/appctx"
	"agentbuddy/pkg/ui/components/utils"
	"agentbuddy/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const (
	title       = "LME Procurement Intelligence"
	subtitle    = "PCL · Price Forecast & Order Timing Engine · POC v1.0"
	sources     = "Sources: LME.com & Kitco"
	agentButton = "✦ Ask Indus AI Buddy (a)"

	procurementTitle = "◆ PCL Procurement Trend · Actuals vs Requirement vs Recommended Order"
	absent           = "—"
)

// Dashboard is the home view.
type Dashboard struct {
	view     *appctx.View
	theme    *appctx.Theme
	selected int

	// offset is the first body line shown; page and maxOffset come from
	// the last View call.
	offset    int
	page      int
	maxOffset int
}

// New returns a dashboard with the first metal selected.
func New(view *appctx.View, theme *appctx.Theme) *Dashboard {
	return &Dashboard{view: view, theme: theme}
}

// Selected returns the highlighted metal.
func (d *Dashboard) Selected() Metal {
	return Metals[d.selected]
}

// Update moves the selection on left/right and scrolls on up/down.
func (d *Dashboard) Update(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		d.selected = (d.selected + len(Metals) - 1) % len(Metals)
	case "right", "l", "tab":
		d.selected = (d.selected + 1) % len(Metals)
	case "up", "k":
		d.scrollTo(d.offset - 1)
	case "down", "j":
		d.scrollTo(d.offset + 1)
	case "pgup":
		d.scrollTo(d.offset - max(d.page, 1))
	case "pgdown", "space":
		d.scrollTo(d.offset + max(d.page, 1))
	case "home", "g":
		d.scrollTo(0)
	case "end", "G":
		d.scrollTo(d.maxOffset)
	}
	return nil
}

// Offset returns the first visible body line.
func (d *Dashboard) Offset() int {
	return d.offset
}

func (d *Dashboard) scrollTo(offset int) {
	d.offset = max(min(offset, d.maxOffset), 0)
}

// View renders the dashboard into exactly height lines of width cells.
func (d *Dashboard) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	st := d.theme.Styles()

	var lines []string
	lines = append(lines, st.Title.Render(utils.TruncateToWidth(title, width)))
	lines = append(lines, st.Subtitle.Render(utils.TruncateToWidth(subtitle, width)))
	lines = append(lines, st.TextMuted.Render(utils.TruncateToWidth(sources, width)))
	lines = append(lines, "")
	lines = append(lines, d.quoteBoard(width, st)...)
	lines = append(lines, "")
	lines = append(lines, d.sourceComparison(width, st)...)
	lines = append(lines, "")
	lines = append(lines, d.priceTable(width, st)...)
	lines = append(lines, "")
	for i, rec := range Recommendations {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, recommendationCard(rec, width, st)...)
	}
	lines = append(lines, "")
	lines = append(lines, procurementTable(width, st)...)

	// Keep the last row for the agent button.
	body := height
	if !d.view.AgentOpen() {
		body--
	}
	d.page = max(body, 0)
	d.maxOffset = max(len(lines)-d.page, 0)
	d.scrollTo(d.offset)

	lines = lines[d.offset:]
	if len(lines) > body {
		lines = lines[:max(body, 0)]
	}

	out := make([]string, 0, height)
	for _, line := range lines {
		out = append(out, utils.PadStyled(line, width))
	}
	for len(out) < body {
		out = append(out, strings.Repeat(" ", width))
	}
	if !d.view.AgentOpen() {
		button := st.FloatButton.Render(agentButton)
		pad := max(width-lipgloss.Width(button), 0)
		out = append(out, strings.Repeat(" ", pad)+button)
	}

	return strings.Join(out, "\n")
}

func (d *Dashboard) quoteBoard(width int, st styles.Styles) []string {
	const row = "%-2s %-4s %-10s %10s %10s %6s"

	header := fmt.Sprintf(row, "", "SYM", "METAL", "PRICE", "CHANGE", "UNIT")
	lines := []string{st.TextBold.Render(utils.TrimToWidth(header, width))}

	for i, m := range Metals {
		marker := ""
		if i == d.selected {
			marker = "▸"
		}

		arrow := "▲"
		if !m.Up() {
			arrow = "▼"
		}
		change := fmt.Sprintf("%s %.2f%%", arrow, math.Abs(m.ChangePercent()))

		text := fmt.Sprintf(row, marker, m.Symbol, m.Label, FormatPrice(m.Price), change, m.Unit)
		text = utils.TrimToWidth(text, width)

		switch {
		case i == d.selected:
			lines = append(lines, st.Selected.Render(text))
		case m.Up():
			lines = append(lines, st.Up.Render(text))
		default:
			lines = append(lines, st.Down.Render(text))
		}
	}
	return lines
}

func (d *Dashboard) sourceComparison(width int, st styles.Styles) []string {
	m := d.Selected()

	verdict := "✓ Tight"
	verdictStyle := st.Up
	if m.SourceSpread() >= TightSpread {
		verdict = "⚠ Wide"
		verdictStyle = st.UrgencyMedium
	}

	heading := fmt.Sprintf("◆ Source Comparison · %s", m.Label)
	quotes := fmt.Sprintf("LME.com %s   Kitco %s   Spread %s ",
		FormatPrice(m.LME), FormatPrice(m.Kitco), FormatPrice(m.SourceSpread()))

	return []string{
		st.TextBold.Render(utils.TruncateToWidth(heading, width)),
		ansi.Truncate(st.Text.Render(quotes)+verdictStyle.Render(verdict), width, ""),
	}
}

func (d *Dashboard) priceTable(width int, st styles.Styles) []string {
	const row = "%-8s %10s %10s %10s %10s"

	m := d.Selected()
	heading := fmt.Sprintf("◆ Price History & Forecast · %s (%s)", m.Label, m.Unit)
	header := fmt.Sprintf(row, "MONTH", "PRICE", "FORECAST", "LOW", "HIGH")

	lines := []string{
		st.TextBold.Render(utils.TruncateToWidth(heading, width)),
		st.TextBold.Render(utils.TrimToWidth(header, width)),
	}
	for _, p := range History[m.ID] {
		text := utils.TrimToWidth(fmt.Sprintf(row,
			p.Month, priceCell(p.Price), priceCell(p.Forecast), priceCell(p.Low), priceCell(p.High)), width)
		if p.IsForecast() {
			lines = append(lines, st.TextMuted.Render(text))
		} else {
			lines = append(lines, st.Text.Render(text))
		}
	}
	return lines
}

func procurementTable(width int, st styles.Styles) []string {
	const row = "%-8s %10s %10s %12s %10s"

	header := fmt.Sprintf(row, "MONTH", "ACTUAL", "REQUIRED", "RECOMMENDED", "GAP")
	lines := []string{
		st.TextBold.Render(utils.TruncateToWidth(procurementTitle, width)),
		st.TextBold.Render(utils.TrimToWidth(header, width)),
	}
	for _, p := range Procurement {
		gap := absent
		if p.Actual > 0 {
			gap = printer.Sprintf("%+d", p.Gap())
		}
		text := utils.TrimToWidth(fmt.Sprintf(row,
			p.Month, tonsCell(p.Actual), tonsCell(p.Required), tonsCell(p.Recommended), gap), width)

		switch {
		case p.Actual == 0:
			lines = append(lines, st.TextMuted.Render(text))
		case p.Gap() < 0:
			lines = append(lines, st.Down.Render(text))
		default:
			lines = append(lines, st.Text.Render(text))
		}
	}
	return lines
}

func priceCell(v float64) string {
	if v == 0 {
		return absent
	}
	return FormatPrice(v)
}

func tonsCell(v int) string {
	if v == 0 {
		return absent
	}
	return FormatTons(v)
}

func recommendationCard(rec Recommendation, width int, st styles.Styles) []string {
	badge := urgencyStyle(rec.Urgency, st).Render(rec.Urgency.Label())
	head := fmt.Sprintf("  %s (%s) · %d%% confidence", rec.Metal, rec.Symbol, rec.Confidence)
	price := fmt.Sprintf("%s → %s (%s) · window %s · qty %s",
		FormatPrice(rec.CurrentPrice), FormatPrice(rec.ProjectedPrice), rec.PriceRisk, rec.Window, rec.Qty)

	lines := []string{
		badge + st.TextBold.Render(utils.TruncateToWidth(head, max(width-lipgloss.Width(badge), 0))),
		st.Text.Render(utils.TruncateToWidth(price, width)),
	}
	for _, line := range utils.WrapWords(rec.Rationale, width) {
		lines = append(lines, st.TextMuted.Render(line))
	}
	return lines
}

func urgencyStyle(u Urgency, st styles.Styles) lipgloss.Style {
	switch u {
	case UrgencyHigh:
		return st.UrgencyHigh
	case UrgencyMedium:
		return st.UrgencyMedium
	default:
		return st.UrgencyLow
	}
}
