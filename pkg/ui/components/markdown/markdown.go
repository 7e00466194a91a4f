// Package markdown renders the subset of markdown the agent tends to reply
// with (bold, inline code, headings, bullets, fenced code and pipe tables)
// into width-limited, styled terminal lines.
package markdown

import (
	"strings"

	"agentbuddy/pkg/ui/components/utils"
	"agentbuddy/pkg/ui/styles"

	"github.com/mattn/go-runewidth"
)

// Render converts content to styled lines no wider than width.
func Render(content string, width int, st styles.Styles) []string {
	if width <= 0 {
		return []string{""}
	}

	r := renderer{width: width, st: st}
	rawLines := strings.Split(sanitize(content), "\n")

	var out []string
	inCode := false

	for i := 0; i < len(rawLines); i++ {
		line := strings.ReplaceAll(rawLines[i], "\t", "    ")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			out = append(out, r.codeLine(line)...)
			continue
		}

		if isTableRow(line) {
			start := i
			for i < len(rawLines) && isTableRow(rawLines[i]) {
				i++
			}
			out = append(out, r.table(rawLines[start:i])...)
			i--
			continue
		}

		out = append(out, r.line(line)...)
	}

	if len(out) == 0 {
		return []string{""}
	}
	return out
}

type span struct {
	text string
	bold bool
	code bool
}

type renderer struct {
	width int
	st    styles.Styles
}

func (r renderer) line(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return []string{""}
	}

	if level, heading := headingLevel(trimmed); level > 0 {
		return r.wrap(tokenize(heading), "", true)
	}

	if bullet, ok := bulletText(trimmed); ok {
		return r.wrap(tokenize(bullet), "• ", false)
	}

	return r.wrap(tokenize(line), "", false)
}

// wrap lays tokens out word by word. Continuation lines of a bullet are
// indented to the bullet text.
func (r renderer) wrap(tokens []span, prefix string, heading bool) []string {
	if len(tokens) == 0 {
		return []string{""}
	}

	prefixWidth := runewidth.StringWidth(prefix)
	avail := r.width - prefixWidth
	if avail < 1 {
		avail = 1
		prefix = ""
		prefixWidth = 0
	}

	var lines []string
	var sb strings.Builder
	lineWidth := 0

	flush := func() {
		lead := prefix
		if len(lines) > 0 {
			lead = strings.Repeat(" ", prefixWidth)
		}
		lines = append(lines, r.st.Text.Render(lead)+sb.String())
		sb.Reset()
		lineWidth = 0
	}

	for _, tok := range tokens {
		for _, part := range utils.SplitByWidth(tok.text, avail) {
			partWidth := runewidth.StringWidth(part)
			if lineWidth > 0 && lineWidth+1+partWidth > avail {
				flush()
			}
			if lineWidth > 0 {
				sb.WriteString(r.st.Text.Render(" "))
				lineWidth++
			}
			sb.WriteString(r.styleSpan(part, tok, heading))
			lineWidth += partWidth
		}
	}
	if sb.Len() > 0 {
		flush()
	}
	return lines
}

func (r renderer) styleSpan(text string, tok span, heading bool) string {
	switch {
	case heading:
		return r.st.Title.Render(text)
	case tok.code:
		return r.st.Code.Render(text)
	case tok.bold:
		return r.st.TextBold.Render(text)
	default:
		return r.st.Text.Render(text)
	}
}

func (r renderer) codeLine(line string) []string {
	if line == "" {
		return []string{r.st.Code.Render(strings.Repeat(" ", r.width))}
	}
	parts := utils.SplitByWidth(line, r.width)
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		lines = append(lines, r.st.Code.Render(padPlain(part, r.width)))
	}
	return lines
}

func (r renderer) table(block []string) []string {
	rows := make([][]string, 0, len(block))
	for _, line := range block {
		if cells := splitTableRow(line); len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	header := false
	if len(rows) > 1 && isSeparatorRow(rows[1]) {
		header = true
		rows = append(rows[:1], rows[2:]...)
	}

	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	widths := make([]int, cols)
	for i := range rows {
		for len(rows[i]) < cols {
			rows[i] = append(rows[i], "")
		}
		for c, cell := range rows[i] {
			widths[c] = max(widths[c], runewidth.StringWidth(cell))
		}
	}

	// Each column costs "| " + " " around its content, plus the closing "|".
	budget := r.width - (3*cols + 1)
	if budget < cols {
		var out []string
		for _, row := range rows {
			out = append(out, r.st.Text.Render(utils.TrimToWidth(strings.Join(row, " | "), r.width)))
		}
		return out
	}
	shrinkColumns(widths, budget)

	var out []string
	for i, row := range rows {
		line := buildTableLine(row, widths)
		if header && i == 0 {
			out = append(out, r.st.TextBold.Render(line))
			out = append(out, r.st.Text.Render(buildTableSeparator(widths)))
			continue
		}
		out = append(out, r.st.Text.Render(line))
	}
	return out
}

// shrinkColumns narrows the widest column one cell at a time until the
// total fits budget.
func shrinkColumns(widths []int, budget int) {
	total := 0
	for _, w := range widths {
		total += max(w, 1)
	}
	for total > budget {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 1 {
			return
		}
		widths[widest]--
		total--
	}
}

func buildTableLine(row []string, widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, w := range widths {
		sb.WriteString(" ")
		sb.WriteString(padPlain(utils.TrimToWidth(row[i], w), w))
		sb.WriteString(" |")
	}
	return sb.String()
}

func buildTableSeparator(widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for _, w := range widths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", max(w, 1)))
		sb.WriteString(" |")
	}
	return sb.String()
}

func isTableRow(line string) bool {
	if strings.Count(line, "|") < 2 {
		return false
	}
	cells := splitTableRow(line)
	if len(cells) < 2 {
		return false
	}
	for _, cell := range cells {
		if cell != "" {
			return true
		}
	}
	return false
}

func splitTableRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func isSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		clean := strings.Trim(cell, ":")
		if len(clean) < 3 || strings.Trim(clean, "-") != "" {
			return false
		}
	}
	return len(cells) > 0
}

func headingLevel(line string) (int, string) {
	level := 0
	for level < len(line) && level < 6 && line[level] == '#' {
		level++
	}
	if level == 0 || level >= len(line) || line[level] != ' ' {
		return 0, ""
	}
	return level, strings.TrimSpace(line[level:])
}

func bulletText(line string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):]), true
		}
	}
	return "", false
}

// tokenize splits a line into words, tracking **bold** and `code` spans.
func tokenize(line string) []span {
	var tokens []span
	bold, code := false, false

	var word strings.Builder
	emit := func() {
		if word.Len() > 0 {
			tokens = append(tokens, span{text: word.String(), bold: bold, code: code})
			word.Reset()
		}
	}

	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '`':
			emit()
			code = !code
		case !code && strings.HasPrefix(line[i:], "**"):
			emit()
			bold = !bold
			i++
		case line[i] == ' ':
			emit()
		default:
			word.WriteByte(line[i])
		}
	}
	emit()

	return tokens
}

func sanitize(content string) string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	for _, br := range []string{"<br>", "<br/>", "<br />"} {
		normalized = strings.ReplaceAll(normalized, br, "\n")
	}

	var sb strings.Builder
	sb.Grow(len(normalized))
	for _, r := range normalized {
		if r == '\n' || r == '\t' {
			sb.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func padPlain(text string, width int) string {
	textWidth := runewidth.StringWidth(text)
	if textWidth >= width {
		return text
	}
	return text + strings.Repeat(" ", width-textWidth)
}
