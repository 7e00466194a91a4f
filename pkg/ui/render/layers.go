// Package render positions and composites panels over the main view.
package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const sgrReset = "\x1b[m"

// CenterRect returns a rectangle centered within the screen bounds.
// Width/height are clamped to the screen size before centering.
func CenterRect(panelW, panelH, screenW, screenH int) (x, y, w, h int) {
	w = panelW
	h = panelH
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if screenW < 0 {
		screenW = 0
	}
	if screenH < 0 {
		screenH = 0
	}
	if w > screenW {
		w = screenW
	}
	if h > screenH {
		h = screenH
	}
	if screenW > w {
		x = (screenW - w) / 2
	}
	if screenH > h {
		y = (screenH - h) / 2
	}
	return ClampRect(x, y, w, h, screenW, screenH)
}

// ClampRect clamps a rectangle to the screen bounds.
func ClampRect(x, y, w, h, screenW, screenH int) (int, int, int, int) {
	if screenW < 0 {
		screenW = 0
	}
	if screenH < 0 {
		screenH = 0
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > screenW {
		x = screenW
	}
	if y > screenH {
		y = screenH
	}
	if x+w > screenW {
		w = screenW - x
	}
	if y+h > screenH {
		h = screenH - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return x, y, w, h
}

// ViewportHeight reserves one line for the status bar.
func ViewportHeight(height int) int {
	if height <= 1 {
		return 0
	}
	return height - 1
}

// Overlay draws panel over base with its top-left corner at (x, y). Rows
// of panel that fall outside base are dropped; base cells left of x and
// right of the panel are kept.
func Overlay(base, panel string, x, y int) string {
	if x < 0 {
		x = 0
	}
	baseLines := strings.Split(base, "\n")

	for i, line := range strings.Split(panel, "\n") {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}

		under := baseLines[row]
		left := ansi.Truncate(under, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(under, x+ansi.StringWidth(line), "")

		baseLines[row] = left + sgrReset + line + sgrReset + right
	}

	return strings.Join(baseLines, "\n")
}
