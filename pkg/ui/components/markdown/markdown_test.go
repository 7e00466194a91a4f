package markdown

import (
	"strings"
	"testing"

	"agentbuddy/pkg/ui/styles"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func plain(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ansi.Strip(line)
	}
	return out
}

func TestRender_BoldAndCode(t *testing.T) {
	st := styles.New(styles.Dark)
	lines := plain(Render("Buy **copper** via `lme`", 40, st))
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d: %q", len(lines), lines)
	}
	if lines[0] != "Buy copper via lme" {
		t.Errorf("Expected markers stripped, got %q", lines[0])
	}
}

func TestRender_WrapsToWidth(t *testing.T) {
	st := styles.New(styles.Dark)
	lines := Render("the quick brown fox jumps over the lazy dog", 12, st)
	if len(lines) < 2 {
		t.Fatalf("Expected wrapped output, got %q", plain(lines))
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w > 12 {
			t.Errorf("Line %q exceeds width: %d", ansi.Strip(line), w)
		}
	}
}

func TestRender_BulletsAndHeadings(t *testing.T) {
	st := styles.New(styles.Light)
	lines := plain(Render("## Outlook\n- first point\n* second", 30, st))
	want := []string{"Outlook", "• first point", "• second"}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %q", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRender_BulletContinuationIndented(t *testing.T) {
	st := styles.New(styles.Dark)
	lines := plain(Render("- alpha beta gamma", 10, st))
	if len(lines) < 2 {
		t.Fatalf("Expected wrapped bullet, got %q", lines)
	}
	if !strings.HasPrefix(lines[1], "  ") {
		t.Errorf("Expected continuation indent, got %q", lines[1])
	}
}

func TestRender_CodeFence(t *testing.T) {
	st := styles.New(styles.Dark)
	lines := plain(Render("```\nx := 1\n```", 10, st))
	if len(lines) != 1 {
		t.Fatalf("Expected fence markers dropped, got %q", lines)
	}
	if lines[0] != "x := 1    " {
		t.Errorf("Expected padded code line, got %q", lines[0])
	}
}

func TestRender_Table(t *testing.T) {
	st := styles.New(styles.Dark)
	content := "| Metal | Price |\n|---|---|\n| Copper | 9412 |"
	lines := plain(Render(content, 40, st))
	want := []string{
		"| Metal  | Price |",
		"| ------ | ----- |",
		"| Copper | 9412  |",
	}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %q", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRender_TableShrinksToWidth(t *testing.T) {
	st := styles.New(styles.Dark)
	content := "| Recommendation | Rationale |\n|---|---|\n| BUY NOW | Supply is tightening fast |"
	for _, line := range Render(content, 24, st) {
		if w := lipgloss.Width(line); w > 24 {
			t.Errorf("Line %q exceeds width: %d", ansi.Strip(line), w)
		}
	}
}

func TestRender_Empty(t *testing.T) {
	st := styles.New(styles.Dark)
	if got := Render("", 20, st); len(got) != 1 || got[0] != "" {
		t.Errorf("Expected single empty line, got %q", got)
	}
	if got := Render("text", 0, st); len(got) != 1 {
		t.Errorf("Expected single line for zero width, got %q", got)
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize("a\r\nb<br>c\x07"); got != "a\nb\nc" {
		t.Errorf("sanitize() = %q", got)
	}
}
