package render

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestCenterRectOddSizes(t *testing.T) {
	x, y, w, h := CenterRect(3, 1, 9, 5)
	if x != 3 || y != 2 || w != 3 || h != 1 {
		t.Fatalf("unexpected rect: x=%d y=%d w=%d h=%d", x, y, w, h)
	}
}

func TestCenterRectClampsToScreen(t *testing.T) {
	x, y, w, h := CenterRect(10, 7, 6, 4)
	if x != 0 || y != 0 || w != 6 || h != 4 {
		t.Fatalf("unexpected rect: x=%d y=%d w=%d h=%d", x, y, w, h)
	}
}

func TestClampRectNegativeOrigin(t *testing.T) {
	x, y, w, h := ClampRect(-2, -1, 5, 4, 4, 3)
	if x != 0 || y != 0 || w != 4 || h != 3 {
		t.Fatalf("unexpected rect: x=%d y=%d w=%d h=%d", x, y, w, h)
	}
}

func TestViewportHeight(t *testing.T) {
	if ViewportHeight(0) != 0 {
		t.Fatal("expected height 0 for screen height 0")
	}
	if ViewportHeight(1) != 0 {
		t.Fatal("expected height 0 for screen height 1")
	}
	if ViewportHeight(5) != 4 {
		t.Fatalf("expected height 4 for screen height 5, got %d", ViewportHeight(5))
	}
}

func TestOverlayCentersPanel(t *testing.T) {
	base := "aaaaaaa\nbbbbbbb\nccccccc"
	got := ansi.Strip(Overlay(base, "XX\nYY", 2, 1))
	want := "aaaaaaa\nbbXXbbb\nccYYccc"
	if got != want {
		t.Fatalf("unexpected overlay:\n%q\nwant\n%q", got, want)
	}
}

func TestOverlayPadsShortLines(t *testing.T) {
	got := ansi.Strip(Overlay("a", "Z", 3, 0))
	if got != "a  Z" {
		t.Fatalf("unexpected overlay: %q", got)
	}
}

func TestOverlayDropsRowsOutsideBase(t *testing.T) {
	got := ansi.Strip(Overlay("aaa\nbbb", "1\n2\n3", 0, 1))
	if got != "aaa\n1bb" {
		t.Fatalf("unexpected overlay: %q", got)
	}
}

func TestOverlayStyledBase(t *testing.T) {
	base := "\x1b[31mredredred\x1b[0m"
	got := Overlay(base, "ok", 3, 0)
	if ansi.StringWidth(got) != 9 {
		t.Fatalf("expected width 9, got %d", ansi.StringWidth(got))
	}
	if ansi.Strip(got) != "redokdred" {
		t.Fatalf("unexpected overlay: %q", ansi.Strip(got))
	}
}
