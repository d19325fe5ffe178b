package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestCompose(t *testing.T) {
	bg := strings.Join([]string{
		"..........",
		"..........",
		"..........",
	}, "\n")

	tests := []struct {
		name      string
		placement Placement
		want      []string
	}{
		{
			name:      "center",
			placement: Center,
			want:      []string{"..........", "....XX....", ".........."},
		},
		{
			name:      "top left",
			placement: Placement{Horizontal: lipgloss.Left, Vertical: lipgloss.Top},
			want:      []string{"XX........", "..........", ".........."},
		},
		{
			name:      "bottom right with margin",
			placement: Placement{Horizontal: lipgloss.Right, Vertical: lipgloss.Bottom, MarginX: 1},
			want:      []string{"..........", "..........", ".......XX."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(bg, "XX", 10, 3, tt.placement)
			if got != strings.Join(tt.want, "\n") {
				t.Errorf("Compose() =\n%s\nwant\n%s", got, strings.Join(tt.want, "\n"))
			}
		})
	}
}

func TestComposeClipsForeground(t *testing.T) {
	got := Compose("", "ABCDEFGH\n12345678\nxxxxxxxx", 4, 2, Center)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		if w := ansi.StringWidth(line); w != 4 {
			t.Errorf("line %q width = %d, want 4", line, w)
		}
	}
	if lines[0] != "ABCD" {
		t.Errorf("first line = %q, want ABCD", lines[0])
	}
}

func TestComposeKeepsStyledBackground(t *testing.T) {
	bg := lipgloss.NewStyle().Bold(true).Render("abcdefgh")
	got := Compose(bg, "X", 8, 1, Center)
	if plain := ansi.Strip(got); plain != "abcXefgh" {
		t.Errorf("Compose() plain = %q, want abcXefgh", plain)
	}
}

func TestComposeUnknownSize(t *testing.T) {
	if got := Compose("bg", "fg", 0, 0, Center); got != "fg" {
		t.Errorf("Compose() = %q, want fg", got)
	}
	if got := Compose("bg", "", 0, 0, Center); got != "bg" {
		t.Errorf("Compose() = %q, want bg", got)
	}
}

func TestStackLastLayerOnTop(t *testing.T) {
	got := Stack("", 5, 1, "AAA", "B")
	if got != " ABA " {
		t.Errorf("Stack() = %q, want %q", got, " ABA ")
	}
}

func TestDimFillsCanvas(t *testing.T) {
	out := Dim(6, 2, lipgloss.Color("236"))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Dim() has %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		if w := ansi.StringWidth(line); w != 6 {
			t.Errorf("Dim() line width = %d, want 6", w)
		}
	}
}
