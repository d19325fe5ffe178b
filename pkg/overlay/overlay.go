// Package overlay paints rendered blocks on top of a background view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Placement controls where a foreground block lands.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
}

// Center is the placement used for dialogs.
var Center = Placement{Horizontal: lipgloss.Center, Vertical: lipgloss.Center}

// Compose paints foreground over background inside a width x height canvas.
// Background cells outside the foreground's box stay visible.
func Compose(background, foreground string, width, height int, placement Placement) string {
	if width <= 0 || height <= 0 {
		if foreground == "" {
			return background
		}
		return foreground
	}

	bgLines := normalize(background, width, height)
	if foreground == "" {
		return strings.Join(bgLines, "\n")
	}

	fgLines := strings.Split(foreground, "\n")
	fgWidth := 0
	for _, line := range fgLines {
		fgWidth = max(fgWidth, ansi.StringWidth(line))
	}
	fgWidth = min(fgWidth, width)
	fgHeight := min(len(fgLines), height)

	offsetX, offsetY := offsets(width, height, fgWidth, fgHeight, placement)

	for row := 0; row < fgHeight; row++ {
		y := offsetY + row
		line := padRight(ansi.Truncate(fgLines[row], fgWidth, ""), fgWidth)
		base := bgLines[y]
		left := ansi.Truncate(base, offsetX, "")
		right := ansi.TruncateLeft(base, offsetX+fgWidth, "")
		bgLines[y] = left + line + right
	}

	return strings.Join(bgLines, "\n")
}

// Stack composes each layer over the previous one, in order. The last
// layer ends up on top.
func Stack(background string, width, height int, layers ...string) string {
	out := background
	for _, layer := range layers {
		out = Compose(out, layer, width, height, Center)
	}
	return out
}

// Dim renders a blank canvas used behind dialogs when the host has no view
// of its own.
func Dim(width, height int, color lipgloss.TerminalColor) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, "",
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(color),
	)
}

func normalize(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padRight(ansi.Truncate(lines[i], width, ""), width)
	}
	return lines
}

func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func offsets(width, height, fgWidth, fgHeight int, p Placement) (int, int) {
	x := p.MarginX
	switch p.Horizontal {
	case lipgloss.Right:
		x = width - fgWidth - p.MarginX
	case lipgloss.Center:
		x = (width - fgWidth) / 2
	}
	x = clamp(x, 0, width-fgWidth)

	y := p.MarginY
	switch p.Vertical {
	case lipgloss.Bottom:
		y = height - fgHeight - p.MarginY
	case lipgloss.Center:
		y = (height - fgHeight) / 2
	}
	y = clamp(y, 0, height-fgHeight)

	return x, y
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
