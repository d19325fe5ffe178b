package modal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth = 50
	minWidth     = 20
)

// frame is the common chrome of a dialog: title, body, hints.
type frame struct {
	title   string
	variant Variant
	width   int
	hints   string
	closing bool
}

// contentWidth is the usable width inside border and padding.
func (f frame) contentWidth() int {
	return max(f.outerWidth()-Box.GetHorizontalFrameSize(), 1)
}

func (f frame) outerWidth() int {
	w := f.width
	if w <= 0 {
		w = defaultWidth
	}
	return max(w, minWidth)
}

func (f frame) render(body string) string {
	accent := f.variant.Accent()
	box := Box.BorderForeground(accent).Width(f.outerWidth() - Box.GetHorizontalBorderSize())
	if f.closing {
		box = box.BorderForeground(Muted).Faint(true)
	}

	var sections []string
	if f.title != "" {
		sections = append(sections, ModalTitle.Foreground(accent).Render(f.title), "")
	}
	sections = append(sections, body)
	if f.hints != "" {
		sections = append(sections, "", MutedText.Render(f.hints))
	}
	return box.Render(strings.Join(sections, "\n"))
}

// fitWidth keeps w inside the screen width when one is known.
func fitWidth(w, screen int) int {
	if w <= 0 {
		w = defaultWidth
	}
	if screen > 0 && w > screen-2 {
		w = screen - 2
	}
	return max(w, minWidth)
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
