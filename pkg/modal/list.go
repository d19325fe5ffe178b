package modal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// ListItem is one choice in a picker.
type ListItem struct {
	ID    string `dialog:"id"`
	Label string `dialog:"label"`
	Data  any    `dialog:"data,omitempty"`
}

// listView renders a scrollable, filterable list of items.
type listView struct {
	items        []ListItem
	visible      []match
	selected     int
	maxVisible   int
	scrollOffset int
}

// match is an item that survived the filter, with the label positions that
// matched the query.
type match struct {
	index   int
	matched []int
}

func newListView(items []ListItem, maxVisible int) *listView {
	if maxVisible <= 0 {
		maxVisible = 5
	}
	l := &listView{items: items, maxVisible: maxVisible}
	l.filter("")
	return l
}

type itemSource []ListItem

func (s itemSource) String(i int) string { return s[i].Label }
func (s itemSource) Len() int            { return len(s) }

// filter keeps the items whose label fuzzy-matches query, best first.
func (l *listView) filter(query string) {
	l.visible = l.visible[:0]
	if strings.TrimSpace(query) == "" {
		for i := range l.items {
			l.visible = append(l.visible, match{index: i})
		}
	} else {
		for _, m := range fuzzy.FindFrom(query, itemSource(l.items)) {
			l.visible = append(l.visible, match{index: m.Index, matched: m.MatchedIndexes})
		}
	}
	l.selected = 0
	l.scrollOffset = 0
}

// Selected returns the highlighted item.
func (l *listView) Selected() (ListItem, bool) {
	if l.selected < 0 || l.selected >= len(l.visible) {
		return ListItem{}, false
	}
	return l.items[l.visible[l.selected].index], true
}

func (l *listView) up() {
	if l.selected > 0 {
		l.selected--
	}
}

func (l *listView) down() {
	if l.selected < len(l.visible)-1 {
		l.selected++
	}
}

func (l *listView) render() string {
	if len(l.visible) == 0 {
		return MutedText.Render("(no items)")
	}

	visibleCount := min(l.maxVisible, len(l.visible))

	// Keep the selection in view
	if l.selected < l.scrollOffset {
		l.scrollOffset = l.selected
	} else if l.selected >= l.scrollOffset+visibleCount {
		l.scrollOffset = l.selected - visibleCount + 1
	}
	l.scrollOffset = clamp(l.scrollOffset, 0, max(0, len(l.visible)-visibleCount))

	var lines []string
	if l.scrollOffset > 0 {
		lines = append(lines, MutedText.Render("↑ more above"))
	}
	for i := 0; i < visibleCount; i++ {
		idx := l.scrollOffset + i
		if idx >= len(l.visible) {
			break
		}
		m := l.visible[idx]
		item := l.items[m.index]

		cursor := "  "
		style := ListItemNormal
		if idx == l.selected {
			cursor = ListCursor.Render("> ")
			style = ListItemFocused
		}
		lines = append(lines, cursor+highlight(item.Label, m.matched, style))
	}
	if l.scrollOffset+visibleCount < len(l.visible) {
		lines = append(lines, MutedText.Render("↓ more below"))
	}
	return strings.Join(lines, "\n")
}

// highlight renders label with the matched rune positions emphasised.
func highlight(label string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(label)
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	var b strings.Builder
	for i, r := range label {
		if hit[i] {
			b.WriteString(ListMatch.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
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
