package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/marcus/dialogs/pkg/dialog"
)

// MarkdownProps configures a read-only markdown dialog.
type MarkdownProps struct {
	Title  string `dialog:"title"`
	Body   string `dialog:"body"`
	Style  string `dialog:"style,omitempty"`
	Width  int    `dialog:"width,omitempty"`
	Height int    `dialog:"height,omitempty"`
}

const defaultMarkdownHeight = 12

// Markdown renders Body with glamour in a scrollable viewport. Enter
// confirms (acknowledges), esc closes.
var Markdown = dialog.NewComponent("markdown", newMarkdown)

type markdownModel struct {
	inst     dialog.Instance[MarkdownProps]
	viewport viewport.Model
	width    int
	err      error
}

func newMarkdown(i dialog.Instance[MarkdownProps]) tea.Model {
	height := i.Values.Height
	if height <= 0 {
		height = defaultMarkdownHeight
	}
	m := &markdownModel{inst: i, width: i.Values.Width}
	m.viewport = viewport.New(frame{width: m.width}.contentWidth(), height)
	m.render()
	return m
}

func (m *markdownModel) render() {
	width := frame{width: m.width}.contentWidth()
	m.viewport.Width = width

	style := m.inst.Values.Style
	if style == "" {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width-2, 10)),
	)
	if err != nil {
		m.err = err
		m.viewport.SetContent(m.inst.Values.Body)
		return
	}
	out, err := renderer.Render(m.inst.Values.Body)
	if err != nil {
		m.err = err
		m.viewport.SetContent(m.inst.Values.Body)
		return
	}
	m.err = nil
	m.viewport.SetContent(strings.Trim(out, "\n"))
}

func (m *markdownModel) Init() tea.Cmd { return nil }

func (m *markdownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = fitWidth(m.inst.Values.Width, msg.Width)
		if msg.Height > 0 {
			m.viewport.Height = min(m.viewport.Height, max(msg.Height-8, 3))
		}
		m.render()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Cancel):
			return m, m.inst.Close()
		case key.Matches(msg, DefaultKeyMap.Confirm):
			m.inst.Confirm()
			return m, m.inst.Close()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *markdownModel) View() string {
	f := frame{
		title:   m.inst.Values.Title,
		variant: VariantInfo,
		width:   m.width,
		hints:   hints(DefaultKeyMap.Up, DefaultKeyMap.Down, DefaultKeyMap.Confirm, DefaultKeyMap.Cancel),
		closing: !m.inst.ModelValue(),
	}
	body := m.viewport.View()
	if m.err != nil {
		body = ErrorText.Render("markdown: "+m.err.Error()) + "\n" + body
	}
	return f.render(body)
}
