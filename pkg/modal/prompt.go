package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/dialogs/pkg/dialog"
)

// PromptProps configures a single-line text prompt.
type PromptProps struct {
	Title       string `dialog:"title"`
	Message     string `dialog:"message,omitempty"`
	Placeholder string `dialog:"placeholder,omitempty"`
	Value       string `dialog:"value,omitempty"`
	CharLimit   int    `dialog:"charLimit,omitempty"`
	// AllowEmpty lets enter confirm an empty value.
	AllowEmpty bool `dialog:"allowEmpty,omitempty"`
	Width      int  `dialog:"width,omitempty"`
}

// Prompt asks for a line of text and confirms with the string.
//
//	ask := dialog.ReturnData[string](ctx, modal.Prompt)
//	p := ask(modal.PromptProps{Title: "Rename"})
var Prompt = dialog.NewComponent("prompt", newPrompt)

type promptModel struct {
	inst  dialog.Instance[PromptProps]
	input textinput.Model
	width int
	err   string
}

func newPrompt(i dialog.Instance[PromptProps]) tea.Model {
	in := textinput.New()
	in.Placeholder = i.Values.Placeholder
	in.SetValue(i.Values.Value)
	if i.Values.CharLimit > 0 {
		in.CharLimit = i.Values.CharLimit
	}
	m := &promptModel{inst: i, input: in, width: i.Values.Width}
	m.resize()
	return m
}

func (m *promptModel) resize() {
	f := frame{width: m.width}
	m.input.Width = max(f.contentWidth()-3, 1)
}

func (m *promptModel) Init() tea.Cmd {
	return m.input.Focus()
}

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = fitWidth(m.inst.Values.Width, msg.Width)
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Cancel):
			return m, m.inst.Close()
		case key.Matches(msg, DefaultKeyMap.Confirm):
			value := strings.TrimSpace(m.input.Value())
			if value == "" && !m.inst.Values.AllowEmpty {
				m.err = "a value is required"
				return m, nil
			}
			dialog.ConfirmWith(m.inst, value)
			return m, m.inst.Close()
		}
	}

	m.err = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *promptModel) View() string {
	f := frame{
		title:   m.inst.Values.Title,
		width:   m.width,
		hints:   hints(DefaultKeyMap.Confirm, DefaultKeyMap.Cancel),
		closing: !m.inst.ModelValue(),
	}

	var b strings.Builder
	if m.inst.Values.Message != "" {
		b.WriteString(wrap(m.inst.Values.Message, f.contentWidth()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.input.View())
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(ErrorText.Render(m.err))
	}
	return f.render(b.String())
}
