package modal

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/dialogs/pkg/dialog"
)

// ConfirmProps configures a yes/no dialog.
type ConfirmProps struct {
	Title    string  `dialog:"title"`
	Message  string  `dialog:"message"`
	YesLabel string  `dialog:"yesLabel,omitempty"`
	NoLabel  string  `dialog:"noLabel,omitempty"`
	Variant  Variant `dialog:"variant,omitempty"`
	Width    int     `dialog:"width,omitempty"`
}

// Confirm asks a yes/no question. Yes calls the confirm prop, then closes;
// no and esc just close.
//
//	ok := dialog.Confirm(ctx, modal.Confirm)
//	p := ok(modal.ConfirmProps{Title: "Delete?", Variant: modal.VariantDanger})
var Confirm = dialog.NewComponent("confirm", func(i dialog.Instance[ConfirmProps]) tea.Model {
	return &confirmModel{inst: i, selected: 1, width: i.Values.Width}
})

type confirmModel struct {
	inst     dialog.Instance[ConfirmProps]
	selected int // 0 = yes, 1 = no
	width    int
}

func (m *confirmModel) Init() tea.Cmd { return nil }

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = fitWidth(m.inst.Values.Width, msg.Width)
		return m, nil

	case tea.KeyMsg:
		keys := DefaultKeyMap
		switch {
		case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.No):
			return m, m.inst.Close()
		case key.Matches(msg, keys.Yes):
			return m, m.yes()
		case key.Matches(msg, keys.Prev):
			m.selected = 0
		case key.Matches(msg, keys.Next):
			m.selected = 1
		case key.Matches(msg, keys.Confirm):
			if m.selected == 0 {
				return m, m.yes()
			}
			return m, m.inst.Close()
		}
	}
	return m, nil
}

func (m *confirmModel) yes() tea.Cmd {
	m.inst.Confirm()
	return m.inst.Close()
}

func (m *confirmModel) View() string {
	v := m.inst.Values
	f := frame{
		title:   v.Title,
		variant: v.Variant,
		width:   m.width,
		hints:   hints(DefaultKeyMap.Next, DefaultKeyMap.Confirm, DefaultKeyMap.Cancel),
		closing: !m.inst.ModelValue(),
	}

	yesLabel, noLabel := v.YesLabel, v.NoLabel
	if yesLabel == "" {
		yesLabel = "Yes"
	}
	if noLabel == "" {
		noLabel = "No"
	}

	focused := ButtonFocused
	if v.Variant == VariantDanger {
		focused = ButtonDangerFocused
	}
	yes, no := Button.Render(yesLabel), Button.Render(noLabel)
	if m.selected == 0 {
		yes = focused.Render(yesLabel)
	} else {
		no = focused.Render(noLabel)
	}

	body := wrap(v.Message, f.contentWidth())
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, yes, "  ", no)
	return f.render(body + "\n\n" + buttons)
}
