package modal

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/dialogs/pkg/dialog"
)

// PickerProps configures a filterable list.
type PickerProps struct {
	Title      string     `dialog:"title"`
	Items      []ListItem `dialog:"items"`
	MaxVisible int        `dialog:"maxVisible,omitempty"`
	Width      int        `dialog:"width,omitempty"`
}

// Picker lets the user fuzzy-filter Items and confirms with the chosen
// ListItem.
//
//	pick := dialog.ReturnData[modal.ListItem](ctx, modal.Picker)
var Picker = dialog.NewComponent("picker", newPicker)

type pickerModel struct {
	inst   dialog.Instance[PickerProps]
	filter textinput.Model
	list   *listView
	width  int
}

func newPicker(i dialog.Instance[PickerProps]) tea.Model {
	in := textinput.New()
	in.Placeholder = "type to filter"
	in.Prompt = "/ "
	return &pickerModel{
		inst:   i,
		filter: in,
		list:   newListView(i.Values.Items, i.Values.MaxVisible),
		width:  i.Values.Width,
	}
}

func (m *pickerModel) Init() tea.Cmd {
	return m.filter.Focus()
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = fitWidth(m.inst.Values.Width, msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Cancel):
			return m, m.inst.Close()
		case key.Matches(msg, DefaultKeyMap.Up):
			m.list.up()
			return m, nil
		case key.Matches(msg, DefaultKeyMap.Down):
			m.list.down()
			return m, nil
		case key.Matches(msg, DefaultKeyMap.Confirm):
			item, ok := m.list.Selected()
			if !ok {
				return m, nil
			}
			dialog.ConfirmWith(m.inst, item)
			return m, m.inst.Close()
		}
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.list.filter(m.filter.Value())
	}
	return m, cmd
}

func (m *pickerModel) View() string {
	f := frame{
		title:   m.inst.Values.Title,
		width:   m.width,
		hints:   hints(DefaultKeyMap.Up, DefaultKeyMap.Down, DefaultKeyMap.Confirm, DefaultKeyMap.Cancel),
		closing: !m.inst.ModelValue(),
	}
	return f.render(m.filter.View() + "\n\n" + m.list.render())
}
