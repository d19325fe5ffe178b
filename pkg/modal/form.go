package modal

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/marcus/dialogs/pkg/dialog"
)

// FormField is one text input of a form dialog.
type FormField struct {
	Key         string `dialog:"key"`
	Title       string `dialog:"title"`
	Placeholder string `dialog:"placeholder,omitempty"`
	Value       string `dialog:"value,omitempty"`
	Required    bool   `dialog:"required,omitempty"`
	Secret      bool   `dialog:"secret,omitempty"`
}

// FormProps configures a multi-field form.
type FormProps struct {
	Title  string      `dialog:"title"`
	Fields []FormField `dialog:"fields"`
	Width  int         `dialog:"width,omitempty"`
}

// FormResult maps field keys to the submitted values.
type FormResult map[string]string

// Form collects Fields with a huh form and confirms with a FormResult once
// the form completes. Esc closes without confirming.
//
//	fill := dialog.ReturnData[modal.FormResult](ctx, modal.Form)
var Form = dialog.NewComponent("form", newForm)

type formModel struct {
	inst   dialog.Instance[FormProps]
	form   *huh.Form
	values map[string]*string
	width  int
	done   bool
}

func newForm(i dialog.Instance[FormProps]) tea.Model {
	m := &formModel{
		inst:   i,
		values: make(map[string]*string, len(i.Values.Fields)),
		width:  i.Values.Width,
	}

	fields := make([]huh.Field, 0, len(i.Values.Fields))
	for _, f := range i.Values.Fields {
		value := f.Value
		m.values[f.Key] = &value

		input := huh.NewInput().
			Key(f.Key).
			Title(f.Title).
			Placeholder(f.Placeholder).
			Value(m.values[f.Key])
		if f.Required {
			input = input.Validate(huh.ValidateNotEmpty())
		}
		if f.Secret {
			input = input.EchoMode(huh.EchoModePassword)
		}
		fields = append(fields, input)
	}

	m.form = huh.NewForm(huh.NewGroup(fields...)).
		WithShowHelp(false).
		WithWidth(frame{width: m.width}.contentWidth())
	return m
}

func (m *formModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = fitWidth(m.inst.Values.Width, msg.Width)
		m.form = m.form.WithWidth(frame{width: m.width}.contentWidth())
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Cancel) {
			return m, m.inst.Close()
		}
	}

	if m.done {
		return m, nil
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.done = true
		dialog.ConfirmWith(m.inst, m.result())
		return m, m.inst.Close()
	case huh.StateAborted:
		m.done = true
		return m, m.inst.Close()
	}
	return m, cmd
}

func (m *formModel) result() FormResult {
	out := make(FormResult, len(m.values))
	for k, v := range m.values {
		out[k] = *v
	}
	return out
}

func (m *formModel) View() string {
	f := frame{
		title:   m.inst.Values.Title,
		width:   m.width,
		hints:   hints(DefaultKeyMap.Next, DefaultKeyMap.Confirm, DefaultKeyMap.Cancel),
		closing: !m.inst.ModelValue(),
	}
	return f.render(m.form.View())
}
