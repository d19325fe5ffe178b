// Package showcase is the interactive demo behind `dialogs demo`. It hosts a
// dialog.Spawn and opens each built-in dialog from a key.
package showcase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/dialogs/pkg/dialog"
	"github.com/marcus/dialogs/pkg/modal"
)

const maxResults = 8

// resultMsg reports the outcome of a dialog.
type resultMsg struct {
	text string
}

// quitMsg carries the answer of the quit confirmation.
type quitMsg bool

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(modal.Primary)
	keyStyle    = lipgloss.NewStyle().Foreground(modal.Info)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Model is the host program: a menu, a results log and the dialog stack.
type Model struct {
	dialogs dialog.Dialogs
	spawn   *dialog.Spawn
	logger  *slog.Logger

	width   int
	height  int
	results []string

	confirm func(modal.ConfirmProps) *dialog.Promise[bool]
	rename  func(modal.PromptProps) *dialog.Promise[*string]
	pick    func(modal.PickerProps) *dialog.Promise[*modal.ListItem]
	help    func(modal.MarkdownProps) *dialog.Promise[bool]
	signup  func(modal.FormProps) *dialog.Promise[*modal.FormResult]
}

// New builds the showcase against the registry installed in ctx.
func New(ctx context.Context, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	d := dialog.FromContext(ctx)
	return &Model{
		dialogs: d,
		spawn:   dialog.NewSpawn(d, dialog.WithSpawnLogger(logger)),
		logger:  logger,
		confirm: dialog.Confirm(ctx, modal.Confirm),
		rename:  dialog.ReturnData[string](ctx, modal.Prompt),
		pick:    dialog.ReturnData[modal.ListItem](ctx, modal.Picker),
		help:    dialog.Confirm(ctx, modal.Markdown),
		signup:  dialog.ReturnData[modal.FormResult](ctx, modal.Form),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.spawn.Init()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		_, cmd := m.spawn.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.spawn.Close()
			return m, tea.Quit
		}
		if m.spawn.Active() {
			_, cmd := m.spawn.Update(msg)
			return m, cmd
		}
		return m, m.handleKey(msg)

	case resultMsg:
		m.record(msg.text)
		return m, nil

	case quitMsg:
		if msg {
			m.spawn.Close()
			return m, tea.Quit
		}
		m.record("quit cancelled")
		return m, nil
	}

	_, cmd := m.spawn.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "c":
		p := m.confirm(modal.ConfirmProps{
			Title:   "Delete project?",
			Message: "This removes every task in the project. It cannot be undone.",
			Variant: modal.VariantDanger,
		})
		return p.Cmd(func(ok bool) tea.Msg {
			return resultMsg{text: fmt.Sprintf("delete confirmed: %v", ok)}
		})

	case "p":
		p := m.rename(modal.PromptProps{Title: "Rename", Message: "New project name", Value: "dialogs"})
		return p.Cmd(func(name *string) tea.Msg {
			if name == nil {
				return resultMsg{text: "rename cancelled"}
			}
			return resultMsg{text: "renamed to " + *name}
		})

	case "f":
		p := m.pick(modal.PickerProps{Title: "Pick a theme", Items: themes})
		return p.Cmd(func(item *modal.ListItem) tea.Msg {
			if item == nil {
				return resultMsg{text: "no theme picked"}
			}
			return resultMsg{text: "theme: " + item.Label}
		})

	case "m":
		p := m.help(modal.MarkdownProps{Title: "Help", Body: helpMarkdown})
		return p.Cmd(func(ok bool) tea.Msg {
			return resultMsg{text: fmt.Sprintf("help acknowledged: %v", ok)}
		})

	case "o":
		p := m.signup(modal.FormProps{
			Title: "Sign up",
			Fields: []modal.FormField{
				{Key: "name", Title: "Name", Required: true},
				{Key: "email", Title: "Email", Placeholder: "you@example.com"},
			},
		})
		return p.Cmd(func(res *modal.FormResult) tea.Msg {
			if res == nil {
				return resultMsg{text: "sign up cancelled"}
			}
			return resultMsg{text: "signed up: " + formatResult(*res)}
		})

	case "s":
		// Two dialogs at once: the second renders on top and takes input.
		first := m.confirm(modal.ConfirmProps{Title: "Bottom dialog", Message: "Opened first."})
		second := m.confirm(modal.ConfirmProps{Title: "Top dialog", Message: "Opened second.", Variant: modal.VariantWarning})
		return tea.Batch(
			first.Cmd(func(ok bool) tea.Msg { return resultMsg{text: fmt.Sprintf("bottom: %v", ok)} }),
			second.Cmd(func(ok bool) tea.Msg { return resultMsg{text: fmt.Sprintf("top: %v", ok)} }),
		)

	case "q":
		p := m.confirm(modal.ConfirmProps{Title: "Quit?", Message: "Leave the showcase."})
		return p.Cmd(func(ok bool) tea.Msg { return quitMsg(ok) })
	}
	return nil
}

func (m *Model) record(text string) {
	m.logger.Info("dialog result", "result", text)
	m.results = append(m.results, text)
	if len(m.results) > maxResults {
		m.results = m.results[len(m.results)-maxResults:]
	}
}

// Results returns the recorded outcomes, oldest first.
func (m *Model) Results() []string {
	return m.results
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("dialogs showcase"))
	if n := len(m.dialogs.Dialogs()); n > 0 {
		b.WriteString(keyStyle.Render(fmt.Sprintf("  %d dialog(s) on screen", n)))
	}
	b.WriteString("\n\n")
	for _, item := range menu {
		b.WriteString(keyStyle.Render(item[0]))
		b.WriteString("  ")
		b.WriteString(item[1])
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, r := range m.results {
		b.WriteString(resultStyle.Render("• " + r))
		b.WriteString("\n")
	}
	return m.spawn.Render(b.String())
}

var menu = [][2]string{
	{"c", "confirm (danger)"},
	{"p", "prompt for text"},
	{"f", "fuzzy picker"},
	{"m", "markdown help"},
	{"o", "form"},
	{"s", "stack two dialogs"},
	{"q", "quit"},
}

var themes = []modal.ListItem{
	{ID: "charm", Label: "Charm"},
	{ID: "dracula", Label: "Dracula"},
	{ID: "catppuccin", Label: "Catppuccin"},
	{ID: "tokyo-night", Label: "Tokyo Night"},
	{ID: "base16", Label: "Base 16"},
	{ID: "solarized", Label: "Solarized"},
}

const helpMarkdown = `# Keys

| key | action |
| --- | ------ |
| enter | confirm |
| esc | cancel |
| tab | next button |

Dialogs stay on screen for the **close delay** after they close.`

func formatResult(res modal.FormResult) string {
	keys := make([]string, 0, len(res))
	for k := range res {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+res[k])
	}
	return strings.Join(parts, " ")
}
