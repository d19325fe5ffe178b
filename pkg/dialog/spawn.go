package dialog

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/dialogs/pkg/overlay"
)

// changedMsg is delivered when the registry this Spawn listens to changed.
type changedMsg struct {
	spawn *Spawn
}

type mounted struct {
	entry *Entry
	model tea.Model
}

// Spawn renders the registry's dialogs. Embed it in the host model, call
// Init from the host's Init and route messages through Update.
type Spawn struct {
	dialogs Dialogs
	logger  *slog.Logger

	mounted []mounted
	width   int
	height  int

	changes     <-chan struct{}
	unsubscribe func()
}

// SpawnOption configures a Spawn.
type SpawnOption func(*Spawn)

// WithSpawnLogger sets the logger for mount failures and diagnostics.
func WithSpawnLogger(logger *slog.Logger) SpawnOption {
	return func(s *Spawn) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSpawn creates the render bridge for d. If d is the uninstalled stub,
// the diagnostic is logged once and the bridge renders nothing.
func NewSpawn(d Dialogs, opts ...SpawnOption) *Spawn {
	s := &Spawn{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if d == nil {
		d = Uninstalled(s.logger)
	}
	s.dialogs = d

	if !IsInstalled(d) {
		s.logger.Error(NotInitializedMessage)
		s.unsubscribe = func() {}
		return s
	}
	s.changes, s.unsubscribe = d.Subscribe()
	return s
}

// Init mounts the dialogs already in the registry and starts listening for
// changes.
func (s *Spawn) Init() tea.Cmd {
	cmds := s.reconcile()
	cmds = append(cmds, s.waitForChange())
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (s *Spawn) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		if msg.spawn != s {
			return s, nil
		}
		cmds := s.reconcile()
		cmds = append(cmds, s.waitForChange())
		return s, tea.Batch(cmds...)

	case UpdateModelValueMsg:
		s.dialogs.RemoveDialog(msg.ID)
		return s, nil

	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		var cmds []tea.Cmd
		for i := range s.mounted {
			var cmd tea.Cmd
			s.mounted[i].model, cmd = s.mounted[i].model.Update(msg)
			cmds = append(cmds, cmd)
		}
		return s, tea.Batch(cmds...)
	}

	i := s.topmost()
	if i < 0 {
		return s, nil
	}
	var cmd tea.Cmd
	s.mounted[i].model, cmd = s.mounted[i].model.Update(msg)
	return s, cmd
}

var dimColor = lipgloss.Color("236")

// View renders the open dialogs over a dimmed canvas. Hosts with a view of
// their own use Render instead.
func (s *Spawn) View() string {
	if len(s.mounted) == 0 {
		return ""
	}
	if s.width <= 0 || s.height <= 0 {
		return s.Render("")
	}
	return s.Render(overlay.Dim(s.width, s.height, dimColor))
}

// Render paints the dialogs over background, last added on top.
func (s *Spawn) Render(background string) string {
	if len(s.mounted) == 0 {
		return background
	}
	layers := make([]string, 0, len(s.mounted))
	for _, m := range s.mounted {
		layers = append(layers, m.model.View())
	}
	if s.width <= 0 || s.height <= 0 {
		if background != "" {
			layers = append([]string{background}, layers...)
		}
		return strings.Join(layers, "\n")
	}
	return overlay.Stack(background, s.width, s.height, layers...)
}

// Active reports whether any mounted dialog is still open. Hosts use it to
// decide whether key input belongs to the dialogs.
func (s *Spawn) Active() bool {
	return s.topmost() >= 0
}

// Len returns the number of mounted dialogs, closing ones included.
func (s *Spawn) Len() int {
	return len(s.mounted)
}

// Close stops listening to the registry.
func (s *Spawn) Close() {
	s.unsubscribe()
}

func (s *Spawn) topmost() int {
	for i := len(s.mounted) - 1; i >= 0; i-- {
		if s.mounted[i].entry.ModelValue() {
			return i
		}
	}
	return -1
}

func (s *Spawn) waitForChange() tea.Cmd {
	ch := s.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{spawn: s}
	}
}

// reconcile brings the mounted instances in line with the registry list.
func (s *Spawn) reconcile() []tea.Cmd {
	current := make(map[uint64]tea.Model, len(s.mounted))
	for _, m := range s.mounted {
		current[m.entry.ID] = m.model
	}

	entries := s.dialogs.Dialogs()
	next := make([]mounted, 0, len(entries))
	var cmds []tea.Cmd
	for _, e := range entries {
		if model, ok := current[e.ID]; ok {
			next = append(next, mounted{entry: e, model: model})
			continue
		}
		model := s.mount(e)
		cmds = append(cmds, model.Init())
		if s.width > 0 || s.height > 0 {
			var cmd tea.Cmd
			model, cmd = model.Update(tea.WindowSizeMsg{Width: s.width, Height: s.height})
			cmds = append(cmds, cmd)
		}
		next = append(next, mounted{entry: e, model: model})
	}
	s.mounted = next
	return cmds
}

func (s *Spawn) mount(e *Entry) tea.Model {
	if e.Component == nil {
		err := fmt.Errorf("dialog %d has no component", e.ID)
		s.logger.Error("mount dialog", "id", e.ID, "err", err)
		return mountError{id: e.ID, err: err}
	}
	model, err := e.Component.Mount(e)
	if err != nil {
		s.logger.Error("mount dialog", "id", e.ID, "component", e.Component.Name(), "err", err)
		return mountError{id: e.ID, err: err}
	}
	return model
}

var mountErrorStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("196")).
	Padding(0, 1)

// mountError stands in for a dialog whose props could not be decoded.
type mountError struct {
	id  uint64
	err error
}

func (m mountError) Init() tea.Cmd { return nil }

func (m mountError) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && (k.String() == "esc" || k.String() == "enter") {
		id := m.id
		return m, func() tea.Msg { return UpdateModelValueMsg{ID: id} }
	}
	return m, nil
}

func (m mountError) View() string {
	return mountErrorStyle.Render("dialog error: " + m.err.Error())
}
