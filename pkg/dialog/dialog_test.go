package dialog

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// manualClock collects scheduled splices so tests decide when the close
// delay elapses.
type manualClock struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, f)
	c.delays = append(c.delays, d)
}

func (c *manualClock) Fire() {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()
	for _, f := range pending {
		f()
	}
}

func (c *manualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func newTestRegistry(cfg Config) (*Registry, *manualClock, *bytes.Buffer) {
	clock := &manualClock{}
	var buf bytes.Buffer
	r := New(cfg, WithAfterFunc(clock.AfterFunc), WithLogger(newBufferLogger(&buf)))
	return r, clock, &buf
}

func newBufferLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type noteProps struct {
	Data  int    `dialog:"data"`
	Title string `dialog:"title,omitempty"`
}

type noteModel struct {
	inst Instance[noteProps]
}

func (m noteModel) Init() tea.Cmd { return nil }

func (m noteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return m, m.inst.Close()
		case "enter":
			m.inst.Confirm()
			return m, m.inst.Close()
		case "r":
			ConfirmWith(m.inst, m.inst.Values.Data*2)
			return m, m.inst.Close()
		}
	}
	return m, nil
}

func (m noteModel) View() string {
	state := "open"
	if !m.inst.ModelValue() {
		state = "closing"
	}
	return fmt.Sprintf("note %d %s %s", m.inst.Values.Data, m.inst.Values.Title, state)
}

var noteDialog = NewComponent("note", func(i Instance[noteProps]) tea.Model {
	return noteModel{inst: i}
})
