package dialog

import (
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"
)

// DefaultCloseDelay is the grace period between "begin closing" and
// "removed from the list" when Config.CloseDelay is unset.
const DefaultCloseDelay = 500 * time.Millisecond

// Config is the install-time configuration of a Registry.
type Config struct {
	// CloseDelay is the default delay before a removed dialog leaves the
	// list. Zero or negative means DefaultCloseDelay.
	CloseDelay time.Duration
	// Props are merged under the props of every added dialog.
	Props map[string]any
}

// Entry is one registered dialog.
type Entry struct {
	ID        uint64
	Component Component
	Props     *Props

	onRemoveHook func()
}

// ModelValue reports whether the entry is still open.
func (e *Entry) ModelValue() bool {
	return e.Props.ModelValue()
}

// Registry is the ordered collection of open dialogs. AddDialog and
// RemoveDialog are its only mutators.
type Registry struct {
	mu      sync.Mutex
	dialogs []*Entry
	nextID  uint64

	closeDelay time.Duration
	defaults   map[string]any

	afterFunc func(time.Duration, func())
	logger    *slog.Logger

	subs    map[int]chan struct{}
	nextSub int
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithAfterFunc replaces the scheduler used for deferred removal.
// The default is time.AfterFunc.
func WithAfterFunc(fn func(d time.Duration, f func())) Option {
	return func(r *Registry) {
		if fn != nil {
			r.afterFunc = fn
		}
	}
}

// New creates a registry from cfg.
func New(cfg Config, opts ...Option) *Registry {
	delay := cfg.CloseDelay
	if delay <= 0 {
		delay = DefaultCloseDelay
	}
	r := &Registry{
		closeDelay: delay,
		defaults:   maps.Clone(cfg.Props),
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		logger: slog.Default(),
		subs:   make(map[int]chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CloseDelay returns the default close delay.
func (r *Registry) CloseDelay() time.Duration {
	return r.closeDelay
}

// AddOption configures a single AddDialog call.
type AddOption func(*addOptions)

type addOptions struct {
	onRemoveHook func()
	extra        map[string]any
}

// WithRemoveHook sets a callback fired once when the dialog begins closing.
func WithRemoveHook(fn func()) AddOption {
	return func(o *addOptions) {
		o.onRemoveHook = fn
	}
}

// WithProp sets a prop after the caller's props are merged. The typed
// helpers use it to inject the confirm callback.
func WithProp(key string, value any) AddOption {
	return func(o *addOptions) {
		if o.extra == nil {
			o.extra = make(map[string]any)
		}
		o.extra[key] = value
	}
}

// AddDialog registers a new open dialog and appends it to the list. props
// is a struct (encoded with EncodeProps) or a map[string]any; later keys
// win over Config.Props. The model value is always true on return.
func (r *Registry) AddDialog(c Component, props any, opts ...AddOption) *Entry {
	var o addOptions
	for _, opt := range opts {
		opt(&o)
	}

	values, err := EncodeProps(props)
	if err != nil {
		r.logger.Error("dialog props", "component", componentName(c), "err", err)
		values = map[string]any{}
	}
	mergeProps(values, o.extra)

	r.mu.Lock()
	r.nextID++
	entry := &Entry{
		ID:           r.nextID,
		Component:    c,
		Props:        newProps(r.defaults, values),
		onRemoveHook: o.onRemoveHook,
	}
	r.dialogs = append(r.dialogs, entry)
	r.mu.Unlock()

	r.logger.Debug("dialog added", "id", entry.ID, "component", componentName(c))
	r.publish()
	return entry
}

// RemoveDialog begins closing the dialog with the given id. The removal
// hook runs before RemoveDialog returns; the entry leaves the list after
// closeDelay (or the configured default). Unknown ids and dialogs that are
// already closing are ignored.
func (r *Registry) RemoveDialog(id uint64, closeDelay ...time.Duration) {
	delay := r.closeDelay
	if len(closeDelay) > 0 {
		delay = closeDelay[0]
	}

	r.mu.Lock()
	entry := r.find(id)
	if entry == nil || !entry.Props.swapModelValue(false) {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	r.logger.Debug("dialog closing", "id", id, "delay", delay)
	if entry.onRemoveHook != nil {
		entry.onRemoveHook()
	}
	r.publish()

	r.afterFunc(delay, func() {
		r.splice(entry)
	})
}

// splice drops entry from the list by identity.
func (r *Registry) splice(entry *Entry) {
	r.mu.Lock()
	i := slices.Index(r.dialogs, entry)
	if i < 0 {
		r.mu.Unlock()
		return
	}
	r.dialogs = slices.Delete(r.dialogs, i, i+1)
	r.mu.Unlock()

	r.logger.Debug("dialog removed", "id", entry.ID)
	r.publish()
}

func (r *Registry) find(id uint64) *Entry {
	for _, e := range r.dialogs {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Dialogs returns the open dialogs in insertion order.
func (r *Registry) Dialogs() []*Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.dialogs)
}

// Entry looks up a dialog by id.
func (r *Registry) Entry(id uint64) (*Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.find(id)
	return e, e != nil
}

// Len returns the number of dialogs in the list, closing ones included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.dialogs)
}

// Subscribe returns a channel that receives a value after every change to
// the list or to an entry's model value. Notifications coalesce: a slow
// reader sees one pending value, not one per change. The returned func
// unsubscribes and closes the channel.
func (r *Registry) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = ch
	r.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, id)
			r.mu.Unlock()
			close(ch)
		})
	}
}

func (r *Registry) publish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func componentName(c Component) string {
	if c == nil {
		return "<nil>"
	}
	return c.Name()
}
