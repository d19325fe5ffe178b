package dialog

import (
	"context"
	"log/slog"
	"time"
)

// NotInitializedMessage is logged when a dialog operation runs without an
// installed registry.
const NotInitializedMessage = "The dialog plugin is not initialized."

// Dialogs is the surface application code uses. *Registry implements it;
// FromContext falls back to a stub that logs and does nothing.
type Dialogs interface {
	AddDialog(c Component, props any, opts ...AddOption) *Entry
	RemoveDialog(id uint64, closeDelay ...time.Duration)
	Dialogs() []*Entry
	Subscribe() (<-chan struct{}, func())
}

var _ Dialogs = (*Registry)(nil)

type registryKey struct{}

// Install creates a registry and stores it in the returned context.
func Install(ctx context.Context, cfg Config, opts ...Option) (context.Context, *Registry) {
	r := New(cfg, opts...)
	return WithRegistry(ctx, r), r
}

// WithRegistry returns a copy of ctx carrying r.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, r)
}

// FromContext returns the registry installed in ctx, or the uninstalled
// fallback.
func FromContext(ctx context.Context) Dialogs {
	if ctx != nil {
		if r, ok := ctx.Value(registryKey{}).(*Registry); ok && r != nil {
			return r
		}
	}
	return Uninstalled(nil)
}

// Uninstalled returns the stub used when no registry is installed. Every
// add and remove logs NotInitializedMessage; nothing is ever listed.
func Uninstalled(logger *slog.Logger) Dialogs {
	if logger == nil {
		logger = slog.Default()
	}
	return fallback{logger: logger}
}

// IsInstalled reports whether d is a real registry rather than the stub.
func IsInstalled(d Dialogs) bool {
	if d == nil {
		return false
	}
	_, stub := d.(fallback)
	return !stub
}

type fallback struct {
	logger *slog.Logger
}

func (f fallback) AddDialog(Component, any, ...AddOption) *Entry {
	f.logger.Error(NotInitializedMessage)
	return nil
}

func (f fallback) RemoveDialog(uint64, ...time.Duration) {
	f.logger.Error(NotInitializedMessage)
}

func (f fallback) Dialogs() []*Entry {
	return nil
}

func (f fallback) Subscribe() (<-chan struct{}, func()) {
	return nil, func() {}
}
