package dialog

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Promise is the pending answer of a dialog opened by Confirm or
// ReturnData. It resolves exactly once.
type Promise[T any] struct {
	id    uint64
	once  sync.Once
	done  chan struct{}
	value T
}

func newPromise[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

func (p *Promise[T]) resolve(v T) bool {
	resolved := false
	p.once.Do(func() {
		p.value = v
		close(p.done)
		resolved = true
	})
	return resolved
}

// ID returns the id of the dialog entry, or 0 if none was added.
func (p *Promise[T]) ID() uint64 {
	return p.id
}

// Done is closed once the promise resolves.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Value returns the resolved value, or false if still pending.
func (p *Promise[T]) Value() (T, bool) {
	select {
	case <-p.done:
		return p.value, true
	default:
		var zero T
		return zero, false
	}
}

// Wait blocks until the promise resolves or ctx is done. Cancelling ctx
// stops the wait only; the dialog stays open.
func (p *Promise[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Cmd waits for the promise off the update loop and delivers the message
// built by fn.
func (p *Promise[T]) Cmd(fn func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		<-p.done
		return fn(p.value)
	}
}
