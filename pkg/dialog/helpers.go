package dialog

import (
	"context"
	"sync/atomic"
)

// Confirm returns a function that opens c and resolves true when the dialog
// calls its confirm prop, or false when it closes without confirming.
//
// The registry comes from d when given, otherwise from ctx. Pass it
// explicitly when the helper is built outside the context that carries
// the installed registry.
func Confirm[P any](ctx context.Context, c *TypedComponent[P], d ...Dialogs) func(props P) *Promise[bool] {
	dialogs := resolveDialogs(ctx, d)

	return func(props P) *Promise[bool] {
		p := newPromise[bool]()
		var confirmed atomic.Bool

		entry := dialogs.AddDialog(c, props,
			WithProp(ConfirmKey, func() {
				confirmed.Store(true)
				p.resolve(true)
			}),
			WithRemoveHook(func() {
				if !confirmed.Load() {
					p.resolve(false)
				}
			}),
		)
		if entry == nil {
			p.resolve(false)
			return p
		}
		p.id = entry.ID
		return p
	}
}

// ReturnData returns a function that opens c and resolves with the value
// the dialog passes to its confirm prop, or nil when it closes without
// confirming.
func ReturnData[D, P any](ctx context.Context, c *TypedComponent[P], d ...Dialogs) func(props P) *Promise[*D] {
	dialogs := resolveDialogs(ctx, d)

	return func(props P) *Promise[*D] {
		p := newPromise[*D]()
		var confirmed atomic.Bool

		entry := dialogs.AddDialog(c, props,
			WithProp(ConfirmKey, func(data D) {
				confirmed.Store(true)
				p.resolve(&data)
			}),
			WithRemoveHook(func() {
				if !confirmed.Load() {
					p.resolve(nil)
				}
			}),
		)
		if entry == nil {
			p.resolve(nil)
			return p
		}
		p.id = entry.ID
		return p
	}
}

// Add is AddDialog with the props type checked against the component.
func Add[P any](d Dialogs, c *TypedComponent[P], props P, opts ...AddOption) *Entry {
	return d.AddDialog(c, props, opts...)
}

func resolveDialogs(ctx context.Context, d []Dialogs) Dialogs {
	if len(d) > 0 && d[0] != nil {
		return d[0]
	}
	return FromContext(ctx)
}
