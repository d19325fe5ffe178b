package dialog

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Component is an opaque handle to a dialog type. Spawn calls Mount once
// per entry to build the model that renders it.
type Component interface {
	Name() string
	Mount(e *Entry) (tea.Model, error)
}

// UpdateModelValueMsg is the close signal a mounted dialog emits when the
// user wants it gone. Spawn turns every one into RemoveDialog, whatever
// Value carries; the registry alone decides the new model value.
type UpdateModelValueMsg struct {
	ID    uint64
	Value bool
}

// TypedComponent is a Component whose props decode into P.
type TypedComponent[P any] struct {
	name  string
	build func(Instance[P]) tea.Model
}

// NewComponent registers a dialog constructor for props of type P.
func NewComponent[P any](name string, build func(Instance[P]) tea.Model) *TypedComponent[P] {
	return &TypedComponent[P]{name: name, build: build}
}

// Name returns the component's name, used in logs.
func (c *TypedComponent[P]) Name() string {
	return c.name
}

// Mount decodes the entry's props into P and builds the model.
func (c *TypedComponent[P]) Mount(e *Entry) (tea.Model, error) {
	var values P
	if err := e.Props.Decode(&values); err != nil {
		return nil, err
	}
	return c.build(Instance[P]{ID: e.ID, Values: values, props: e.Props}), nil
}

// Instance is what a mounted dialog sees of its entry.
type Instance[P any] struct {
	ID     uint64
	Values P
	props  *Props
}

// ModelValue reports whether the dialog is still open.
func (i Instance[P]) ModelValue() bool {
	return i.props != nil && i.props.ModelValue()
}

// Props exposes the raw prop mapping, including injected callbacks.
func (i Instance[P]) Props() *Props {
	return i.props
}

// Close returns the command that emits the close signal for this dialog.
func (i Instance[P]) Close() tea.Cmd {
	id := i.ID
	return func() tea.Msg {
		return UpdateModelValueMsg{ID: id, Value: false}
	}
}

// Confirm calls the injected confirm callback without data. It reports
// false when no callback was injected.
func (i Instance[P]) Confirm() bool {
	if i.props == nil {
		return false
	}
	v, ok := i.props.Get(ConfirmKey)
	if !ok {
		return false
	}
	switch fn := v.(type) {
	case func():
		fn()
	case func(bool):
		fn(true)
	case func(any):
		fn(nil)
	default:
		return false
	}
	return true
}

// ConfirmWith calls the injected confirm callback with data. A callback
// that takes no argument is called as well. It reports false when no
// compatible callback was injected.
func ConfirmWith[D, P any](i Instance[P], data D) bool {
	if i.props == nil {
		return false
	}
	v, ok := i.props.Get(ConfirmKey)
	if !ok {
		return false
	}
	switch fn := v.(type) {
	case func(D):
		fn(data)
	case func(any):
		fn(data)
	case func():
		fn()
	default:
		return false
	}
	return true
}
