// Package dialog manages a stack of modal dialogs for Bubble Tea programs.
//
// A Registry holds the ordered list of open dialogs. Spawn is the tea.Model
// that renders them: it mounts each entry's component, forwards the close
// signal back to the registry and drops entries once their close delay has
// elapsed. Confirm and ReturnData wrap AddDialog in promises for the two
// common dialog patterns.
//
// # Quick Start
//
//	ctx, reg := dialog.Install(context.Background(), dialog.Config{})
//	spawn := dialog.NewSpawn(reg)
//
//	askDelete := dialog.Confirm(ctx, modal.Confirm)
//	p := askDelete(modal.ConfirmProps{Title: "Delete item?"})
//
//	// In Update():
//	return m, p.Cmd(func(ok bool) tea.Msg { return deleteAnswerMsg(ok) })
//
// # Lifecycle
//
// Every entry moves ACTIVE -> CLOSING -> REMOVED exactly once. RemoveDialog
// flips the entry's model value to false, runs the removal hook on the
// calling goroutine and schedules the splice after the close delay. A second
// RemoveDialog for the same id is a no-op.
//
// # Components
//
// A component is built with NewComponent from a typed props struct. Props
// are carried as a map on the entry and decoded into the struct with
// mapstructure using the "dialog" tag; fields tagged ",omitempty" fall back
// to the defaults given in Config.Props.
package dialog
