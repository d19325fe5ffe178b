// Package modal provides ready-made dialog components for the dialog
// registry: yes/no confirmation, text prompt, fuzzy picker, markdown viewer
// and multi-field form.
//
// Every component is a *dialog.TypedComponent, so it works with AddDialog
// and with the Confirm/ReturnData helpers. Components close themselves by
// emitting the dialog close signal; confirming components call the injected
// confirm prop first.
//
// # Quick Start
//
//	ctx, reg := dialog.Install(ctx, dialog.Config{})
//	spawn := dialog.NewSpawn(reg)
//
//	rename := dialog.ReturnData[string](ctx, modal.Prompt)
//	p := rename(modal.PromptProps{Title: "Rename", Value: current})
//
//	// In Update():
//	return m, p.Cmd(func(name *string) tea.Msg { return renamedMsg{name} })
//
// # Built-in Components
//
//   - Confirm - yes/no question, resolves bool with dialog.Confirm
//   - Prompt - single-line text input, confirms with string
//   - Picker - fuzzy-filtered list, confirms with ListItem
//   - Markdown - glamour-rendered body, enter acknowledges
//   - Form - huh text fields, confirms with FormResult
//
// # Keys
//
// Enter confirms, Esc cancels, Tab/Shift+Tab move between buttons, and
// Up/Down move through lists. See DefaultKeyMap.
package modal
