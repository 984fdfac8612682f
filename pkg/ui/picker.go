// SPDX-License-Identifier: Apache-2.0
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

const pickerKey = "step"

// PickerOption is one selectable step
type PickerOption struct {
	ID    string
	Label string
}

// StepPicker wraps a huh select so a step can be chosen by name
type StepPicker struct {
	form *huh.Form
}

// NewStepPicker creates a picker with current preselected
func NewStepPicker(options []PickerOption, current string) *StepPicker {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o.Label, o.ID)
	}

	selected := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key(pickerKey).
				Title("Go to step").
				Options(opts...).
				Value(&selected),
		),
	).WithShowHelp(false).WithWidth(40)

	return &StepPicker{form: form}
}

// Init initializes the form and returns the initial command
func (sp *StepPicker) Init() tea.Cmd {
	return sp.form.Init()
}

// Update forwards msg to the form.
// Returns: (id, done, cmd)
//   - ESC or abort: ("", true, nil)
//   - selection made: (id, true, nil)
//   - otherwise: ("", false, cmd) while the user is still choosing
func (sp *StepPicker) Update(msg tea.Msg) (string, bool, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return "", true, nil
	}

	model, cmd := sp.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		sp.form = f
	}

	switch sp.form.State {
	case huh.StateCompleted:
		// drop cmd: a completed form may ask the program to quit
		return sp.form.GetString(pickerKey), true, nil
	case huh.StateAborted:
		return "", true, nil
	}
	return "", false, cmd
}

// View renders the form
func (sp *StepPicker) View() string {
	return sp.form.View()
}
