// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Action identifies what a key binding does
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionBack
	ActionToggleComplete
	ActionPickStep
	ActionToggleAdvanced
	ActionQuit
)

// KeyBinding represents a single key action
type KeyBinding struct {
	Key         string   // Display name: "N", "SPACE", "G"
	Keys        []string // Actual keys to match: ["n", "right"]
	Description string   // What it does
	Action      Action
}

// KeyBindingSet is a collection of related key bindings
type KeyBindingSet struct {
	Bindings []KeyBinding
}

// Contains checks if a key press matches any binding in the set
func (kbs KeyBindingSet) Contains(key string) *KeyBinding {
	for i := range kbs.Bindings {
		for _, k := range kbs.Bindings[i].Keys {
			if k == key {
				return &kbs.Bindings[i]
			}
		}
	}
	return nil
}

// Render formats key bindings for display
// Format: "[KEY] Action  •  [KEY] Action"
func (kbs KeyBindingSet) Render(style lipgloss.Style) string {
	if len(kbs.Bindings) == 0 {
		return ""
	}

	parts := make([]string, len(kbs.Bindings))
	for i, binding := range kbs.Bindings {
		parts[i] = fmt.Sprintf("[%s] %s", binding.Key, binding.Description)
	}

	return style.Render(strings.Join(parts, "  •  "))
}

// RenderInline formats key bindings compactly
// Format: "Key: action | Key: action"
func (kbs KeyBindingSet) RenderInline(style lipgloss.Style) string {
	if len(kbs.Bindings) == 0 {
		return ""
	}

	parts := make([]string, len(kbs.Bindings))
	caser := cases.Title(language.Und, cases.NoLower)
	for i, binding := range kbs.Bindings {
		keyName := caser.String(binding.Keys[0])
		parts[i] = fmt.Sprintf("%s: %s", keyName, strings.ToLower(binding.Description))
	}

	return style.Render(strings.Join(parts, " | "))
}

// GuideKeyBindings returns the wizard's navigation bindings
func GuideKeyBindings() KeyBindingSet {
	return KeyBindingSet{
		Bindings: []KeyBinding{
			{Key: "N", Keys: []string{"n", "right", "l"}, Description: "Next", Action: ActionNext},
			{Key: "P", Keys: []string{"p", "left", "h"}, Description: "Back", Action: ActionBack},
			{Key: "SPACE", Keys: []string{" ", "x"}, Description: "Mark Done", Action: ActionToggleComplete},
			{Key: "G", Keys: []string{"g"}, Description: "Go To", Action: ActionPickStep},
			{Key: "Q", Keys: []string{"q", "ctrl+c"}, Description: "Quit", Action: ActionQuit},
		},
	}
}

// ExperimentKeyBindings returns bindings only offered while experiments are enabled
func ExperimentKeyBindings() KeyBindingSet {
	return KeyBindingSet{
		Bindings: []KeyBinding{
			{Key: "A", Keys: []string{"a"}, Description: "Advanced", Action: ActionToggleAdvanced},
		},
	}
}

// PickerKeyBindings returns the bindings shown under the step picker
func PickerKeyBindings() KeyBindingSet {
	return KeyBindingSet{
		Bindings: []KeyBinding{
			{Key: "ENTER", Keys: []string{"enter"}, Description: "Select"},
			{Key: "ESC", Keys: []string{"esc"}, Description: "Cancel"},
		},
	}
}

// Merge returns a set holding the bindings of kbs followed by other
func (kbs KeyBindingSet) Merge(other KeyBindingSet) KeyBindingSet {
	merged := make([]KeyBinding, 0, len(kbs.Bindings)+len(other.Bindings))
	merged = append(merged, kbs.Bindings...)
	merged = append(merged, other.Bindings...)
	return KeyBindingSet{Bindings: merged}
}
