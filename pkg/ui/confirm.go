// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// ConfirmOverwrite asks before replacing an existing file
func ConfirmOverwrite(path string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite it?", path)).
				Affirmative("Overwrite").
				Negative("Keep").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
