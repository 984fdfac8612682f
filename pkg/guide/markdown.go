// SPDX-License-Identifier: Apache-2.0
package guide

import (
	"fmt"
	"strings"

	"github.com/Work-Fort/Kiln/pkg/wizard"
)

// Find returns the step with the given ID
func Find(steps []wizard.Step, id string) (wizard.Step, bool) {
	for _, s := range steps {
		if s.ID == id {
			return s, true
		}
	}
	return wizard.Step{}, false
}

// FindSection returns the section of step with the given slug
func FindSection(step wizard.Step, id string) (wizard.Section, bool) {
	for _, sec := range step.Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return wizard.Section{}, false
}

// StepMarkdown renders a step's sections, tips and links as markdown.
// The title is left out so callers can style it themselves.
func StepMarkdown(step wizard.Step) string {
	var md strings.Builder

	if step.Description != "" {
		md.WriteString(fmt.Sprintf("*%s*\n\n", step.Description))
	}

	for _, sec := range step.Sections {
		md.WriteString(SectionMarkdown(sec))
	}

	if len(step.Tips) > 0 {
		md.WriteString("## Tips\n\n")
		for _, tip := range step.Tips {
			md.WriteString(fmt.Sprintf("- %s\n", tip))
		}
		md.WriteString("\n")
	}

	if len(step.Links) > 0 {
		md.WriteString("## Resources\n\n")
		for _, l := range step.Links {
			md.WriteString(fmt.Sprintf("- [%s](%s)\n", l.Label, l.URL))
		}
		md.WriteString("\n")
	}

	return md.String()
}

// SectionMarkdown renders a single section
func SectionMarkdown(sec wizard.Section) string {
	return fmt.Sprintf("## %s\n\n%s\n\n", sec.Heading, strings.TrimSpace(sec.Body))
}

// DocumentMarkdown renders the whole guide as one markdown document
func DocumentMarkdown(steps []wizard.Step) string {
	var md strings.Builder
	md.WriteString("# " + Title + "\n\n")
	for i, s := range steps {
		heading := fmt.Sprintf("# %d. %s", i+1, s.Title)
		if s.Badge != "" {
			heading += fmt.Sprintf(" (%s)", s.Badge)
		}
		md.WriteString(heading + "\n\n")
		md.WriteString(StepMarkdown(s))
	}
	return md.String()
}
