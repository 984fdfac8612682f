// SPDX-License-Identifier: Apache-2.0
package wizard

// Link is a labeled external resource shown with a step
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Section is one heading + body block of a step. Body is markdown and is
// never interpreted by the controller.
type Section struct {
	ID      string `json:"id" yaml:"id"`
	Heading string `json:"heading" yaml:"heading"`
	Body    string `json:"body" yaml:"body"`
}

// Step is one page of instructional content
type Step struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Badge       string    `json:"badge,omitempty" yaml:"badge,omitempty"`
	Sections    []Section `json:"sections" yaml:"sections"`
	Tips        []string  `json:"tips,omitempty" yaml:"tips,omitempty"`
	Links       []Link    `json:"links,omitempty" yaml:"links,omitempty"`
}
