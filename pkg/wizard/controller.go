// SPDX-License-Identifier: Apache-2.0
package wizard

import "math"

// Controller tracks the selected step and the completion set over an
// ordered step list. All operations are total: unknown identifiers and
// out-of-range moves are ignored rather than reported.
type Controller struct {
	steps     []Step
	index     map[string]int // step ID -> position, first occurrence wins
	pos       int            // active position, -1 when there are no steps
	completed map[string]struct{}
}

// NewController creates a controller selecting the first step
func NewController(steps []Step) *Controller {
	c := &Controller{
		pos:       -1,
		completed: make(map[string]struct{}),
	}
	c.setSteps(steps)
	if len(c.steps) > 0 {
		c.pos = 0
	}
	return c
}

func (c *Controller) setSteps(steps []Step) {
	c.steps = steps
	c.index = make(map[string]int, len(steps))
	for i, s := range steps {
		if _, dup := c.index[s.ID]; !dup {
			c.index[s.ID] = i
		}
	}
}

// Steps returns the current ordered step list
func (c *Controller) Steps() []Step {
	return c.steps
}

// Len returns the number of steps
func (c *Controller) Len() int {
	return len(c.steps)
}

// ActiveID returns the selected step identifier, empty when there are no steps
func (c *Controller) ActiveID() string {
	if c.pos < 0 {
		return ""
	}
	return c.steps[c.pos].ID
}

// ActiveIndex returns the position of the selected step, or -1 when there are no steps
func (c *Controller) ActiveIndex() int {
	return c.pos
}

// Active returns the selected step. The second value is false when the list is empty.
func (c *Controller) Active() (Step, bool) {
	i := c.ActiveIndex()
	if i < 0 {
		return Step{}, false
	}
	return c.steps[i], true
}

// IsFirst reports whether the first step is selected
func (c *Controller) IsFirst() bool {
	return c.ActiveIndex() == 0
}

// IsLast reports whether the last step is selected
func (c *Controller) IsLast() bool {
	return len(c.steps) > 0 && c.ActiveIndex() == len(c.steps)-1
}

// SelectStep makes id the active step. Unknown ids leave the selection
// unchanged and return false.
func (c *Controller) SelectStep(id string) bool {
	i, ok := c.index[id]
	if !ok {
		return false
	}
	c.pos = i
	return true
}

// GoNext advances to the next position, clamped at the last one. Moves
// are positional, so repeated IDs are each visited in order.
func (c *Controller) GoNext() bool {
	if c.pos < 0 || c.pos >= len(c.steps)-1 {
		return false
	}
	c.pos++
	return true
}

// GoBack moves to the previous step, clamped at the first one
func (c *Controller) GoBack() bool {
	if c.pos <= 0 {
		return false
	}
	c.pos--
	return true
}

// ToggleComplete flips the completion mark on the active step and returns
// whether it is now complete
func (c *Controller) ToggleComplete() bool {
	if c.pos < 0 {
		return false
	}
	id := c.steps[c.pos].ID
	if _, done := c.completed[id]; done {
		delete(c.completed, id)
		return false
	}
	c.completed[id] = struct{}{}
	return true
}

// IsComplete reports whether id is in the completion set
func (c *Controller) IsComplete(id string) bool {
	_, ok := c.completed[id]
	return ok
}

// CompletedCount returns the size of the completion set
func (c *Controller) CompletedCount() int {
	return len(c.completed)
}

// Progress returns the completed share of steps as a rounded percentage
func (c *Controller) Progress() int {
	if len(c.steps) == 0 {
		return 0
	}
	return int(math.Round(float64(len(c.completed)) * 100 / float64(len(c.steps))))
}

// Reconcile swaps in a rebuilt step list. The selection survives when its
// ID is still present, otherwise it falls back to the first step. Completion
// marks for IDs that no longer exist are dropped.
func (c *Controller) Reconcile(steps []Step) {
	active := c.ActiveID()
	c.setSteps(steps)

	for id := range c.completed {
		if _, ok := c.index[id]; !ok {
			delete(c.completed, id)
		}
	}

	switch {
	case len(c.steps) == 0:
		c.pos = -1
	case c.pos >= 0 && c.pos < len(c.steps) && c.steps[c.pos].ID == active:
		// same ID at the same position, keep it
	default:
		if i, ok := c.index[active]; ok && active != "" {
			c.pos = i
		} else {
			c.pos = 0
		}
	}
}
