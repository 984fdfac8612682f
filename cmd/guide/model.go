// SPDX-License-Identifier: Apache-2.0
package guide

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/Work-Fort/Kiln/pkg/config"
	guidepkg "github.com/Work-Fort/Kiln/pkg/guide"
	"github.com/Work-Fort/Kiln/pkg/ui"
	"github.com/Work-Fort/Kiln/pkg/wizard"
)

const pickerWidth = 44

// Model is the interactive guide: a step sidebar, the active step's content
// and a progress footer, driven by a wizard.Controller
type Model struct {
	width  int
	height int
	layout ui.LayoutDimensions

	settings config.GuideSettings
	ctrl     *wizard.Controller

	viewport viewport.Model
	renderer *ui.MarkdownRenderer
	progress ui.ProgressBar
	picker   *ui.StepPicker // non-nil while the step picker is open
	keys     ui.KeyBindingSet

	quitting bool
}

// NewModel builds the guide from settings and opens startStep when it
// names a step. style is the glamour style used for step content.
func NewModel(settings config.GuideSettings, startStep, style string) Model {
	ctrl := wizard.NewController(guidepkg.BuildSteps(settings))
	if startStep != "" {
		ctrl.SelectStep(startStep)
	}

	keys := ui.GuideKeyBindings()
	if settings.ExperimentsEnabled {
		keys = keys.Merge(ui.ExperimentKeyBindings())
	}

	return Model{
		settings: settings,
		ctrl:     ctrl,
		viewport: viewport.New(0, 0),
		renderer: ui.NewMarkdownRenderer(style),
		progress: ui.NewProgressBar(),
		keys:     keys,
	}
}

// Controller exposes the navigation state
func (m Model) Controller() *wizard.Controller {
	return m.ctrl
}

// Advanced reports whether the advanced sections are shown
func (m Model) Advanced() bool {
	return m.settings.FlagEnabled(config.FlagAdvanced)
}

// PickerOpen reports whether the step picker dialog is showing
func (m Model) PickerOpen() bool {
	return m.picker != nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout = ui.CalculateGuideLayout(msg.Width, msg.Height)
		m.viewport.Width = m.layout.ViewportWidth
		m.viewport.Height = m.layout.ViewportRows
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.picker != nil {
			return m.updatePicker(msg)
		}
		return m.handleKey(msg)
	}

	if m.picker != nil {
		return m.updatePicker(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if binding := m.keys.Contains(key); binding != nil {
		switch binding.Action {
		case ui.ActionNext:
			if m.ctrl.GoNext() {
				log.Debug("guide: next", "step", m.ctrl.ActiveID())
				m.refreshContent()
			}
		case ui.ActionBack:
			if m.ctrl.GoBack() {
				log.Debug("guide: back", "step", m.ctrl.ActiveID())
				m.refreshContent()
			}
		case ui.ActionToggleComplete:
			done := m.ctrl.ToggleComplete()
			log.Debug("guide: toggle complete", "step", m.ctrl.ActiveID(), "complete", done, "progress", m.ctrl.Progress())
		case ui.ActionPickStep:
			m.picker = ui.NewStepPicker(m.pickerOptions(), m.ctrl.ActiveID())
			return m, m.picker.Init()
		case ui.ActionToggleAdvanced:
			m.toggleAdvanced()
		case ui.ActionQuit:
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// 1-9 jump straight to a step
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		steps := m.ctrl.Steps()
		if idx := int(key[0] - '1'); idx < len(steps) {
			m.selectStep(steps[idx].ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	id, done, cmd := m.picker.Update(msg)
	if !done {
		return m, cmd
	}
	m.picker = nil
	if id != "" {
		m.selectStep(id)
	}
	return m, nil
}

func (m *Model) selectStep(id string) {
	if id == m.ctrl.ActiveID() {
		return
	}
	if m.ctrl.SelectStep(id) {
		log.Debug("guide: select", "step", id)
		m.refreshContent()
	}
}

// toggleAdvanced flips the advanced flag for this session and rebuilds the
// step list, keeping the active step and completion marks
func (m *Model) toggleAdvanced() {
	enabled := !m.Advanced()
	m.settings = m.settings.WithFlag(config.FlagAdvanced, enabled)
	m.ctrl.Reconcile(guidepkg.BuildSteps(m.settings))
	log.Debug("guide: advanced toggled", "enabled", enabled, "step", m.ctrl.ActiveID())
	m.refreshContent()
}

func (m Model) pickerOptions() []ui.PickerOption {
	steps := m.ctrl.Steps()
	opts := make([]ui.PickerOption, len(steps))
	for i, s := range steps {
		label := fmt.Sprintf("%d. %s", i+1, s.Title)
		if m.ctrl.IsComplete(s.ID) {
			label += " ✓"
		}
		opts[i] = ui.PickerOption{ID: s.ID, Label: label}
	}
	return opts
}

// refreshContent re-renders the active step into the viewport
func (m *Model) refreshContent() {
	step, ok := m.ctrl.Active()
	if !ok || m.layout.ViewportWidth <= 0 {
		m.viewport.SetContent("")
		return
	}

	md := guidepkg.StepMarkdown(step)
	rendered, err := m.renderer.Render(md, m.layout.ViewportWidth)
	if err != nil {
		log.Warn("guide: markdown render failed", "step", step.ID, "err", err)
		rendered = md
	}
	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
}

func (m Model) stepItems() []ui.StepItem {
	steps := m.ctrl.Steps()
	active := m.ctrl.ActiveID()
	items := make([]ui.StepItem, len(steps))
	for i, s := range steps {
		items[i] = ui.StepItem{
			Title:    s.Title,
			Badge:    s.Badge,
			Selected: s.ID == active,
			Complete: m.ctrl.IsComplete(s.ID),
		}
	}
	return items
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	theme := config.CurrentTheme

	if m.picker != nil {
		content := m.picker.View() + "\n\n" + ui.PickerKeyBindings().Render(theme.SubtleStyle())
		return ui.RenderCenteredModal(content, m.width, m.height, theme.GetPrimaryColor(), pickerWidth)
	}

	context := fmt.Sprintf("%d/%d", m.ctrl.ActiveIndex()+1, m.ctrl.Len())
	if m.Advanced() {
		context += " advanced"
	}
	header := theme.RenderHeader(m.width, "GUIDE", context)

	sidebar := ui.RenderStepList(m.stepItems(), ui.StepListConfig{
		Width:  m.layout.SidebarWidth,
		Height: m.layout.BodyHeight,
	})

	title := ""
	if step, ok := m.ctrl.Active(); ok {
		title = theme.TitleStyle().Render(step.Title)
		if step.Badge != "" {
			title += " " + theme.BadgeStyle().Render(step.Badge)
		}
	}

	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.GetPrimaryColor()).
		Width(m.layout.ContentWidth).
		Height(m.layout.BodyHeight).
		Padding(0, 1).
		Render(title + "\n\n" + m.viewport.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", pane)

	progressLine := " " + m.progress.Render(m.ctrl.Progress(), m.ctrl.CompletedCount(), m.ctrl.Len(), m.width-2)
	footer := theme.RenderFooter(m.width, m.keys.Render(lipgloss.NewStyle()))

	view := lipgloss.JoinVertical(lipgloss.Left, header, body, progressLine, footer)
	return ui.FillTerminal(view, m.width, m.height)
}
