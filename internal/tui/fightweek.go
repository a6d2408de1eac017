package tui

import (
	"fmt"
	"strings"

	"fightcamp/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FightWeekModel is the fight-week checklist screen model
type FightWeekModel struct {
	planService *service.PlanService
	data        *service.PlanData
	viewport    viewport.Model
	loading     bool
	err         error
	width       int
	height      int
	ready       bool
}

// NewFightWeekModel creates a new fight-week model
func NewFightWeekModel(ps *service.PlanService, width, height int) FightWeekModel {
	m := FightWeekModel{
		planService: ps,
		loading:     true,
		width:       width,
		height:      height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}

	return m
}

// Init initializes the fight-week screen
func (m FightWeekModel) Init() tea.Cmd {
	return m.loadPlan
}

type fightWeekLoadedMsg struct {
	data *service.PlanData
	err  error
}

func (m FightWeekModel) loadPlan() tea.Msg {
	data, err := m.planService.BuildPlan()
	return fightWeekLoadedMsg{data: data, err: err}
}

// Update handles messages
func (m FightWeekModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fightWeekLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.data != nil {
			m.viewport.SetContent(m.renderContent())
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the fight-week screen
func (m FightWeekModel) View() string {
	if m.loading {
		return "\n  Loading fight-week guidance..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll")

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m FightWeekModel) renderContent() string {
	if m.data == nil {
		return ""
	}

	sections := []string{
		m.renderTaper(),
		m.renderList("After Weigh-In", m.data.Rehydration),
		m.renderList("Supplements", m.data.Supplements),
	}
	if m.data.Disclaimer != "" {
		mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)
		sections = append(sections, mutedStyle.Render("  "+m.data.Disclaimer))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m FightWeekModel) renderTaper() string {
	title := cardTitleStyle.Render("Fight Week Taper")

	var lines []string
	for i, d := range m.data.FightWeek {
		if i > 0 {
			lines = append(lines, "")
		}
		label := helpKeyStyle.Render(d.Label)
		if d.Today {
			label += successStyle.Render("  today")
		}
		lines = append(lines, label)
		lines = append(lines,
			RenderMetric("  Carbs", d.Carbs, ""),
			RenderMetric("  Fibre", d.Fibre, ""),
			RenderMetric("  Salt", d.Salt, ""),
			RenderMetric("  Water", d.Water, ""),
			metricNoteStyle.Render("  "+d.Why),
		)
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n")))
}

func (m FightWeekModel) renderList(heading string, items []string) string {
	title := cardTitleStyle.Render(heading)

	var lines []string
	for _, item := range items {
		lines = append(lines, "• "+item)
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n")))
}
