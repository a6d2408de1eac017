package tui

import (
	"fmt"
	"strings"

	"fightcamp/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// WeeksModel is the weekly plan screen model
type WeeksModel struct {
	planService *service.PlanService
	data        *service.PlanData
	viewport    viewport.Model
	loading     bool
	err         error
	width       int
	height      int
	ready       bool
}

// NewWeeksModel creates a new weekly plan model
func NewWeeksModel(ps *service.PlanService, width, height int) WeeksModel {
	m := WeeksModel{
		planService: ps,
		loading:     true,
		width:       width,
		height:      height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6) // Reserve space for header/footer
		m.ready = true
	}

	return m
}

// Init initializes the weekly plan screen
func (m WeeksModel) Init() tea.Cmd {
	return m.loadPlan
}

type weeksLoadedMsg struct {
	data *service.PlanData
	err  error
}

func (m WeeksModel) loadPlan() tea.Msg {
	data, err := m.planService.BuildPlan()
	return weeksLoadedMsg{data: data, err: err}
}

// Update handles messages
func (m WeeksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case weeksLoadedMsg:
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

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadPlan
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the weekly plan screen
func (m WeeksModel) View() string {
	if m.loading {
		return "\n  Calculating weekly targets..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  r: recalculate")

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m WeeksModel) renderContent() string {
	if m.data == nil || len(m.data.Weeks) == 0 {
		return "\n  No weeks to show."
	}

	var sections []string
	sections = append(sections, m.renderTable())

	if len(m.data.Chart.Calories) > 1 {
		sections = append(sections, m.renderCalorieChart())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m WeeksModel) renderTable() string {
	title := cardTitleStyle.Render("Daily Targets by Week")

	header := tableHeaderStyle.Render(fmt.Sprintf("%-8s  %7s  %9s  %11s  %7s  %5s  %5s",
		"", m.data.WeightLabel, "Loss", "Calories", "Protein", "Fat", "Carbs"))

	var rows []string
	rows = append(rows, header)

	for _, w := range m.data.Weeks {
		line := fmt.Sprintf("%-8s  %7s  %9s  %11s  %7s  %5s  %5s",
			w.Label, w.Weight, w.Loss, w.Calories, w.Protein, w.Fat, w.Carbs)

		switch {
		case w.Checklist:
			rows = append(rows, tableSelectedStyle.Render(line+"  fight week checklist"))
		case w.FightWeek:
			rows = append(rows, tableSelectedStyle.Render(line+"  fight week"))
		case w.Clamped:
			rows = append(rows, tableRowStyle.Render(line)+warningStyle.Render(" at BMR"))
		default:
			rows = append(rows, tableRowStyle.Render(line))
		}
	}

	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)
	note := mutedStyle.Render(fmt.Sprintf("Every week: fibre %s/day, salt %s/day",
		m.data.DailyFibre, m.data.DailySalt))
	rows = append(rows, "", note)

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func (m WeeksModel) renderCalorieChart() string {
	title := cardTitleStyle.Render("Daily Calories by Week")

	graph := asciigraph.Plot(m.data.Chart.Calories,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(0),
		asciigraph.Caption("kcal/day"),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.TrimRight(graph, "\n")))
}
