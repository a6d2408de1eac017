package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"fightcamp/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// ExportFileName is the name of the text export inside the export directory
const ExportFileName = "plan.txt"

// OverviewModel is the plan overview screen model
type OverviewModel struct {
	planService *service.PlanService
	exportDir   string
	data        *service.PlanData
	loading     bool
	err         error
}

// NewOverviewModel creates a new overview model
func NewOverviewModel(ps *service.PlanService, exportDir string) OverviewModel {
	return OverviewModel{
		planService: ps,
		exportDir:   exportDir,
		loading:     true,
	}
}

// Init initializes the overview
func (m OverviewModel) Init() tea.Cmd {
	return m.loadData
}

func (m OverviewModel) loadData() tea.Msg {
	data, err := m.planService.BuildPlan()
	if err != nil {
		return overviewDataMsg{err: err}
	}
	return overviewDataMsg{data: data}
}

type overviewDataMsg struct {
	data *service.PlanData
	err  error
}

// exportPlan writes the plain-text plan and reports back with ExportDoneMsg
func exportPlan(data *service.PlanData, dir string) tea.Cmd {
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return ExportDoneMsg{Err: fmt.Errorf("creating export directory: %w", err)}
		}
		path := filepath.Join(dir, ExportFileName)
		if err := os.WriteFile(path, []byte(service.PlanText(data)), 0644); err != nil {
			return ExportDoneMsg{Err: fmt.Errorf("writing plan: %w", err)}
		}
		return ExportDoneMsg{Path: path}
	}
}

// Update handles messages
func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		case "e":
			if m.data != nil {
				return m, exportPlan(m.data, m.exportDir)
			}
		}
	}
	return m, nil
}

// View renders the overview
func (m OverviewModel) View() string {
	if m.loading {
		return "\n  Calculating plan..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err)) +
			statusStyle.Render("\n  Fix ~/.fightcamp/config.json and press 'r' to recalculate")
	}

	if m.data == nil {
		return "\n  No plan available."
	}

	var sections []string

	// Top row: camp timing and weight targets side by side
	campCard := m.renderCampCard()
	weightCard := m.renderWeightCard()
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, campCard, "  ", weightCard)
	sections = append(sections, topRow)

	// Need at least two points for a line
	if len(m.data.Chart.Weights) > 1 {
		sections = append(sections, m.renderChart())
	}

	if len(m.data.Warnings) > 0 {
		sections = append(sections, m.renderWarnings())
	}

	help := statusStyle.Render("Press 'r' to recalculate, 'e' to export, '2' for the weekly plan")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m OverviewModel) renderCampCard() string {
	title := cardTitleStyle.Render("Camp")
	o := m.data.Overview

	lines := []string{
		RenderMetric("Fight date", o.FightDate, ""),
		RenderMetric("Fight in", o.FightIn, ""),
		RenderMetric("Days remaining", fmt.Sprintf("%d", o.DaysRemaining), ""),
		RenderMetric("Camp length", fmt.Sprintf("%d weeks", o.CampWeeks), ""),
		RenderMetric("Training load", o.Training, ""),
		RenderMetric("Distribution", o.Distribution, ""),
		RenderMetric("Camp price", fmt.Sprintf("£%d", o.PriceGBP), ""),
		"",
		RenderProgressBar(o.Progress, 30) + fmt.Sprintf(" %.0f%%", o.Progress*100),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m OverviewModel) renderWeightCard() string {
	title := cardTitleStyle.Render("Weight Cut")
	o := m.data.Overview

	lines := []string{
		RenderMetric("Current", o.CurrentWeight, ""),
		RenderMetric("Target", o.TargetWeight, ""),
		RenderMetric("Water cut", o.WaterCut, ""),
		RenderMetric("Fight-week start", o.FightWeekStart, ""),
		RenderMetric("Fat loss goal", o.FatLossGoal, ""),
		RenderMetric("Per week", o.AvgWeeklyLoss, fmt.Sprintf("over %d weeks", o.LossWeeks)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(50).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m OverviewModel) renderChart() string {
	title := cardTitleStyle.Render("Projected Weight by Week")

	graph := asciigraph.Plot(m.data.Chart.Weights,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(1),
		asciigraph.Caption(m.data.WeightLabel+" at end of week"),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m OverviewModel) renderWarnings() string {
	title := cardTitleStyle.Render("Warnings")

	var lines []string
	for _, w := range m.data.Warnings {
		lines = append(lines, warningStyle.Render("! "+w))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}
