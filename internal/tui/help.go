package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Keyboard Shortcuts")
	sections = append(sections, title)

	// Navigation section
	navSection := m.renderSection("Navigation", []keyHelp{
		{"1", "Plan overview"},
		{"2", "Weekly targets"},
		{"3 or f", "Fight-week checklist"},
		{"?", "Help (this screen)"},
		{"q", "Quit"},
		{"esc", "Back / close help"},
	})
	sections = append(sections, navSection)

	// Overview keys
	overviewSection := m.renderSection("Overview", []keyHelp{
		{"r", "Recalculate from config"},
		{"e", "Export plan to ~/.fightcamp/plan.txt"},
	})
	sections = append(sections, overviewSection)

	// Scrolling screens
	scrollSection := m.renderSection("Weekly Plan / Fight Week", []keyHelp{
		{"j / down", "Scroll down"},
		{"k / up", "Scroll up"},
		{"r", "Recalculate (weekly plan)"},
	})
	sections = append(sections, scrollSection)

	// Terms explanation
	termsSection := m.renderTermsHelp()
	sections = append(sections, termsSection)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderTermsHelp() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render("Terms Explained"))
	lines = append(lines, "")

	terms := []struct {
		name string
		desc string
	}{
		{"BMR", "Basal metabolic rate (Mifflin-St Jeor). Calories never go below it."},
		{"Maintenance", "BMR x training multiplier: low 1.375, medium 1.55, high 1.75."},
		{"Water cut", "Acute water loss in fight week, as a % of target weight."},
		{"Fight-week start", "Target + 2x water cut. Reach this by the end of fat loss."},
		{"Deficit", "Weekly loss x 7700 kcal/kg / 7 days."},
		{"Carbs", "Whatever is left after protein (2.2 / 2.0 g/kg) and fat (1 g/kg)."},
	}

	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)

	for _, term := range terms {
		lines = append(lines, "  "+helpKeyStyle.Render(term.name))
		lines = append(lines, "  "+mutedStyle.Render(term.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
