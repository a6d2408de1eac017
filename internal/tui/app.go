package tui

import (
	"fightcamp/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenOverview Screen = iota
	ScreenWeeks
	ScreenFightWeek
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	overview  OverviewModel
	weeks     WeeksModel
	fightWeek FightWeekModel
	help      HelpModel

	// Services
	planService *service.PlanService
	exportDir   string

	// Window dimensions
	width  int
	height int

	// Status message
	status string
}

// NewApp creates a new App. Text exports are written to exportDir.
func NewApp(planService *service.PlanService, exportDir string) *App {
	return &App{
		screen:      ScreenOverview,
		planService: planService,
		exportDir:   exportDir,
		overview:    NewOverviewModel(planService, exportDir),
		weeks:       NewWeeksModel(planService, 0, 0),
		fightWeek:   NewFightWeekModel(planService, 0, 0),
		help:        NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.overview.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "1":
			a.screen = ScreenOverview
			return a, a.overview.Init()
		case "2":
			a.screen = ScreenWeeks
			a.weeks = NewWeeksModel(a.planService, a.width, a.height)
			return a, a.weeks.Init()
		case "3", "f":
			a.screen = ScreenFightWeek
			a.fightWeek = NewFightWeekModel(a.planService, a.width, a.height)
			return a, a.fightWeek.Init()
		case "?":
			a.prevScreen = a.screen
			a.screen = ScreenHelp
			return a, nil
		case "esc":
			if a.screen == ScreenHelp {
				a.screen = a.prevScreen
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case ExportDoneMsg:
		if msg.Err != nil {
			a.status = errorStyle.Render("Export failed: " + msg.Err.Error())
		} else {
			a.status = successStyle.Render("Plan saved to " + msg.Path)
		}
		return a, nil
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenOverview:
		var m tea.Model
		m, cmd = a.overview.Update(msg)
		a.overview = m.(OverviewModel)
	case ScreenWeeks:
		var m tea.Model
		m, cmd = a.weeks.Update(msg)
		a.weeks = m.(WeeksModel)
	case ScreenFightWeek:
		var m tea.Model
		m, cmd = a.fightWeek.Update(msg)
		a.fightWeek = m.(FightWeekModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenOverview:
		content = a.overview.View()
	case ScreenWeeks:
		content = a.weeks.View()
	case ScreenFightWeek:
		content = a.fightWeek.View()
	case ScreenHelp:
		content = a.help.View()
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content, footer)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Fight Camp Planner")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Overview", ScreenOverview},
		{"2", "Weekly Plan", ScreenWeeks},
		{"3", "Fight Week", ScreenFightWeek},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

func (a *App) renderFooter() string {
	if a.status != "" {
		return statusStyle.Render(a.status)
	}
	return ""
}

// ExportDoneMsg is sent when a text export finishes
type ExportDoneMsg struct {
	Path string
	Err  error
}
