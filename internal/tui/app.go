// Package tui renders the balance timeline as an interactive chart.
package tui

import (
	"fmt"

	"runway/internal/cli"
	"runway/internal/dateutil"
	"runway/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Loader fetches the timeline for a window; the forecast flag asks for the
// projected series as well.
type Loader func(r dateutil.Range, forecast bool) ([]model.TimelinePoint, error)

type keyMap struct {
	Prev     key.Binding
	Next     key.Binding
	Forecast key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Forecast, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.Forecast, k.Quit}}
}

func defaultKeys() keyMap {
	return keyMap{
		Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "month back")),
		Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "month forward")),
		Forecast: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle forecast")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// App is the bubbletea model for the timeline chart.
type App struct {
	loader   Loader
	symbol   string
	today    dateutil.Date
	window   dateutil.Range
	forecast bool

	points []model.TimelinePoint
	err    error

	width  int
	height int
	keys   keyMap
	help   help.Model
}

// New builds the app around an initial window.
func New(loader Loader, symbol string, today dateutil.Date, window dateutil.Range) *App {
	return &App{
		loader:   loader,
		symbol:   symbol,
		today:    today,
		window:   window,
		forecast: true,
		keys:     defaultKeys(),
		help:     help.New(),
	}
}

// Run starts the program in the alternate screen.
func Run(app *App) error {
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func (a *App) reload() {
	a.points, a.err = a.loader(a.window, a.forecast)
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.reload()
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Prev):
			a.window.Start = a.window.Start.AddMonths(-1)
			a.window.End = a.window.End.AddMonths(-1)
			a.reload()
		case key.Matches(msg, a.keys.Next):
			a.window.Start = a.window.Start.AddMonths(1)
			a.window.End = a.window.End.AddMonths(1)
			a.reload()
		case key.Matches(msg, a.keys.Forecast):
			a.forecast = !a.forecast
			a.reload()
		}
	}
	return a, nil
}

var (
	tuiTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(cli.ColorText)
	tuiDimStyle    = lipgloss.NewStyle().Foreground(cli.ColorTextDim)
	tuiPastStyle   = lipgloss.NewStyle().Foreground(cli.ColorBlue)
	tuiFutureStyle = lipgloss.NewStyle().Foreground(cli.ColorAccent)
	tuiBurnStyle   = lipgloss.NewStyle().Foreground(cli.ColorOrange)
	tuiWarnStyle   = lipgloss.NewStyle().Foreground(cli.ColorRed)
)

// View implements tea.Model.
func (a *App) View() string {
	if a.err != nil {
		return fmt.Sprintf("\n  error: %v\n\n  press q to quit\n", a.err)
	}
	if len(a.points) == 0 {
		return "\n  No data in this window.\n\n  " + a.help.View(a.keys)
	}

	title := fmt.Sprintf("runway  %s → %s", a.window.Start, a.window.End)
	if a.forecast {
		title += "  (forecast on)"
	}

	chartHeight := a.height - 6
	if chartHeight < 4 {
		chartHeight = 4
	}
	chartWidth := a.width - 4
	if chartWidth < 10 {
		chartWidth = 10
	}

	final := a.points[len(a.points)-1]
	status := fmt.Sprintf("today %s   end balance %s",
		a.today, cli.FormatMoney(effective(final), a.symbol))
	if low := lowest(a.points); effective(low) < 0 {
		status += tuiWarnStyle.Render(fmt.Sprintf("   shortfall %s on %s",
			cli.FormatMoney(effective(low), a.symbol), low.Date))
	}

	return "\n  " + tuiTitleStyle.Render(title) + "\n\n" +
		renderChart(a.points, chartWidth, chartHeight) + "\n" +
		"  " + tuiDimStyle.Render(status) + "\n\n" +
		"  " + a.help.View(a.keys)
}

// renderChart draws the series as full-height block columns, one day per
// column (downsampled when the window is wider than the terminal). Past days
// draw blue, future days teal, and projected futures orange.
func renderChart(points []model.TimelinePoint, width, height int) string {
	cols := len(points)
	if cols > width {
		cols = width
	}

	values := make([]float64, cols)
	styles := make([]lipgloss.Style, cols)
	for c := 0; c < cols; c++ {
		p := points[c*len(points)/cols]
		values[c] = effective(p)
		switch {
		case p.IsFuture && p.Projected != nil:
			styles[c] = tuiBurnStyle
		case p.IsFuture:
			styles[c] = tuiFutureStyle
		default:
			styles[c] = tuiPastStyle
		}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	rows := make([]string, height)
	for r := 0; r < height; r++ {
		line := make([]byte, 0, cols)
		threshold := hi - span*float64(r+1)/float64(height)
		for c := 0; c < cols; c++ {
			if values[c] >= threshold {
				line = append(line, 'x')
			} else {
				line = append(line, ' ')
			}
		}
		// Style per-column by rebuilding the row with colored blocks.
		var out string
		for c, ch := range line {
			if ch == 'x' {
				out += styles[c].Render("█")
			} else {
				out += " "
			}
		}
		rows[r] = "  " + out
	}

	return joinLines(rows)
}

func joinLines(lines []string) string {
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}

func effective(p model.TimelinePoint) float64 {
	if p.Projected != nil {
		return *p.Projected
	}
	return p.Balance
}

func lowest(points []model.TimelinePoint) model.TimelinePoint {
	low := points[0]
	for _, p := range points[1:] {
		if effective(p) < effective(low) {
			low = p
		}
	}
	return low
}
