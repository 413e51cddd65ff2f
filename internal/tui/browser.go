// internal/tui/browser.go
// Package tui is an interactive browser over the ranked configurations of a
// results file.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simani23/gpu-zip/internal/selector"
	"github.com/simani23/gpu-zip/internal/signal"
	"github.com/simani23/gpu-zip/internal/sweep"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	detailStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)

	qualityStyles = map[signal.Quality]lipgloss.Style{
		signal.Poor:        lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		signal.Marginal:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		signal.Fair:        lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		signal.Good:        lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		signal.Excellent:   lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true),
		signal.Outstanding: lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	}
)

// Options configures the browser.
type Options struct {
	Source    string
	Bands     signal.Bands
	StressKey string
}

type model struct {
	opts       Options
	all        []selector.Ranked
	shown      []selector.Ranked
	stressOnly bool
	table      table.Model
	width      int
	height     int
}

var columns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Name", Width: 28},
	{Title: "Ratio", Width: 8},
	{Title: "Quality", Width: 12},
	{Title: "Black", Width: 10},
	{Title: "White", Width: 10},
}

func initialModel(results []sweep.ConfigResult, opts Options) *model {
	if opts.Bands == (signal.Bands{}) {
		opts.Bands = signal.DefaultBands
	}
	if opts.StressKey == "" {
		opts.StressKey = selector.DefaultStressKey
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63"))
	t.SetStyles(styles)

	m := &model{opts: opts, all: selector.Rank(results), table: t}
	m.refresh()
	return m
}

// refresh rebuilds the table rows for the current filter.
func (m *model) refresh() {
	m.shown = m.all
	if m.stressOnly {
		stress := selector.Partition(resultsOf(m.all), m.opts.StressKey).Stress
		m.shown = selector.Rank(stress)
	}
	rows := make([]table.Row, len(m.shown))
	for i, r := range m.shown {
		res := r.Result
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.Rank),
			res.Name(),
			fmt.Sprintf("%.3f", res.Ratio()),
			m.opts.Bands.Classify(res.Ratio()).String(),
			fmt.Sprintf("%.2f", res.Results.BlackTime),
			fmt.Sprintf("%.2f", res.Results.WhiteTime),
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func resultsOf(ranked []selector.Ranked) []sweep.ConfigResult {
	out := make([]sweep.ConfigResult, len(ranked))
	for i, r := range ranked {
		out[i] = r.Result
	}
	return out
}

// selected returns the highlighted entry, if any.
func (m *model) selected() (selector.Ranked, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.shown) {
		return selector.Ranked{}, false
	}
	return m.shown[i], true
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "s":
			m.stressOnly = !m.stressOnly
			m.refresh()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if h := msg.Height - 16; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	var b strings.Builder
	title := "Ranked configurations"
	if m.opts.Source != "" {
		title += " - " + m.opts.Source
	}
	if m.stressOnly {
		title += " (stress only)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	if len(m.shown) == 0 {
		b.WriteString("No valid configurations.\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
		if r, ok := m.selected(); ok {
			b.WriteString(m.detail(r))
			b.WriteString("\n")
		}
	}
	b.WriteString(helpStyle.Render("↑/↓ move  s toggle stress-only  q quit"))
	return b.String()
}

func (m *model) detail(r selector.Ranked) string {
	res := r.Result
	q := m.opts.Bands.Classify(res.Ratio())
	var lines []string
	lines = append(lines, fmt.Sprintf("%s  ratio %.3f  %s", res.Name(), res.Ratio(), qualityStyles[q].Render(q.Label())))
	for _, key := range res.Config.Params() {
		v, _ := res.Config.Get(key)
		lines = append(lines, fmt.Sprintf("  %s: %s", key, v))
	}
	return detailStyle.Render(strings.Join(lines, "\n"))
}

// Run starts the browser and blocks until the user quits.
func Run(results []sweep.ConfigResult, opts Options, programOpts ...tea.ProgramOption) error {
	m := initialModel(results, opts)
	if len(programOpts) == 0 {
		programOpts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	_, err := tea.NewProgram(m, programOpts...).Run()
	return err
}
