package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-terrain/internal/storage"
)

// HistorySource provides recorded blasts.
type HistorySource interface {
	RecentBlasts(limit int) ([]storage.BlastRecord, error)
	Totals() (*storage.BlastTotals, error)
	TypeTotals() ([]storage.TypeTotal, error)
}

// HistoryKeyMap defines key bindings for the history screen.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultHistoryKeyMap returns the default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the blast history screen.
type HistoryModel struct {
	blasts   []storage.BlastRecord
	totals   *storage.BlastTotals
	types    []storage.TypeTotal
	err      error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	theme    Theme
	width    int
	height   int
	quitting bool
}

// NewHistoryModel loads up to limit blasts from src.
func NewHistoryModel(src HistorySource, limit, width, height int, theme Theme) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		theme:  theme,
		width:  width,
		height: height,
	}
	m.load(src, limit)
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *HistoryModel) load(src HistorySource, limit int) {
	if src == nil {
		return
	}
	if m.blasts, m.err = src.RecentBlasts(limit); m.err != nil {
		return
	}
	if m.totals, m.err = src.Totals(); m.err != nil {
		return
	}
	m.types, m.err = src.TypeTotals()
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Origin", Width: 10},
		{Title: "Power", Width: 6},
		{Title: "Rays", Width: 5},
		{Title: "Destroyed", Width: 9},
		{Title: "Types", Width: 24},
		{Title: "When", Width: 12},
	}

	// Give spare width to the types column
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := m.width - 6 - used; extra > 0 {
		columns[5].Width += min(extra, 24)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, totals and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the loaded blasts.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.blasts))
	for i, b := range m.blasts {
		rows[i] = table.Row{
			fmt.Sprintf("%d", b.ID),
			fmt.Sprintf("(%d,%d)", b.OriginX, b.OriginY),
			fmt.Sprintf("%.1f", b.Power),
			fmt.Sprintf("%d", b.Rays),
			fmt.Sprintf("%d", b.Destroyed),
			FormatTypeCounts(b.Types),
			b.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// FormatTypeCounts renders per-type counts as "stone:12 dirt:3", largest
// first.
func FormatTypeCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "-"
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s:%d", name, counts[name])
	}
	return strings.Join(parts, " ")
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.TableTitle.Render(centerText("BLAST HISTORY", m.width)))
	b.WriteString("\n\n")

	if m.totals != nil && m.totals.Blasts > 0 {
		summary := fmt.Sprintf("%d blasts, %d blocks destroyed, biggest %d",
			m.totals.Blasts, m.totals.Destroyed, m.totals.Biggest)
		b.WriteString(centerText(m.theme.HUDValue.Render(summary), m.width))
		b.WriteString("\n")

		counts := make(map[string]int, len(m.types))
		for _, t := range m.types {
			counts[t.Name] = int(t.Count)
		}
		b.WriteString(centerText(m.theme.HUDStatus.Render(FormatTypeCounts(counts)), m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(centerText(m.theme.TableBorder.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTableContent renders the table or an explanatory message.
func (m HistoryModel) renderTableContent() string {
	if m.err != nil {
		return m.theme.TableEmpty.Render("Could not load history:\n" + m.err.Error())
	}
	if len(m.blasts) == 0 {
		return m.theme.TableEmpty.Render("No blasts recorded yet.\nRun 'terrain play' and blow something up!")
	}
	return m.table.View()
}

// RunHistory runs the history screen.
func RunHistory(src HistorySource, limit, width, height int, theme Theme) error {
	p := tea.NewProgram(
		NewHistoryModel(src, limit, width, height, theme),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
