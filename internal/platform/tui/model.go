package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-terrain/internal/terrain"
	"github.com/vovakirdan/tui-terrain/internal/world"
)

const (
	headerLines = 1

	// World size change per grow/shrink key press.
	resizeStepW = 10
	resizeStepH = 5
	minWorldW   = 10
	minWorldH   = 5
)

// Model is the Bubble Tea model of the terrain editor.
type Model struct {
	world    *world.World
	keys     KeyMap
	help     help.Model
	renderer *GridRenderer

	fps        int
	flashTicks int

	cursor terrain.Coord
	view   Viewport
	width  int
	height int

	flash     []terrain.Coord
	flashLeft int
	preview   bool
	status    string
	statusErr bool
	quitting  bool
}

// NewModel creates an editor for w. The cursor starts at the grid center.
func NewModel(w *world.World) Model {
	cfg := w.Config()
	g := w.Grid()

	h := help.New()
	h.ShowAll = false

	m := Model{
		world: w,
		keys:  DefaultKeyMap(),
		help:  h,
		renderer: NewGridRenderer(
			ThemeByName(cfg.Display.Theme),
			int(math.Round(cfg.World.BlockWidth)),
			int(math.Round(cfg.World.BlockHeight)),
		),
		fps:        cfg.Display.FPS,
		flashTicks: cfg.Display.FlashTicks,
		cursor:     terrain.C(g.Width()/2, g.Height()/2),
		status:     "ready",
	}
	m.fitView()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.fitView()
		return m, nil

	case TickMsg:
		if m.flashLeft > 0 {
			m.flashLeft--
			if m.flashLeft == 0 {
				m.flash = nil
			}
		}
		return m, tickCmd(m.fps)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.move(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.move(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.move(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.move(1, 0)

	case key.Matches(msg, m.keys.Dig):
		m.report(m.world.Dig(m.cursor), "dug %s", m.cursor)
	case key.Matches(msg, m.keys.Build):
		t := m.world.BuildType()
		m.report(m.world.Build(m.cursor), "built %s at %s", t.Name, m.cursor)
	case key.Matches(msg, m.keys.Explode):
		m.explode(m.cursor)
	case key.Matches(msg, m.keys.CycleType):
		m.report(nil, "building %s", m.world.CycleBuildType().Name)
	case key.Matches(msg, m.keys.Preview):
		m.preview = !m.preview
		m.report(nil, "preview %s", onOff(m.preview))

	case key.Matches(msg, m.keys.PowerUp):
		p := m.world.AdjustPower(m.world.Config().Blast.PowerStep)
		m.report(nil, "power %.1f", p.Power)
	case key.Matches(msg, m.keys.PowerDown):
		p := m.world.AdjustPower(-m.world.Config().Blast.PowerStep)
		m.report(nil, "power %.1f", p.Power)

	case key.Matches(msg, m.keys.Regenerate):
		seed := time.Now().UnixNano()
		m.clearFlash()
		m.report(m.world.Regenerate(seed), "regenerated with seed %d", seed)
	case key.Matches(msg, m.keys.Grow):
		g := m.world.Grid()
		m.resize(g.Width()+resizeStepW, g.Height()+resizeStepH)
	case key.Matches(msg, m.keys.Shrink):
		g := m.world.Grid()
		m.resize(max(g.Width()-resizeStepW, minWorldW), max(g.Height()-resizeStepH, minWorldH))

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.fitView()
	}

	return m, nil
}

// handleMouse moves the cursor to the hovered block; left click explodes,
// right click builds.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	c := m.screenToCell(msg.X, msg.Y)
	if !m.world.Grid().InBounds(c) {
		return m, nil
	}
	m.cursor = c

	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		m.explode(c)
	case tea.MouseButtonRight:
		t := m.world.BuildType()
		m.report(m.world.Build(c), "built %s at %s", t.Name, c)
	}
	return m, nil
}

// screenToCell maps a terminal position to a grid cell, or InvalidCoord if
// the position is outside the map area.
func (m Model) screenToCell(x, y int) terrain.Coord {
	y -= headerLines
	if x < 0 || y < 0 {
		return terrain.InvalidCoord
	}

	// Map with the drawn cell size, which is the configured size rounded.
	cellW, cellH := float64(m.renderer.CellW), float64(m.renderer.CellH)
	c := terrain.ScreenToCellXY(terrain.Vec{X: float64(x), Y: float64(y)}, cellW, cellH)
	if c == terrain.InvalidCoord || c.X >= m.view.W || c.Y >= m.view.H {
		return terrain.InvalidCoord
	}
	return c.Add(m.view.X, m.view.Y)
}

func (m *Model) move(dx, dy int) {
	g := m.world.Grid()
	m.cursor = terrain.C(
		clamp(m.cursor.X+dx, 0, g.Width()-1),
		clamp(m.cursor.Y+dy, 0, g.Height()-1),
	)
	m.follow()
}

func (m *Model) explode(c terrain.Coord) {
	res := m.world.Detonate(c)
	m.flash = nil
	if res.Count() > 0 && m.flashTicks > 0 {
		m.flash = make([]terrain.Coord, len(res.Destroyed))
		for i, ch := range res.Destroyed {
			m.flash[i] = ch.Coord
		}
	}
	m.flashLeft = m.flashTicks
	m.report(nil, "boom at %s: %d blocks destroyed", c, res.Count())
}

func (m *Model) resize(width, height int) {
	if err := m.world.Resize(width, height); err != nil {
		m.report(err, "")
		return
	}
	m.clearFlash()
	m.move(0, 0)
	m.fitView()
	m.report(nil, "world resized to %dx%d", width, height)
}

func (m *Model) clearFlash() {
	m.flash = nil
	m.flashLeft = 0
}

// report sets the status line from an action outcome.
func (m *Model) report(err error, format string, args ...any) {
	if err != nil {
		m.status = err.Error()
		m.statusErr = true
		return
	}
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

// fitView sizes the viewport to the terminal and keeps the cursor visible.
// Before the first WindowSizeMsg the whole grid is shown.
func (m *Model) fitView() {
	g := m.world.Grid()
	if m.width <= 0 || m.height <= 0 {
		m.view = Viewport{W: g.Width(), H: g.Height()}
		return
	}

	footer := lipgloss.Height(m.help.View(m.keys))
	m.view.W = max(m.width/m.renderer.CellW, 1)
	m.view.H = max((m.height-headerLines-footer)/m.renderer.CellH, 1)
	m.follow()
}

// follow scrolls the viewport so the cursor stays visible.
func (m *Model) follow() {
	g := m.world.Grid()
	if m.cursor.X < m.view.X {
		m.view.X = m.cursor.X
	}
	if m.cursor.X >= m.view.X+m.view.W {
		m.view.X = m.cursor.X - m.view.W + 1
	}
	if m.cursor.Y < m.view.Y {
		m.view.Y = m.cursor.Y
	}
	if m.cursor.Y >= m.view.Y+m.view.H {
		m.view.Y = m.cursor.Y - m.view.H + 1
	}
	m.view.X = clamp(m.view.X, 0, max(g.Width()-m.view.W, 0))
	m.view.Y = clamp(m.view.Y, 0, max(g.Height()-m.view.H, 0))
}

// Cursor returns the selected cell.
func (m Model) Cursor() terrain.Coord {
	return m.cursor
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// Viewport returns the visible window of the grid.
func (m Model) Viewport() Viewport {
	return m.view
}

// Flashing returns how many blocks are highlighted from the last blast.
func (m Model) Flashing() int {
	return len(m.flash)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHUD())
	b.WriteString("\n")
	b.WriteString(m.renderer.Render(m.world.Grid(), m.view, m.marks()))
	b.WriteString("\n")
	b.WriteString(m.renderer.Theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// marks collects the overlays for the visible area.
func (m Model) marks() map[terrain.Coord]Mark {
	marks := make(map[terrain.Coord]Mark, len(m.flash)+1)
	if m.preview {
		for _, ch := range m.world.Preview(m.cursor).Destroyed {
			marks[ch.Coord] = MarkPreview
		}
	}
	for _, c := range m.flash {
		marks[c] = MarkFlash
	}
	marks[m.cursor] = MarkCursor
	return marks
}

func (m Model) renderHUD() string {
	t := m.renderer.Theme
	sep := t.HUDSeparator.Render(" | ")
	p := m.world.BlastParams()

	under := "-"
	if bt, ok := m.world.Grid().Get(m.cursor); ok {
		under = bt.Name
	}

	parts := []string{
		t.HUDTitle.Render("TERRAIN"),
		t.HUDValue.Render(fmt.Sprintf("power %.1f rays %d", p.Power, p.Rays)),
		t.HUDValue.Render("block " + m.world.BuildType().Name),
		t.HUDValue.Render(fmt.Sprintf("%s %s", m.cursor, under)),
	}
	status := t.HUDStatus
	if m.statusErr {
		status = t.HUDError
	}
	parts = append(parts, status.Render(m.status))
	return strings.Join(parts, sep)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// Run starts the Bubble Tea program for w.
func Run(w *world.World) error {
	p := tea.NewProgram(
		NewModel(w),
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Hover moves the cursor
	)

	_, err := p.Run()
	return err
}
