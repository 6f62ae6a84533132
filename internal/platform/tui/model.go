package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/render"
	"github.com/vovakirdan/tui-sand/internal/scenario"
	"github.com/vovakirdan/tui-sand/internal/sim"
	"github.com/vovakirdan/tui-sand/internal/storage"
)

// hudRows is the number of terminal rows below the grid.
const hudRows = 2

// Options configures a simulation model.
type Options struct {
	Scenarios []scenario.Scenario // tab cycles through these
	Start     int                 // index of the first scenario
	Config    core.RuntimeConfig
	Width     int // fixed grid width, 0 = from screen
	Height    int // fixed grid height, 0 = from screen
	Theme     render.Theme
	Store     *storage.Store // nil disables run history
	Menu      bool           // esc returns to a scenario menu
}

// Model is the Bubble Tea model for running a simulation.
type Model struct {
	opts     Options
	current  int
	grid     *sim.Grid
	renderer *render.Renderer
	keys     SimKeyMap
	help     help.Model
	styles   Styles
	seed     int64
	started  time.Time

	paused     bool
	lastMoves  int
	totalMoves int64
	err        error

	quitting   bool
	backToMenu bool
	done       bool // duration reached
	saved      bool // current grid recorded
}

// NewModel creates a new Bubble Tea model and builds the first grid.
func NewModel(opts Options) Model {
	if len(opts.Scenarios) == 0 {
		empty, _ := scenario.Get("empty")
		opts.Scenarios = []scenario.Scenario{empty}
	}
	if opts.Start < 0 || opts.Start >= len(opts.Scenarios) {
		opts.Start = 0
	}
	if opts.Theme.Name == "" {
		opts.Theme = render.DefaultTheme()
	}

	keys := DefaultSimKeyMap()
	keys.Back.SetEnabled(opts.Menu)
	multi := len(opts.Scenarios) > 1
	keys.Next.SetEnabled(multi)
	keys.Prev.SetEnabled(multi)

	m := Model{
		opts:     opts,
		current:  opts.Start,
		renderer: render.NewRenderer(opts.Theme),
		keys:     keys,
		help:     help.New(),
		styles:   DefaultStyles(),
		seed:     opts.Config.Seed,
	}
	if m.seed == 0 {
		m.seed = time.Now().UnixNano()
	}
	m.rebuild()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finishRun()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.finishRun()
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Step):
		if m.paused {
			m.step()
		}

	case key.Matches(msg, m.keys.Reset):
		m.finishRun()
		m.seed = time.Now().UnixNano()
		m.rebuild()

	case key.Matches(msg, m.keys.Next):
		m.finishRun()
		m.current = (m.current + 1) % len(m.opts.Scenarios)
		m.rebuild()

	case key.Matches(msg, m.keys.Prev):
		m.finishRun()
		m.current = (m.current - 1 + len(m.opts.Scenarios)) % len(m.opts.Scenarios)
		m.rebuild()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleResize rebuilds the grid at the new size unless it is fixed.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Config.ScreenW = msg.Width
	m.opts.Config.ScreenH = msg.Height
	m.help.Width = msg.Width

	if m.opts.Width == 0 || m.opts.Height == 0 {
		w, h := m.Scenario().Size(m.gridSize())
		if w != m.grid.Width() || h != m.grid.Height() {
			m.finishRun()
			m.rebuild()
		}
	}
	return m, nil
}

// handleTick advances the simulation.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused && !m.done {
		m.step()
	}

	if d := m.opts.Config.Duration; !m.done && d > 0 && m.grid.Tick() >= uint64(d) {
		m.finishRun()
		m.done = true
		if !m.opts.Menu {
			m.quitting = true
			return m, tea.Quit
		}
		m.paused = true
	}

	return m, tickCmd(m.opts.Config.TickRate)
}

func (m *Model) step() {
	res := m.grid.Step()
	m.lastMoves = len(res.Moves)
	m.totalMoves += int64(len(res.Moves))
}

func (m Model) gridSize() (int, int) {
	w, h := m.opts.Config.GridSize(hudRows)
	if m.opts.Width > 0 {
		w = m.opts.Width
	}
	if m.opts.Height > 0 {
		h = m.opts.Height
	}
	return w, h
}

// rebuild creates a fresh grid for the current scenario and seed.
func (m *Model) rebuild() {
	w, h := m.gridSize()
	s := m.opts.Scenarios[m.current]

	g, err := s.Build(w, h, sim.WithSeed(m.seed))
	if err != nil {
		g = sim.New(w, h, sim.WithSeed(m.seed))
	}
	m.err = err
	m.grid = g
	m.lastMoves = 0
	m.totalMoves = 0
	m.started = time.Now()
	m.done = false
	m.saved = false
}

// finishRun records the current run in the history store.
// Runs that never ticked are not recorded, and each grid is recorded once.
func (m *Model) finishRun() {
	if m.opts.Store == nil || m.saved || m.grid.Tick() == 0 {
		return
	}
	//nolint:errcheck // Best-effort save, simulation continues regardless
	m.opts.Store.SaveRun(storage.RunRecord{
		Scenario:   m.Scenario().ID,
		Seed:       m.seed,
		Width:      m.grid.Width(),
		Height:     m.grid.Height(),
		Ticks:      int64(m.grid.Tick()),
		Moves:      m.totalMoves,
		DurationMS: time.Since(m.started).Milliseconds(),
	})
	m.saved = true
}

// View renders the grid and the HUD.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderer.Frame(m.grid))
	b.WriteString("\n")
	b.WriteString(m.hud())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) hud() string {
	if m.err != nil {
		return m.styles.HUDError.Render(m.err.Error())
	}

	counts := m.grid.Counts()
	sep := m.styles.HUDSeparator.Render(" | ")
	parts := []string{
		m.styles.HUDTitle.Render(m.Scenario().Name),
		m.styles.HUDValue.Render(fmt.Sprintf("tick %d", m.grid.Tick())),
		m.styles.HUDValue.Render(fmt.Sprintf("moves %d", m.lastMoves)),
		m.styles.HUDValue.Render(fmt.Sprintf("sand %d water %d solid %d",
			counts[sim.KindMovableSolid], counts[sim.KindLiquid], counts[sim.KindImmovableSolid])),
	}
	line := strings.Join(parts, sep)
	if m.paused {
		line += sep + m.styles.HUDPaused.Render("PAUSED")
	}
	return line
}

// Grid returns the grid being simulated.
func (m Model) Grid() *sim.Grid {
	return m.grid
}

// Scenario returns the scenario being simulated.
func (m Model) Scenario() scenario.Scenario {
	return m.opts.Scenarios[m.current]
}

// Paused reports whether ticks are suspended.
func (m Model) Paused() bool {
	return m.paused
}

// Seed returns the seed of the current grid.
func (m Model) Seed() int64 {
	return m.seed
}

// Err returns the error from building the current scenario, if any.
func (m Model) Err() error {
	return m.err
}

// BackToMenu returns true if the user asked for the scenario menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
