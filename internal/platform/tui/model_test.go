package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/scenario"
	"github.com/vovakirdan/tui-sand/internal/sim"
	"github.com/vovakirdan/tui-sand/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func column() scenario.Scenario {
	return scenario.Scenario{
		ID:     "column",
		Name:   "Column",
		Pixels: []scenario.Pixel{{At: sim.C(0, 0), Material: "sand"}},
	}
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if len(opts.Scenarios) == 0 {
		opts.Scenarios = []scenario.Scenario{column()}
	}
	if opts.Width == 0 {
		opts.Width, opts.Height = 3, 6
	}
	opts.Config.Seed = 1
	return NewModel(opts)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return model, cmd
}

func TestModelTickSteps(t *testing.T) {
	m := newTestModel(t, Options{})

	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.Grid().Tick() != 1 {
		t.Errorf("tick = %d, expected 1", m.Grid().Tick())
	}
	if m.Grid().At(sim.C(0, 1)).Kind != sim.KindMovableSolid {
		t.Error("sand should have fallen one row")
	}
}

func TestModelPauseAndStep(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = update(t, m, runes("p"))
	if !m.Paused() {
		t.Fatal("p should pause")
	}

	m, _ = update(t, m, TickMsg(time.Now()))
	if m.Grid().Tick() != 0 {
		t.Errorf("paused tick advanced the grid to %d", m.Grid().Tick())
	}

	m, _ = update(t, m, runes("n"))
	if m.Grid().Tick() != 1 {
		t.Errorf("n while paused: tick = %d, expected 1", m.Grid().Tick())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Paused() {
		t.Error("space should resume")
	}

	// Step is ignored while running.
	m, _ = update(t, m, runes("n"))
	if m.Grid().Tick() != 1 {
		t.Errorf("n while running: tick = %d, expected 1", m.Grid().Tick())
	}
}

func TestModelResetRebuilds(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, TickMsg(time.Now()))
	seed := m.Seed()

	m, _ = update(t, m, runes("r"))
	if m.Grid().Tick() != 0 {
		t.Errorf("reset grid tick = %d, expected 0", m.Grid().Tick())
	}
	if m.Seed() == seed {
		t.Error("reset should pick a new seed")
	}
	if m.Grid().At(sim.C(0, 0)).Kind != sim.KindMovableSolid {
		t.Error("reset should restore the scenario layout")
	}
}

func TestModelNextScenario(t *testing.T) {
	empty, _ := scenario.Get("empty")
	m := newTestModel(t, Options{Scenarios: []scenario.Scenario{column(), empty}})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Scenario().ID != "empty" {
		t.Errorf("scenario = %s, expected empty", m.Scenario().ID)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Scenario().ID != "column" {
		t.Errorf("scenario = %s, expected to wrap to column", m.Scenario().ID)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Scenario().ID != "empty" {
		t.Errorf("scenario = %s, expected empty after shift+tab", m.Scenario().ID)
	}
}

func TestModelResizeRebuildsScreenSizedGrid(t *testing.T) {
	m := NewModel(Options{
		Scenarios: []scenario.Scenario{column()},
		Config:    core.RuntimeConfig{ScreenW: 10, ScreenH: 10, TickRate: 60, Seed: 1},
	})
	if m.Grid().Width() != 10 || m.Grid().Height() != 16 {
		t.Fatalf("grid = %dx%d, expected 10x16", m.Grid().Width(), m.Grid().Height())
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 12})
	if m.Grid().Width() != 20 || m.Grid().Height() != 20 {
		t.Errorf("grid after resize = %dx%d, expected 20x20", m.Grid().Width(), m.Grid().Height())
	}
}

func TestModelDurationQuits(t *testing.T) {
	m := newTestModel(t, Options{Config: core.RuntimeConfig{Duration: 2}})

	m, _ = update(t, m, TickMsg(time.Now()))
	if m.IsQuitting() {
		t.Fatal("quit before the duration was reached")
	}
	m, cmd := update(t, m, TickMsg(time.Now()))
	if !m.IsQuitting() {
		t.Error("model should quit after the duration")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestModelBuildErrorShownInHUD(t *testing.T) {
	bad := scenario.Scenario{
		ID:     "bad",
		Name:   "Bad",
		Pixels: []scenario.Pixel{{At: sim.C(50, 50), Material: "sand"}},
	}
	m := newTestModel(t, Options{Scenarios: []scenario.Scenario{bad}})

	if m.Err() == nil {
		t.Fatal("expected a build error")
	}
	if !strings.Contains(m.View(), "out of bounds") {
		t.Errorf("view should show the error:\n%s", m.View())
	}
}

func TestModelQuitSavesRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, Options{Store: store})
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, runes("q"))
	if !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	// A second quit must not record the run twice.
	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(runs))
	}
	if runs[0].Scenario != "column" || runs[0].Ticks != 2 || runs[0].Seed != 1 {
		t.Errorf("saved run = %+v", runs[0])
	}
}

func TestModelViewLayout(t *testing.T) {
	m := newTestModel(t, Options{})
	view := m.View()

	// 6 grid rows = 3 frame lines, then HUD and help.
	if lines := strings.Count(view, "\n") + 1; lines != 5 {
		t.Errorf("view has %d lines, expected 5", lines)
	}
	if !strings.Contains(view, "Column") {
		t.Error("HUD should name the scenario")
	}
}

func TestBackOnlyWithMenu(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("esc should be ignored without a menu")
	}

	m = newTestModel(t, Options{Menu: true})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc should return to the menu")
	}
}

func TestSessionMenuFlow(t *testing.T) {
	empty, _ := scenario.Get("empty")
	s := NewSessionModel(SessionOptions{
		Scenarios: []scenario.Scenario{column(), empty},
		Config:    core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60, Seed: 1},
	})

	step := func(msg tea.Msg) {
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if !s.InSimulation() {
		t.Fatal("enter should start a simulation")
	}
	if !strings.Contains(s.View(), "Empty") {
		t.Error("second scenario should be running")
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.InSimulation() {
		t.Fatal("esc should return to the menu")
	}

	step(runes("q"))
	if s.View() != "" {
		t.Error("quit session should render nothing")
	}
}

func TestHistoryModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	store.SaveRun(storage.RunRecord{Scenario: "hills", Seed: 7, Width: 10, Height: 10, Ticks: 42})
	store.SaveRun(storage.RunRecord{Scenario: "pool", Seed: 8, Width: 10, Height: 10, Ticks: 5})

	infos := scenario.List()
	h := NewHistoryModel(store, infos, "hills", 120, 40)
	if h.Current() != "hills" || len(h.Runs()) != 1 {
		t.Fatalf("history start = %s with %d runs, expected hills with 1", h.Current(), len(h.Runs()))
	}
	if !strings.Contains(h.View(), "42") {
		t.Error("history view should list the run's ticks")
	}

	next, _ := h.Update(tea.KeyMsg{Type: tea.KeyTab})
	h = next.(HistoryModel)
	if h.Current() == "hills" {
		t.Error("tab should move to the next scenario")
	}
}
