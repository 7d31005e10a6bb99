package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/VladimirMarkelov/pwatch/collector"
	"github.com/VladimirMarkelov/pwatch/config"
	"github.com/VladimirMarkelov/pwatch/engine"
	"github.com/VladimirMarkelov/pwatch/model"
)

// Terminal size floor: below this nothing useful fits.
const (
	minWidth  = 30
	minHeight = 10
)

const statusTTL = 4 * time.Second

type tickMsg time.Time

type snapMsg struct {
	snap map[int32]model.ProcSample
	cpu  uint64
	mem  uint64
}

type reloadMsg config.Config

type clearStatusMsg struct{}

// Model is the bubbletea application state. All engine mutation happens in
// Update, so the tracker never needs locking.
type Model struct {
	tracker   *engine.Tracker
	collector *collector.Collector
	opts      model.Options
	flagged   map[string]bool // options pinned on the command line; reloads skip them
	reload    <-chan config.Config

	width, height int
	cpuPct        uint64
	memPct        uint64
	showHelp      bool
	status        string
}

// New builds the application model. flagged names config keys that were set
// explicitly on the command line, reload is an optional stream of re-read
// config files (nil disables live reload).
func New(opts model.Options, flagged map[string]bool, reload <-chan config.Config) Model {
	return Model{
		tracker:   engine.NewTracker(0, 0),
		collector: collector.New(),
		opts:      opts,
		flagged:   flagged,
		reload:    reload,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.collect(), m.tick(), m.waitReload())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Duration(m.opts.RefreshMs)*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) collect() tea.Cmd {
	col := m.collector
	opts := m.opts
	return func() tea.Msg {
		snap := col.Snapshot(opts)
		cpu, mem := collector.SystemTotals()
		return snapMsg{snap: snap, cpu: cpu, mem: mem}
	}
}

func (m Model) waitReload() tea.Cmd {
	ch := m.reload
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg(cfg)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.tracker.SizeChanged(msg.Width, msg.Height) {
			m.tracker.Place(m.opts)
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.collect(), m.tick())

	case snapMsg:
		m.cpuPct, m.memPct = msg.cpu, msg.mem
		m.tracker.Merge(msg.snap, time.Now())
		m.tracker.Place(m.opts)
		return m, nil

	case reloadMsg:
		m.applyReload(config.Config(msg))
		m.tracker.Place(m.opts)
		return m, m.waitReload()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up":
		if m.tracker.Scroll(engine.ScrollUp, 1) {
			m.tracker.Place(m.opts)
		}
	case "down":
		if m.tracker.Scroll(engine.ScrollDown, 1) {
			m.tracker.Place(m.opts)
		}
	case "pgup":
		if m.tracker.Scroll(engine.ScrollUp, m.tracker.PageSize()) {
			m.tracker.Place(m.opts)
		}
	case "pgdown":
		if m.tracker.Scroll(engine.ScrollDown, m.tracker.PageSize()) {
			m.tracker.Place(m.opts)
		}
	case "home":
		if m.tracker.Scroll(engine.ScrollHome, 0) {
			m.tracker.Place(m.opts)
		}
	case "end":
		if m.tracker.Scroll(engine.ScrollEnd, 0) {
			m.tracker.Place(m.opts)
		}
	case " ", "space":
		m.tracker.ToggleMark(time.Now())
	case "r":
		m.tracker.ResetMax()
	case "f1":
		m.showHelp = !m.showHelp
	case "f2":
		now := time.Now()
		path, err := saveShot(m.renderCanvas(now).Plain(), now)
		if err != nil {
			m.status = "Screenshot failed: " + err.Error()
		} else {
			m.status = "Saved " + path
		}
		return m, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
	case "f6":
		m.opts.Graphs = m.opts.Graphs.Next()
		m.tracker.Place(m.opts)
	case "f7":
		m.opts.Detail = m.opts.Detail.Next()
	case "f8":
		if m.tracker.RemoveDead() {
			m.tracker.Place(m.opts)
		}
	case "f9":
		m.opts.Title = m.opts.Title.Next()
	case "f12":
		m.opts.ScaleMax = !m.opts.ScaleMax
	}
	return m, nil
}

// applyReload folds a re-read config file into the live options, leaving
// alone everything pinned by a command-line flag. The watch target never
// comes from the file.
func (m *Model) applyReload(cfg config.Config) {
	fresh := cfg.Options()
	if !m.flagged["quality"] {
		m.opts.Detail = fresh.Detail
	}
	if !m.flagged["refresh"] {
		m.opts.RefreshMs = fresh.RefreshMs
	}
	if !m.flagged["pack"] {
		m.opts.Pack = fresh.Pack
	}
	if !m.flagged["graphs"] {
		m.opts.Graphs = fresh.Graphs
	}
	if !m.flagged["title"] {
		m.opts.Title = fresh.Title
	}
	if !m.flagged["scale-max"] {
		m.opts.ScaleMax = fresh.ScaleMax
	}
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.width < minWidth || m.height < minHeight {
		return "Terminal is too small, 30x10 is the minimum"
	}
	return m.renderCanvas(time.Now()).Styled()
}

// renderCanvas draws the whole frame: header on the top row, then every
// visible panel. The same canvas backs both the styled view and screenshots.
func (m Model) renderCanvas(now time.Time) *canvas {
	cv := newCanvas(m.width, m.height)
	drawHeader(cv, m.tracker, m.cpuPct, m.memPct, m.status, m.showHelp, now)
	for idx, p := range m.tracker.Panels {
		drawPanel(cv, p, idx, m.opts, now)
	}
	return cv
}
