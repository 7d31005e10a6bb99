package engine

import (
	"time"

	"github.com/VladimirMarkelov/pwatch/model"
)

// Head gutter widths: the CPU head is "9999│", the MEM head "9999K│".
const (
	cpuHeadWidth = 5
	memHeadWidth = 6
)

// Panel is the unit of display for one tracked process: its CPU and MEM
// counters plus identity, lifecycle, and screen geometry.
type Panel struct {
	CPU *Counter // fixed-scaled to 100
	Mem *Counter // auto-scaled

	PID       int32
	Dead      bool
	DeadSince time.Time // stamped exactly once, when the PID vanishes

	Cmd   string // full command line
	Exe   string // executable path
	Name  string // short title
	Rect  model.Rect
	Sided bool // CPU and MEM in one line rather than stacked

	IOReadTotal  uint64 // cumulative, KB
	IOWriteTotal uint64
	IOReadDelta  uint64 // since last check, KB
	IOWriteDelta uint64
	ioReadMark   *uint64
	ioWriteMark  *uint64
}

// NewPanel creates a panel for a newly discovered process.
func NewPanel(pid int32, cmd, exe, name string) *Panel {
	p := &Panel{
		CPU:  NewCounter(),
		Mem:  NewCounter(),
		PID:  pid,
		Cmd:  cmd,
		Exe:  exe,
		Name: name,
	}
	p.CPU.SetFixedScale(100)
	p.Mem.SetAutoScale(true)
	return p
}

// Less orders panels for display: alive before dead, more-recently-dead
// before longer-dead, larger PID first among the living.
func (p *Panel) Less(other *Panel) bool {
	if p.Dead != other.Dead {
		return !p.Dead
	}
	if p.Dead {
		return p.DeadSince.After(other.DeadSince)
	}
	return p.PID > other.PID
}

// Title returns the display text for the panel per the preferred title field,
// falling back name -> exe -> cmd when the preferred one is empty.
func (p *Panel) Title(mode model.TitleMode) string {
	var preferred string
	switch mode {
	case model.TitleExe:
		preferred = p.Exe
	case model.TitleName:
		preferred = p.Name
	default:
		preferred = p.Cmd
	}
	for _, s := range []string{preferred, p.Name, p.Exe, p.Cmd} {
		if s != "" {
			return s
		}
	}
	return ""
}

// Hidden reports whether the panel is scrolled out of view.
func (p *Panel) Hidden() bool { return p.Rect.W == 0 }

// Dim assigns the panel's rectangle. A zero width hides the panel; otherwise
// each counter's window capacity is re-derived from its graph body width.
func (p *Panel) Dim(x, y, w, h int, sided bool, graphs model.GraphMode) {
	p.Rect = model.Rect{X: x, Y: y, W: w, H: h}
	p.Sided = sided

	if w == 0 {
		return
	}

	cpuW, memW := GraphWidths(w, sided, graphs)
	if cpuW > 0 {
		p.CPU.SetDisplayCnt(cpuW)
	}
	if memW > 0 {
		p.Mem.SetDisplayCnt(memW)
	}
}

// GraphWidths returns the graph body widths (head gutters excluded) for a
// panel of total width w. A zero width means the graph is not shown.
func GraphWidths(w int, sided bool, graphs model.GraphMode) (cpuW, memW int) {
	switch graphs {
	case model.GraphCPU:
		return w - cpuHeadWidth, 0
	case model.GraphMem:
		return 0, w - memHeadWidth
	}
	if sided {
		cpuRegion := w / 2
		return cpuRegion - cpuHeadWidth, w - cpuRegion - memHeadWidth
	}
	return w - cpuHeadWidth, w - memHeadWidth
}

// AddSample appends one refresh of CPU and MEM data. The very first CPU
// sample is recorded as zero: the provider's initial per-process reading is
// an artifact of measuring since process start.
func (p *Panel) AddSample(cpu, mem uint64) {
	if len(p.CPU.Values()) == 0 {
		p.CPU.Add(0)
	} else {
		p.CPU.Add(cpu)
	}
	p.Mem.Add(mem)
}

// RefreshIO updates the cumulative and delta I/O counters from a snapshot.
func (p *Panel) RefreshIO(s model.ProcSample) {
	p.IOReadTotal = s.IOReadKB
	p.IOWriteTotal = s.IOWriteKB
	p.IOReadDelta = s.IOReadDelta
	p.IOWriteDelta = s.IOWriteDelta
}

// ToggleMark switches the MEM counter and the I/O totals between absolute and
// delta-since-mark display.
func (p *Panel) ToggleMark() {
	p.Mem.ToggleMark()
	if p.ioReadMark == nil {
		r, w := p.IOReadTotal, p.IOWriteTotal
		p.ioReadMark = &r
		p.ioWriteMark = &w
	} else {
		p.ioReadMark = nil
		p.ioWriteMark = nil
	}
}

// IOReadShown returns the read total to display: since the mark when one is
// set, since process start otherwise.
func (p *Panel) IOReadShown() uint64 {
	if p.ioReadMark != nil && p.IOReadTotal >= *p.ioReadMark {
		return p.IOReadTotal - *p.ioReadMark
	}
	return p.IOReadTotal
}

// IOWriteShown returns the write total to display, honoring the mark.
func (p *Panel) IOWriteShown() uint64 {
	if p.ioWriteMark != nil && p.IOWriteTotal >= *p.ioWriteMark {
		return p.IOWriteTotal - *p.ioWriteMark
	}
	return p.IOWriteTotal
}

// ResetMax resets both counters' all-time maxima to their visible windows.
func (p *Panel) ResetMax() {
	p.CPU.ResetMax()
	p.Mem.ResetMax()
}
