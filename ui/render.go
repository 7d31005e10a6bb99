package ui

import (
	"fmt"
	"time"

	"github.com/VladimirMarkelov/pwatch/engine"
	"github.com/VladimirMarkelov/pwatch/model"
	"github.com/VladimirMarkelov/pwatch/util"
)

const (
	cpuHeadWidth = 5 // "9999│"
	memHeadWidth = 6 // "9999K│"
)

const helpLine = "SPACE Mark | F2 Shot | F6 Graph | F7 Quality | F8 Clean | F9 Title | F12 Scale | r Reset max | q Quit"

// drawHeader fills the top row: a transient status message wins over the help
// bar, which wins over the usage totals.
func drawHeader(cv *canvas, t *engine.Tracker, cpuPct, memPct uint64, status string, showHelp bool, now time.Time) {
	switch {
	case status != "":
		cv.setString(0, 0, util.CutString(status, cv.w), classInfo)
	case showHelp:
		line := util.CutString(helpLine, cv.w)
		for len([]rune(line)) < cv.w {
			line += " "
		}
		cv.setString(0, 0, line, classHelp)
	default:
		total, hidden, dead := t.Totals()
		mark := ""
		if !t.MarkSince.IsZero() {
			mark = "  Delta for last " + util.FormatDuration(now.Sub(t.MarkSince))
		}
		var line string
		if cv.w < 60 {
			line = fmt.Sprintf("%3d%%:%3d%% | %d:%d:%d%s", cpuPct, memPct, total, hidden, dead, mark)
		} else {
			line = fmt.Sprintf("CPU: %d%%  MEM: %d%% | Total: %d  Hidden: %d  Dead: %d%s",
				cpuPct, memPct, total, hidden, dead, mark)
		}
		cv.setString(0, 0, util.CutString(line, cv.w), classAccent)
	}
}

// drawPanel draws one visible panel into its rect: title row, I/O row, then
// the graph blocks laid out per the current graph mode.
func drawPanel(cv *canvas, p *engine.Panel, idx int, opts model.Options, now time.Time) {
	if p.Hidden() {
		return
	}
	r := p.Rect
	drawTitle(cv, p, idx, opts.Title)
	drawIOLine(cv, p)

	deadLine := ""
	if p.Dead {
		deadLine = "Exited " + util.FormatDuration(now.Sub(p.DeadSince)) + " ago"
	}

	cpuW, memW := engine.GraphWidths(r.W, p.Sided, opts.Graphs)
	switch {
	case opts.Graphs == model.GraphCPU:
		body := r.H - 3
		p.CPU.Update(cpuW, body, opts.Detail, opts.ScaleMax)
		drawCPUBlock(cv, p, r.X, r.Y+2, cpuW, body, deadLine)
	case opts.Graphs == model.GraphMem:
		body := r.H - 3
		p.Mem.CalculateRange()
		p.Mem.Update(memW, body, opts.Detail, opts.ScaleMax)
		drawMemBlock(cv, p, r.X, r.Y+2, memW, body, opts.ScaleMax, deadLine)
	case p.Sided:
		body := r.H - 3
		p.CPU.Update(cpuW, body, opts.Detail, opts.ScaleMax)
		p.Mem.CalculateRange()
		p.Mem.Update(memW, body, opts.Detail, opts.ScaleMax)
		drawCPUBlock(cv, p, r.X, r.Y+2, cpuW, body, deadLine)
		drawMemBlock(cv, p, r.X+r.W/2, r.Y+2, memW, body, opts.ScaleMax, "")
	default:
		cpuBody := (r.H - 4) / 2
		memBody := r.H - 4 - cpuBody
		p.CPU.Update(cpuW, cpuBody, opts.Detail, opts.ScaleMax)
		p.Mem.CalculateRange()
		p.Mem.Update(memW, memBody, opts.Detail, opts.ScaleMax)
		drawCPUBlock(cv, p, r.X, r.Y+2, cpuW, cpuBody, deadLine)
		drawMemBlock(cv, p, r.X, r.Y+2+cpuBody+1, memW, memBody, opts.ScaleMax, "")
	}
}

// drawTitle centers "[n]-[pid] title" on a line of dashes, fading the title
// from the left so the tail of a long command stays readable.
func drawTitle(cv *canvas, p *engine.Panel, idx int, mode model.TitleMode) {
	r := p.Rect
	id := fmt.Sprintf("[%d]-[%d] ", idx+1, p.PID)
	maxw := r.W - len(id)
	if maxw < 0 {
		maxw = 0
	}
	title := util.FadeStrLeft(p.Title(mode), maxw)
	line := id + title
	spare := r.W - len([]rune(line))
	left := spare / 2
	for x := 0; x < r.W; x++ {
		cv.set(r.X+x, r.Y, '-', classText)
	}
	cv.setString(r.X+left, r.Y, line, classAccent)
}

// drawIOLine shows cumulative read/write totals with their last deltas,
// switching to a compact form on narrow panels.
func drawIOLine(cv *canvas, p *engine.Panel) {
	r := p.Rect
	var line string
	if r.W < 40 {
		line = fmt.Sprintf("R: %s(%s) W: %s(%s)",
			util.FormatBytes(p.IOReadShown()), util.FormatBytes(p.IOReadDelta),
			util.FormatBytes(p.IOWriteShown()), util.FormatBytes(p.IOWriteDelta))
	} else {
		line = fmt.Sprintf("IO: Read %s(%s), Write %s(%s)",
			util.FormatBytes(p.IOReadShown()), util.FormatBytes(p.IOReadDelta),
			util.FormatBytes(p.IOWriteShown()), util.FormatBytes(p.IOWriteDelta))
	}
	cv.setString(r.X, r.Y+1, util.CutString(line, r.W), classText)
}

// head4 formats a CPU gutter value in 4 columns.
func head4(v uint64) string {
	if v > 9999 {
		return ">10K"
	}
	return fmt.Sprintf("%4d", v)
}

// drawCPUBlock draws the CPU head gutter, the graph body, and the trend row.
// A non-empty deadLine replaces the trend row.
func drawCPUBlock(cv *canvas, p *engine.Panel, x, y, graphW, body int, deadLine string) {
	c := p.CPU
	for row := 0; row < body; row++ {
		head := "    "
		cl := classText
		switch row {
		case 0:
			if c.ScaleTo() > 9999 {
				head = "!!!!"
			} else {
				head = fmt.Sprintf("%4d", c.ScaleTo())
			}
		case 1:
			head = head4(c.Last())
			cl = classAccent
		case 3:
			if m := c.Max(); m != 0 {
				head = head4(m)
			}
		}
		cv.setString(x, y+row, head, cl)
		cv.set(x+cpuHeadWidth-1, y+row, '│', classText)
		drawGraphRow(cv, c.Screen(row), x+cpuHeadWidth, y+row)
	}
	if deadLine != "" {
		cv.setString(x, y+body, util.CutString(deadLine, cpuHeadWidth+graphW), classDead)
		return
	}
	drawTrendRow(cv, c.Screen(body), x+cpuHeadWidth, y+body)
}

// drawMemBlock draws the MEM head gutter (scale bounds, current value, delta,
// maximum), the graph body, and the trend row.
func drawMemBlock(cv *canvas, p *engine.Panel, x, y, graphW, body int, scaleMax bool, deadLine string) {
	c := p.Mem
	top, bottom := c.Range()
	if scaleMax {
		top, bottom = c.Max(), 0
	}
	for row := 0; row < body; row++ {
		head := "     "
		cl := classText
		switch {
		case row == 0:
			head = fmt.Sprintf("%5s", util.FormatMem(top))
		case row == body-1:
			head = fmt.Sprintf("%5s", util.FormatMem(bottom))
		case row == 1:
			head = fmt.Sprintf("%5s", util.FormatMem(c.Last()))
			cl = classAccent
		case row == 2:
			head = fmt.Sprintf("%5s", util.FormatDiff(c.LastDiff()))
		case row == 3:
			if m := c.Max(); m != 0 {
				head = fmt.Sprintf("%5s", util.FormatMem(m))
			}
		}
		cv.setString(x, y+row, head, cl)
		cv.set(x+memHeadWidth-1, y+row, '│', classText)
		drawGraphRow(cv, c.Screen(row), x+memHeadWidth, y+row)
	}
	if deadLine != "" {
		cv.setString(x, y+body, util.CutString(deadLine, memHeadWidth+graphW), classDead)
		return
	}
	drawTrendRow(cv, c.Screen(body), x+memHeadWidth, y+body)
}

func drawGraphRow(cv *canvas, runes []rune, x, y int) {
	for i, r := range runes {
		cv.set(x+i, y, r, classText)
	}
}

func drawTrendRow(cv *canvas, runes []rune, x, y int) {
	for i, r := range runes {
		cl := classText
		switch r {
		case '+':
			cl = classUp
		case '-':
			cl = classDown
		}
		cv.set(x+i, y, r, cl)
	}
}
