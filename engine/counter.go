// Package engine implements the pure core of pwatch: rolling metric counters
// with sub-character rasterization, per-process panels, and the layout packer
// that fits panels into the terminal.
package engine

import (
	"github.com/VladimirMarkelov/pwatch/model"
	"github.com/VladimirMarkelov/pwatch/util"
)

// Partial-fill glyph tables per detail level. The last entry is always the
// full block, the first is blank.
var (
	lowGlyphs = []rune{' ', '█'}
	medGlyphs = []rune{' ', '▄', '█'}
	hghGlyphs = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
)

const defaultDisplayCnt = 40

// Counter is a bounded rolling history of unsigned samples for one metric
// plus its scaling state and a precalculated graph grid.
type Counter struct {
	values     []uint64
	displayCnt int     // capacity: number of last samples to keep
	max        uint64  // all-time max
	scaleTo    uint64  // fixed display ceiling; 0 means "not fixed"
	autoScale  bool    // derive the range from the window instead of scaleTo
	markValue  *uint64 // baseline sample captured on mark
	w, h       int
	screen     []rune // precalculated graph: w x (h+1); the extra row holds trends
	gmin, gmax uint64 // rounded display bounds when autoScale is on
}

// NewCounter returns a counter with the default window capacity.
func NewCounter() *Counter {
	return &Counter{displayCnt: defaultDisplayCnt}
}

// SetFixedScale fixes the display ceiling (e.g. 100 for a percentage).
func (c *Counter) SetFixedScale(v uint64) { c.scaleTo = v }

// SetAutoScale derives the display range from the visible window.
func (c *Counter) SetAutoScale(on bool) { c.autoScale = on }

// SetDisplayCnt sets the window capacity. Called by the layout packer when the
// panel width changes; existing samples beyond the new capacity are dropped.
func (c *Counter) SetDisplayCnt(n int) {
	if n < 1 {
		n = 1
	}
	c.displayCnt = n
	if len(c.values) > n {
		c.values = append(c.values[:0], c.values[len(c.values)-n:]...)
	}
}

// Values exposes the retained samples, oldest first.
func (c *Counter) Values() []uint64 { return c.values }

// Max returns the all-time maximum.
func (c *Counter) Max() uint64 { return c.max }

// ScaleTo returns the fixed display ceiling, 0 when not fixed.
func (c *Counter) ScaleTo() uint64 { return c.scaleTo }

// Range returns the rounded display bounds computed by CalculateRange.
func (c *Counter) Range() (gmin, gmax uint64) { return c.gmin, c.gmax }

// Marked reports whether a baseline is set.
func (c *Counter) Marked() bool { return c.markValue != nil }

// Screen returns one row of the rasterized grid. Row h is the trend row.
func (c *Counter) Screen(row int) []rune {
	if row < 0 || row > c.h || c.w == 0 {
		return nil
	}
	return c.screen[row*c.w : (row+1)*c.w]
}

// Add appends a sample, dropping the oldest once the window is full. The
// all-time max follows the sample, and a fixed scale is bumped to the next
// hundred when the sample outgrows it.
func (c *Counter) Add(val uint64) {
	if val > c.max {
		c.max = val
	}
	if c.scaleTo != 0 && c.scaleTo < val {
		c.scaleTo = util.RoundToHundred(val)
	}
	if len(c.values) < c.displayCnt {
		c.values = append(c.values, val)
		return
	}
	copy(c.values, c.values[1:])
	c.values[len(c.values)-1] = val
}

// Last returns the most recent sample, 0 when empty.
func (c *Counter) Last() uint64 {
	if len(c.values) == 0 {
		return 0
	}
	return c.values[len(c.values)-1]
}

// LastDiff returns the difference between the latest sample and the mark
// baseline if one is set, else the previous sample. 0 with fewer than two
// samples.
func (c *Counter) LastDiff() int64 {
	if len(c.values) < 2 {
		return 0
	}
	last := int64(c.values[len(c.values)-1])
	prev := int64(c.values[len(c.values)-2])
	if c.markValue != nil {
		prev = int64(*c.markValue)
	}
	return last - prev
}

// MaxLastN returns the maximum of the most recent n samples.
func (c *Counter) MaxLastN(n int) uint64 {
	vs := c.values
	if n < len(vs) {
		vs = vs[len(vs)-n:]
	}
	var max uint64
	for _, v := range vs {
		if v > max {
			max = v
		}
	}
	return max
}

// CalculateRange recomputes gmin/gmax from the retained window. The minimum
// rounds down and the maximum up to short binary magnitudes; a collapse to the
// same bucket value bumps the upper bucket so the range is never degenerate.
func (c *Counter) CalculateRange() {
	if !c.autoScale || len(c.values) == 0 {
		return
	}
	min := c.values[0]
	var max uint64
	for _, v := range c.values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	minRnd, minCoef := util.ShortRound(min, true)
	maxRnd, maxCoef := util.ShortRound(max, false)
	if minRnd == maxRnd {
		maxRnd++
	}
	c.gmin = minRnd * minCoef
	c.gmax = maxRnd * maxCoef
}

// Update rasterizes the window into a w x (h+1) grid. The last row marks, per
// column, whether the sample rose ('+'), fell ('-'), or stayed flat versus the
// previous column. Empty history or a zero range leaves the grid blank.
func (c *Counter) Update(w, h int, detail model.Detail, scaleMax bool) {
	if w < 1 || h < 1 {
		c.w, c.h, c.screen = 0, 0, nil
		return
	}
	if c.w != w || c.h != h {
		c.screen = make([]rune, w*(h+1))
		c.w, c.h = w, h
	}
	for i := range c.screen {
		c.screen[i] = ' '
	}

	if len(c.values) == 0 {
		return
	}

	var scaleTo, scaleMin uint64
	if c.autoScale {
		if scaleMax {
			scaleTo, scaleMin = c.max, 0
		} else {
			scaleTo, scaleMin = c.gmax-c.gmin, c.gmin
		}
	} else {
		scaleTo, scaleMin = c.scaleTo, 0
	}
	if scaleTo == 0 {
		return
	}

	vs := c.values
	if len(vs) > w {
		vs = vs[len(vs)-w:]
	}
	start := w - len(vs) // left-pad with blank columns

	step := float64(scaleTo) / float64(h)
	first := true
	var prev uint64
	for _, v := range vs {
		var delta uint64
		if c.autoScale {
			if v > scaleMin {
				delta = v - scaleMin
			}
		} else {
			delta = v
		}
		val := float64(delta)
		if delta > scaleTo {
			val = float64(scaleTo)
		}
		full := int(val / step)
		part := (val - float64(full)*step) / step

		for yy := 0; yy < full; yy++ {
			c.screen[start+(h-yy-1)*w] = '█'
		}
		if ch := charForValue(part, detail); ch != ' ' && full < h {
			c.screen[start+(h-full-1)*w] = ch
		}

		trend := ' '
		if !first && prev > v {
			trend = '-'
		} else if !first && prev < v {
			trend = '+'
		}
		c.screen[start+h*w] = trend
		start++
		prev = v
		first = false
	}
}

// ToggleMark captures the latest sample as the baseline, or clears it.
func (c *Counter) ToggleMark() {
	if c.markValue == nil {
		v := c.Last()
		c.markValue = &v
	} else {
		c.markValue = nil
	}
}

// ResetMax replaces the all-time max with the maximum of the visible window,
// recovering the scale after a single huge spike. A fixed target is re-derived
// from the new max, with 100 as the floor when the window max is 0.
func (c *Counter) ResetMax() {
	c.max = c.MaxLastN(c.w)
	if c.scaleTo != 0 {
		c.scaleTo = util.RoundToHundred(c.max)
		if c.scaleTo == 0 {
			c.scaleTo = 100
		}
	}
}

// charForValue selects the partial-fill glyph for a fraction of a cell.
// Values at or above 1.0 always yield the full block.
func charForValue(val float64, detail model.Detail) rune {
	if val >= 1.0 {
		return '█'
	}
	if val <= 0.0 {
		return ' '
	}
	steps := float64(detail.Steps() + 1)
	idx := int(val * steps)
	switch detail {
	case model.DetailLow:
		return lowGlyphs[idx]
	case model.DetailMedium:
		return medGlyphs[idx]
	default:
		return hghGlyphs[idx]
	}
}
