package engine

import (
	"github.com/VladimirMarkelov/pwatch/model"
)

// GraphHeight is the minimum usable graph body, in rows.
const GraphHeight = 5

// Minimum panel heights. A stacked panel showing both graphs needs two graph
// bodies plus two header/trend rows each; side-by-side panels and panels
// showing a single graph need one.
const (
	minHeightStacked = 2*GraphHeight + 4
	minHeightSide    = GraphHeight + 2
)

// Plan is the layout decision for one terminal geometry: how panels are
// packed, how tall each one is, and how many fit at once.
type Plan struct {
	Sided       bool
	PanelHeight int
	Visible     int
}

// PlanFor computes the layout plan for n panels in rows drawable lines. It is
// a pure function of its inputs; callers re-invoke it on resize and on panel
// count changes. When even one panel cannot fit, Visible is 0.
func PlanFor(n, rows int, pack model.Pack, graphs model.GraphMode) Plan {
	if n < 1 || rows < 1 {
		return Plan{}
	}

	sided := false
	base := minHeightSide
	if graphs == model.GraphAll {
		switch pack {
		case model.PackLine:
			base = minHeightStacked
		case model.PackSide:
			sided = true
		default:
			// Auto: stacked when every panel still fits in its taller form.
			if minHeightStacked*n <= rows {
				base = minHeightStacked
			} else {
				sided = true
			}
		}
	}

	if base > rows {
		return Plan{Sided: sided}
	}

	visible := rows / base
	if visible > n {
		visible = n
	}
	// Spread the leftover rows evenly so panels grow to fill the screen.
	height := base + (rows-base*visible)/visible

	return Plan{Sided: sided, PanelHeight: height, Visible: visible}
}
