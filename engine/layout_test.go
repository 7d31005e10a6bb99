package engine

import (
	"testing"

	"github.com/VladimirMarkelov/pwatch/model"
)

func TestPlanForAuto(t *testing.T) {
	cases := []struct {
		name        string
		n, rows     int
		wantSided   bool
		wantHeight  int
		wantVisible int
	}{
		{"one_panel_stacks_and_grows", 1, 20, false, 20, 1},
		{"two_panels_fall_back_to_side", 2, 20, true, 10, 2},
		{"two_panels_stack_on_tall_terminal", 2, 30, false, 15, 2},
		{"page_smaller_than_total", 5, 21, true, 7, 3},
		{"exact_fit", 3, 21, true, 7, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			plan := PlanFor(c.n, c.rows, model.PackAuto, model.GraphAll)
			if plan.Sided != c.wantSided {
				t.Errorf("sided = %v, want %v", plan.Sided, c.wantSided)
			}
			if plan.PanelHeight != c.wantHeight {
				t.Errorf("height = %d, want %d", plan.PanelHeight, c.wantHeight)
			}
			if plan.Visible != c.wantVisible {
				t.Errorf("visible = %d, want %d", plan.Visible, c.wantVisible)
			}
		})
	}
}

func TestPlanForForcedModes(t *testing.T) {
	plan := PlanFor(2, 20, model.PackLine, model.GraphAll)
	if plan.Sided {
		t.Error("PackLine must never pick side-by-side")
	}
	if plan.Visible != 1 {
		t.Errorf("visible = %d, want 1: only one stacked panel fits in 20 rows", plan.Visible)
	}

	plan = PlanFor(1, 40, model.PackSide, model.GraphAll)
	if !plan.Sided {
		t.Error("PackSide must force side-by-side")
	}
}

func TestPlanForSingleGraph(t *testing.T) {
	// A single graph always uses the short panel form, whatever the packing.
	for _, pack := range []model.Pack{model.PackAuto, model.PackLine, model.PackSide} {
		plan := PlanFor(3, 21, pack, model.GraphCPU)
		if plan.Visible != 3 {
			t.Errorf("pack %s: visible = %d, want 3", pack, plan.Visible)
		}
		if plan.PanelHeight != 7 {
			t.Errorf("pack %s: height = %d, want 7", pack, plan.PanelHeight)
		}
	}
}

func TestPlanForTooSmall(t *testing.T) {
	plan := PlanFor(4, 5, model.PackAuto, model.GraphAll)
	if plan.Visible != 0 {
		t.Errorf("visible = %d, want 0 when no panel fits", plan.Visible)
	}
	if PlanFor(0, 20, model.PackAuto, model.GraphAll).Visible != 0 {
		t.Error("no panels means nothing visible")
	}
}

// For any geometry: visible <= n, the visible panels never overflow the
// screen, and when panels are hidden one more would not have fit.
func TestPlanForFitProperties(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for rows := 1; rows <= 60; rows++ {
			plan := PlanFor(n, rows, model.PackAuto, model.GraphAll)
			if plan.Visible > n {
				t.Fatalf("n=%d rows=%d: visible %d > n", n, rows, plan.Visible)
			}
			if plan.Visible == 0 {
				continue
			}
			if plan.Visible*plan.PanelHeight > rows {
				t.Fatalf("n=%d rows=%d: %d panels of %d rows overflow", n, rows, plan.Visible, plan.PanelHeight)
			}
			if plan.Visible < n && (plan.Visible+1)*plan.PanelHeight <= rows {
				t.Fatalf("n=%d rows=%d: screen space wasted with hidden panels", n, rows)
			}
		}
	}
}
