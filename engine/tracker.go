package engine

import (
	"sort"
	"time"

	"github.com/VladimirMarkelov/pwatch/model"
)

// Scroll identifies a scroll-window operation.
type Scroll int

const (
	ScrollHome Scroll = iota
	ScrollEnd
	ScrollUp
	ScrollDown
)

// Tracker owns the panel list: it merges snapshots into panels, keeps them
// sorted, places them on screen, and maintains the scroll window. All state is
// mutated from a single goroutine (the bubbletea update loop).
type Tracker struct {
	Panels  []*Panel
	W, H    int // terminal size; the top row is reserved for the header
	TopItem int // first panel considered for visibility

	MarkSince time.Time // zero when no mark is active
}

// NewTracker creates a tracker for a terminal of the given size.
func NewTracker(w, h int) *Tracker {
	return &Tracker{W: w, H: h}
}

// SizeChanged records a new terminal size and reports whether it differed.
func (t *Tracker) SizeChanged(w, h int) bool {
	if t.W == w && t.H == h {
		return false
	}
	t.W, t.H = w, h
	return true
}

// Merge folds one snapshot into the panel list: live matches get new samples
// and I/O counters, vanished PIDs are stamped dead exactly once, unseen PIDs
// get new panels. The list is re-sorted afterwards so dead panels sink.
// Returns true when the panel count changed, which is the caller's cue to
// re-run Place.
func (t *Tracker) Merge(snap map[int32]model.ProcSample, now time.Time) bool {
	for _, p := range t.Panels {
		if p.Dead {
			continue
		}
		if _, ok := snap[p.PID]; !ok {
			p.Dead = true
			p.DeadSince = now
		}
	}

	grown := false
	for pid, s := range snap {
		p := t.alive(pid)
		if p == nil {
			p = NewPanel(pid, s.Cmdline, s.Exe, s.Name)
			t.Panels = append(t.Panels, p)
			grown = true
		}
		p.AddSample(uint64(s.CPUPercent+0.5), s.MemoryKB)
		p.RefreshIO(s)
	}

	sort.SliceStable(t.Panels, func(i, j int) bool {
		return t.Panels[i].Less(t.Panels[j])
	})
	return grown
}

func (t *Tracker) alive(pid int32) *Panel {
	for _, p := range t.Panels {
		if !p.Dead && p.PID == pid {
			return p
		}
	}
	return nil
}

// Place recomputes every panel's rectangle for the current geometry and
// options. Panels outside the scroll window get the zero rect.
func (t *Tracker) Place(opts model.Options) {
	n := len(t.Panels)
	if n == 0 {
		return
	}
	plan := PlanFor(n, t.H-1, opts.Pack, opts.Graphs)
	if plan.Visible == 0 {
		t.TopItem = 0
		for _, p := range t.Panels {
			p.Dim(0, 0, 0, 0, false, opts.Graphs)
		}
		return
	}
	if t.TopItem > n-plan.Visible {
		t.TopItem = n - plan.Visible
	}
	for idx, p := range t.Panels {
		if idx < t.TopItem || idx >= t.TopItem+plan.Visible {
			p.Dim(0, 0, 0, 0, false, opts.Graphs)
			continue
		}
		y := (idx-t.TopItem)*plan.PanelHeight + 1
		p.Dim(0, y, t.W, plan.PanelHeight, plan.Sided, opts.Graphs)
	}
}

// Totals returns the number of watched, hidden, and dead panels.
func (t *Tracker) Totals() (total, hidden, dead int) {
	total = len(t.Panels)
	for _, p := range t.Panels {
		if p.Dead {
			dead++
		}
		if p.Hidden() {
			hidden++
		}
	}
	return total, hidden, dead
}

// Scroll moves the visible window and reports whether the view changed.
// Every operation is a no-op while nothing is hidden.
func (t *Tracker) Scroll(dir Scroll, shift int) bool {
	total, hidden, _ := t.Totals()
	if hidden == 0 {
		return false
	}
	shown := total - hidden
	switch dir {
	case ScrollHome:
		changed := t.TopItem != 0
		t.TopItem = 0
		return changed
	case ScrollEnd:
		changed := t.TopItem < total-shown
		t.TopItem = total - shown
		return changed
	case ScrollUp:
		if t.TopItem == 0 {
			return false
		}
		if shift >= t.TopItem {
			t.TopItem = 0
		} else {
			t.TopItem -= shift
		}
		return true
	default: // ScrollDown
		if t.TopItem+shown >= total {
			return false
		}
		if t.TopItem+shown+shift > total {
			t.TopItem = total - shown
			return true
		}
		t.TopItem += shift
		return true
	}
}

// PageSize returns the number of currently shown panels, for PgUp/PgDn.
func (t *Tracker) PageSize() int {
	total, hidden, _ := t.Totals()
	return total - hidden
}

// ToggleMark switches every panel between absolute and delta-since-mark
// display and records when the mark was set.
func (t *Tracker) ToggleMark(now time.Time) {
	if t.MarkSince.IsZero() {
		t.MarkSince = now
	} else {
		t.MarkSince = time.Time{}
	}
	for _, p := range t.Panels {
		p.ToggleMark()
	}
}

// ResetMax resets all counters' all-time maxima to their visible windows.
func (t *Tracker) ResetMax() {
	for _, p := range t.Panels {
		p.ResetMax()
	}
}

// RemoveDead drops dead panels from the tracked set. Returns false when there
// was nothing to remove.
func (t *Tracker) RemoveDead() bool {
	kept := t.Panels[:0]
	for _, p := range t.Panels {
		if !p.Dead {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(t.Panels) {
		return false
	}
	t.Panels = kept
	if t.TopItem >= len(t.Panels) {
		t.TopItem = 0
	}
	return true
}
