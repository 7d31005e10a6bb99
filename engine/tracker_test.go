package engine

import (
	"testing"
	"time"

	"github.com/VladimirMarkelov/pwatch/model"
)

func sample(pid int32, cpu float64, mem uint64) model.ProcSample {
	return model.ProcSample{PID: pid, CPUPercent: cpu, MemoryKB: mem, Name: "p"}
}

func snapOf(pids ...int32) map[int32]model.ProcSample {
	m := make(map[int32]model.ProcSample, len(pids))
	for _, pid := range pids {
		m[pid] = sample(pid, 10, 100)
	}
	return m
}

var testOpts = model.Options{Detail: model.DetailHigh, Pack: model.PackAuto, Graphs: model.GraphAll}

func TestMergeLifecycle(t *testing.T) {
	tr := NewTracker(80, 22)
	now := time.Now()

	if !tr.Merge(snapOf(1, 2, 3), now) {
		t.Fatal("first merge must report a grown panel list")
	}
	if len(tr.Panels) != 3 {
		t.Fatalf("panels = %d, want 3", len(tr.Panels))
	}

	// PID 2 vanishes: marked dead, stamped once.
	died := now.Add(time.Second)
	if tr.Merge(snapOf(1, 3), died) {
		t.Error("merge without new PIDs must not report growth")
	}
	var dead *Panel
	for _, p := range tr.Panels {
		if p.PID == 2 {
			dead = p
		}
	}
	if dead == nil || !dead.Dead {
		t.Fatal("vanished PID must be marked dead")
	}
	if !dead.DeadSince.Equal(died) {
		t.Error("death timestamp not stamped")
	}

	tr.Merge(snapOf(1, 3), died.Add(time.Minute))
	if !dead.DeadSince.Equal(died) {
		t.Error("death timestamp must be stamped exactly once")
	}

	// Dead panels sink to the bottom.
	if tr.Panels[len(tr.Panels)-1].PID != 2 {
		t.Error("dead panel must sort last")
	}
}

func TestMergeOrdering(t *testing.T) {
	tr := NewTracker(80, 22)
	now := time.Now()
	tr.Merge(snapOf(5, 9, 1), now)
	// Alive: descending PID.
	want := []int32{9, 5, 1}
	for i, p := range tr.Panels {
		if p.PID != want[i] {
			t.Errorf("panel[%d].PID = %d, want %d", i, p.PID, want[i])
		}
	}

	// 9 dies first, then 5: the fresher corpse sorts above the older one.
	tr.Merge(snapOf(5, 1), now.Add(time.Second))
	tr.Merge(snapOf(1), now.Add(2*time.Second))
	want = []int32{1, 5, 9}
	for i, p := range tr.Panels {
		if p.PID != want[i] {
			t.Errorf("after deaths: panel[%d].PID = %d, want %d", i, p.PID, want[i])
		}
	}
}

func TestPlaceRects(t *testing.T) {
	tr := NewTracker(80, 22)
	tr.Merge(snapOf(1, 2, 3, 4, 5), time.Now())
	tr.Place(testOpts)

	// 21 drawable rows, side mode: 3 visible panels of height 7.
	total, hidden, _ := tr.Totals()
	if total != 5 || hidden != 2 {
		t.Fatalf("totals = (%d, %d), want (5, 2)", total, hidden)
	}
	for i, p := range tr.Panels {
		if i < 3 {
			wantY := i*7 + 1
			if p.Rect.W != 80 || p.Rect.H != 7 || p.Rect.Y != wantY {
				t.Errorf("panel %d rect = %+v, want 80x7 at y=%d", i, p.Rect, wantY)
			}
		} else if !p.Hidden() {
			t.Errorf("panel %d must be hidden", i)
		}
	}
}

func TestScrollWindow(t *testing.T) {
	tr := NewTracker(80, 22)
	tr.Merge(snapOf(1, 2, 3, 4, 5), time.Now())
	tr.Place(testOpts)
	// 3 of 5 visible: TopItem range is [0, 2].

	if tr.Scroll(ScrollHome, 0) {
		t.Error("Home at the top must report no change")
	}
	if !tr.Scroll(ScrollEnd, 0) || tr.TopItem != 2 {
		t.Errorf("End: TopItem = %d, want 2", tr.TopItem)
	}
	if tr.Scroll(ScrollDown, 1) {
		t.Error("Down past the end must report no change")
	}
	if !tr.Scroll(ScrollUp, 100) || tr.TopItem != 0 {
		t.Errorf("Up saturates at 0, got %d", tr.TopItem)
	}

	steps := 0
	for tr.Scroll(ScrollDown, 1) {
		steps++
		if steps > 10 {
			t.Fatal("Down(1) must stop reporting changes at the end")
		}
	}
	if tr.TopItem != 2 {
		t.Errorf("repeated Down(1) ends at %d, want 2", tr.TopItem)
	}
	if !tr.Scroll(ScrollHome, 0) || tr.TopItem != 0 {
		t.Error("Home must jump back to 0")
	}

	// Oversized Down clamps to the last page.
	if !tr.Scroll(ScrollDown, 100) || tr.TopItem != 2 {
		t.Errorf("clamped Down: TopItem = %d, want 2", tr.TopItem)
	}
}

func TestScrollNoHidden(t *testing.T) {
	tr := NewTracker(80, 22)
	tr.Merge(snapOf(1, 2), time.Now())
	tr.Place(testOpts)
	for _, dir := range []Scroll{ScrollHome, ScrollEnd, ScrollUp, ScrollDown} {
		if tr.Scroll(dir, 1) {
			t.Errorf("scroll %d with everything visible must be a no-op", dir)
		}
	}
}

func TestRemoveDead(t *testing.T) {
	tr := NewTracker(80, 22)
	now := time.Now()
	tr.Merge(snapOf(1, 2, 3), now)
	if tr.RemoveDead() {
		t.Error("nothing to remove yet")
	}
	tr.Merge(snapOf(1), now.Add(time.Second))
	if !tr.RemoveDead() {
		t.Fatal("dead panels must be removed")
	}
	if len(tr.Panels) != 1 || tr.Panels[0].PID != 1 {
		t.Errorf("left with %d panels", len(tr.Panels))
	}
}

func TestToggleMark(t *testing.T) {
	tr := NewTracker(80, 22)
	now := time.Now()
	tr.Merge(snapOf(1), now)
	tr.ToggleMark(now)
	if tr.MarkSince.IsZero() {
		t.Fatal("mark timestamp must be set")
	}
	if !tr.Panels[0].Mem.Marked() {
		t.Error("panel counters must follow the global mark")
	}
	tr.ToggleMark(now.Add(time.Second))
	if !tr.MarkSince.IsZero() {
		t.Error("second toggle must clear the mark")
	}
	if tr.Panels[0].Mem.Marked() {
		t.Error("panel counters must clear with the global mark")
	}
}

// Shrinking the window (panel removal) keeps TopItem valid after Place.
func TestPlaceClampsTopItem(t *testing.T) {
	tr := NewTracker(80, 22)
	now := time.Now()
	tr.Merge(snapOf(1, 2, 3, 4, 5, 6, 7), now)
	tr.Place(testOpts)
	tr.Scroll(ScrollEnd, 0)
	if tr.TopItem != 4 {
		t.Fatalf("TopItem = %d, want 4", tr.TopItem)
	}

	tr.Merge(snapOf(1, 2, 3), now.Add(time.Second))
	tr.RemoveDead()
	tr.Place(testOpts)
	total, hidden, _ := tr.Totals()
	if tr.TopItem > total-(total-hidden) {
		t.Errorf("TopItem = %d out of range after shrink", tr.TopItem)
	}
	if tr.TopItem != 0 {
		t.Errorf("TopItem = %d, want 0", tr.TopItem)
	}
}
