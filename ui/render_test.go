package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/VladimirMarkelov/pwatch/engine"
	"github.com/VladimirMarkelov/pwatch/model"
)

func testPanel(t *testing.T) *engine.Panel {
	t.Helper()
	p := engine.NewPanel(42, "/bin/sleep 60", "/bin/sleep", "sleep")
	p.AddSample(99, 2048) // first CPU sample is dropped to zero
	p.AddSample(10, 2048)
	p.AddSample(30, 4096)
	p.AddSample(20, 3072)
	return p
}

func cpuOpts() model.Options {
	return model.Options{Detail: model.DetailHigh, Graphs: model.GraphCPU, Title: model.TitleCmd}
}

func TestDrawPanelCPUOnly(t *testing.T) {
	p := testPanel(t)
	p.Dim(0, 1, 80, 7, false, model.GraphCPU)

	cv := newCanvas(80, 10)
	drawPanel(cv, p, 0, cpuOpts(), time.Now())

	title := cv.Row(1)
	if !strings.Contains(title, "[1]-[42] /bin/sleep 60") {
		t.Errorf("title row = %q", title)
	}
	if !strings.HasPrefix(title, "-----") || !strings.HasSuffix(title, "-----") {
		t.Errorf("title is not centered on dashes: %q", title)
	}

	if got := cv.Row(2); !strings.HasPrefix(got, "IO: Read 0K(0K), Write 0K(0K)") {
		t.Errorf("io row = %q", got)
	}

	if got := cv.Row(3); !strings.HasPrefix(got, " 100│") {
		t.Errorf("scale row = %q", got)
	}
	if got := cv.Row(4); !strings.HasPrefix(got, "  20│") {
		t.Errorf("current row = %q", got)
	}
	if got := cv.Row(6); !strings.HasPrefix(got, "  30│") {
		t.Errorf("max row = %q", got)
	}

	// Right-aligned columns: 0, 10, 30, 20 on a 0..100 scale, 4 rows high.
	if got := cv.Row(6); !strings.HasSuffix(got, "▃█▇") {
		t.Errorf("bottom graph row = %q", got)
	}
	if got := cv.Row(7); !strings.HasSuffix(got, "+-") {
		t.Errorf("trend row = %q", got)
	}
}

func TestDrawPanelDeadLine(t *testing.T) {
	p := testPanel(t)
	p.Dead = true
	p.DeadSince = time.Now().Add(-5 * time.Second)
	p.Dim(0, 1, 80, 7, false, model.GraphCPU)

	cv := newCanvas(80, 10)
	drawPanel(cv, p, 0, cpuOpts(), time.Now())

	if got := cv.Row(7); !strings.HasPrefix(got, "Exited 5s ago") {
		t.Errorf("dead row = %q", got)
	}
}

func TestDrawPanelStackedMemHead(t *testing.T) {
	p := testPanel(t)
	p.Dim(0, 1, 80, 14, false, model.GraphAll)

	opts := cpuOpts()
	opts.Graphs = model.GraphAll
	cv := newCanvas(80, 16)
	drawPanel(cv, p, 0, opts, time.Now())

	// cpuBody = 5, so the MEM block starts at row 9.
	if got := cv.Row(9); !strings.Contains(got, "│") {
		t.Errorf("mem scale row = %q", got)
	}
	// Current sample 3072 KB renders as 3M.
	if got := cv.Row(10); !strings.HasPrefix(got, "   3M│") {
		t.Errorf("mem current row = %q", got)
	}
	// Delta against the previous sample: 3072 - 4096 = -1M.
	if got := cv.Row(11); !strings.HasPrefix(got, "  -1M│") {
		t.Errorf("mem diff row = %q", got)
	}
}

func TestDrawPanelSided(t *testing.T) {
	p := testPanel(t)
	p.Dim(0, 1, 80, 7, true, model.GraphAll)

	opts := cpuOpts()
	opts.Graphs = model.GraphAll
	cv := newCanvas(80, 9)
	drawPanel(cv, p, 0, opts, time.Now())

	// CPU head in the left column, MEM head starting at column 40.
	if got := cv.Row(3); !strings.HasPrefix(got, " 100│") {
		t.Errorf("cpu scale row = %q", got)
	}
	if got := string([]rune(cv.Row(4))[40:46]); got != "   3M│" {
		t.Errorf("mem current head = %q", got)
	}
}

func TestDrawPanelHiddenIsNoop(t *testing.T) {
	p := testPanel(t)
	p.Dim(0, 0, 0, 0, false, model.GraphAll)

	cv := newCanvas(20, 5)
	drawPanel(cv, p, 0, cpuOpts(), time.Now())
	if got := cv.Plain(); strings.TrimSpace(got) != "" {
		t.Errorf("hidden panel drew %q", got)
	}
}

func TestDrawHeaderForms(t *testing.T) {
	tr := engine.NewTracker(80, 24)
	now := time.Now()
	tr.Merge(map[int32]model.ProcSample{
		1: {PID: 1, Name: "init"},
		2: {PID: 2, Name: "kthreadd"},
	}, now)
	tr.Place(model.Options{Graphs: model.GraphAll})

	t.Run("wide totals", func(t *testing.T) {
		cv := newCanvas(80, 2)
		drawHeader(cv, tr, 17, 42, "", false, now)
		if got := cv.Row(0); !strings.HasPrefix(got, "CPU: 17%  MEM: 42% | Total: 2") {
			t.Errorf("header = %q", got)
		}
	})

	t.Run("narrow totals", func(t *testing.T) {
		cv := newCanvas(40, 2)
		drawHeader(cv, tr, 17, 42, "", false, now)
		if got := cv.Row(0); !strings.HasPrefix(got, " 17%: 42% | 2:0:0") {
			t.Errorf("header = %q", got)
		}
	})

	t.Run("mark note", func(t *testing.T) {
		tr.ToggleMark(now.Add(-30 * time.Second))
		defer tr.ToggleMark(now)
		cv := newCanvas(80, 2)
		drawHeader(cv, tr, 0, 0, "", false, now)
		if got := cv.Row(0); !strings.Contains(got, "Delta for last 30s") {
			t.Errorf("header = %q", got)
		}
	})

	t.Run("help bar wins", func(t *testing.T) {
		cv := newCanvas(80, 2)
		drawHeader(cv, tr, 17, 42, "", true, now)
		if got := cv.Row(0); !strings.Contains(got, "SPACE Mark") {
			t.Errorf("header = %q", got)
		}
	})

	t.Run("status wins over help", func(t *testing.T) {
		cv := newCanvas(80, 2)
		drawHeader(cv, tr, 17, 42, "Saved shot-1.txt", true, now)
		if got := cv.Row(0); !strings.HasPrefix(got, "Saved shot-1.txt") {
			t.Errorf("header = %q", got)
		}
	})
}
