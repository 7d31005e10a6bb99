package model

// Detail is the graph quality: how many partial-fill glyph levels a cell has.
type Detail int

const (
	DetailLow Detail = iota
	DetailMedium
	DetailHigh
)

// Steps returns the number of partial-fill levels between blank and full.
func (d Detail) Steps() int {
	switch d {
	case DetailLow:
		return 1
	case DetailMedium:
		return 2
	default:
		return 8
	}
}

func (d Detail) String() string {
	switch d {
	case DetailLow:
		return "low"
	case DetailMedium:
		return "medium"
	default:
		return "high"
	}
}

// Next cycles to the following detail level (F7).
func (d Detail) Next() Detail {
	switch d {
	case DetailLow:
		return DetailMedium
	case DetailMedium:
		return DetailHigh
	default:
		return DetailLow
	}
}

// Pack selects how the CPU and MEM graphs of one panel are arranged.
type Pack int

const (
	PackAuto Pack = iota // stacked when everything fits, side-by-side otherwise
	PackLine             // always stacked: CPU on top of MEM
	PackSide             // always CPU and MEM in one line
)

func (p Pack) String() string {
	switch p {
	case PackLine:
		return "line"
	case PackSide:
		return "side"
	default:
		return "auto"
	}
}

// GraphMode selects which graphs are drawn.
type GraphMode int

const (
	GraphAll GraphMode = iota
	GraphCPU
	GraphMem
)

func (g GraphMode) String() string {
	switch g {
	case GraphCPU:
		return "cpu"
	case GraphMem:
		return "mem"
	default:
		return "all"
	}
}

// Next cycles the graph selection (F6).
func (g GraphMode) Next() GraphMode {
	switch g {
	case GraphAll:
		return GraphCPU
	case GraphCPU:
		return GraphMem
	default:
		return GraphAll
	}
}

// TitleMode selects which process text field is preferred in the panel title.
type TitleMode int

const (
	TitleCmd TitleMode = iota
	TitleExe
	TitleName
)

func (t TitleMode) String() string {
	switch t {
	case TitleExe:
		return "exe"
	case TitleName:
		return "name"
	default:
		return "cmd"
	}
}

// Next cycles the title preference (F9).
func (t TitleMode) Next() TitleMode {
	switch t {
	case TitleCmd:
		return TitleExe
	case TitleExe:
		return TitleName
	default:
		return TitleCmd
	}
}

// Options is the per-cycle runtime configuration the core treats as read-only.
type Options struct {
	Detail    Detail
	Pack      Pack
	Graphs    GraphMode
	Title     TitleMode
	ScaleMax  bool // scale auto-scaled graphs to the all-time max instead of window min/max
	RefreshMs int  // collection interval, clamped to [250, 10000] by config
	Filter    string
	PidList   []int32
}

// ProcSample is one refresh worth of data for one process.
type ProcSample struct {
	PID          int32
	CPUPercent   float64
	MemoryKB     uint64
	IOReadKB     uint64 // cumulative
	IOWriteKB    uint64 // cumulative
	IOReadDelta  uint64 // since last check
	IOWriteDelta uint64
	Cmdline      string
	Exe          string
	Name         string
}

// Rect is a panel's screen rectangle. W == 0 means "not currently visible".
type Rect struct {
	X, Y, W, H int
}
