// Package collector is the snapshot provider: it turns gopsutil process and
// system readings into per-refresh samples for the engine.
package collector

import (
	"regexp"
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/VladimirMarkelov/pwatch/model"
	"github.com/VladimirMarkelov/pwatch/util"
)

type ioTotals struct {
	readKB  uint64
	writeKB uint64
}

// Collector matches processes against the configured PID list or name filter
// and produces one ProcSample per match. Process handles are cached across
// scans so CPUPercent measures the interval since the previous scan, and I/O
// deltas come from the previous scan's totals.
type Collector struct {
	handles map[int32]*process.Process
	prevIO  map[int32]ioTotals
}

// New creates an empty collector.
func New() *Collector {
	return &Collector{
		handles: make(map[int32]*process.Process),
		prevIO:  make(map[int32]ioTotals),
	}
}

// Snapshot returns the current samples, keyed by PID. A previously seen PID
// that is absent from the result has exited. Collection is best-effort: a
// process that disappears mid-scan is simply left out.
func (c *Collector) Snapshot(opts model.Options) map[int32]model.ProcSample {
	snap := make(map[int32]model.ProcSample)
	seen := make(map[int32]bool)

	if len(opts.PidList) > 0 {
		for _, pid := range opts.PidList {
			if p := c.handle(pid); p != nil {
				if s, ok := c.sampleOf(p); ok {
					snap[pid] = s
					seen[pid] = true
				}
			}
		}
	} else {
		matcher := newMatcher(opts.Filter)
		procs, err := process.Processes()
		if err == nil {
			for _, p := range procs {
				name, _ := p.Name()
				exe, _ := p.Exe()
				if !matcher.match(exe + " " + name) {
					continue
				}
				// Reuse the cached handle so CPUPercent stays interval-based.
				cached := c.handle(p.Pid)
				if cached == nil {
					continue
				}
				if s, ok := c.sampleOf(cached); ok {
					snap[p.Pid] = s
					seen[p.Pid] = true
				}
			}
		}
	}

	// Drop state for exited processes so PIDs can be reused safely.
	for pid := range c.handles {
		if !seen[pid] {
			delete(c.handles, pid)
			delete(c.prevIO, pid)
		}
	}
	return snap
}

func (c *Collector) handle(pid int32) *process.Process {
	if p, ok := c.handles[pid]; ok {
		return p
	}
	p, err := process.NewProcess(pid)
	if err != nil {
		return nil
	}
	c.handles[pid] = p
	return p
}

func (c *Collector) sampleOf(p *process.Process) (model.ProcSample, bool) {
	cpu, err := p.CPUPercent()
	if err != nil {
		return model.ProcSample{}, false
	}
	s := model.ProcSample{PID: p.Pid, CPUPercent: cpu}

	if mi, err := p.MemoryInfo(); err == nil && mi != nil {
		s.MemoryKB = mi.RSS / 1024
	}
	if io, err := p.IOCounters(); err == nil && io != nil {
		s.IOReadKB = io.ReadBytes / 1024
		s.IOWriteKB = io.WriteBytes / 1024
		prev := c.prevIO[p.Pid]
		s.IOReadDelta = util.Delta(prev.readKB, s.IOReadKB)
		s.IOWriteDelta = util.Delta(prev.writeKB, s.IOWriteKB)
		c.prevIO[p.Pid] = ioTotals{readKB: s.IOReadKB, writeKB: s.IOWriteKB}
	}
	s.Cmdline, _ = p.Cmdline()
	s.Exe, _ = p.Exe()
	s.Name, _ = p.Name()
	return s, true
}

// matcher matches a process's "exe name" string against the user's filter:
// a case-insensitive regular expression, or a plain substring when the
// pattern does not compile.
type matcher struct {
	rx  *regexp.Regexp
	lit string
}

func newMatcher(filter string) matcher {
	rx, err := regexp.Compile("(?i)" + filter)
	if err != nil {
		return matcher{lit: strings.ToLower(filter)}
	}
	return matcher{rx: rx}
}

func (m matcher) match(s string) bool {
	if m.rx != nil {
		return m.rx.MatchString(strings.ToLower(s))
	}
	return strings.Contains(strings.ToLower(s), m.lit)
}
