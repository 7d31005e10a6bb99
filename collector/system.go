package collector

import (
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemTotals returns the overall CPU and memory utilization percentages
// for the header line. Best-effort: failures read as zero.
func SystemTotals() (cpuPct, memPct uint64) {
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		cpuPct = uint64(pcts[0] + 0.5)
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm.Total > 0 {
		memPct = vm.Used * 100 / vm.Total
	}
	return cpuPct, memPct
}
