// Package diag holds the domain-stack diagnostics collaborators (spec
// §B.3): host resource snapshots, HSP execution profiling export, a
// sqlite replay audit trail, and ASCII trace/dump tables. None of these
// read back state into a later run - see DESIGN.md for why this does not
// reopen the "no context-state persistence across runs" non-goal.
package diag

import (
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// Stats is a point-in-time host resource snapshot.
type Stats struct {
	MemUsedPercent float64
	MemAvailable   uint64
	CPUPercent     float64
}

// Snapshot reports current host memory/CPU pressure (spec §B.3): logged
// at notice level when --stats is passed, and attached by cmd/archi to the
// error line whenever a blob's replay returns a non-OK status.
func Snapshot() (Stats, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Stats{}, err
	}
	cpuPercents, err := cpu.Percent(0, false)
	if err != nil {
		return Stats{}, err
	}
	var cpuPct float64
	if len(cpuPercents) > 0 {
		cpuPct = cpuPercents[0]
	}
	return Stats{
		MemUsedPercent: vm.UsedPercent,
		MemAvailable:   vm.Available,
		CPUPercent:     cpuPct,
	}, nil
}
