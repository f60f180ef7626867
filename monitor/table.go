package monitor

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/minivm/cpu"
)

const (
	MEMORY_ROW = 16 // Bytes per memory table row.
)

// RegisterTable renders the cpu registers as a table.
func RegisterTable(cp *cpu.Cpu) string {
	regTable := table.NewWriter()
	regTable.SetTitle("Registers")

	header := table.Row{"PC", "SP"}
	row := table.Row{fmt.Sprintf("%04X", cp.Pc), fmt.Sprintf("%04X", cp.Stack.Pointer)}
	for n, reg := range cp.Register {
		header = append(header, fmt.Sprintf("R%d", n))
		row = append(row, fmt.Sprintf("%04X", reg))
	}
	header = append(header, "Ticks", "State")
	row = append(row, cp.Ticks, state(cp))

	regTable.AppendHeader(header)
	regTable.AppendRow(row)

	return regTable.Render()
}

// state describes the run state of the cpu.
func state(cp *cpu.Cpu) string {
	switch {
	case cp.Fault != nil:
		return "fault"
	case cp.Halted:
		return "halted"
	}
	return "ready"
}

// MemoryTable renders length bytes of memory starting at addr as a hex
// dump. The range is clipped to the end of memory.
func MemoryTable(mem []byte, addr uint32, length int) string {
	memTable := table.NewWriter()
	memTable.SetTitle("Memory")

	header := table.Row{"Address"}
	for n := range MEMORY_ROW {
		header = append(header, fmt.Sprintf("+%X", n))
	}
	header = append(header, "Text")
	memTable.AppendHeader(header)

	end := min(uint64(addr)+uint64(max(length, 0)), uint64(len(mem)))
	for base := uint64(addr); base < end; base += MEMORY_ROW {
		row := table.Row{fmt.Sprintf("%04X", base)}
		var text strings.Builder
		for n := range uint64(MEMORY_ROW) {
			if base+n >= end {
				row = append(row, "")
				continue
			}
			value := mem[base+n]
			row = append(row, fmt.Sprintf("%02X", value))
			if value >= 0x20 && value < 0x7f {
				text.WriteByte(value)
			} else {
				text.WriteByte('.')
			}
		}
		row = append(row, text.String())
		memTable.AppendRow(row)
	}

	return memTable.Render()
}
