package monitor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/minivm/cpu"
	"github.com/ezrec/minivm/emulator"
)

func newMonitor(t *testing.T, program ...string) (mon *Monitor, output *bytes.Buffer) {
	t.Helper()

	emu := emulator.NewEmulator()
	require.NoError(t, emu.Assemble(strings.NewReader(strings.Join(program, "\n"))))
	require.NoError(t, emu.Reset())

	output = &bytes.Buffer{}
	mon = NewMonitor(emu, output)

	return
}

func TestMonitorStep(t *testing.T) {
	assert := assert.New(t)

	mon, output := newMonitor(t,
		"LOAD R0, 0x1234",
		"ADD R0, 1",
		"HALT",
	)

	quit, err := mon.Exec("step")
	assert.NoError(err)
	assert.False(quit)
	assert.Equal(uint32(0x1234), mon.Cpu.Register[0])
	assert.Contains(output.String(), "0004: ADD R0, 0x0001")
	assert.Contains(output.String(), "; 2: ADD R0, 1")

	// Empty line repeats.
	output.Reset()
	_, err = mon.Exec("")
	assert.NoError(err)
	assert.Equal(uint32(0x1235), mon.Cpu.Register[0])
	assert.Contains(output.String(), "0008: HALT")

	output.Reset()
	_, err = mon.Exec("s 10")
	assert.NoError(err)
	assert.True(mon.Cpu.Halted)
	assert.Equal("halted after 3 ticks\n", output.String())
}

func TestMonitorRun(t *testing.T) {
	assert := assert.New(t)

	mon, output := newMonitor(t,
		"LOAD R1, 7",
		"RET",
	)

	_, err := mon.Exec("run")
	assert.ErrorIs(err, cpu.ErrFaultAny)
	assert.Empty(output.String())

	// Later steps describe the fault.
	_, err = mon.Exec("step")
	assert.NoError(err)
	assert.Equal(1, strings.Count(output.String(), "fault: "))

	output.Reset()
	_, err = mon.Exec("regs")
	assert.NoError(err)
	assert.Contains(output.String(), "0007")
	assert.Contains(output.String(), "fault")

	_, err = mon.Exec("reset")
	assert.NoError(err)
	assert.False(mon.Cpu.Halted)
	assert.Equal(uint32(0), mon.Cpu.Register[1])
}

func TestMonitorStepFault(t *testing.T) {
	assert := assert.New(t)

	mon, output := newMonitor(t,
		"NOP",
		"RET",
	)

	_, err := mon.Exec("s 5")
	assert.ErrorIs(err, &cpu.ErrFault{Kind: cpu.FAULT_STACK_UNDERFLOW})
	assert.True(mon.Cpu.Halted)
	assert.NotContains(output.String(), "fault")
}

func TestMonitorMemDis(t *testing.T) {
	assert := assert.New(t)

	mon, output := newMonitor(t,
		"LOAD R0, 0x4241",
		"STORE R0, 0x100",
		"HALT",
	)

	_, err := mon.Exec("r")
	assert.NoError(err)

	output.Reset()
	_, err = mon.Exec("mem 0x100 16")
	assert.NoError(err)
	assert.Contains(output.String(), "0100")
	assert.Contains(output.String(), "41")
	assert.Contains(output.String(), "AB..............")

	output.Reset()
	_, err = mon.Exec("dis 0 3")
	assert.NoError(err)
	text := output.String()
	assert.Contains(text, "0000: LOAD R0, 0x4241")
	assert.Contains(text, "0004: STORE R0, 0x0100")
	assert.Contains(text, "0008: HALT")
	assert.Equal(3, strings.Count(text, "\n"))

	_, err = mon.Exec("mem")
	assert.Error(err)
}

func TestMonitorCommands(t *testing.T) {
	assert := assert.New(t)

	mon, output := newMonitor(t, "HALT")

	_, err := mon.Exec("help")
	assert.NoError(err)
	assert.Contains(output.String(), "disassemble")

	_, err = mon.Exec("bogus")
	var ce ErrCommand
	assert.ErrorAs(err, &ce)

	_, err = mon.Exec("step many")
	var ae ErrArgument
	assert.ErrorAs(err, &ae)

	quit, err := mon.Exec("QUIT")
	assert.NoError(err)
	assert.True(quit)

	quit, err = mon.Exec("q")
	assert.NoError(err)
	assert.True(quit)
}

func TestRegisterTable(t *testing.T) {
	assert := assert.New(t)

	cp := cpu.NewCpu(0)
	cp.Register[3] = 0xBEEF

	text := RegisterTable(cp)
	assert.Contains(text, "R3")
	assert.Contains(text, "BEEF")
	assert.Contains(text, "ready")
}

func TestMemoryTable(t *testing.T) {
	assert := assert.New(t)

	mem := []byte("0123456789abcdefXYZ")

	text := MemoryTable(mem, 0, 64)
	assert.Contains(text, "0123456789abcdef")
	assert.Contains(text, "0010")
	assert.Contains(text, "XYZ")

	text = MemoryTable(mem, 32, 16)
	assert.NotContains(text, "0020")
}
