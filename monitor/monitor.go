// Package monitor is an interactive, line oriented debugger for the
// emulator.
package monitor

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"

	"github.com/ezrec/minivm/cpu"
	"github.com/ezrec/minivm/emulator"
)

const (
	DIS_COUNT  = 8  // Default disassembly length.
	MEM_LENGTH = 64 // Default memory dump length.
)

const help = `step [n]          execute n instructions (default 1), alias 's'
run               run until halted, alias 'r'
regs              show the registers
mem ADDR [LEN]    dump memory
dis [ADDR] [N]    disassemble N instructions at ADDR (default pc)
reset             reset and reload the program
quit              leave the monitor, alias 'q'
An empty line repeats the last command.
`

// Monitor state.
type Monitor struct {
	*emulator.Emulator
	Output      io.Writer // Command output.
	Prompt      string    // Readline prompt.
	HistoryFile string    // Readline history file, none if empty.

	last string // Last non-empty command.
}

// NewMonitor creates a monitor for emu, writing to output.
func NewMonitor(emu *emulator.Emulator, output io.Writer) (mon *Monitor) {
	mon = &Monitor{
		Emulator: emu,
		Output:   output,
		Prompt:   "minivm> ",
	}

	return
}

// HistoryPath returns the per-user history file path, or an empty string if
// the cache folder cannot be created.
func HistoryPath() (path string) {
	dirs := configdir.New("minivm", "monitor")
	cache := dirs.QueryCacheFolder()
	if err := cache.MkdirAll(); err == nil {
		path = filepath.Join(cache.Path, "history")
	}

	return
}

// Run reads and executes commands until quit or end of input.
func (mon *Monitor) Run() (err error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          mon.Prompt,
		HistoryFile:     mon.HistoryFile,
		InterruptPrompt: "^C",
		Stdout:          mon.Output,
	})
	if err != nil {
		err = errors.Wrap(err, "monitor readline")
		return
	}
	defer rl.Close()

	mon.where()

	for {
		line, rerr := rl.Readline()
		if rerr == readline.ErrInterrupt {
			continue
		}
		if rerr != nil {
			break
		}

		quit, xerr := mon.Exec(line)
		if xerr != nil {
			fmt.Fprintln(mon.Output, xerr)
		}
		if quit {
			break
		}
	}

	return
}

// parseNumber parses a decimal or 0x prefixed address or count.
func parseNumber(word string) (value uint32, err error) {
	v64, perr := strconv.ParseUint(word, 0, 32)
	if perr != nil {
		err = ErrArgument(word)
		return
	}

	value = uint32(v64)
	return
}

// Exec executes a single monitor command.
func (mon *Monitor) Exec(line string) (quit bool, err error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		if len(mon.last) == 0 {
			return
		}
		words = strings.Fields(mon.last)
	} else {
		mon.last = line
	}

	args := make([]uint32, 0, len(words)-1)
	for _, word := range words[1:] {
		var value uint32
		value, err = parseNumber(word)
		if err != nil {
			return
		}
		args = append(args, value)
	}

	arg := func(n int, def uint32) uint32 {
		if n < len(args) {
			return args[n]
		}
		return def
	}

	cmd := strings.ToLower(words[0])
	switch cmd {
	case "help", "h", "?":
		fmt.Fprint(mon.Output, help)
	case "quit", "q":
		quit = true
	case "step", "s":
		for range arg(0, 1) {
			var done bool
			done, err = mon.Emulator.Tick()
			if done || err != nil {
				break
			}
		}
		if err == nil {
			mon.where()
		}
	case "run", "r":
		err = mon.Emulator.Run()
		if err == nil {
			mon.where()
		}
	case "regs":
		fmt.Fprintln(mon.Output, RegisterTable(mon.Cpu))
	case "mem":
		if len(args) == 0 {
			err = ErrArgument(line)
			return
		}
		fmt.Fprintln(mon.Output, MemoryTable(mon.Cpu.Memory, args[0], int(arg(1, MEM_LENGTH))))
	case "dis":
		var lines []cpu.Disassembly
		lines, err = cpu.Disassemble(mon.Cpu.Memory, arg(0, mon.Cpu.Pc), int(arg(1, DIS_COUNT)))
		for _, dis := range lines {
			fmt.Fprintln(mon.Output, mon.annotate(dis))
		}
	case "reset":
		err = mon.Emulator.Reset()
		mon.where()
	default:
		err = ErrCommand(words[0])
		mon.last = ""
	}

	return
}

// annotate appends the source line to a disassembled instruction.
func (mon *Monitor) annotate(dis cpu.Disassembly) string {
	text := dis.String()
	if mon.Program == nil {
		return text
	}

	dbg := mon.Program.Debug(dis.Address)
	if dbg.Line != nil && dbg.Index == 0 {
		text = fmt.Sprintf("%-24v ; %d: %v", text, dbg.LineNo, dbg.Text)
	}

	return text
}

// where prints the instruction at the program counter, or why there is none.
// A fault returned by the command itself is reported by the caller instead.
func (mon *Monitor) where() {
	switch {
	case mon.Cpu.Fault != nil:
		fmt.Fprintf(mon.Output, "fault: %v\n", mon.Cpu.Fault)
	case mon.Cpu.Halted:
		fmt.Fprintf(mon.Output, "halted after %v ticks\n", mon.Cpu.Ticks)
	default:
		code, err := mon.Emulator.Code()
		if err != nil {
			fmt.Fprintf(mon.Output, "%04X: %v\n", mon.Cpu.Pc, err)
			return
		}
		fmt.Fprintln(mon.Output, mon.annotate(cpu.Disassembly{Address: mon.Cpu.Pc, Instruction: code}))
	}
}
