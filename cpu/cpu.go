package cpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/minivm/io"
)

// Port is an I/O port interface.
type Port io.Port

const (
	MEMORY_SIZE    = 65536  // Default (and largest) memory size in bytes.
	REGISTER_COUNT = 8      // General purpose registers r0-r7.
	WORD_MASK      = 0xffff // Register arithmetic width.
	PORT_CONSOLE   = 0xff00 // The memory-mapped console port.
	IN_EOF         = 0xffff // Value stored by IN at end of input.
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":  fmt.Sprintf("%#x", MEMORY_SIZE),
	"PORT_CONSOLE": fmt.Sprintf("%#x", PORT_CONSOLE),
	"IN_EOF":       fmt.Sprintf("%#x", IN_EOF),
}

// Cpu is the machine state and execution engine.
type Cpu struct {
	Verbose bool  // Set to enable verbose logging.
	Port    Port  // Device on PORT_CONSOLE, may be nil.
	Fill    uint8 // Memory fill value written at reset.

	Pc       uint32                 // Program counter.
	Last     uint32                 // Address of the last fetched instruction.
	Register [REGISTER_COUNT]uint32 // Register bank.
	Stack    Stack                  // Call stack, a view of the top of Memory.
	Memory   []byte                 // Flat byte addressed memory.
	Halted   bool                   // No further fetches when set.
	Fault    error                  // Fault that halted the cpu, if any.

	Ticks int // Executed instruction counter.
}

// NewCpu creates a new reset CPU with size bytes of memory.
// A size of zero selects MEMORY_SIZE.
func NewCpu(size uint) (cpu *Cpu) {
	if size == 0 {
		size = MEMORY_SIZE
	}
	if size > MEMORY_SIZE {
		panic("memory larger than the 16-bit address space")
	}

	mem := make([]byte, size)
	cpu = &Cpu{
		Memory: mem,
		Stack:  Stack{Memory: mem},
	}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc", "sp",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"stack", "halted",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%04X", cpu.Pc)
		case "sp":
			strval = fmt.Sprintf("%04X", cpu.Stack.Pointer)
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7":
			strval = fmt.Sprintf("%04X", cpu.Register[reg[1]-'0'])
		case "stack":
			val, ok := cpu.Stack.Peek()
			if ok {
				strval = fmt.Sprintf("%04X", val)
			} else {
				strval = "----"
			}
		case "halted":
			strval = "false"
			if cpu.Halted {
				strval = "true"
			}
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// Reset the CPU state.
// - Fills memory with Fill.
// - Clears the registers, program counter and halt state.
// - Moves the stack pointer to the top of memory.
// - Rewinds the port.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Print(f("cpu: reset"))
	}

	for n := range cpu.Memory {
		cpu.Memory[n] = cpu.Fill
	}
	clear(cpu.Register[:])
	cpu.Pc = 0
	cpu.Last = 0
	cpu.Stack.Reset()
	cpu.Halted = false
	cpu.Fault = nil
	cpu.Ticks = 0

	if cpu.Port != nil {
		cpu.Port.Rewind()
	}
}

// Load copies image into memory at address 0.
// An image larger than memory is rejected before memory is modified.
func (cpu *Cpu) Load(image []byte) (err error) {
	if len(image) > len(cpu.Memory) {
		err = &ErrLoad{Size: len(image), Capacity: len(cpu.Memory)}
		return
	}

	copy(cpu.Memory, image)

	if cpu.Verbose {
		log.Print(f("cpu: loaded %d bytes", len(image)))
	}

	return
}

// Fetch decodes the instruction at the program counter, and advances
// the program counter past it.
func (cpu *Cpu) Fetch() (ins Instruction, err error) {
	ip := cpu.Pc
	cpu.Last = ip

	ins, err = Decode(cpu.Memory, ip)

	next := uint64(ip) + uint64(ins.Size())
	cpu.Pc = uint32(min(next, uint64(len(cpu.Memory))))

	return
}

// Tick executes a single fetch-decode-execute cycle.
// Any fault halts the cpu, and is recorded in Fault.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	defer func() {
		if err != nil {
			cpu.Halted = true
			cpu.Fault = err
			if cpu.Verbose {
				log.Print(f("cpu: fault: %v", err))
			}
		}
	}()

	ins, err := cpu.Fetch()
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Print(f("%04X: %v", cpu.Last, ins.String()))
	}

	err = cpu.Execute(ins)
	cpu.Ticks++

	return
}

// Run ticks the cpu until it halts.
// Returns the fault that halted the cpu, or nil after a HALT.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return cpu.Fault
}

// register returns the register selected by index, or nil if index is
// outside of the register bank. Out of range registers make the
// instruction a no-op for that operand.
func (cpu *Cpu) register(index uint8) *uint32 {
	if int(index) >= len(cpu.Register) {
		return nil
	}
	return &cpu.Register[index]
}

// fault builds the fault descriptor for the current instruction.
func (cpu *Cpu) fault(kind FaultKind, ins Instruction, addr uint32) *ErrFault {
	return &ErrFault{Kind: kind, Opcode: ins.Opcode, Ip: cpu.Last, Address: addr}
}

// inBounds returns true if addr indexes memory.
func (cpu *Cpu) inBounds(addr uint32) bool {
	return uint64(addr) < uint64(len(cpu.Memory))
}

// Execute executes a single decoded instruction.
// The program counter must already point past the instruction.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	var reg *uint32
	if ins.Opcode.Arg().HasRegister() {
		reg = cpu.register(ins.Register)
		if reg == nil {
			if cpu.Verbose {
				log.Print(f("cpu: %v: register %d ignored", ins.Opcode.String(), ins.Register))
			}
			if ins.Opcode != OP_JZ {
				// Nothing else to do without a register.
				return
			}
		}
	}

	addr := uint32(ins.Operand)

	switch ins.Opcode {
	case OP_NOP:
		// pass
	case OP_LOAD:
		*reg = addr
	case OP_ADD:
		*reg = (*reg + addr) & WORD_MASK
	case OP_STORE:
		if uint64(addr)+1 >= uint64(len(cpu.Memory)) {
			err = cpu.fault(FAULT_STORE, ins, addr)
			return
		}
		binary.LittleEndian.PutUint16(cpu.Memory[addr:], uint16(*reg))
	case OP_JMP:
		if !cpu.inBounds(addr) {
			err = cpu.fault(FAULT_JUMP, ins, addr)
			return
		}
		cpu.Pc = addr
	case OP_JZ:
		if reg == nil || *reg != 0 {
			return
		}
		if !cpu.inBounds(addr) {
			err = cpu.fault(FAULT_JUMP, ins, addr)
			return
		}
		cpu.Pc = addr
	case OP_AND:
		*reg &= addr
	case OP_OR:
		*reg = (*reg | addr) & WORD_MASK
	case OP_XOR:
		*reg = (*reg ^ addr) & WORD_MASK
	case OP_NOT:
		*reg = ^*reg & WORD_MASK
	case OP_CALL:
		if !cpu.inBounds(addr) {
			err = cpu.fault(FAULT_CALL, ins, addr)
			return
		}
		if cpu.Pc > WORD_MASK {
			// The return address does not fit in a stack entry.
			err = cpu.fault(FAULT_PC, ins, cpu.Pc)
			return
		}
		if !cpu.Stack.Push(uint16(cpu.Pc)) {
			err = cpu.fault(FAULT_STACK_OVERFLOW, ins, cpu.Stack.Pointer)
			return
		}
		cpu.Pc = addr
	case OP_RET:
		value, ok := cpu.Stack.Pop()
		if !ok {
			err = cpu.fault(FAULT_STACK_UNDERFLOW, ins, cpu.Stack.Pointer)
			return
		}
		cpu.Pc = uint32(value)
	case OP_IN:
		if addr != PORT_CONSOLE {
			return
		}
		value, ok := cpu.receive()
		if ok {
			*reg = uint32(value)
		} else {
			*reg = IN_EOF
		}
	case OP_OUT:
		if addr != PORT_CONSOLE || cpu.Port == nil {
			return
		}
		perr := cpu.Port.Send(uint8(*reg & 0xff))
		if perr != nil {
			err = errors.Join(cpu.fault(FAULT_PORT, ins, addr), perr)
			return
		}
	case OP_HALT:
		cpu.Halted = true
		if cpu.Verbose {
			log.Print(f("cpu: halted after %d ticks", cpu.Ticks+1))
		}
	default:
		err = cpu.fault(FAULT_OPCODE, ins, cpu.Last)
		return
	}

	return
}

// receive reads the next input byte from the port.
func (cpu *Cpu) receive() (value uint8, ok bool) {
	if cpu.Port == nil {
		return
	}
	return cpu.Port.Receive()
}
