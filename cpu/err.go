package cpu

import (
	"errors"

	"github.com/ezrec/minivm/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted        = errors.New(f("cpu halted"))
	ErrImageTooLarge = errors.New(f("image too large"))
	ErrFaultAny      = errors.New(f("execution fault"))

	// Assembler errors
	ErrEquateSyntax     = errors.New(f(".equ syntax"))
	ErrEquateDuplicate  = errors.New(f(".equ duplicated"))
	ErrOpcodeInvalid    = errors.New(f("opcode invalid"))
	ErrOperandCount     = errors.New(f("wrong operand count"))
	ErrRegisterInvalid  = errors.New(f("register invalid"))
	ErrImmediateInvalid = errors.New(f("immediate invalid"))
	ErrImageFull        = errors.New(f("image full"))
)

// FaultKind is the cause of an execution fault.
type FaultKind int

//go:generate go tool stringer -linecomment -type=FaultKind
const (
	FAULT_PC              = FaultKind(0) // pc out of bounds
	FAULT_OPCODE          = FaultKind(1) // unknown opcode
	FAULT_STORE           = FaultKind(2) // store out of bounds
	FAULT_JUMP            = FaultKind(3) // jump out of bounds
	FAULT_CALL            = FaultKind(4) // call out of bounds
	FAULT_STACK_OVERFLOW  = FaultKind(5) // stack overflow
	FAULT_STACK_UNDERFLOW = FaultKind(6) // stack underflow
	FAULT_PORT            = FaultKind(7) // port error
)

// ErrFault is a terminal execution fault. The cpu is halted when one is
// reported.
type ErrFault struct {
	Kind    FaultKind
	Opcode  Opcode // Opcode of the faulting instruction, if one was fetched.
	Ip      uint32 // Address of the faulting instruction.
	Address uint32 // Offending address: target, stack pointer, or pc.
}

func (err *ErrFault) Error() string {
	switch err.Kind {
	case FAULT_PC:
		return f("%v at 0x%04x", err.Kind.String(), err.Address)
	case FAULT_OPCODE:
		return f("unknown opcode 0x%02X at 0x%04x", uint8(err.Opcode), err.Ip)
	}
	return f("%v: %v at 0x%04x, address 0x%04x", err.Kind.String(), err.Opcode.String(), err.Ip, err.Address)
}

// Is matches ErrFaultAny, or any *ErrFault of the same Kind.
func (err *ErrFault) Is(target error) bool {
	if target == ErrFaultAny {
		return true
	}
	other, ok := target.(*ErrFault)
	return ok && other.Kind == err.Kind
}

// ErrLoad is returned when an image does not fit in memory.
type ErrLoad struct {
	Size     int
	Capacity int
}

func (err *ErrLoad) Error() string {
	return f("image of %d bytes exceeds memory of %d bytes", err.Size, err.Capacity)
}

func (err *ErrLoad) Unwrap() error {
	return ErrImageTooLarge
}

// ErrSyntax locates an assembler error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a 16-bit number", string(err))
}

func (err ErrParseNumber) Unwrap() error {
	return ErrImmediateInvalid
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

func (err ErrParseRegister) Unwrap() error {
	return ErrRegisterInvalid
}

type ErrMnemonic string

func (err ErrMnemonic) Error() string {
	return f("'%v' is not an opcode", string(err))
}

func (err ErrMnemonic) Unwrap() error {
	return ErrOpcodeInvalid
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
