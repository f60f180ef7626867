package emulator

import (
	"errors"

	"github.com/ezrec/minivm/translate"
)

var f = translate.From

var (
	ErrTickLimit = errors.New(f("tick limit reached"))
)

// ErrRuntime locates a runtime error in the program source.
type ErrRuntime struct {
	LineNo  int    // Source line, 0 if the address has no source.
	Address uint32 // Address of the instruction.
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("0x%04x: %v", err.Address, err.Err)
	}
	return f("line %d (0x%04x): %v", err.LineNo, err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
