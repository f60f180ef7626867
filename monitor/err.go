package monitor

import (
	"github.com/ezrec/minivm/translate"
)

var f = translate.From

type ErrCommand string

func (err ErrCommand) Error() string {
	return f("'%v' is not a command, try 'help'", string(err))
}

type ErrArgument string

func (err ErrArgument) Error() string {
	return f("'%v' is not a valid argument", string(err))
}
