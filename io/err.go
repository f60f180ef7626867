package io

import (
	"errors"

	"github.com/ezrec/minivm/translate"
)

var f = translate.From

var (
	// Port errors
	ErrPortFull = errors.New(f("port full"))
)
