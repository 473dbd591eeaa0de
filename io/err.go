// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"errors"

	"github.com/ezrec/sim8080/translate"
)

var f = translate.From

var (
	// Device errors
	ErrTapeMissing = errors.New(f("tape output not attached"))
	ErrTempEmpty   = errors.New(f("temporary buffer empty"))
	ErrTempFull    = errors.New(f("temporary buffer full"))
)

// ErrPortInvalid is returned for a port with no device attached.
type ErrPortInvalid uint8

func (err ErrPortInvalid) Error() string {
	return f("port 0x%02x has no device", uint8(err))
}
