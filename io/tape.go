// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"errors"
	"io"
)

const (
	TAPE_EOF = uint8(0x1a) // Read once the input is exhausted (CP/M ^Z).
)

// Tape provides sequential byte I/O. It wraps an io.Reader for input and
// an io.Writer for output.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	Received int // Bytes read from Input.
	Sent     int // Bytes written to Output.
	ended    bool
}

var _ Device = (*Tape)(nil)

// Rewind clears the counters. The streams themselves cannot be rewound.
func (tc *Tape) Rewind() {
	tc.Received = 0
	tc.Sent = 0
	tc.ended = false
}

// Ended returns true once a read has hit the end of the input.
func (tc *Tape) Ended() bool {
	return tc.ended
}

// Receive reads the next input byte. At the end of the input, or with
// no input attached, TAPE_EOF is returned.
func (tc *Tape) Receive() (value uint8, err error) {
	if tc.Input == nil || tc.ended {
		value = TAPE_EOF
		return
	}

	var one [1]byte
	_, err = io.ReadFull(tc.Input, one[:])
	if errors.Is(err, io.EOF) {
		tc.ended = true
		value = TAPE_EOF
		err = nil
		return
	}
	if err != nil {
		return
	}

	tc.Received++
	value = one[0]
	return
}

// Send writes a byte to the output.
func (tc *Tape) Send(value uint8) (err error) {
	if tc.Output == nil {
		err = ErrTapeMissing
		return
	}

	_, err = tc.Output.Write([]byte{value})
	if err != nil {
		return
	}

	tc.Sent++
	return
}
