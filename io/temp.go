// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

// Temporary is a fixed capacity byte FIFO. Bytes sent to it are received
// back in order, so a program can use it as scratch storage off the
// memory bus.
type Temporary struct {
	Capacity int // Capacity in bytes.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []uint8
}

var _ Device = (*Temporary)(nil)

// Rewind empties the buffer.
func (temp *Temporary) Rewind() {
	temp.ReadIndex = 0
	temp.WriteIndex = 0
	temp.Size = 0
	temp.Data = make([]uint8, temp.Capacity)
}

// Receive removes the oldest byte from the buffer.
// Returns ErrTempEmpty if nothing is buffered.
func (temp *Temporary) Receive() (value uint8, err error) {
	if temp.Size == 0 {
		err = ErrTempEmpty
		return
	}

	value = temp.Data[temp.ReadIndex]
	temp.ReadIndex++
	if temp.ReadIndex == temp.Capacity {
		temp.ReadIndex = 0
	}
	temp.Size--

	return
}

// Send appends a byte to the buffer.
// Returns ErrTempFull if the buffer has reached capacity.
func (temp *Temporary) Send(value uint8) (err error) {
	if temp.Size >= temp.Capacity || len(temp.Data) != temp.Capacity {
		err = ErrTempFull
		return
	}

	temp.Data[temp.WriteIndex] = value

	temp.WriteIndex++
	if temp.WriteIndex == temp.Capacity {
		temp.WriteIndex = 0
	}
	temp.Size++

	return
}
