// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package io provides the devices reachable by the 8080 IN and OUT
// instructions. A Bus routes each of the 256 port numbers to a Device;
// Tape is a byte stream device backed by an io.Reader and io.Writer.
package io

// Port is the I/O space seen by the CPU.
type Port interface {
	// In reads a byte from the port.
	In(port uint8) (value uint8, err error)
	// Out writes a byte to the port.
	Out(port uint8, value uint8) (err error)
}

// Device is a single byte-wide peripheral.
type Device interface {
	// Rewind resets the device to its initial state.
	Rewind()
	// Receive reads the next byte from the device.
	Receive() (value uint8, err error)
	// Send writes a byte to the device.
	Send(value uint8) error
}

// Bus routes port numbers to devices.
type Bus struct {
	device [256]Device
}

var _ Port = (*Bus)(nil)

// Attach connects a device to a port number, or disconnects it if nil.
func (bus *Bus) Attach(port uint8, device Device) {
	bus.device[port] = device
}

// Device returns the device attached to a port, or nil.
func (bus *Bus) Device(port uint8) Device {
	return bus.device[port]
}

// Rewind rewinds every attached device.
func (bus *Bus) Rewind() {
	for _, device := range bus.device {
		if device != nil {
			device.Rewind()
		}
	}
}

// In reads from the device on a port.
func (bus *Bus) In(port uint8) (value uint8, err error) {
	device := bus.device[port]
	if device == nil {
		err = ErrPortInvalid(port)
		return
	}

	return device.Receive()
}

// Out writes to the device on a port.
func (bus *Bus) Out(port uint8, value uint8) (err error) {
	device := bus.device[port]
	if device == nil {
		err = ErrPortInvalid(port)
		return
	}

	return device.Send(value)
}
