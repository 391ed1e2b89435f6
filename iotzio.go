// Package iotzio is the host-side driver for the Iotzio board: a USB
// HID-class microcontroller peripheral exposing GPIO and I2C modules over a
// request-multiplexing socket. See socket.Open for the bootstrap sequence
// and the gpio/i2c packages for the module client layers built on top of it.
package iotzio

import (
	"github.com/iotzio-project/iotzio-go/gpio"
	"github.com/iotzio-project/iotzio-go/i2c"
	"github.com/iotzio-project/iotzio-go/protocol"
	"github.com/iotzio-project/iotzio-go/socket"
	"github.com/iotzio-project/iotzio-go/transport"
)

// Board is an opened Iotzio device. It owns the underlying socket.Socket and
// is the entry point for setting up pin and bus modules; each Setup* call
// builds the corresponding module on top of the same socket, so modules
// created from the same Board share one physical HID link.
type Board struct {
	socket *socket.Socket
}

// Open runs the bootstrap sequence over t (the protocol handshake followed
// by the mandatory Initialize command) and returns a Board ready for module
// setup. runtimeIdentifier must be stable for as long as the underlying USB
// connection persists; discovering it is outside this package's scope (see
// socket.Open).
func Open(t transport.Transport, runtimeIdentifier uint64) (*Board, error) {
	s, err := socket.Open(t, runtimeIdentifier)
	if err != nil {
		return nil, err
	}
	return &Board{socket: s}, nil
}

// Close releases the board's runtime identifier and stops its background
// reader. The Board and every module set up from it must not be used
// afterwards.
func (b *Board) Close() error {
	return b.socket.Close()
}

// SerialNumber is the board's persistent, unique serial number.
func (b *Board) SerialNumber() string {
	return b.socket.BoardInfo().SerialNumber
}

// Version is the board's semantic firmware version.
func (b *Board) Version() protocol.Version {
	return b.socket.BoardInfo().Version
}

// ProtocolVersion is the wire protocol version the board negotiated during
// the handshake. It is always equal to this driver's supported version;
// Open would have failed with a MismatchingProtocolVersion error otherwise.
func (b *Board) ProtocolVersion() uint16 {
	return b.socket.BoardInfo().ProtocolVersion
}

// RuntimeIdentifier is the identifier this Board was opened with. It stays
// consistent for as long as the physical USB connection is not reestablished.
func (b *Board) RuntimeIdentifier() uint64 {
	return b.socket.RuntimeIdentifier()
}

// SetupInputPin configures pin as an input. During the lifetime of the
// returned InputPin the pin cannot be used by any other module.
func (b *Board) SetupInputPin(pin protocol.GpioPin, pull protocol.Pull, hysteresis bool) (*gpio.InputPin, error) {
	return gpio.NewInputPin(b.socket, pin, pull, hysteresis)
}

// SetupOutputPin configures pin as an output with the given initial level,
// drive strength and slew rate. During the lifetime of the returned
// OutputPin the pin cannot be used by any other module.
func (b *Board) SetupOutputPin(pin protocol.GpioPin, initialLevel protocol.Level, drive protocol.Drive, slew protocol.SlewRate) (*gpio.OutputPin, error) {
	return gpio.NewOutputPin(b.socket, pin, initialLevel, drive, slew)
}

// SetupI2cBus brings up an I2C bus using cfg. Use the returned Bus directly
// or as the transport for a higher-level peripheral driver.
func (b *Board) SetupI2cBus(cfg protocol.I2cConfig) (*i2c.Bus, error) {
	return i2c.New(b.socket, cfg)
}
