package gpio

import (
	"sync"

	"github.com/iotzio-project/iotzio-go/ioerr"
	"github.com/iotzio-project/iotzio-go/protocol"
	"github.com/iotzio-project/iotzio-go/socket"
)

// OutputPin is a GPIO pin configured for driving a digital level. It is
// created by NewOutputPin and remains valid until Close releases it on the
// board.
type OutputPin struct {
	socket *socket.Socket
	pin    protocol.GpioPin

	mu            sync.Mutex
	level         protocol.Level
	driveStrength protocol.Drive
	slewRate      protocol.SlewRate
}

// NewOutputPin configures pin as an output with the given initial level,
// drive strength and slew rate.
func NewOutputPin(s *socket.Socket, pin protocol.GpioPin, initialLevel protocol.Level, drive protocol.Drive, slew protocol.SlewRate) (*OutputPin, error) {
	cmd := protocol.CommandOutputPinNew{Pin: pin, InitialLevel: initialLevel, DriveStrength: drive, SlewRate: slew}
	resp, modErr, fatal := s.Send(cmd)
	if err := ioerr.WrapSendError(modErr, fatal); err != nil {
		return nil, err
	}
	r, ok := resp.(protocol.ResponseOutputPinNew)
	if !ok {
		return nil, ioerr.WrongResponseError("gpio.NewOutputPin")
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return &OutputPin{socket: s, pin: pin, level: initialLevel, driveStrength: drive, slewRate: slew}, nil
}

// Pin returns the pin this OutputPin was configured on.
func (p *OutputPin) Pin() protocol.GpioPin { return p.pin }

// Level returns the level most recently set with SetLevel (or the initial
// level, if SetLevel has never been called). It does not query the board.
func (p *OutputPin) Level() protocol.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// DriveStrength returns the drive strength this OutputPin was created with.
func (p *OutputPin) DriveStrength() protocol.Drive { return p.driveStrength }

// SlewRateSetting returns the slew rate this OutputPin was created with.
func (p *OutputPin) SlewRateSetting() protocol.SlewRate { return p.slewRate }

// Close releases the pin on the board. The OutputPin must not be used again
// afterwards.
func (p *OutputPin) Close() error {
	cmd := protocol.CommandOutputPinDrop{Pin: p.pin}
	resp, modErr, fatal := p.socket.Send(cmd)
	if err := ioerr.WrapSendError(modErr, fatal); err != nil {
		return err
	}
	r, ok := resp.(protocol.ResponseOutputPinDrop)
	if !ok {
		return ioerr.WrongResponseError("gpio.OutputPin.Close")
	}
	if r.Err != nil {
		return r.Err
	}
	return nil
}

// SetLevel drives the pin to level.
func (p *OutputPin) SetLevel(level protocol.Level) error {
	cmd := protocol.CommandOutputPinSetLevel{Pin: p.pin, Level: level}
	resp, modErr, fatal := p.socket.Send(cmd)
	if err := ioerr.WrapSendError(modErr, fatal); err != nil {
		return err
	}
	r, ok := resp.(protocol.ResponseOutputPinSetLevel)
	if !ok {
		return ioerr.WrongResponseError("gpio.OutputPin.SetLevel")
	}
	if r.Err != nil {
		return r.Err
	}
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
	return nil
}
