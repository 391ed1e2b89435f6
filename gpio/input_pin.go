// Package gpio implements the board's digital GPIO modules (InputPin,
// OutputPin) as thin client layers over socket.Socket: each operation here
// builds a protocol.Command, sends it, and shape-matches the returned
// protocol.Response.
package gpio

import (
	"github.com/iotzio-project/iotzio-go/ioerr"
	"github.com/iotzio-project/iotzio-go/protocol"
	"github.com/iotzio-project/iotzio-go/socket"
)

// InputPin is a GPIO pin configured for reading. It is created by NewInputPin and
// remains valid until Close releases it on the board.
type InputPin struct {
	socket     *socket.Socket
	pin        protocol.GpioPin
	pull       protocol.Pull
	hysteresis bool
}

// NewInputPin configures pin as an input with the given pull setting and
// hysteresis (Schmitt trigger) behavior.
func NewInputPin(s *socket.Socket, pin protocol.GpioPin, pull protocol.Pull, hysteresis bool) (*InputPin, error) {
	cmd := protocol.CommandInputPinNew{Pin: pin, Pull: pull, Hysteresis: hysteresis}
	resp, modErr, fatal := s.Send(cmd)
	if err := ioerr.WrapSendError(modErr, fatal); err != nil {
		return nil, err
	}
	r, ok := resp.(protocol.ResponseInputPinNew)
	if !ok {
		return nil, ioerr.WrongResponseError("gpio.NewInputPin")
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return &InputPin{socket: s, pin: pin, pull: pull, hysteresis: hysteresis}, nil
}

// Pin returns the pin this InputPin was configured on.
func (p *InputPin) Pin() protocol.GpioPin { return p.pin }

// PullSetting returns the pull-resistor configuration this InputPin was
// created with.
func (p *InputPin) PullSetting() protocol.Pull { return p.pull }

// HysteresisEnabled reports whether Schmitt-trigger hysteresis is enabled.
func (p *InputPin) HysteresisEnabled() bool { return p.hysteresis }

// Close releases the pin on the board. The InputPin must not be used again
// afterwards.
func (p *InputPin) Close() error {
	cmd := protocol.CommandInputPinDrop{Pin: p.pin}
	resp, modErr, fatal := p.socket.Send(cmd)
	if err := ioerr.WrapSendError(modErr, fatal); err != nil {
		return err
	}
	r, ok := resp.(protocol.ResponseInputPinDrop)
	if !ok {
		return ioerr.WrongResponseError("gpio.InputPin.Close")
	}
	if r.Err != nil {
		return r.Err
	}
	return nil
}

// GetLevel returns the pin's current digital level.
func (p *InputPin) GetLevel() (protocol.Level, error) {
	cmd := protocol.CommandInputPinGetLevel{Pin: p.pin}
	resp, modErr, fatal := p.socket.Send(cmd)
	if err := ioerr.WrapSendError(modErr, fatal); err != nil {
		return 0, err
	}
	r, ok := resp.(protocol.ResponseInputPinGetLevel)
	if !ok {
		return 0, ioerr.WrongResponseError("gpio.InputPin.GetLevel")
	}
	if r.Err != nil {
		return 0, r.Err
	}
	return r.Level, nil
}

// IsHigh reports whether the pin currently reads high.
func (p *InputPin) IsHigh() (bool, error) {
	level, err := p.GetLevel()
	return level == protocol.LevelHigh, err
}

// IsLow reports whether the pin currently reads low.
func (p *InputPin) IsLow() (bool, error) {
	level, err := p.GetLevel()
	return level == protocol.LevelLow, err
}

// WaitForSignal blocks until the board reports the requested signal
// condition on this pin, returning the matching response including any
// measured pulse width.
func (p *InputPin) WaitForSignal(req protocol.SignalTypeRequest) (protocol.SignalTypeResponse, error) {
	cmd := protocol.CommandInputPinWaitForSignal{Pin: p.pin, Signal: req}
	resp, modErr, fatal := p.socket.Send(cmd)
	if err := ioerr.WrapSendError(modErr, fatal); err != nil {
		return protocol.SignalTypeResponse{}, err
	}
	r, ok := resp.(protocol.ResponseInputPinWaitForSignal)
	if !ok {
		return protocol.SignalTypeResponse{}, ioerr.WrongResponseError("gpio.InputPin.WaitForSignal")
	}
	if r.Err != nil {
		return protocol.SignalTypeResponse{}, r.Err
	}
	return r.Signal, nil
}

// WaitForHigh blocks until the pin is high, returning immediately if it
// already is.
func (p *InputPin) WaitForHigh() error {
	_, err := p.WaitForSignal(protocol.SignalTypeRequest{Kind: protocol.SignalHigh})
	return err
}

// WaitForLow blocks until the pin is low, returning immediately if it
// already is.
func (p *InputPin) WaitForLow() error {
	_, err := p.WaitForSignal(protocol.SignalTypeRequest{Kind: protocol.SignalLow})
	return err
}

// WaitForRisingEdge blocks for a low-to-high transition.
func (p *InputPin) WaitForRisingEdge() error {
	_, err := p.WaitForSignal(protocol.SignalTypeRequest{Kind: protocol.SignalRisingEdge})
	return err
}

// WaitForFallingEdge blocks for a high-to-low transition.
func (p *InputPin) WaitForFallingEdge() error {
	_, err := p.WaitForSignal(protocol.SignalTypeRequest{Kind: protocol.SignalFallingEdge})
	return err
}

// WaitForAnyEdge blocks for either transition direction.
func (p *InputPin) WaitForAnyEdge() error {
	_, err := p.WaitForSignal(protocol.SignalTypeRequest{Kind: protocol.SignalAnyEdge})
	return err
}

// WaitForHighPulse blocks for a low-high-low pulse, bounded by timeoutMs (0
// for no timeout), and returns the measured pulse width in microseconds.
func (p *InputPin) WaitForHighPulse(timeoutMs uint32) (uint32, error) {
	r, err := p.WaitForSignal(protocol.SignalTypeRequest{Kind: protocol.SignalHighPulse, PulseTimeout: timeoutMs})
	return r.PulseDurationUs, err
}

// WaitForLowPulse blocks for a high-low-high pulse, bounded by timeoutMs (0
// for no timeout), and returns the measured pulse width in microseconds.
func (p *InputPin) WaitForLowPulse(timeoutMs uint32) (uint32, error) {
	r, err := p.WaitForSignal(protocol.SignalTypeRequest{Kind: protocol.SignalLowPulse, PulseTimeout: timeoutMs})
	return r.PulseDurationUs, err
}

// WaitForAnyPulse blocks for a pulse in either direction, bounded by
// timeoutMs (0 for no timeout), and returns the measured pulse width in
// microseconds.
func (p *InputPin) WaitForAnyPulse(timeoutMs uint32) (uint32, error) {
	r, err := p.WaitForSignal(protocol.SignalTypeRequest{Kind: protocol.SignalAnyPulse, PulseTimeout: timeoutMs})
	return r.PulseDurationUs, err
}
