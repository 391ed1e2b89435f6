// Package ioerr collapses socket.Socket.Send's three-way return into the
// single idiomatic error the gpio and i2c client packages hand back to
// callers.
package ioerr

import (
	"github.com/iotzio-project/iotzio-go/protocol"
)

// OperationError is what gpio/i2c client operations return when Send
// reports a ModuleError or FatalError, or when the reply has the wrong
// variant. It collapses Socket.Send's three-way (Response, ModuleError,
// FatalError) result into a single Go error. Exactly one of Module or Fatal
// is set. A per-module refusal nested in a reply is returned as the
// *protocol.DomainError itself, not wrapped in an OperationError.
type OperationError struct {
	Module *protocol.ModuleError
	Fatal  *protocol.FatalError
}

func (e *OperationError) Error() string {
	if e.Fatal != nil {
		return e.Fatal.Error()
	}
	return e.Module.Error()
}

func (e *OperationError) Unwrap() error {
	if e.Fatal != nil {
		return e.Fatal
	}
	return e.Module
}

// WrapSendError turns the (ModuleError, FatalError) pair Socket.Send hands
// back into a single error, or nil if the send succeeded.
func WrapSendError(modErr *protocol.ModuleError, fatal *protocol.FatalError) error {
	if fatal != nil {
		return &OperationError{Fatal: fatal}
	}
	if modErr != nil {
		return &OperationError{Module: modErr}
	}
	return nil
}

// WrongResponseError reports that the device answered op with a Response
// variant that doesn't match the Command it was sent for. This can only
// happen if the device and driver disagree about the wire contract, so it
// is fatal.
func WrongResponseError(op string) error {
	return &OperationError{Fatal: protocol.NewFatalError(
		protocol.FatalCodeHostProtocolError,
		op+": received a response variant that does not match the sent command",
		protocol.NewProtocolError(protocol.ErrReceivedWrongResponse, ""),
	)}
}
