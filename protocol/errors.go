package protocol

import "fmt"

// ModuleError is a recoverable, per-command refusal reported by the device
// inside an otherwise well-formed response. It is never fatal to the socket.
type ModuleError struct {
	Code ModuleErrorCode
	Msg  string
}

func (e *ModuleError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("iotzio: %s: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("iotzio: %s", e.Code)
}

// ModuleErrorCode enumerates the recoverable module-level refusals a device
// may report for any command.
type ModuleErrorCode string

const (
	ErrCodeUnknownCommand                   ModuleErrorCode = "unknown_command"
	ErrCodeUnlicensedModule                 ModuleErrorCode = "unlicensed_module"
	ErrCodePeripheralBlockedByAnotherModule ModuleErrorCode = "peripheral_blocked_by_another_module"
	ErrCodeModuleCommandInterrupted         ModuleErrorCode = "module_command_interrupted"
	ErrCodeModuleStorageExhausted           ModuleErrorCode = "module_storage_exhausted"
	ErrCodeModuleInstanceNotFound           ModuleErrorCode = "module_instance_not_found"
)

func NewModuleError(code ModuleErrorCode, msg string) *ModuleError {
	return &ModuleError{Code: code, Msg: msg}
}

// DomainError is a recoverable, per-module refusal nested inside a specific
// Response variant (e.g. an I2C bus abort reason). Unlike ModuleError, its
// code set is specific to the module that raised it.
type DomainError struct {
	Module string
	Code   string
	Msg    string
}

func (e *DomainError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("iotzio: %s: %s: %s", e.Module, e.Code, e.Msg)
	}
	return fmt.Sprintf("iotzio: %s: %s", e.Module, e.Code)
}

func NewDomainError(module, code, msg string) *DomainError {
	return &DomainError{Module: module, Code: code, Msg: msg}
}

// FatalError is terminal: once observed, the socket that produced it is no
// longer usable and every other pending caller observes it too.
type FatalError struct {
	Code  FatalErrorCode
	Msg   string
	Inner error
}

func (e *FatalError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("iotzio: fatal: %s: %s: %v", e.Code, e.Msg, e.Inner)
	}
	if e.Msg != "" {
		return fmt.Sprintf("iotzio: fatal: %s: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("iotzio: fatal: %s", e.Code)
}

func (e *FatalError) Unwrap() error { return e.Inner }

func (e *FatalError) Is(target error) bool {
	te, ok := target.(*FatalError)
	if !ok {
		return false
	}
	return e.Code == te.Code
}

// FatalErrorCode enumerates every terminal failure the socket can produce.
type FatalErrorCode string

const (
	FatalCodeHostWriteError      FatalErrorCode = "host_write_error"
	FatalCodeHostReadError       FatalErrorCode = "host_read_error"
	FatalCodeHostProtocolError   FatalErrorCode = "host_protocol_error"
	FatalCodeDeviceWriteError    FatalErrorCode = "device_write_error"
	FatalCodeDeviceReadError     FatalErrorCode = "device_read_error"
	FatalCodeDeviceProtocolError FatalErrorCode = "device_protocol_error"
	FatalCodeDeviceClosed        FatalErrorCode = "device_closed"
)

func NewFatalError(code FatalErrorCode, msg string, inner error) *FatalError {
	return &FatalError{Code: code, Msg: msg, Inner: inner}
}

// ProtocolErrorCode enumerates the framing/shape violations that decoding
// and report-ID selection can raise. Socket.Send wraps them into a
// FatalError of kind HostProtocolError; socket.Open returns a handshake or
// bootstrap ProtocolError unwrapped.
type ProtocolErrorCode string

const (
	ErrPacketTooSmall                 ProtocolErrorCode = "packet_too_small"
	ErrSelectingReportID              ProtocolErrorCode = "error_selecting_report_id"
	ErrReceivedWrongResponse          ProtocolErrorCode = "received_wrong_response"
	ErrReceivedImpossibleCommandError ProtocolErrorCode = "received_impossible_command_error"
	ErrReceivedImpossibleCommand      ProtocolErrorCode = "received_impossible_command"
	ErrDeserializeUnexpectedEnd       ProtocolErrorCode = "deserialize_unexpected_end"
	ErrDeserializeBadVarint           ProtocolErrorCode = "deserialize_bad_varint"
	ErrDeserializeBadBool             ProtocolErrorCode = "deserialize_bad_bool"
	ErrDeserializeBadOption           ProtocolErrorCode = "deserialize_bad_option"
	ErrDeserializeBadEnum             ProtocolErrorCode = "deserialize_bad_enum"
	ErrDeserializeBadEncoding         ProtocolErrorCode = "deserialize_bad_encoding"
	ErrSerializeBufferFull            ProtocolErrorCode = "serialize_buffer_full"
)

// ProtocolError is raised by the wire codec and report-ID selector. Send
// converts it into a FatalError before returning it to a caller, while Open
// returns it as is; it is exported so tests can assert on the precise
// framing failure.
type ProtocolError struct {
	Code ProtocolErrorCode
	Msg  string
}

func (e *ProtocolError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("iotzio: protocol: %s: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("iotzio: protocol: %s", e.Code)
}

func NewProtocolError(code ProtocolErrorCode, msg string) *ProtocolError {
	return &ProtocolError{Code: code, Msg: msg}
}
