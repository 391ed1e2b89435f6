package protocol

// Response is the tagged union parallel to Command: exactly one Response
// variant exists per Command variant, and a well-formed DeviceReport pairs
// the two by CommandID. A response's Err field, when non-nil, carries a
// per-module recoverable refusal nested inside this otherwise well-formed
// reply (e.g. an I2C bus abort reason); it is distinct from the top-level
// ModuleError a DeviceReport can carry instead of any Response at all.
type Response interface {
	CommandID() CommandID
}

type ResponseInitialize struct {
	BoardInfo BoardInfo
}

func (ResponseInitialize) CommandID() CommandID { return CmdInitialize }

type ResponseInputPinNew struct {
	Err *DomainError
}

func (ResponseInputPinNew) CommandID() CommandID { return CmdInputPinNew }

type ResponseInputPinDrop struct {
	Err *DomainError
}

func (ResponseInputPinDrop) CommandID() CommandID { return CmdInputPinDrop }

type ResponseInputPinGetLevel struct {
	Level Level
	Err   *DomainError
}

func (ResponseInputPinGetLevel) CommandID() CommandID { return CmdInputPinGetLevel }

type ResponseInputPinWaitForSignal struct {
	Signal SignalTypeResponse
	Err    *DomainError
}

func (ResponseInputPinWaitForSignal) CommandID() CommandID { return CmdInputPinWaitForSignal }

type ResponseOutputPinNew struct {
	Err *DomainError
}

func (ResponseOutputPinNew) CommandID() CommandID { return CmdOutputPinNew }

type ResponseOutputPinDrop struct {
	Err *DomainError
}

func (ResponseOutputPinDrop) CommandID() CommandID { return CmdOutputPinDrop }

type ResponseOutputPinSetLevel struct {
	Err *DomainError
}

func (ResponseOutputPinSetLevel) CommandID() CommandID { return CmdOutputPinSetLevel }

type ResponseI2cNew struct {
	Err *DomainError
}

func (ResponseI2cNew) CommandID() CommandID { return CmdI2cNew }

type ResponseI2cDrop struct {
	Err *DomainError
}

func (ResponseI2cDrop) CommandID() CommandID { return CmdI2cDrop }

type ResponseI2cReadSingle struct {
	Data []byte
	Err  *DomainError
}

func (ResponseI2cReadSingle) CommandID() CommandID { return CmdI2cReadSingle }

type ResponseI2cStartReadChunked struct {
	Err *DomainError
}

func (ResponseI2cStartReadChunked) CommandID() CommandID { return CmdI2cStartReadChunked }

type ResponseI2cReadChunk struct {
	Data []byte
	Err  *DomainError
}

func (ResponseI2cReadChunk) CommandID() CommandID { return CmdI2cReadChunk }

type ResponseI2cStopReadChunked struct {
	Err *DomainError
}

func (ResponseI2cStopReadChunked) CommandID() CommandID { return CmdI2cStopReadChunked }

type ResponseI2cWriteSingle struct {
	Err *DomainError
}

func (ResponseI2cWriteSingle) CommandID() CommandID { return CmdI2cWriteSingle }

type ResponseI2cStartWriteChunked struct {
	Err *DomainError
}

func (ResponseI2cStartWriteChunked) CommandID() CommandID { return CmdI2cStartWriteChunked }

type ResponseI2cWriteChunk struct {
	Err *DomainError
}

func (ResponseI2cWriteChunk) CommandID() CommandID { return CmdI2cWriteChunk }

type ResponseI2cStopWriteChunked struct {
	Err *DomainError
}

func (ResponseI2cStopWriteChunked) CommandID() CommandID { return CmdI2cStopWriteChunked }

type ResponseI2cWriteReadSingle struct {
	Data []byte
	Err  *DomainError
}

func (ResponseI2cWriteReadSingle) CommandID() CommandID { return CmdI2cWriteReadSingle }
