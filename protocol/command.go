package protocol

// CommandID is the stable numeric tag identifying a Command/Response
// variant pair. The mapping between a Go type and its CommandID is part of
// the wire contract and must not change without bumping ProtocolVersion.
type CommandID uint16

const (
	CmdInitialize CommandID = iota
	CmdInputPinNew
	CmdInputPinDrop
	CmdInputPinGetLevel
	CmdInputPinWaitForSignal
	CmdOutputPinNew
	CmdOutputPinDrop
	CmdOutputPinSetLevel
	CmdI2cNew
	CmdI2cDrop
	CmdI2cReadSingle
	CmdI2cStartReadChunked
	CmdI2cReadChunk
	CmdI2cStopReadChunked
	CmdI2cWriteSingle
	CmdI2cStartWriteChunked
	CmdI2cWriteChunk
	CmdI2cStopWriteChunked
	CmdI2cWriteReadSingle

	commandIDCount
)

// Command is the tagged union of every request variant the socket can send.
// Each variant's CommandID is stable and in [0, CommandCount).
type Command interface {
	CommandID() CommandID
}

type CommandInitialize struct{}

func (CommandInitialize) CommandID() CommandID { return CmdInitialize }

type CommandInputPinNew struct {
	Pin        GpioPin
	Pull       Pull
	Hysteresis bool
}

func (CommandInputPinNew) CommandID() CommandID { return CmdInputPinNew }

type CommandInputPinDrop struct {
	Pin GpioPin
}

func (CommandInputPinDrop) CommandID() CommandID { return CmdInputPinDrop }

type CommandInputPinGetLevel struct {
	Pin GpioPin
}

func (CommandInputPinGetLevel) CommandID() CommandID { return CmdInputPinGetLevel }

type CommandInputPinWaitForSignal struct {
	Pin    GpioPin
	Signal SignalTypeRequest
}

func (CommandInputPinWaitForSignal) CommandID() CommandID { return CmdInputPinWaitForSignal }

type CommandOutputPinNew struct {
	Pin           GpioPin
	InitialLevel  Level
	DriveStrength Drive
	SlewRate      SlewRate
}

func (CommandOutputPinNew) CommandID() CommandID { return CmdOutputPinNew }

type CommandOutputPinDrop struct {
	Pin GpioPin
}

func (CommandOutputPinDrop) CommandID() CommandID { return CmdOutputPinDrop }

type CommandOutputPinSetLevel struct {
	Pin   GpioPin
	Level Level
}

func (CommandOutputPinSetLevel) CommandID() CommandID { return CmdOutputPinSetLevel }

type CommandI2cNew struct {
	Config I2cConfig
}

func (CommandI2cNew) CommandID() CommandID { return CmdI2cNew }

type CommandI2cDrop struct {
	Identifier I2cIdentifier
}

func (CommandI2cDrop) CommandID() CommandID { return CmdI2cDrop }

type CommandI2cReadSingle struct {
	Identifier I2cIdentifier
	Address    uint8
	BufferSize uint32
}

func (CommandI2cReadSingle) CommandID() CommandID { return CmdI2cReadSingle }

type CommandI2cStartReadChunked struct {
	Identifier  I2cIdentifier
	Address     uint8
	ChunksCount uint32
}

func (CommandI2cStartReadChunked) CommandID() CommandID { return CmdI2cStartReadChunked }

type CommandI2cReadChunk struct {
	Identifier I2cIdentifier
	BufferSize uint32
	ChunkIndex uint32
}

func (CommandI2cReadChunk) CommandID() CommandID { return CmdI2cReadChunk }

type CommandI2cStopReadChunked struct {
	Identifier I2cIdentifier
}

func (CommandI2cStopReadChunked) CommandID() CommandID { return CmdI2cStopReadChunked }

type CommandI2cWriteSingle struct {
	Identifier I2cIdentifier
	Address    uint8
	Bytes      []byte
}

func (CommandI2cWriteSingle) CommandID() CommandID { return CmdI2cWriteSingle }

type CommandI2cStartWriteChunked struct {
	Identifier  I2cIdentifier
	Address     uint8
	ChunksCount uint32
}

func (CommandI2cStartWriteChunked) CommandID() CommandID { return CmdI2cStartWriteChunked }

type CommandI2cWriteChunk struct {
	Identifier I2cIdentifier
	Bytes      []byte
	ChunkIndex uint32
}

func (CommandI2cWriteChunk) CommandID() CommandID { return CmdI2cWriteChunk }

type CommandI2cStopWriteChunked struct {
	Identifier I2cIdentifier
}

func (CommandI2cStopWriteChunked) CommandID() CommandID { return CmdI2cStopWriteChunked }

type CommandI2cWriteReadSingle struct {
	Identifier I2cIdentifier
	Address    uint8
	Bytes      []byte
	BufferSize uint32
}

func (CommandI2cWriteReadSingle) CommandID() CommandID { return CmdI2cWriteReadSingle }
