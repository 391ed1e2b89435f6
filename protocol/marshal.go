package protocol

// MarshalCommand encodes a Command's payload (everything after the
// HostReport header) using the compact binary format: a tag byte(s) for any
// nested enum, followed by fields in declaration order.
func MarshalCommand(cmd Command) []byte {
	w := newWriter()
	switch c := cmd.(type) {
	case CommandInitialize:
		// no fields
	case CommandInputPinNew:
		w.putU8(uint8(c.Pin))
		w.putU8(uint8(c.Pull))
		w.putBool(c.Hysteresis)
	case CommandInputPinDrop:
		w.putU8(uint8(c.Pin))
	case CommandInputPinGetLevel:
		w.putU8(uint8(c.Pin))
	case CommandInputPinWaitForSignal:
		w.putU8(uint8(c.Pin))
		putSignalTypeRequest(w, c.Signal)
	case CommandOutputPinNew:
		w.putU8(uint8(c.Pin))
		w.putU8(uint8(c.InitialLevel))
		w.putU8(uint8(c.DriveStrength))
		w.putU8(uint8(c.SlewRate))
	case CommandOutputPinDrop:
		w.putU8(uint8(c.Pin))
	case CommandOutputPinSetLevel:
		w.putU8(uint8(c.Pin))
		w.putU8(uint8(c.Level))
	case CommandI2cNew:
		putI2cConfig(w, c.Config)
	case CommandI2cDrop:
		w.putU8(uint8(c.Identifier))
	case CommandI2cReadSingle:
		w.putU8(uint8(c.Identifier))
		w.putU8(c.Address)
		w.putVarUint(uint64(c.BufferSize))
	case CommandI2cStartReadChunked:
		w.putU8(uint8(c.Identifier))
		w.putU8(c.Address)
		w.putVarUint(uint64(c.ChunksCount))
	case CommandI2cReadChunk:
		w.putU8(uint8(c.Identifier))
		w.putVarUint(uint64(c.BufferSize))
		w.putVarUint(uint64(c.ChunkIndex))
	case CommandI2cStopReadChunked:
		w.putU8(uint8(c.Identifier))
	case CommandI2cWriteSingle:
		w.putU8(uint8(c.Identifier))
		w.putU8(c.Address)
		w.putBytes(c.Bytes)
	case CommandI2cStartWriteChunked:
		w.putU8(uint8(c.Identifier))
		w.putU8(c.Address)
		w.putVarUint(uint64(c.ChunksCount))
	case CommandI2cWriteChunk:
		w.putU8(uint8(c.Identifier))
		w.putBytes(c.Bytes)
		w.putVarUint(uint64(c.ChunkIndex))
	case CommandI2cStopWriteChunked:
		w.putU8(uint8(c.Identifier))
	case CommandI2cWriteReadSingle:
		w.putU8(uint8(c.Identifier))
		w.putU8(c.Address)
		w.putBytes(c.Bytes)
		w.putVarUint(uint64(c.BufferSize))
	}
	return w.Bytes()
}

// UnmarshalCommand decodes a Command payload given the CommandID carried in
// the HostReport header.
func UnmarshalCommand(id CommandID, data []byte) (Command, error) {
	r := newReader(data)
	var cmd Command
	var err error
	switch id {
	case CmdInitialize:
		cmd = CommandInitialize{}
	case CmdInputPinNew:
		var c CommandInputPinNew
		if err = readU8(r, (*uint8)(&c.Pin)); err == nil {
			err = readU8(r, (*uint8)(&c.Pull))
		}
		if err == nil {
			c.Hysteresis, err = r.getBool()
		}
		cmd = c
	case CmdInputPinDrop:
		var c CommandInputPinDrop
		err = readU8(r, (*uint8)(&c.Pin))
		cmd = c
	case CmdInputPinGetLevel:
		var c CommandInputPinGetLevel
		err = readU8(r, (*uint8)(&c.Pin))
		cmd = c
	case CmdInputPinWaitForSignal:
		var c CommandInputPinWaitForSignal
		if err = readU8(r, (*uint8)(&c.Pin)); err == nil {
			c.Signal, err = getSignalTypeRequest(r)
		}
		cmd = c
	case CmdOutputPinNew:
		var c CommandOutputPinNew
		if err = readU8(r, (*uint8)(&c.Pin)); err == nil {
			err = readU8(r, (*uint8)(&c.InitialLevel))
		}
		if err == nil {
			err = readU8(r, (*uint8)(&c.DriveStrength))
		}
		if err == nil {
			err = readU8(r, (*uint8)(&c.SlewRate))
		}
		cmd = c
	case CmdOutputPinDrop:
		var c CommandOutputPinDrop
		err = readU8(r, (*uint8)(&c.Pin))
		cmd = c
	case CmdOutputPinSetLevel:
		var c CommandOutputPinSetLevel
		if err = readU8(r, (*uint8)(&c.Pin)); err == nil {
			err = readU8(r, (*uint8)(&c.Level))
		}
		cmd = c
	case CmdI2cNew:
		var c CommandI2cNew
		c.Config, err = getI2cConfig(r)
		cmd = c
	case CmdI2cDrop:
		var c CommandI2cDrop
		err = readU8(r, (*uint8)(&c.Identifier))
		cmd = c
	case CmdI2cReadSingle:
		var c CommandI2cReadSingle
		if err = readU8(r, (*uint8)(&c.Identifier)); err == nil {
			c.Address, err = r.getU8()
		}
		if err == nil {
			var v uint64
			v, err = r.getVarUint()
			c.BufferSize = uint32(v)
		}
		cmd = c
	case CmdI2cStartReadChunked:
		var c CommandI2cStartReadChunked
		if err = readU8(r, (*uint8)(&c.Identifier)); err == nil {
			c.Address, err = r.getU8()
		}
		if err == nil {
			var v uint64
			v, err = r.getVarUint()
			c.ChunksCount = uint32(v)
		}
		cmd = c
	case CmdI2cReadChunk:
		var c CommandI2cReadChunk
		if err = readU8(r, (*uint8)(&c.Identifier)); err == nil {
			var v uint64
			v, err = r.getVarUint()
			c.BufferSize = uint32(v)
		}
		if err == nil {
			var v uint64
			v, err = r.getVarUint()
			c.ChunkIndex = uint32(v)
		}
		cmd = c
	case CmdI2cStopReadChunked:
		var c CommandI2cStopReadChunked
		err = readU8(r, (*uint8)(&c.Identifier))
		cmd = c
	case CmdI2cWriteSingle:
		var c CommandI2cWriteSingle
		if err = readU8(r, (*uint8)(&c.Identifier)); err == nil {
			c.Address, err = r.getU8()
		}
		if err == nil {
			c.Bytes, err = r.getBytes()
		}
		cmd = c
	case CmdI2cStartWriteChunked:
		var c CommandI2cStartWriteChunked
		if err = readU8(r, (*uint8)(&c.Identifier)); err == nil {
			c.Address, err = r.getU8()
		}
		if err == nil {
			var v uint64
			v, err = r.getVarUint()
			c.ChunksCount = uint32(v)
		}
		cmd = c
	case CmdI2cWriteChunk:
		var c CommandI2cWriteChunk
		if err = readU8(r, (*uint8)(&c.Identifier)); err == nil {
			c.Bytes, err = r.getBytes()
		}
		if err == nil {
			var v uint64
			v, err = r.getVarUint()
			c.ChunkIndex = uint32(v)
		}
		cmd = c
	case CmdI2cStopWriteChunked:
		var c CommandI2cStopWriteChunked
		err = readU8(r, (*uint8)(&c.Identifier))
		cmd = c
	case CmdI2cWriteReadSingle:
		var c CommandI2cWriteReadSingle
		if err = readU8(r, (*uint8)(&c.Identifier)); err == nil {
			c.Address, err = r.getU8()
		}
		if err == nil {
			c.Bytes, err = r.getBytes()
		}
		if err == nil {
			var v uint64
			v, err = r.getVarUint()
			c.BufferSize = uint32(v)
		}
		cmd = c
	default:
		return nil, NewProtocolError(ErrDeserializeBadEnum, "unknown command id")
	}
	if err != nil {
		return nil, err
	}
	if err := r.requireExhausted(); err != nil {
		return nil, err
	}
	return cmd, nil
}

// MarshalResponse encodes a Response's payload.
func MarshalResponse(resp Response) []byte {
	w := newWriter()
	switch r := resp.(type) {
	case ResponseInitialize:
		putBoardInfo(w, r.BoardInfo)
	case ResponseInputPinNew:
		putDomainError(w, r.Err)
	case ResponseInputPinDrop:
		putDomainError(w, r.Err)
	case ResponseInputPinGetLevel:
		w.putU8(uint8(r.Level))
		putDomainError(w, r.Err)
	case ResponseInputPinWaitForSignal:
		putSignalTypeResponse(w, r.Signal)
		putDomainError(w, r.Err)
	case ResponseOutputPinNew:
		putDomainError(w, r.Err)
	case ResponseOutputPinDrop:
		putDomainError(w, r.Err)
	case ResponseOutputPinSetLevel:
		putDomainError(w, r.Err)
	case ResponseI2cNew:
		putDomainError(w, r.Err)
	case ResponseI2cDrop:
		putDomainError(w, r.Err)
	case ResponseI2cReadSingle:
		w.putBytes(r.Data)
		putDomainError(w, r.Err)
	case ResponseI2cStartReadChunked:
		putDomainError(w, r.Err)
	case ResponseI2cReadChunk:
		w.putBytes(r.Data)
		putDomainError(w, r.Err)
	case ResponseI2cStopReadChunked:
		putDomainError(w, r.Err)
	case ResponseI2cWriteSingle:
		putDomainError(w, r.Err)
	case ResponseI2cStartWriteChunked:
		putDomainError(w, r.Err)
	case ResponseI2cWriteChunk:
		putDomainError(w, r.Err)
	case ResponseI2cStopWriteChunked:
		putDomainError(w, r.Err)
	case ResponseI2cWriteReadSingle:
		w.putBytes(r.Data)
		putDomainError(w, r.Err)
	}
	return w.Bytes()
}

// UnmarshalResponse decodes a Response payload given the CommandID the
// socket expects it to carry (the identifier of the command it sent).
func UnmarshalResponse(id CommandID, data []byte) (Response, error) {
	r := newReader(data)
	var resp Response
	var err error
	switch id {
	case CmdInitialize:
		var v ResponseInitialize
		v.BoardInfo, err = getBoardInfo(r)
		resp = v
	case CmdInputPinNew:
		var v ResponseInputPinNew
		v.Err, err = getDomainError(r)
		resp = v
	case CmdInputPinDrop:
		var v ResponseInputPinDrop
		v.Err, err = getDomainError(r)
		resp = v
	case CmdInputPinGetLevel:
		var v ResponseInputPinGetLevel
		if err = readU8(r, (*uint8)(&v.Level)); err == nil {
			v.Err, err = getDomainError(r)
		}
		resp = v
	case CmdInputPinWaitForSignal:
		var v ResponseInputPinWaitForSignal
		if v.Signal, err = getSignalTypeResponse(r); err == nil {
			v.Err, err = getDomainError(r)
		}
		resp = v
	case CmdOutputPinNew:
		var v ResponseOutputPinNew
		v.Err, err = getDomainError(r)
		resp = v
	case CmdOutputPinDrop:
		var v ResponseOutputPinDrop
		v.Err, err = getDomainError(r)
		resp = v
	case CmdOutputPinSetLevel:
		var v ResponseOutputPinSetLevel
		v.Err, err = getDomainError(r)
		resp = v
	case CmdI2cNew:
		var v ResponseI2cNew
		v.Err, err = getDomainError(r)
		resp = v
	case CmdI2cDrop:
		var v ResponseI2cDrop
		v.Err, err = getDomainError(r)
		resp = v
	case CmdI2cReadSingle:
		var v ResponseI2cReadSingle
		if v.Data, err = r.getBytes(); err == nil {
			v.Err, err = getDomainError(r)
		}
		resp = v
	case CmdI2cStartReadChunked:
		var v ResponseI2cStartReadChunked
		v.Err, err = getDomainError(r)
		resp = v
	case CmdI2cReadChunk:
		var v ResponseI2cReadChunk
		if v.Data, err = r.getBytes(); err == nil {
			v.Err, err = getDomainError(r)
		}
		resp = v
	case CmdI2cStopReadChunked:
		var v ResponseI2cStopReadChunked
		v.Err, err = getDomainError(r)
		resp = v
	case CmdI2cWriteSingle:
		var v ResponseI2cWriteSingle
		v.Err, err = getDomainError(r)
		resp = v
	case CmdI2cStartWriteChunked:
		var v ResponseI2cStartWriteChunked
		v.Err, err = getDomainError(r)
		resp = v
	case CmdI2cWriteChunk:
		var v ResponseI2cWriteChunk
		v.Err, err = getDomainError(r)
		resp = v
	case CmdI2cStopWriteChunked:
		var v ResponseI2cStopWriteChunked
		v.Err, err = getDomainError(r)
		resp = v
	case CmdI2cWriteReadSingle:
		var v ResponseI2cWriteReadSingle
		if v.Data, err = r.getBytes(); err == nil {
			v.Err, err = getDomainError(r)
		}
		resp = v
	default:
		return nil, NewProtocolError(ErrDeserializeBadEnum, "unknown command id")
	}
	if err != nil {
		return nil, err
	}
	if err := r.requireExhausted(); err != nil {
		return nil, err
	}
	return resp, nil
}

func readU8(r *reader, dst *uint8) error {
	v, err := r.getU8()
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func putSignalTypeRequest(w *writer, s SignalTypeRequest) {
	w.putU8(uint8(s.Kind))
	w.putU32(s.PulseTimeout)
}

func getSignalTypeRequest(r *reader) (SignalTypeRequest, error) {
	var s SignalTypeRequest
	kind, err := r.getU8()
	if err != nil {
		return s, err
	}
	s.Kind = SignalKind(kind)
	s.PulseTimeout, err = r.getU32()
	return s, err
}

func putSignalTypeResponse(w *writer, s SignalTypeResponse) {
	w.putU8(uint8(s.Kind))
	w.putU32(s.PulseDurationUs)
}

func getSignalTypeResponse(r *reader) (SignalTypeResponse, error) {
	var s SignalTypeResponse
	kind, err := r.getU8()
	if err != nil {
		return s, err
	}
	s.Kind = SignalKind(kind)
	s.PulseDurationUs, err = r.getU32()
	return s, err
}

func putI2cConfig(w *writer, c I2cConfig) {
	w.putU8(uint8(c.Identifier))
	w.putU8(uint8(c.SclPin))
	w.putU8(uint8(c.SdaPin))
	w.putU32(c.FrequencyHz)
}

func getI2cConfig(r *reader) (I2cConfig, error) {
	var c I2cConfig
	id, err := r.getU8()
	if err != nil {
		return c, err
	}
	c.Identifier = I2cIdentifier(id)
	scl, err := r.getU8()
	if err != nil {
		return c, err
	}
	c.SclPin = GpioPin(scl)
	sda, err := r.getU8()
	if err != nil {
		return c, err
	}
	c.SdaPin = GpioPin(sda)
	c.FrequencyHz, err = r.getU32()
	return c, err
}

func putBoardInfo(w *writer, b BoardInfo) {
	w.putU16(b.Version.Major)
	w.putU16(b.Version.Minor)
	w.putU16(b.Version.Patch)
	w.putU16(b.ProtocolVersion)
	w.putString(b.SerialNumber)
}

func getBoardInfo(r *reader) (BoardInfo, error) {
	var b BoardInfo
	var err error
	if b.Version.Major, err = r.getU16(); err != nil {
		return b, err
	}
	if b.Version.Minor, err = r.getU16(); err != nil {
		return b, err
	}
	if b.Version.Patch, err = r.getU16(); err != nil {
		return b, err
	}
	if b.ProtocolVersion, err = r.getU16(); err != nil {
		return b, err
	}
	b.SerialNumber, err = r.getString()
	return b, err
}

// putDomainError encodes an optional per-module error: a presence byte,
// then module/code/msg strings when present.
func putDomainError(w *writer, e *DomainError) {
	if e == nil {
		w.putBool(false)
		return
	}
	w.putBool(true)
	w.putString(e.Module)
	w.putString(e.Code)
	w.putString(e.Msg)
}

func getDomainError(r *reader) (*DomainError, error) {
	present, err := r.getBool()
	if err != nil || !present {
		return nil, err
	}
	e := &DomainError{}
	if e.Module, err = r.getString(); err != nil {
		return nil, err
	}
	if e.Code, err = r.getString(); err != nil {
		return nil, err
	}
	e.Msg, err = r.getString()
	if err != nil {
		return nil, err
	}
	return e, nil
}
