package protocol

// deviceReportTag distinguishes the two shapes a device-to-host report can
// take; it is the first byte after the HID report ID.
type deviceReportTag uint8

const (
	deviceReportTagResponse   deviceReportTag = 0
	deviceReportTagFatalError deviceReportTag = 1
)

// resultTag distinguishes a successful Response from an in-band
// ModuleError inside a DeviceReport::Response.
type resultTag uint8

const (
	resultTagOk  resultTag = 0
	resultTagErr resultTag = 1
)

// DecodedDeviceReport is the outcome of decoding one device-to-host HID
// report. Exactly one of (Response, ModuleErr) is set when Fatal is nil;
// Fatal is set instead when the device reported a terminal condition.
type DecodedDeviceReport struct {
	Identifier uint32
	Response   Response
	ModuleErr  *ModuleError
	Fatal      *FatalError
}

// DecodeDeviceReport decodes the bytes following the HID report ID byte.
// It never panics; any malformed input yields a *ProtocolError. The socket
// core is responsible for turning a ProtocolError into a FatalError before
// it reaches a caller — this function only talks about wire shape.
func DecodeDeviceReport(body []byte) (*DecodedDeviceReport, error) {
	r := newReader(body)
	tagByte, err := r.getU8()
	if err != nil {
		return nil, err
	}
	switch deviceReportTag(tagByte) {
	case deviceReportTagResponse:
		identifier, err := r.getU32()
		if err != nil {
			return nil, err
		}
		rt, err := r.getU8()
		if err != nil {
			return nil, err
		}
		switch resultTag(rt) {
		case resultTagOk:
			cmdID, err := r.getU16()
			if err != nil {
				return nil, err
			}
			payload, err := r.getBytes()
			if err != nil {
				return nil, err
			}
			resp, err := UnmarshalResponse(CommandID(cmdID), payload)
			if err != nil {
				return nil, err
			}
			return &DecodedDeviceReport{Identifier: identifier, Response: resp}, nil
		case resultTagErr:
			modErr, err := decodeModuleError(r)
			if err != nil {
				return nil, err
			}
			return &DecodedDeviceReport{Identifier: identifier, ModuleErr: modErr}, nil
		default:
			return nil, NewProtocolError(ErrDeserializeBadEnum, "result tag not 0 or 1")
		}
	case deviceReportTagFatalError:
		fatal, err := decodeFatalError(r)
		if err != nil {
			return nil, err
		}
		return &DecodedDeviceReport{Fatal: fatal}, nil
	default:
		return nil, NewProtocolError(ErrDeserializeBadEnum, "device report tag not 0 or 1")
	}
}

func decodeModuleError(r *reader) (*ModuleError, error) {
	code, err := r.getString()
	if err != nil {
		return nil, err
	}
	msg, err := r.getString()
	if err != nil {
		return nil, err
	}
	return &ModuleError{Code: ModuleErrorCode(code), Msg: msg}, nil
}

func decodeFatalError(r *reader) (*FatalError, error) {
	code, err := r.getString()
	if err != nil {
		return nil, err
	}
	msg, err := r.getString()
	if err != nil {
		return nil, err
	}
	return &FatalError{Code: FatalErrorCode(code), Msg: msg}, nil
}

// EncodeHostReportBody encodes the portion of a HostReport that follows the
// HID report ID byte: the 4-byte identifier, 2-byte command_id, and the
// command payload, per HostReportHeaderSize (which additionally counts the
// report ID byte the caller prepends).
func EncodeHostReportBody(identifier uint32, cmd Command) []byte {
	w := newWriter()
	w.putU32(identifier)
	w.putU16(uint16(cmd.CommandID()))
	payload := MarshalCommand(cmd)
	w.buf = append(w.buf, payload...)
	return w.Bytes()
}
