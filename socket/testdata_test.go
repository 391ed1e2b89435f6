package socket

import (
	"encoding/binary"

	"github.com/iotzio-project/iotzio-go/internal/constants"
	"github.com/iotzio-project/iotzio-go/protocol"
)

// buildDeviceResponseReport builds a full HID input report (report ID byte
// included) carrying a successful Response, padded to capacity.
func buildDeviceResponseReport(capacity int, reportID uint8, identifier uint32, resp protocol.Response) []byte {
	body := make([]byte, 0, capacity)
	body = append(body, 0) // deviceReportTagResponse
	var idBuf [4]byte
	binary.LittleEndian.PutUint32(idBuf[:], identifier)
	body = append(body, idBuf[:]...)
	body = append(body, 0) // resultTagOk

	var cmdIDBuf [2]byte
	binary.LittleEndian.PutUint16(cmdIDBuf[:], uint16(resp.CommandID()))
	body = append(body, cmdIDBuf[:]...)

	payload := protocol.MarshalResponse(resp)
	body = appendVarUint(body, uint64(len(payload)))
	body = append(body, payload...)

	return padReport(reportID, body, capacity)
}

// buildDeviceModuleErrorReport builds a full HID input report carrying a
// top-level ModuleError for the given identifier.
func buildDeviceModuleErrorReport(capacity int, reportID uint8, identifier uint32, modErr *protocol.ModuleError) []byte {
	body := make([]byte, 0, capacity)
	body = append(body, 0) // deviceReportTagResponse
	var idBuf [4]byte
	binary.LittleEndian.PutUint32(idBuf[:], identifier)
	body = append(body, idBuf[:]...)
	body = append(body, 1) // resultTagErr
	body = appendString(body, string(modErr.Code))
	body = appendString(body, modErr.Msg)
	return padReport(reportID, body, capacity)
}

// buildDeviceFatalReport builds a full HID input report carrying a top-level
// FatalError, which the handshake/socket always treats as terminal.
func buildDeviceFatalReport(capacity int, reportID uint8, code protocol.FatalErrorCode, msg string) []byte {
	body := make([]byte, 0, capacity)
	body = append(body, 1) // deviceReportTagFatalError
	body = appendString(body, string(code))
	body = appendString(body, msg)
	return padReport(reportID, body, capacity)
}

func padReport(reportID uint8, body []byte, capacity int) []byte {
	out := make([]byte, 1+capacity)
	out[0] = reportID
	copy(out[1:], body)
	return out
}

func appendVarUint(buf []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	return append(buf, tmp[:n]...)
}

func appendString(buf []byte, s string) []byte {
	buf = appendVarUint(buf, uint64(len(s)))
	return append(buf, s...)
}

// buildProtocolInfoReply builds the fixed-size 1025-byte protocol-info
// handshake reply: protocol version, descriptor length, then the descriptor
// bytes themselves.
func buildProtocolInfoReply(version uint16, descriptor []byte) []byte {
	buf := make([]byte, constants.ProtocolInfoBufferSize)
	buf[0] = constants.ProtocolInfoReportID
	binary.LittleEndian.PutUint16(buf[1:3], version)
	binary.LittleEndian.PutUint16(buf[3:5], uint16(len(descriptor)))
	copy(buf[5:], descriptor)
	return buf
}

// buildSimpleHIDDescriptor builds a minimal HID report descriptor with one
// input report ID and one output report ID, each reportSize*reportCount/8
// bytes of payload.
func buildSimpleHIDDescriptor(inputID uint8, inputBytes int, outputID uint8, outputBytes int) []byte {
	var d []byte
	d = append(d, 0x85, inputID) // Report ID (input side), 1-byte data item
	d = append(d, 0x75, 0x08)    // Report Size = 8 bits
	d = append(d, 0x95, byte(inputBytes))
	d = append(d, 0x81, 0x02) // Input (Data,Var), 1-byte data item

	d = append(d, 0x85, outputID) // Report ID (output side), 1-byte data item
	d = append(d, 0x75, 0x08)
	d = append(d, 0x95, byte(outputBytes))
	d = append(d, 0x91, 0x02) // Output (Data,Var), 1-byte data item
	return d
}
