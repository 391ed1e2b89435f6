package iotziotest

import (
	"encoding/binary"

	"github.com/iotzio-project/iotzio-go/internal/constants"
	"github.com/iotzio-project/iotzio-go/protocol"
	"github.com/iotzio-project/iotzio-go/socket"
)

// BuildSimpleHIDDescriptor builds a minimal HID report descriptor with one
// input report ID and one output report ID, each capable of holding
// reportBytes bytes of payload. It is enough to drive socket.Open's
// handshake in tests without a real device.
func BuildSimpleHIDDescriptor(inputID, outputID uint8, reportBytes int) []byte {
	var d []byte
	d = append(d, 0x85, inputID) // Report ID (input side)
	d = append(d, 0x75, 0x08)    // Report Size = 8 bits
	d = appendReportCount(d, reportBytes)
	d = append(d, 0x81, 0x02) // Input (Data,Var)

	d = append(d, 0x85, outputID) // Report ID (output side)
	d = append(d, 0x75, 0x08)
	d = appendReportCount(d, reportBytes)
	d = append(d, 0x91, 0x02) // Output (Data,Var)
	return d
}

// appendReportCount emits a Report Count global item, using the two-byte
// form when count doesn't fit in one byte.
func appendReportCount(d []byte, count int) []byte {
	if count <= 0xFF {
		return append(d, 0x95, byte(count))
	}
	return append(d, 0x96, byte(count), byte(count>>8))
}

// BuildProtocolInfoReply builds the fixed-size protocol-info handshake
// reply: protocol version, descriptor length, then the descriptor itself.
func BuildProtocolInfoReply(version uint16, descriptor []byte) []byte {
	buf := make([]byte, constants.ProtocolInfoBufferSize)
	buf[0] = constants.ProtocolInfoReportID
	binary.LittleEndian.PutUint16(buf[1:3], version)
	binary.LittleEndian.PutUint16(buf[3:5], uint16(len(descriptor)))
	copy(buf[5:], descriptor)
	return buf
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

func padReport(reportID uint8, body []byte, capacity int) []byte {
	out := make([]byte, 1+capacity)
	out[0] = reportID
	copy(out[1:], body)
	return out
}

// BuildResponseReport builds a full HID input report carrying a successful
// Response for identifier, padded to capacity.
func BuildResponseReport(capacity int, reportID uint8, identifier uint32, resp protocol.Response) []byte {
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

// BuildModuleErrorReport builds a full HID input report carrying a
// top-level ModuleError for identifier.
func BuildModuleErrorReport(capacity int, reportID uint8, identifier uint32, modErr *protocol.ModuleError) []byte {
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

// BuildFatalReport builds a full HID input report carrying a top-level
// FatalError, which is always terminal to every caller waiting on the
// socket.
func BuildFatalReport(capacity int, reportID uint8, code protocol.FatalErrorCode, msg string) []byte {
	body := make([]byte, 0, capacity)
	body = append(body, 1) // deviceReportTagFatalError
	body = appendString(body, string(code))
	body = appendString(body, msg)
	return padReport(reportID, body, capacity)
}

// ExtractIdentifier reads the 4-byte little-endian request identifier out of
// a written host report, laid out [reportID][identifier][cmdID]....
func ExtractIdentifier(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[1:5])
}

// OpenSocket scripts ft with a handshake reply (one input/output report ID,
// each reportBytes bytes) and a matching Initialize response carrying info,
// then runs socket.Open against it. It is the shared entry point for gpio
// and i2c tests that need a live *socket.Socket backed by a fake transport.
func OpenSocket(ft *FakeTransport, runtimeIdentifier uint64, reportBytes int, info protocol.BoardInfo) (*socket.Socket, error) {
	const inputReportID, outputReportID = 2, 1
	descriptor := BuildSimpleHIDDescriptor(inputReportID, outputReportID, reportBytes)
	ft.QueueReply(BuildProtocolInfoReply(constants.ProtocolVersion, descriptor))
	ft.QueueReply(BuildResponseReport(reportBytes, inputReportID, 0, protocol.ResponseInitialize{BoardInfo: info}))
	return socket.Open(ft, runtimeIdentifier)
}
