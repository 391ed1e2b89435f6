package socket

import (
	"encoding/binary"
	"fmt"

	"github.com/iotzio-project/iotzio-go/internal/constants"
	"github.com/iotzio-project/iotzio-go/internal/logging"
	"github.com/iotzio-project/iotzio-go/protocol"
	"github.com/iotzio-project/iotzio-go/runtimeid"
	"github.com/iotzio-project/iotzio-go/transport"
)

// MismatchingProtocolVersion is returned by Open when the board reports a
// protocol version this driver doesn't speak. It is raised during the
// one-shot bootstrap exchange, before any Socket exists, so it is a plain
// error rather than a FatalError: there is no socket yet for a FatalError to
// be terminal to.
type MismatchingProtocolVersion struct {
	Driver uint16
	Board  uint16
}

func (e *MismatchingProtocolVersion) Error() string {
	return fmt.Sprintf("iotzio: board speaks protocol version %d, driver supports %d", e.Board, e.Driver)
}

// handshakeResult is everything the protocol-info exchange establishes
// before a Socket can be constructed.
type handshakeResult struct {
	inputTable  ReportTable
	outputTable ReportTable
}

// performHandshake runs the one-shot protocol-info exchange: a probe on the
// reserved report ID 0xFF, answered with a fixed 1025-byte reply carrying the
// negotiated protocol version and the device's HID report descriptor. It
// never touches a report identifier counter or pending-request map — those
// belong to the Socket this handshake is a precondition for.
func performHandshake(t transport.Transport) (*handshakeResult, error) {
	buf := make([]byte, constants.ProtocolInfoBufferSize)
	buf[0] = constants.ProtocolInfoReportID
	if err := t.WriteReport(buf); err != nil {
		return nil, fmt.Errorf("iotzio: writing protocol-info request: %w", err)
	}

	for i := range buf {
		buf[i] = 0
	}
	n, err := t.ReadReport(buf)
	if err != nil {
		return nil, fmt.Errorf("iotzio: reading protocol-info reply: %w", err)
	}
	if n != constants.ProtocolInfoBufferSize {
		return nil, protocol.NewProtocolError(protocol.ErrPacketTooSmall, "protocol-info reply shorter than expected")
	}

	body := buf[1:]
	if len(body) < 4 {
		return nil, protocol.NewProtocolError(protocol.ErrDeserializeUnexpectedEnd, "protocol-info reply missing header")
	}
	boardVersion := binary.LittleEndian.Uint16(body[0:2])
	descriptorLen := binary.LittleEndian.Uint16(body[2:4])

	if int(descriptorLen) > len(body)-4 {
		return nil, protocol.NewProtocolError(protocol.ErrDeserializeUnexpectedEnd, "protocol-info descriptor length overruns buffer")
	}
	descriptor := body[4 : 4+int(descriptorLen)]

	if boardVersion != constants.ProtocolVersion {
		return nil, &MismatchingProtocolVersion{Driver: constants.ProtocolVersion, Board: boardVersion}
	}

	inputTable, outputTable, err := parseReportDescriptor(descriptor)
	if err != nil {
		return nil, fmt.Errorf("iotzio: parsing HID report descriptor: %w", err)
	}

	logging.Debug("protocol info exchange complete",
		"protocol_version", boardVersion,
		"input_reports", len(inputTable),
		"output_reports", len(outputTable))

	return &handshakeResult{inputTable: inputTable, outputTable: outputTable}, nil
}

// Open performs the bootstrap sequence in full: it acquires the runtime
// identifier (failing fast if another open socket already claims it), runs
// the protocol-info handshake, constructs the Socket and its background
// reader, and issues the single mandatory Initialize command to learn the
// board's identity. A returned Socket is fully ready for use.
func Open(t transport.Transport, runtimeIdentifier uint64) (*Socket, error) {
	token, err := runtimeid.Acquire(runtimeIdentifier)
	if err != nil {
		return nil, err
	}

	hs, err := performHandshake(t)
	if err != nil {
		token.Release()
		return nil, err
	}

	s := newBareSocket(t, hs.outputTable, hs.inputTable, token)

	resp, modErr, fatal := s.Send(protocol.CommandInitialize{})
	if fatal != nil {
		_ = s.Close()
		return nil, fatal
	}
	if modErr != nil {
		_ = s.Close()
		return nil, modErr
	}
	init, ok := resp.(protocol.ResponseInitialize)
	if !ok {
		_ = s.Close()
		return nil, protocol.NewProtocolError(protocol.ErrReceivedWrongResponse, "bootstrap Initialize returned an unexpected response variant")
	}
	s.boardInfo = init.BoardInfo

	return s, nil
}
