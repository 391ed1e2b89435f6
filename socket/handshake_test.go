package socket

import (
	"testing"

	"github.com/iotzio-project/iotzio-go/protocol"
)

func TestOpenRejectsShortProtocolInfoReply(t *testing.T) {
	ft := newFakeTransport()
	ft.queueReply(make([]byte, 10)) // far short of the fixed 1025-byte reply

	_, err := Open(ft, 900)
	if err == nil {
		t.Fatal("Open() with a short protocol-info reply succeeded, want error")
	}
	pe, ok := err.(*protocol.ProtocolError)
	if !ok {
		t.Fatalf("error is %T, want *protocol.ProtocolError", err)
	}
	if pe.Code != protocol.ErrPacketTooSmall {
		t.Errorf("error code = %q, want %q", pe.Code, protocol.ErrPacketTooSmall)
	}
}

func TestOpenRejectsOverlongDescriptorLength(t *testing.T) {
	ft := newFakeTransport()
	// A descriptor length claiming more bytes than the reply can hold.
	reply := buildProtocolInfoReply(1, nil)
	reply[3] = 0xFF
	reply[4] = 0xFF
	ft.queueReply(reply)

	if _, err := Open(ft, 901); err == nil {
		t.Fatal("Open() with an overlong descriptor length succeeded, want error")
	}
}

// buildTieredDescriptor declares one 1024-byte input report and three
// output reports of 64, 256 and 1024 bytes.
func buildTieredDescriptor() []byte {
	var d []byte
	d = append(d, 0x85, testInputReportID)
	d = append(d, 0x75, 0x08)
	d = append(d, 0x96, 0x00, 0x04) // Report Count = 1024
	d = append(d, 0x81, 0x02)

	d = append(d, 0x85, 0x01)
	d = append(d, 0x75, 0x08)
	d = append(d, 0x95, 0x40) // 64
	d = append(d, 0x91, 0x02)

	d = append(d, 0x85, 0x02)
	d = append(d, 0x75, 0x08)
	d = append(d, 0x96, 0x00, 0x01) // 256
	d = append(d, 0x91, 0x02)

	d = append(d, 0x85, 0x03)
	d = append(d, 0x75, 0x08)
	d = append(d, 0x96, 0x00, 0x04) // 1024
	d = append(d, 0x91, 0x02)
	return d
}

func TestSendPicksSmallestFittingOutputReport(t *testing.T) {
	ft := newFakeTransport()
	ft.queueReply(buildProtocolInfoReply(1, buildTieredDescriptor()))

	info := protocol.BoardInfo{ProtocolVersion: 1, SerialNumber: "tiered"}
	ft.queueReply(buildDeviceResponseReport(1024, testInputReportID, 0, protocol.ResponseInitialize{BoardInfo: info}))

	s, err := Open(ft, 902)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	// The bootstrap Initialize command has an empty payload, so it must
	// have travelled in the smallest report: 1 + 64 bytes.
	writes := ft.Writes()
	if len(writes) != 2 {
		t.Fatalf("got %d writes after Open, want 2 (protocol info + Initialize)", len(writes))
	}
	if len(writes[1]) != 65 {
		t.Errorf("Initialize write length = %d, want 65", len(writes[1]))
	}
	if writes[1][0] != 0x01 {
		t.Errorf("Initialize report ID = %d, want 1", writes[1][0])
	}

	// A 100-byte I2C write yields a 110-byte report requirement (report ID
	// and host-report header included), which only the 256-byte report fits.
	ft.queueReply(buildDeviceResponseReport(1024, testInputReportID, 1, protocol.ResponseI2cWriteSingle{}))
	payload := make([]byte, 100)
	_, modErr, fatal := s.Send(protocol.CommandI2cWriteSingle{Identifier: protocol.I2c0, Address: 0x50, Bytes: payload})
	if modErr != nil || fatal != nil {
		t.Fatalf("Send() failed: modErr=%v fatal=%v", modErr, fatal)
	}

	writes = ft.Writes()
	last := writes[len(writes)-1]
	if last[0] != 0x02 {
		t.Errorf("selected report ID = %d, want 2 (smallest capacity >= required length)", last[0])
	}
	if len(last) != 257 {
		t.Errorf("written report length = %d, want 257 (report ID byte + 256-byte capacity)", len(last))
	}
}

func TestSendFailsWhenNoReportFits(t *testing.T) {
	ft := newFakeTransport()
	descriptor := buildSimpleHIDDescriptor(testInputReportID, testReportBytes, testOutputReportID, testReportBytes)
	ft.queueReply(buildProtocolInfoReply(1, descriptor))

	info := protocol.BoardInfo{ProtocolVersion: 1, SerialNumber: "small"}
	ft.queueReply(buildDeviceResponseReport(testReportBytes, testInputReportID, 0, protocol.ResponseInitialize{BoardInfo: info}))

	s, err := Open(ft, 903)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	// 100 bytes of payload cannot fit the single 64-byte output report.
	payload := make([]byte, 100)
	_, _, fatal := s.Send(protocol.CommandI2cWriteSingle{Identifier: protocol.I2c0, Address: 0x50, Bytes: payload})
	if fatal == nil {
		t.Fatal("Send() with an unfittable payload returned no FatalError")
	}
	if fatal.Code != protocol.FatalCodeHostProtocolError {
		t.Errorf("fatal.Code = %q, want %q", fatal.Code, protocol.FatalCodeHostProtocolError)
	}
}
