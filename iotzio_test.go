package iotzio_test

import (
	"testing"

	"github.com/iotzio-project/iotzio-go"
	"github.com/iotzio-project/iotzio-go/iotziotest"
	"github.com/iotzio-project/iotzio-go/protocol"
)

const (
	testReportBytes   = 64
	testInputReportID = 2
)

func openTestBoard(t *testing.T) (*iotziotest.FakeTransport, *iotzio.Board) {
	t.Helper()
	ft := iotziotest.NewFakeTransport()
	info := protocol.BoardInfo{
		Version:         protocol.Version{Major: 2, Minor: 1, Patch: 0},
		ProtocolVersion: 1,
		SerialNumber:    "board-test-7",
	}

	descriptor := iotziotest.BuildSimpleHIDDescriptor(testInputReportID, 1, testReportBytes)
	ft.QueueReply(iotziotest.BuildProtocolInfoReply(iotzio.ProtocolVersion, descriptor))
	ft.QueueReply(iotziotest.BuildResponseReport(testReportBytes, testInputReportID, 0, protocol.ResponseInitialize{BoardInfo: info}))

	board, err := iotzio.Open(ft, 1234)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = board.Close() })
	return ft, board
}

func TestBoardIdentity(t *testing.T) {
	_, board := openTestBoard(t)

	if board.SerialNumber() != "board-test-7" {
		t.Errorf("SerialNumber() = %q, want %q", board.SerialNumber(), "board-test-7")
	}
	if board.Version().String() != "2.1.0" {
		t.Errorf("Version() = %q, want %q", board.Version().String(), "2.1.0")
	}
	if board.ProtocolVersion() != iotzio.ProtocolVersion {
		t.Errorf("ProtocolVersion() = %d, want %d", board.ProtocolVersion(), iotzio.ProtocolVersion)
	}
	if board.RuntimeIdentifier() != 1234 {
		t.Errorf("RuntimeIdentifier() = %d, want 1234", board.RuntimeIdentifier())
	}
}

func TestBoardSetupModules(t *testing.T) {
	ft, board := openTestBoard(t)

	ft.QueueReply(iotziotest.BuildResponseReport(testReportBytes, testInputReportID, 1, protocol.ResponseInputPinNew{}))
	input, err := board.SetupInputPin(protocol.Pin5, protocol.PullUp, false)
	if err != nil {
		t.Fatalf("SetupInputPin() failed: %v", err)
	}
	if input.Pin() != protocol.Pin5 {
		t.Errorf("input.Pin() = %v, want %v", input.Pin(), protocol.Pin5)
	}

	ft.QueueReply(iotziotest.BuildResponseReport(testReportBytes, testInputReportID, 2, protocol.ResponseOutputPinNew{}))
	output, err := board.SetupOutputPin(protocol.Pin6, protocol.LevelLow, protocol.DriveTwoMilliAmpere, protocol.SlewRateFast)
	if err != nil {
		t.Fatalf("SetupOutputPin() failed: %v", err)
	}
	if output.Pin() != protocol.Pin6 {
		t.Errorf("output.Pin() = %v, want %v", output.Pin(), protocol.Pin6)
	}

	ft.QueueReply(iotziotest.BuildResponseReport(testReportBytes, testInputReportID, 3, protocol.ResponseI2cNew{}))
	bus, err := board.SetupI2cBus(protocol.I2cConfig{Identifier: protocol.I2c1, SclPin: protocol.Pin19, SdaPin: protocol.Pin18, FrequencyHz: 100_000})
	if err != nil {
		t.Fatalf("SetupI2cBus() failed: %v", err)
	}
	if bus.Identifier() != protocol.I2c1 {
		t.Errorf("bus.Identifier() = %v, want %v", bus.Identifier(), protocol.I2c1)
	}
}
