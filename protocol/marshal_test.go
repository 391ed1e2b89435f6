package protocol

import (
	"reflect"
	"testing"

	"github.com/iotzio-project/iotzio-go/internal/constants"
)

// allCommands returns one populated value per Command variant, filling
// most fields with non-zero data so a lossy codec has little room to hide
// behind zero values.
func allCommands() []Command {
	return []Command{
		CommandInitialize{},
		CommandInputPinNew{Pin: Pin5, Pull: PullUp, Hysteresis: true},
		CommandInputPinDrop{Pin: Pin28},
		CommandInputPinGetLevel{Pin: Pin0},
		CommandInputPinWaitForSignal{Pin: Pin9, Signal: SignalTypeRequest{Kind: SignalHighPulse, PulseTimeout: 2500}},
		CommandOutputPinNew{Pin: Pin1, InitialLevel: LevelHigh, DriveStrength: DriveTwelveMilliAmpere, SlewRate: SlewRateSlow},
		CommandOutputPinDrop{Pin: Pin2},
		CommandOutputPinSetLevel{Pin: Pin3, Level: LevelHigh},
		CommandI2cNew{Config: I2cConfig{Identifier: I2c1, SclPin: Pin27, SdaPin: Pin26, FrequencyHz: 400_000}},
		CommandI2cDrop{Identifier: I2c1},
		CommandI2cReadSingle{Identifier: I2c0, Address: 0x50, BufferSize: 300},
		CommandI2cStartReadChunked{Identifier: I2c0, Address: 0x68, ChunksCount: 4},
		CommandI2cReadChunk{Identifier: I2c0, BufferSize: 512, ChunkIndex: 3},
		CommandI2cStopReadChunked{Identifier: I2c0},
		CommandI2cWriteSingle{Identifier: I2c1, Address: 0x23, Bytes: []byte{1, 2, 3, 4}},
		CommandI2cStartWriteChunked{Identifier: I2c1, Address: 0x23, ChunksCount: 2},
		CommandI2cWriteChunk{Identifier: I2c1, Bytes: []byte{9, 8, 7}, ChunkIndex: 1},
		CommandI2cStopWriteChunked{Identifier: I2c1},
		CommandI2cWriteReadSingle{Identifier: I2c0, Address: 0x68, Bytes: []byte{0x0F}, BufferSize: 2},
	}
}

// allResponses returns one populated value per Response variant, paired by
// index with allCommands.
func allResponses() []Response {
	domainErr := NewDomainError("test_module", "refused", "synthetic refusal")
	return []Response{
		ResponseInitialize{BoardInfo: BoardInfo{Version: Version{Major: 1, Minor: 2, Patch: 3}, ProtocolVersion: 1, SerialNumber: "SN-0001"}},
		ResponseInputPinNew{Err: domainErr},
		ResponseInputPinDrop{},
		ResponseInputPinGetLevel{Level: LevelHigh},
		ResponseInputPinWaitForSignal{Signal: SignalTypeResponse{Kind: SignalHighPulse, PulseDurationUs: 4200}},
		ResponseOutputPinNew{},
		ResponseOutputPinDrop{Err: domainErr},
		ResponseOutputPinSetLevel{},
		ResponseI2cNew{},
		ResponseI2cDrop{},
		ResponseI2cReadSingle{Data: []byte{0xDE, 0xAD}},
		ResponseI2cStartReadChunked{},
		ResponseI2cReadChunk{Data: []byte{1, 2, 3}, Err: nil},
		ResponseI2cStopReadChunked{},
		ResponseI2cWriteSingle{Err: domainErr},
		ResponseI2cStartWriteChunked{},
		ResponseI2cWriteChunk{},
		ResponseI2cStopWriteChunked{},
		ResponseI2cWriteReadSingle{Data: []byte{0x42}},
	}
}

func TestCommandCountMatchesVariants(t *testing.T) {
	cmds := allCommands()
	if len(cmds) != int(commandIDCount) {
		t.Fatalf("test covers %d command variants, protocol declares %d", len(cmds), commandIDCount)
	}
	if int(commandIDCount) != constants.CommandCount {
		t.Fatalf("commandIDCount = %d, but the wire contract declares CommandCount = %d", commandIDCount, constants.CommandCount)
	}

	seen := make(map[CommandID]bool)
	for _, c := range cmds {
		id := c.CommandID()
		if id >= commandIDCount {
			t.Errorf("%T: CommandID %d out of range [0, %d)", c, id, commandIDCount)
		}
		if seen[id] {
			t.Errorf("%T: CommandID %d assigned twice", c, id)
		}
		seen[id] = true
	}
}

func TestCommandResponsePairing(t *testing.T) {
	cmds := allCommands()
	resps := allResponses()
	if len(cmds) != len(resps) {
		t.Fatalf("%d commands but %d responses", len(cmds), len(resps))
	}
	for i := range cmds {
		if cmds[i].CommandID() != resps[i].CommandID() {
			t.Errorf("%T (id %d) paired with %T (id %d)", cmds[i], cmds[i].CommandID(), resps[i], resps[i].CommandID())
		}
	}
}

func TestCommandRoundTrip(t *testing.T) {
	for _, cmd := range allCommands() {
		encoded := MarshalCommand(cmd)
		decoded, err := UnmarshalCommand(cmd.CommandID(), encoded)
		if err != nil {
			t.Errorf("%T: UnmarshalCommand failed: %v", cmd, err)
			continue
		}
		if !reflect.DeepEqual(normalizeEmptySlices(decoded), normalizeEmptySlices(cmd)) {
			t.Errorf("%T: round-trip mismatch:\n got %#v\nwant %#v", cmd, decoded, cmd)
		}
	}
}

func TestResponseRoundTrip(t *testing.T) {
	for _, resp := range allResponses() {
		encoded := MarshalResponse(resp)
		decoded, err := UnmarshalResponse(resp.CommandID(), encoded)
		if err != nil {
			t.Errorf("%T: UnmarshalResponse failed: %v", resp, err)
			continue
		}
		if !reflect.DeepEqual(normalizeEmptySlices(decoded), normalizeEmptySlices(resp)) {
			t.Errorf("%T: round-trip mismatch:\n got %#v\nwant %#v", resp, decoded, resp)
		}
	}
}

// normalizeEmptySlices maps nil byte slices to empty ones so DeepEqual
// treats "no bytes written" and "zero bytes decoded" as the same value.
func normalizeEmptySlices(v any) any {
	switch x := v.(type) {
	case CommandI2cWriteSingle:
		if len(x.Bytes) == 0 {
			x.Bytes = []byte{}
		}
		return x
	case CommandI2cWriteChunk:
		if len(x.Bytes) == 0 {
			x.Bytes = []byte{}
		}
		return x
	case CommandI2cWriteReadSingle:
		if len(x.Bytes) == 0 {
			x.Bytes = []byte{}
		}
		return x
	case ResponseI2cReadSingle:
		if len(x.Data) == 0 {
			x.Data = []byte{}
		}
		return x
	case ResponseI2cReadChunk:
		if len(x.Data) == 0 {
			x.Data = []byte{}
		}
		return x
	case ResponseI2cWriteReadSingle:
		if len(x.Data) == 0 {
			x.Data = []byte{}
		}
		return x
	default:
		return v
	}
}

func TestUnmarshalCommandRejectsTrailingBytes(t *testing.T) {
	cmd := CommandInputPinDrop{Pin: Pin3}
	encoded := append(MarshalCommand(cmd), 0xAA)
	_, err := UnmarshalCommand(cmd.CommandID(), encoded)
	assertProtocolError(t, err, ErrDeserializeBadEncoding)
}

func TestUnmarshalCommandRejectsTruncation(t *testing.T) {
	cmd := CommandI2cNew{Config: I2cConfig{Identifier: I2c0, SclPin: Pin17, SdaPin: Pin16, FrequencyHz: 100_000}}
	encoded := MarshalCommand(cmd)
	_, err := UnmarshalCommand(cmd.CommandID(), encoded[:len(encoded)-1])
	assertProtocolError(t, err, ErrDeserializeUnexpectedEnd)
}

func TestUnmarshalCommandRejectsUnknownID(t *testing.T) {
	_, err := UnmarshalCommand(commandIDCount, nil)
	assertProtocolError(t, err, ErrDeserializeBadEnum)
}

func TestUnmarshalCommandRejectsBadBool(t *testing.T) {
	// CommandInputPinNew's third field is a boolean; 2 is not a valid
	// discriminant.
	_, err := UnmarshalCommand(CmdInputPinNew, []byte{5, 0, 2})
	assertProtocolError(t, err, ErrDeserializeBadBool)
}

func TestUnmarshalResponseRejectsTruncatedString(t *testing.T) {
	resp := ResponseInitialize{BoardInfo: BoardInfo{SerialNumber: "SN-1234"}}
	encoded := MarshalResponse(resp)
	_, err := UnmarshalResponse(CmdInitialize, encoded[:len(encoded)-3])
	assertProtocolError(t, err, ErrDeserializeUnexpectedEnd)
}

func assertProtocolError(t *testing.T, err error, want ProtocolErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a *ProtocolError, got nil")
	}
	pe, ok := err.(*ProtocolError)
	if !ok {
		t.Fatalf("expected a *ProtocolError, got %T: %v", err, err)
	}
	if pe.Code != want {
		t.Errorf("ProtocolError.Code = %q, want %q", pe.Code, want)
	}
}
