package socket

import "testing"

func TestParseReportDescriptorTwoDirections(t *testing.T) {
	desc := buildSimpleHIDDescriptor(2, 64, 1, 32)
	input, output, err := parseReportDescriptor(desc)
	if err != nil {
		t.Fatalf("parseReportDescriptor failed: %v", err)
	}
	if len(input) != 1 || input[0].ID != 2 || input[0].Capacity != 64 {
		t.Errorf("input table = %+v, want one entry (2, 64)", input)
	}
	if len(output) != 1 || output[0].ID != 1 || output[0].Capacity != 32 {
		t.Errorf("output table = %+v, want one entry (1, 32)", output)
	}
}

func TestParseReportDescriptorSortsAscendingByCapacity(t *testing.T) {
	var desc []byte
	// Three output reports declared largest-first; the table must still
	// come back sorted ascending by capacity.
	for _, r := range []struct {
		id    uint8
		bytes uint8
	}{{3, 240}, {1, 16}, {2, 64}} {
		desc = append(desc, 0x85, r.id) // Report ID
		desc = append(desc, 0x75, 0x08) // Report Size = 8 bits
		desc = append(desc, 0x95, r.bytes)
		desc = append(desc, 0x91, 0x02) // Output (Data,Var)
	}

	_, output, err := parseReportDescriptor(desc)
	if err != nil {
		t.Fatalf("parseReportDescriptor failed: %v", err)
	}
	if len(output) != 3 {
		t.Fatalf("output table has %d entries, want 3", len(output))
	}
	wantCaps := []int{16, 64, 240}
	wantIDs := []uint8{1, 2, 3}
	for i := range output {
		if output[i].Capacity != wantCaps[i] || output[i].ID != wantIDs[i] {
			t.Errorf("output[%d] = (%d, %d), want (%d, %d)", i, output[i].ID, output[i].Capacity, wantIDs[i], wantCaps[i])
		}
	}
}

func TestParseReportDescriptorExcludesReservedID(t *testing.T) {
	var desc []byte
	desc = append(desc, 0x85, 0xFF) // reserved protocol-info report ID
	desc = append(desc, 0x75, 0x08)
	desc = append(desc, 0x95, 0x40)
	desc = append(desc, 0x91, 0x02)

	input, output, err := parseReportDescriptor(desc)
	if err != nil {
		t.Fatalf("parseReportDescriptor failed: %v", err)
	}
	if len(input) != 0 || len(output) != 0 {
		t.Errorf("tables = (%+v, %+v), want both empty: 0xFF is reserved", input, output)
	}
}

func TestParseReportDescriptorTwoByteCount(t *testing.T) {
	var desc []byte
	desc = append(desc, 0x85, 0x01)
	desc = append(desc, 0x75, 0x08)
	desc = append(desc, 0x96, 0x00, 0x04) // Report Count = 1024, two-byte item
	desc = append(desc, 0x81, 0x02)

	input, _, err := parseReportDescriptor(desc)
	if err != nil {
		t.Fatalf("parseReportDescriptor failed: %v", err)
	}
	if len(input) != 1 || input[0].Capacity != 1024 {
		t.Errorf("input table = %+v, want one entry with capacity 1024", input)
	}
}

func TestParseReportDescriptorTruncatedItem(t *testing.T) {
	desc := []byte{0x85} // Report ID item with its data byte missing
	if _, _, err := parseReportDescriptor(desc); err == nil {
		t.Fatal("parseReportDescriptor on a truncated descriptor succeeded, want error")
	}
}
