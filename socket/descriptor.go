package socket

import "github.com/iotzio-project/iotzio-go/protocol"

// HID short-item tags relevant to computing report capacities. Only the
// items that affect report ID / size / count bookkeeping are handled; every
// other tag is skipped by its declared item length, matching how a minimal
// descriptor walker only needs to track state for Input/Output main items.
const (
	hidItemReportID    = 0x84 // global: Report ID
	hidItemReportSize  = 0x74 // global: Report Size
	hidItemReportCount = 0x94 // global: Report Count
	hidItemInput       = 0x80 // main: Input
	hidItemOutput      = 0x90 // main: Output
)

// parseReportDescriptor walks a HID report descriptor and returns the input
// and output ReportTables: one (report_id, capacity_bytes) entry per
// distinct report ID that appears on an Input or Output main item,
// respectively. Reserved report ID 0xFF is excluded from both tables per
// the handshake contract.
func parseReportDescriptor(desc []byte) (input ReportTable, output ReportTable, err error) {
	var (
		haveReportID bool
		reportID     uint8
		reportSize   uint32
		reportCount  uint32
	)

	pos := 0
	for pos < len(desc) {
		prefix := desc[pos]
		tag := prefix & 0xFC
		sizeCode := prefix & 0x03
		itemSize := int(sizeCode)
		if sizeCode == 3 {
			itemSize = 4
		}
		pos++
		if pos+itemSize > len(desc) {
			return nil, nil, protocol.NewProtocolError(protocol.ErrDeserializeUnexpectedEnd, "truncated HID report descriptor item")
		}
		data := desc[pos : pos+itemSize]
		pos += itemSize

		value := uint32(0)
		for i, b := range data {
			value |= uint32(b) << (8 * i)
		}

		switch tag {
		case hidItemReportID:
			reportID = uint8(value)
			haveReportID = true
		case hidItemReportSize:
			reportSize = value
		case hidItemReportCount:
			reportCount = value
		case hidItemInput:
			if haveReportID && reportID < 0xFF {
				input = appendReportCapacity(input, reportID, reportSize, reportCount)
			}
		case hidItemOutput:
			if haveReportID && reportID < 0xFF {
				output = appendReportCapacity(output, reportID, reportSize, reportCount)
			}
		default:
			// Collection, usage, logical/physical bounds, etc. don't affect
			// capacity bookkeeping; skip them.
		}
	}

	return input.sortedAscending(), output.sortedAscending(), nil
}

func appendReportCapacity(table ReportTable, id uint8, sizeBits, count uint32) ReportTable {
	capacityBytes := int((sizeBits * count) / 8)
	for i, e := range table {
		if e.ID == id {
			if capacityBytes > e.Capacity {
				table[i].Capacity = capacityBytes
			}
			return table
		}
	}
	return append(table, ReportEntry{ID: id, Capacity: capacityBytes})
}
