package socket

import (
	"sort"

	"github.com/iotzio-project/iotzio-go/protocol"
)

// ReportEntry pairs a HID report ID with the capacity (in bytes) of its
// payload, not counting the report ID byte itself. The reserved report ID
// 0xFF (protocol-info exchange) is never present in a ReportTable.
type ReportEntry struct {
	ID       uint8
	Capacity int
}

// ReportTable is one direction's set of usable report IDs, sorted
// ascending by Capacity.
type ReportTable []ReportEntry

func (t ReportTable) sortedAscending() ReportTable {
	out := make(ReportTable, len(t))
	copy(out, t)
	sort.Slice(out, func(i, j int) bool { return out[i].Capacity < out[j].Capacity })
	return out
}

// maxCapacity returns the largest capacity in the table, or 0 if empty.
func (t ReportTable) maxCapacity() int {
	max := 0
	for _, e := range t {
		if e.Capacity > max {
			max = e.Capacity
		}
	}
	return max
}

// BufferSize is the effective per-direction buffer size: one extra byte for
// the report ID prefix plus the largest capacity in the table.
func (t ReportTable) BufferSize() int {
	return 1 + t.maxCapacity()
}

// SelectReportID returns the entry with the smallest capacity that is still
// >= requiredLen, per the report-ID selector contract (C3): HID report IDs
// are fixed-size, so the smallest fit minimizes bytes on the wire.
func SelectReportID(table ReportTable, requiredLen int) (ReportEntry, error) {
	var best *ReportEntry
	for i := range table {
		e := table[i]
		if e.Capacity < requiredLen {
			continue
		}
		if best == nil || e.Capacity < best.Capacity {
			best = &e
		}
	}
	if best == nil {
		return ReportEntry{}, protocol.NewProtocolError(protocol.ErrSelectingReportID, "no report large enough for payload")
	}
	return *best, nil
}
