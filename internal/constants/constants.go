// Package constants holds protocol-level constants shared by the socket,
// handshake and wire codec packages.
package constants

// USB identification, per the device's descriptor.
const (
	USBVendorID          = 0x2E8A
	USBProductID         = 0x000F
	USBUsagePage         = 0xFF00
	USBUsageID           = 0x0001
	USBManufacturerName  = "Iotzio Project"
	USBProductNamePrefix = "Iotzio "
)

// Protocol framing constants. These are part of the wire contract and must
// not change without bumping ProtocolVersion.
const (
	CommandCount           = 19
	HostReportHeaderSize   = 7
	DeviceReportHeaderSize = 1
	ProtocolInfoReportID   = 0xFF
	ProtocolInfoBufferSize = 1025
	ProtocolVersion        = 1
)

// BusBufferSize is the maximum number of bytes the device will buffer for a
// single-shot I2C transaction; transfers larger than this must use the
// chunked Start/Chunk/Stop command sequence.
const BusBufferSize = 512
