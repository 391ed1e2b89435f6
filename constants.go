package iotzio

import "github.com/iotzio-project/iotzio-go/internal/constants"

// Re-export protocol constants for public API consumers.
const (
	CommandCount           = constants.CommandCount
	HostReportHeaderSize   = constants.HostReportHeaderSize
	DeviceReportHeaderSize = constants.DeviceReportHeaderSize
	ProtocolInfoReportID   = constants.ProtocolInfoReportID
	ProtocolInfoBufferSize = constants.ProtocolInfoBufferSize
	ProtocolVersion        = constants.ProtocolVersion
	BusBufferSize          = constants.BusBufferSize

	USBVendorID          = constants.USBVendorID
	USBProductID         = constants.USBProductID
	USBUsagePage         = constants.USBUsagePage
	USBUsageID           = constants.USBUsageID
	USBManufacturerName  = constants.USBManufacturerName
	USBProductNamePrefix = constants.USBProductNamePrefix
)
