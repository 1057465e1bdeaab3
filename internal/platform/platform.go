// Package platform enumerates firmware-described devices and the
// hardware resources they declare. It is the discovery boundary the
// telemetry driver locates its register window through.
package platform

import "codeberg.org/mutker/spbmctl/internal/errors"

// ResourceType classifies one declared hardware resource.
type ResourceType int

const (
	ResourceMem ResourceType = iota
	ResourceIO
	ResourceIRQ
)

func (t ResourceType) String() string {
	switch t {
	case ResourceMem:
		return "mem"
	case ResourceIO:
		return "io"
	case ResourceIRQ:
		return "irq"
	default:
		return "unknown"
	}
}

// Resource is one entry of a device's declared resource list, in
// declaration order. Len is zero for interrupt resources.
type Resource struct {
	Type  ResourceType
	Start uint64
	Len   uint64
}

// Device is one enumerated firmware device.
type Device struct {
	// HID is the firmware hardware identifier, e.g. "NVDA8800".
	HID string
	// Path is the bus path the device was enumerated from.
	Path string
	// Resources holds the declared resources in firmware order.
	Resources []Resource
}

// Bus enumerates the devices of one firmware bus.
type Bus interface {
	Devices() ([]Device, error)
}

const (
	ErrScanBus          = errors.ErrorCode("platform_scan_bus_failed")
	ErrReadResources    = errors.ErrorCode("platform_read_resources_failed")
	ErrMalformedEntry   = errors.ErrorCode("platform_malformed_resource_entry")
	ErrDeviceNotOnBus   = errors.ErrorCode("platform_device_not_on_bus")
	ErrUnknownResource  = errors.ErrorCode("platform_unknown_resource_type")
	ErrInvalidBusPath   = errors.ErrorCode("platform_invalid_bus_path")
	ErrResourceOverflow = errors.ErrorCode("platform_resource_range_overflow")
)
