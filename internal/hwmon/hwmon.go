// Package hwmon models the read-only sensor interface the telemetry
// driver publishes its channels through. The host environment supplies
// a Registrar; the driver supplies the Ops and channel layout. Values
// follow the hwmon unit convention: microwatts for power channels,
// microjoules for energy channels.
package hwmon

import "codeberg.org/mutker/spbmctl/internal/errors"

// SensorType identifies the measurement category of a channel.
type SensorType int

const (
	Power SensorType = iota
	Energy
)

func (t SensorType) String() string {
	switch t {
	case Power:
		return "power"
	case Energy:
		return "energy"
	default:
		return "unknown"
	}
}

// Attr identifies which attribute of a channel a query targets.
type Attr int

const (
	Input Attr = iota
	Label
)

func (a Attr) String() string {
	switch a {
	case Input:
		return "input"
	case Label:
		return "label"
	default:
		return "unknown"
	}
}

// Mode is the visibility of a channel attribute. Channels are either
// hidden or readable; nothing this package models is ever writable.
type Mode int

const (
	NotExposed Mode = 0
	ReadOnly   Mode = 0o444
)

// Ops answers attribute queries for a registered chip. Read and
// ReadLabel return ErrUnsupported for any type/attr/channel combination
// Visible does not report as exposed. Implementations must be safe for
// concurrent calls.
type Ops interface {
	Visible(t SensorType, attr Attr, ch int) Mode
	Read(t SensorType, attr Attr, ch int) (int64, error)
	ReadLabel(t SensorType, attr Attr, ch int) (string, error)
}

// ChannelInfo declares how many channels of one sensor type a chip
// exposes.
type ChannelInfo struct {
	Type  SensorType
	Count int
}

// Chip describes one sensor device to be registered.
type Chip struct {
	Name     string
	Ops      Ops
	Channels []ChannelInfo
}

// Registrar publishes a chip to the consumer framework.
type Registrar interface {
	Register(chip Chip) (Device, error)
}

// Device is the handle for a registered chip. Unregister is idempotent.
type Device interface {
	Unregister()
}

const (
	ErrUnsupported    = errors.ErrorCode("hwmon_unsupported")
	ErrRegisterFailed = errors.ErrorCode("hwmon_register_failed")
	ErrInvalidChip    = errors.ErrorCode("hwmon_invalid_chip")
)
