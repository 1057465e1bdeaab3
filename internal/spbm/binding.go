package spbm

import (
	"codeberg.org/mutker/spbmctl/internal/errors"
	"codeberg.org/mutker/spbmctl/internal/hwmon"
	"codeberg.org/mutker/spbmctl/internal/logger"
	"codeberg.org/mutker/spbmctl/internal/platform"
)

// chipName is the name the chip registers under with the sensor
// framework.
const chipName = "spbm"

// Liveness thresholds. A sys_total of all-zeros or all-ones at bind
// time usually means the SPBM firmware is not publishing telemetry.
// These values are firmware-specific magic; treat them as advisory.
const (
	inactiveZero = 0
	inactiveOnes = 0xFFFFFFFF
)

// State is the lifecycle state of one device binding.
type State int

const (
	StateUnbound State = iota
	StateLocating
	StateMapped
	StateLive
	StateRegistered
	StateFailed
	StateUnregistered
)

func (s State) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateLocating:
		return "locating"
	case StateMapped:
		return "mapped"
	case StateLive:
		return "live"
	case StateRegistered:
		return "registered"
	case StateFailed:
		return "failed"
	case StateUnregistered:
		return "unregistered"
	default:
		return "unknown"
	}
}

// Matches reports whether the driver binds to the given device.
func Matches(dev platform.Device) bool {
	return dev.HID == DeviceID
}

// Binding associates one physical device with its mapped telemetry
// region and registered channels. Probe and Detach must be serialized
// by the host; queries through Ops are safe concurrently once the
// binding is registered.
type Binding struct {
	dev       platform.Device
	mapper    Mapper
	registrar hwmon.Registrar
	state     State
	region    *Region
	ops       *sensorOps
	sensor    hwmon.Device
}

// NewBinding creates an unbound binding for the given device.
func NewBinding(dev platform.Device, mapper Mapper, registrar hwmon.Registrar) *Binding {
	return &Binding{
		dev:       dev,
		mapper:    mapper,
		registrar: registrar,
		state:     StateUnbound,
	}
}

// State returns the current lifecycle state.
func (b *Binding) State() State {
	return b.state
}

// Ops returns the query interface of a registered binding, or nil
// before registration.
func (b *Binding) Ops() hwmon.Ops {
	if b.state != StateRegistered {
		return nil
	}

	return b.ops
}

// Snapshot reads every channel of one sensor type from a registered
// binding.
func (b *Binding) Snapshot(t hwmon.SensorType) ([]Reading, error) {
	errFactory := errors.New()

	if b.state != StateRegistered {
		return nil, errFactory.New(ErrNotRegistered)
	}

	return b.ops.snapshot(t)
}

// Probe runs the attach sequence: locate the telemetry window, map it,
// check liveness, and register the channels with the sensor framework.
// Any failure releases whatever was acquired and leaves the binding in
// StateFailed; the caller decides whether to retry with a fresh
// binding.
func (b *Binding) Probe() error {
	errFactory := errors.New()

	if b.state != StateUnbound {
		return errFactory.WithData(ErrAlreadyBound, b.state.String())
	}
	if !Matches(b.dev) {
		b.state = StateFailed
		return errFactory.WithData(ErrDeviceMismatch, b.dev.HID)
	}

	b.state = StateLocating
	base, err := LocateWindow(b.dev.Resources)
	if err != nil {
		b.fail()
		return err
	}

	region, err := NewRegion(b.mapper, base, RegionSize)
	if err != nil {
		b.fail()
		return err
	}
	b.region = region
	b.state = StateMapped

	b.checkLiveness(base)
	b.state = StateLive

	b.ops = &sensorOps{region: region}
	sensor, err := b.registrar.Register(hwmon.Chip{
		Name: chipName,
		Ops:  b.ops,
		Channels: []hwmon.ChannelInfo{
			{Type: hwmon.Power, Count: len(powerChannels)},
			{Type: hwmon.Energy, Count: len(energyChannels)},
		},
	})
	if err != nil {
		b.fail()
		return err
	}
	b.sensor = sensor
	b.state = StateRegistered

	logger.Info().
		Int("power_channels", len(powerChannels)).
		Int("energy_channels", len(energyChannels)).
		Msg("Registered telemetry channels")

	return nil
}

// checkLiveness performs the one-time sanity read of the total system
// power register. An inactive-looking value is advisory only; the
// binding proceeds either way.
func (b *Binding) checkLiveness(base uint64) {
	raw, err := b.region.Read32(regSysTotal)
	if err != nil {
		// Unreachable with the fixed window size; surface it anyway.
		logger.Warn().Err(err).Msg("Liveness read failed")
		return
	}

	if raw == inactiveZero || raw == inactiveOnes {
		logger.Warn().
			Uint32("sys_total", raw).
			Msg("Telemetry may be inactive")
		return
	}

	socPkg, _ := b.region.Read32(regSocPkg)
	cpuP, _ := b.region.Read32(regCPUP)
	gpuOut, _ := b.region.Read32(regGpuOut)
	logger.Info().
		Uint64("base", base).
		Uint32("sys_mw", raw).
		Uint32("soc_mw", socPkg).
		Uint32("cpu_p_mw", cpuP).
		Uint32("gpu_mw", gpuOut).
		Msg("Telemetry live")
}

// Detach tears the binding down: unregister, then unmap, in reverse
// order of acquisition. Safe to call more than once; a failed binding
// stays failed.
func (b *Binding) Detach() {
	if b.state == StateFailed || b.state == StateUnregistered {
		b.release()
		return
	}

	b.release()
	b.state = StateUnregistered
}

// fail releases everything acquired so far and marks the binding
// failed.
func (b *Binding) fail() {
	b.release()
	b.state = StateFailed
}

// release frees held resources unconditionally. Releasing an
// already-released or never-acquired resource is a no-op.
func (b *Binding) release() {
	if b.sensor != nil {
		b.sensor.Unregister()
		b.sensor = nil
	}
	if b.region != nil {
		if err := b.region.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to unmap telemetry region")
		}
		b.region = nil
	}
	b.ops = nil
}
