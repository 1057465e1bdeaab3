package spbm

import (
	"codeberg.org/mutker/spbmctl/internal/errors"
	"codeberg.org/mutker/spbmctl/internal/hwmon"
)

// sensorOps answers hwmon queries for one bound telemetry region. It
// holds no mutable state; every query is one register read plus one
// unit conversion, so concurrent calls need no locking.
type sensorOps struct {
	region *Region
}

var _ hwmon.Ops = (*sensorOps)(nil)

func (s *sensorOps) Visible(t hwmon.SensorType, attr hwmon.Attr, ch int) hwmon.Mode {
	table := Channels(t)
	if table == nil || ch < 0 || ch >= len(table) {
		return hwmon.NotExposed
	}
	if attr != hwmon.Input && attr != hwmon.Label {
		return hwmon.NotExposed
	}

	return hwmon.ReadOnly
}

func (s *sensorOps) Read(t hwmon.SensorType, attr hwmon.Attr, ch int) (int64, error) {
	errFactory := errors.New()

	if attr != hwmon.Input {
		return 0, errFactory.New(hwmon.ErrUnsupported)
	}

	table := Channels(t)
	if table == nil || ch < 0 || ch >= len(table) {
		return 0, errFactory.New(hwmon.ErrUnsupported)
	}

	raw, err := s.region.Read32(table[ch].Offset)
	if err != nil {
		return 0, err
	}

	switch t {
	case hwmon.Power:
		return PowerMicrowatts(raw), nil
	case hwmon.Energy:
		return EnergyMicrojoules(raw), nil
	default:
		return 0, errFactory.New(hwmon.ErrUnsupported)
	}
}

func (s *sensorOps) ReadLabel(t hwmon.SensorType, _ hwmon.Attr, ch int) (string, error) {
	errFactory := errors.New()

	table := Channels(t)
	if table == nil || ch < 0 || ch >= len(table) {
		return "", errFactory.New(hwmon.ErrUnsupported)
	}

	return table[ch].Label, nil
}

// Reading is one labeled channel value in micro-units.
type Reading struct {
	Label string
	Value int64
}

// snapshot reads every channel of one sensor type in table order. Pure
// composition of single reads; nothing is cached.
func (s *sensorOps) snapshot(t hwmon.SensorType) ([]Reading, error) {
	table := Channels(t)
	readings := make([]Reading, 0, len(table))

	for ch := range table {
		value, err := s.Read(t, hwmon.Input, ch)
		if err != nil {
			return nil, err
		}

		readings = append(readings, Reading{Label: table[ch].Label, Value: value})
	}

	return readings, nil
}
