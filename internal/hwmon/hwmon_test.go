package hwmon_test

import (
	"testing"

	"codeberg.org/mutker/spbmctl/internal/errors"
	"codeberg.org/mutker/spbmctl/internal/hwmon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopOps struct{}

func (nopOps) Visible(hwmon.SensorType, hwmon.Attr, int) hwmon.Mode { return hwmon.NotExposed }
func (nopOps) Read(hwmon.SensorType, hwmon.Attr, int) (int64, error) {
	return 0, errors.New().New(hwmon.ErrUnsupported)
}
func (nopOps) ReadLabel(hwmon.SensorType, hwmon.Attr, int) (string, error) {
	return "", errors.New().New(hwmon.ErrUnsupported)
}

func TestLogRegistrarRejectsInvalidChip(t *testing.T) {
	registrar := hwmon.NewLogRegistrar()

	_, err := registrar.Register(hwmon.Chip{Name: "", Ops: nopOps{}})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, hwmon.ErrInvalidChip))

	_, err = registrar.Register(hwmon.Chip{Name: "chip", Ops: nil})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, hwmon.ErrInvalidChip))
}

func TestLogRegistrarUnregisterIdempotent(t *testing.T) {
	registrar := hwmon.NewLogRegistrar()

	dev, err := registrar.Register(hwmon.Chip{
		Name:     "chip",
		Ops:      nopOps{},
		Channels: []hwmon.ChannelInfo{{Type: hwmon.Power, Count: 1}},
	})
	require.NoError(t, err)

	dev.Unregister()
	dev.Unregister()
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "power", hwmon.Power.String())
	assert.Equal(t, "energy", hwmon.Energy.String())
	assert.Equal(t, "unknown", hwmon.SensorType(9).String())
	assert.Equal(t, "input", hwmon.Input.String())
	assert.Equal(t, "label", hwmon.Label.String())
}
