package hwmon

import (
	"sync"

	"codeberg.org/mutker/spbmctl/internal/errors"
	"codeberg.org/mutker/spbmctl/internal/logger"
)

// logRegistrar is a Registrar that only announces registrations through
// the logger. It stands in for a real sensor framework when spbmctl
// polls the chip directly instead of exporting it.
type logRegistrar struct{}

func NewLogRegistrar() Registrar {
	return &logRegistrar{}
}

func (*logRegistrar) Register(chip Chip) (Device, error) {
	errFactory := errors.New()

	if chip.Name == "" || chip.Ops == nil {
		return nil, errFactory.New(ErrInvalidChip)
	}

	for _, info := range chip.Channels {
		logger.Debug().
			Str("chip", chip.Name).
			Str("type", info.Type.String()).
			Int("channels", info.Count).
			Msg("Registered sensor channels")
	}

	return &logDevice{name: chip.Name}, nil
}

type logDevice struct {
	name string
	once sync.Once
}

func (d *logDevice) Unregister() {
	d.once.Do(func() {
		logger.Debug().Str("chip", d.name).Msg("Unregistered sensor chip")
	})
}
