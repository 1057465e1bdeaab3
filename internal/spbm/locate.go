package spbm

import (
	"codeberg.org/mutker/spbmctl/internal/errors"
	"codeberg.org/mutker/spbmctl/internal/logger"
	"codeberg.org/mutker/spbmctl/internal/platform"
)

// LocateWindow selects the telemetry window from a device's declared
// resource list. The window is the memory resource at ordinal position
// windowResourceIndex (the second one); the device's primary memory
// resource belongs to other firmware state. This is a hardware
// contract, not a heuristic.
func LocateWindow(resources []platform.Resource) (uint64, error) {
	errFactory := errors.New()

	idx := 0
	for _, res := range resources {
		if res.Type != platform.ResourceMem {
			continue
		}

		if idx == windowResourceIndex {
			if res.Len != 0 && res.Len < RegionSize {
				logger.Warn().
					Uint64("declared_len", res.Len).
					Int("window_size", RegionSize).
					Msg("Telemetry resource smaller than expected window")
			}

			return res.Start, nil
		}
		idx++
	}

	return 0, errFactory.WithData(ErrResourceNotFound, idx)
}
