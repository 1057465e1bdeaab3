package spbm

import "codeberg.org/mutker/spbmctl/internal/errors"

const (
	// Discovery and mapping errors
	ErrResourceNotFound = errors.ErrorCode("spbm_resource_not_found")
	ErrMapFailed        = errors.ErrorCode("spbm_map_failed")
	ErrUnmapFailed      = errors.ErrorCode("spbm_unmap_failed")

	// Region access errors
	ErrOutOfBounds   = errors.ErrorCode("spbm_read_out_of_bounds")
	ErrUnalignedRead = errors.ErrorCode("spbm_unaligned_read")
	ErrRegionClosed  = errors.ErrorCode("spbm_region_closed")

	// Lifecycle errors
	ErrDeviceMismatch = errors.ErrorCode("spbm_device_mismatch")
	ErrAlreadyBound   = errors.ErrorCode("spbm_already_bound")
	ErrNotRegistered  = errors.ErrorCode("spbm_not_registered")
)
