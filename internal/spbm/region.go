package spbm

import (
	"unsafe"

	"codeberg.org/mutker/spbmctl/internal/errors"
)

// Mapping is an established read-only view over device memory.
type Mapping interface {
	// Bytes returns the mapped window. The slice stays valid until
	// Close.
	Bytes() []byte
	// Close releases the mapping. Closing an already-closed mapping is
	// a no-op.
	Close() error
}

// Mapper establishes read-only mappings of physical memory windows.
type Mapper interface {
	Map(base uint64, size int) (Mapping, error)
}

// Region is a bounds-checked read-only view over the mapped telemetry
// window. It is mapped exactly once per binding, never written, and
// never resized. Read32 is safe for concurrent use without locking: a
// read is a single aligned load from memory only the firmware mutates.
type Region struct {
	mapping Mapping
	buf     []byte
}

// NewRegion maps the window at base and wraps it in a Region.
func NewRegion(mapper Mapper, base uint64, size int) (*Region, error) {
	errFactory := errors.New()

	mapping, err := mapper.Map(base, size)
	if err != nil {
		return nil, errFactory.Wrap(ErrMapFailed, err)
	}

	buf := mapping.Bytes()
	if len(buf) < size {
		mapping.Close()
		return nil, errFactory.WithData(ErrMapFailed, len(buf))
	}

	return &Region{mapping: mapping, buf: buf[:size]}, nil
}

// Read32 performs one aligned 32-bit load at offset and returns the
// register value the firmware holds at call time. No caching, no
// coalescing.
func (r *Region) Read32(offset uint32) (uint32, error) {
	errFactory := errors.New()

	if r.buf == nil {
		return 0, errFactory.New(ErrRegionClosed)
	}
	if uint64(offset)+4 > uint64(len(r.buf)) {
		return 0, errFactory.WithData(ErrOutOfBounds, offset)
	}
	if offset%4 != 0 {
		return 0, errFactory.WithData(ErrUnalignedRead, offset)
	}

	// A single word-sized load, matching what the firmware contract
	// requires for registers it updates in place.
	return *(*uint32)(unsafe.Pointer(&r.buf[offset])), nil
}

// Size returns the byte size of the mapped window.
func (r *Region) Size() int {
	return len(r.buf)
}

// Close releases the underlying mapping. Safe to call more than once.
func (r *Region) Close() error {
	errFactory := errors.New()

	if r.mapping == nil {
		return nil
	}

	mapping := r.mapping
	r.mapping = nil
	r.buf = nil

	if err := mapping.Close(); err != nil {
		return errFactory.Wrap(ErrUnmapFailed, err)
	}

	return nil
}
