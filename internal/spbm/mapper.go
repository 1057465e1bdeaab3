package spbm

import (
	"os"

	"codeberg.org/mutker/spbmctl/internal/errors"
	"golang.org/x/sys/unix"
)

const defaultMemDevice = "/dev/mem"

// devMemMapper maps physical memory windows read-only through a memory
// character device.
type devMemMapper struct {
	path string
}

// NewDevMemMapper returns a Mapper backed by the given memory device,
// or /dev/mem when path is empty.
func NewDevMemMapper(path string) Mapper {
	if path == "" {
		path = defaultMemDevice
	}

	return &devMemMapper{path: path}
}

func (m *devMemMapper) Map(base uint64, size int) (Mapping, error) {
	errFactory := errors.New()

	f, err := os.OpenFile(m.path, os.O_RDONLY|unix.O_SYNC, 0)
	if err != nil {
		return nil, errFactory.Wrap(ErrMapFailed, err)
	}
	defer f.Close()

	// mmap offsets must be page-aligned; the window base need not be.
	pageSize := uint64(unix.Getpagesize())
	alignedBase := base &^ (pageSize - 1)
	skew := int(base - alignedBase)

	data, err := unix.Mmap(int(f.Fd()), int64(alignedBase), size+skew,
		unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errFactory.Wrap(ErrMapFailed, err)
	}

	return &devMemMapping{data: data, skew: skew}, nil
}

type devMemMapping struct {
	data []byte
	skew int
}

func (m *devMemMapping) Bytes() []byte {
	if m.data == nil {
		return nil
	}

	return m.data[m.skew:]
}

func (m *devMemMapping) Close() error {
	if m.data == nil {
		return nil
	}

	data := m.data
	m.data = nil

	return unix.Munmap(data)
}

// bufferMapping adapts an in-memory byte slice to the Mapping
// interface. Used by tests and by hosts that expose the window through
// something other than a memory device.
type bufferMapping struct {
	data []byte
}

// NewBufferMapper returns a Mapper whose mappings are views over buf.
func NewBufferMapper(buf []byte) Mapper {
	return &bufferMapper{buf: buf}
}

type bufferMapper struct {
	buf []byte
}

func (m *bufferMapper) Map(_ uint64, size int) (Mapping, error) {
	errFactory := errors.New()

	if size > len(m.buf) {
		return nil, errFactory.WithData(ErrMapFailed, size)
	}

	return &bufferMapping{data: m.buf[:size]}, nil
}

func (m *bufferMapping) Bytes() []byte {
	return m.data
}

func (m *bufferMapping) Close() error {
	m.data = nil
	return nil
}
