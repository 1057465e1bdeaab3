package spbm_test

import (
	"encoding/binary"
	"testing"

	"codeberg.org/mutker/spbmctl/internal/errors"
	"codeberg.org/mutker/spbmctl/internal/spbm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegion(t *testing.T, buf []byte) *spbm.Region {
	t.Helper()

	region, err := spbm.NewRegion(spbm.NewBufferMapper(buf), 0, len(buf))
	require.NoError(t, err)
	t.Cleanup(func() { region.Close() })

	return region
}

func TestRegionRead32(t *testing.T) {
	buf := make([]byte, spbm.RegionSize)
	binary.LittleEndian.PutUint32(buf[0x300:], 12345)
	binary.LittleEndian.PutUint32(buf[0xFFC:], 0xDEADBEEF)

	region := newTestRegion(t, buf)

	raw, err := region.Read32(0x300)
	require.NoError(t, err)
	assert.Equal(t, uint32(12345), raw)

	raw, err = region.Read32(0xFFC)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), raw)
}

func TestRegionReadReflectsCurrentValue(t *testing.T) {
	buf := make([]byte, spbm.RegionSize)
	region := newTestRegion(t, buf)

	binary.LittleEndian.PutUint32(buf[0x304:], 100)
	raw, err := region.Read32(0x304)
	require.NoError(t, err)
	assert.Equal(t, uint32(100), raw)

	// Simulate the firmware updating the register in place.
	binary.LittleEndian.PutUint32(buf[0x304:], 200)
	raw, err = region.Read32(0x304)
	require.NoError(t, err)
	assert.Equal(t, uint32(200), raw, "Read must not cache")
}

func TestRegionReadOutOfBounds(t *testing.T) {
	region := newTestRegion(t, make([]byte, spbm.RegionSize))

	_, err := region.Read32(spbm.RegionSize)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, spbm.ErrOutOfBounds))

	// The last word still fits; one byte past it does not.
	_, err = region.Read32(spbm.RegionSize - 4)
	assert.NoError(t, err)

	_, err = region.Read32(spbm.RegionSize - 3)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, spbm.ErrOutOfBounds))
}

func TestRegionReadUnaligned(t *testing.T) {
	region := newTestRegion(t, make([]byte, spbm.RegionSize))

	_, err := region.Read32(0x301)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, spbm.ErrUnalignedRead))
}

func TestRegionCloseIdempotent(t *testing.T) {
	region := newTestRegion(t, make([]byte, spbm.RegionSize))

	require.NoError(t, region.Close())
	require.NoError(t, region.Close(), "Double close must be a no-op")

	_, err := region.Read32(0x300)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, spbm.ErrRegionClosed))
}

func TestRegionConcurrentReads(t *testing.T) {
	buf := make([]byte, spbm.RegionSize)
	binary.LittleEndian.PutUint32(buf[0x300:], 42)
	region := newTestRegion(t, buf)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 1000; j++ {
				raw, err := region.Read32(0x300)
				if err != nil || raw != 42 {
					t.Errorf("concurrent read: raw=%d err=%v", raw, err)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}

func TestRegionMapTooSmall(t *testing.T) {
	_, err := spbm.NewRegion(spbm.NewBufferMapper(make([]byte, 16)), 0, spbm.RegionSize)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, spbm.ErrMapFailed))
}
