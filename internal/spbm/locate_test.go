package spbm_test

import (
	"testing"

	"codeberg.org/mutker/spbmctl/internal/errors"
	"codeberg.org/mutker/spbmctl/internal/platform"
	"codeberg.org/mutker/spbmctl/internal/spbm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateWindowSelectsSecondMemResource(t *testing.T) {
	resources := []platform.Resource{
		{Type: platform.ResourceMem, Start: 0xA000_0000, Len: 0x10000},
		{Type: platform.ResourceIO, Start: 0x60, Len: 0x10},
		{Type: platform.ResourceMem, Start: 0xC000_0000, Len: 0x1000},
		{Type: platform.ResourceMem, Start: 0xD000_0000, Len: 0x1000},
	}

	base, err := spbm.LocateWindow(resources)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xC000_0000), base,
		"Must select the second memory resource, skipping io entries")
}

func TestLocateWindowSingleMemResource(t *testing.T) {
	resources := []platform.Resource{
		{Type: platform.ResourceMem, Start: 0xA000_0000, Len: 0x10000},
		{Type: platform.ResourceIRQ, Start: 9},
	}

	_, err := spbm.LocateWindow(resources)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, spbm.ErrResourceNotFound))
}

func TestLocateWindowNoResources(t *testing.T) {
	_, err := spbm.LocateWindow(nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, spbm.ErrResourceNotFound))
}
