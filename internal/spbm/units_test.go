package spbm_test

import (
	"math"
	"testing"

	"codeberg.org/mutker/spbmctl/internal/spbm"
	"github.com/stretchr/testify/assert"
)

func TestUnitConversionExact(t *testing.T) {
	cases := []struct {
		raw  uint32
		want int64
	}{
		{0, 0},
		{1, 1000},
		{45000, 45000000},
		{math.MaxUint32, int64(math.MaxUint32) * 1000},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, spbm.PowerMicrowatts(tc.raw), "power conversion of %d", tc.raw)
		assert.Equal(t, tc.want, spbm.EnergyMicrojoules(tc.raw), "energy conversion of %d", tc.raw)
	}
}
