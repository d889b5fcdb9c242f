package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name      string
		driveSize int64
		numAreas  int
		blockSize int64
		align     int64
	}{
		{name: "zero areas", driveSize: 1 << 20, numAreas: 0, blockSize: 4096},
		{name: "negative areas", driveSize: 1 << 20, numAreas: -3, blockSize: 4096},
		{name: "zero block size", driveSize: 1 << 20, numAreas: 4, blockSize: 0},
		{name: "negative block size", driveSize: 1 << 20, numAreas: 4, blockSize: -1},
		{name: "block larger than area", driveSize: 16 * 4096, numAreas: 16, blockSize: 8192},
		{name: "drive smaller than areas times block", driveSize: 4096, numAreas: 4, blockSize: 4096},
		{name: "zero drive size", driveSize: 0, numAreas: 1, blockSize: 512},
		{name: "block not multiple of alignment", driveSize: 1 << 20, numAreas: 4, blockSize: 1000, align: 512},
		{name: "alignment larger than area", driveSize: 8 * 1024, numAreas: 8, blockSize: 1024, align: 4096},
		{name: "negative alignment", driveSize: 1 << 20, numAreas: 4, blockSize: 4096, align: -512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := New(tt.driveSize, tt.numAreas, tt.blockSize, tt.align)
			assert.ErrorIs(t, err, ErrConfig)
			assert.Nil(t, plan)
		})
	}
}

func TestNewPartitionsAddressSpace(t *testing.T) {
	tests := []struct {
		name      string
		driveSize int64
		numAreas  int
		blockSize int64
		align     int64
	}{
		{name: "even split", driveSize: 1 << 20, numAreas: 16, blockSize: 4096, align: 512},
		{name: "remainder absorbed by last area", driveSize: 1<<20 + 12345, numAreas: 7, blockSize: 4096, align: 512},
		{name: "single area", driveSize: 64 * 1024, numAreas: 1, blockSize: 4096, align: 4096},
		{name: "no alignment requirement", driveSize: 999_999, numAreas: 9, blockSize: 1000, align: 0},
		{name: "block fills area exactly", driveSize: 4 * 4096, numAreas: 4, blockSize: 4096, align: 4096},
		{name: "many areas", driveSize: 64 << 30, numAreas: 576, blockSize: 4096, align: 4096},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := New(tt.driveSize, tt.numAreas, tt.blockSize, tt.align)
			require.NoError(t, err)
			require.Len(t, plan.Offsets, tt.numAreas)

			areaWidth := tt.driveSize / int64(tt.numAreas)
			for i, off := range plan.Offsets {
				assert.GreaterOrEqual(t, off, int64(0), "offset %d", i)
				assert.LessOrEqual(t, off+tt.blockSize, tt.driveSize, "offset %d overruns drive", i)
				if i > 0 {
					assert.Greater(t, off, plan.Offsets[i-1], "offsets must be strictly increasing")
				}
				if tt.align > 0 {
					assert.Zero(t, off%tt.align, "offset %d not aligned", i)
				}

				// Each sampling block must sit inside its own area, where
				// the last area runs to the end of the drive.
				areaStart := int64(i) * areaWidth
				areaEnd := int64(i+1) * areaWidth
				if i == tt.numAreas-1 {
					areaEnd = tt.driveSize
				}
				assert.GreaterOrEqual(t, off, areaStart, "block %d before its area", i)
				assert.LessOrEqual(t, off+tt.blockSize, areaEnd, "block %d past its area", i)
			}
		})
	}
}

func TestNewDegenerateSingleArea(t *testing.T) {
	plan, err := New(4096, 1, 4096, 4096)
	require.NoError(t, err)
	require.Equal(t, 1, plan.NumBlocks())
	assert.Equal(t, int64(0), plan.Offsets[0])
}
