// Package geometry partitions a drive's address space into sampling areas
// and derives the block offsets the validation engine probes. It is pure:
// no I/O, fully determined by its inputs.
package geometry

import (
	"errors"
	"fmt"
)

// ErrConfig marks an invalid geometry request. It is always reported
// before any device I/O happens.
var ErrConfig = errors.New("invalid geometry")

// Plan is the sampling layout for one validation run. Offsets are the
// sampling-block start addresses in ascending physical order, one per
// area, each aligned to the device's I/O alignment.
type Plan struct {
	DriveSize int64
	BlockSize int64
	Offsets   []int64
}

// NumBlocks returns the number of sampling blocks in the plan.
func (p *Plan) NumBlocks() int {
	return len(p.Offsets)
}

// New divides [0, driveSize) into numAreas contiguous areas of width
// driveSize/numAreas, the last area absorbing the remainder, and places
// one blockSize-byte sampling block at the end of each area, aligned down
// to align. align of 0 means no alignment requirement.
func New(driveSize int64, numAreas int, blockSize, align int64) (*Plan, error) {
	if numAreas < 1 {
		return nil, fmt.Errorf("%w: number of areas must be at least 1, got %d", ErrConfig, numAreas)
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: block size must be positive, got %d", ErrConfig, blockSize)
	}
	if align < 0 {
		return nil, fmt.Errorf("%w: alignment must not be negative, got %d", ErrConfig, align)
	}
	if align > 0 && blockSize%align != 0 {
		return nil, fmt.Errorf("%w: block size %d is not a multiple of the device alignment %d", ErrConfig, blockSize, align)
	}
	areaWidth := driveSize / int64(numAreas)
	if blockSize > areaWidth {
		return nil, fmt.Errorf("%w: block size %d exceeds area size %d (drive %d bytes / %d areas)",
			ErrConfig, blockSize, areaWidth, driveSize, numAreas)
	}
	if align > areaWidth {
		return nil, fmt.Errorf("%w: device alignment %d exceeds area size %d", ErrConfig, align, areaWidth)
	}

	offsets := make([]int64, numAreas)
	for i := 0; i < numAreas; i++ {
		areaEnd := int64(i+1) * areaWidth
		if i == numAreas-1 {
			areaEnd = driveSize
		}
		off := areaEnd - blockSize
		if align > 0 {
			off -= off % align
		}
		offsets[i] = off
	}
	return &Plan{DriveSize: driveSize, BlockSize: blockSize, Offsets: offsets}, nil
}
