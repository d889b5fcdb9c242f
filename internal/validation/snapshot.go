package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/deploymenttheory/go-drivecap/internal/device"
)

// SnapshotStore holds the original content of every sampling block so it
// can be written back after a destructive run. Content lives in memory
// only; a crash mid-run loses it, which is why the CLI demands explicit
// acknowledgment before a destructive run.
type SnapshotStore struct {
	blockSize int64
	align     int64
	content   map[int][]byte
	offsets   map[int]int64
}

// RestoreFailure records a sampling block whose original content could not
// be written back. The data at that offset is in an unknown state and must
// be surfaced to the user.
type RestoreFailure struct {
	Index  int
	Offset int64
	Err    error
}

func (f RestoreFailure) String() string {
	return fmt.Sprintf("block %d (offset %d): %v", f.Index, f.Offset, f.Err)
}

// NewSnapshotStore creates an empty store for blocks of blockSize bytes
// read with the given device alignment.
func NewSnapshotStore(blockSize, align int64) *SnapshotStore {
	return &SnapshotStore{
		blockSize: blockSize,
		align:     align,
		content:   make(map[int][]byte),
		offsets:   make(map[int]int64),
	}
}

// Capture reads the block's current content from dev and files it under
// index. It must be called before the first write to that block; a failure
// here makes the whole run abort before anything is overwritten.
func (s *SnapshotStore) Capture(dev device.Device, index int, offset int64) error {
	buf := device.AlignedBlock(int(s.blockSize), s.align)
	if err := dev.ReadAt(buf, offset); err != nil {
		return fmt.Errorf("capturing block %d: %w", index, err)
	}
	s.content[index] = buf
	s.offsets[index] = offset
	return nil
}

// Len returns the number of captured blocks.
func (s *SnapshotStore) Len() int {
	return len(s.content)
}

// Content returns the captured bytes for index, or nil if the block was
// never captured.
func (s *SnapshotStore) Content(index int) []byte {
	return s.content[index]
}

// RestoreAll writes every captured block back to its offset in ascending
// index order. Restoration is best-effort and independent per block: a
// failed write is recorded and the remaining blocks are still attempted.
// stats and progress may be nil.
func (s *SnapshotStore) RestoreAll(dev device.Device, stats *IOStats, progress func(done, total int)) []RestoreFailure {
	indices := make([]int, 0, len(s.content))
	for idx := range s.content {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	var failures []RestoreFailure
	for done, idx := range indices {
		offset := s.offsets[idx]
		start := time.Now()
		err := dev.WriteAt(s.content[idx], offset)
		if stats != nil {
			stats.Add(time.Since(start))
		}
		if err != nil {
			failures = append(failures, RestoreFailure{Index: idx, Offset: offset, Err: err})
		}
		if progress != nil {
			progress(done+1, len(indices))
		}
	}
	return failures
}
