package validation

import "github.com/google/uuid"

// BlockResult is the terminal classification of one sampling block.
type BlockResult struct {
	Index  int
	Offset int64
	Status Status
}

// Report is the immutable outcome of one validation run, ordered by
// ascending block index regardless of the randomized processing order.
// Rendering it is the caller's concern.
type Report struct {
	RunID     uuid.UUID
	DriveSize int64
	BlockSize int64
	ReadOnly  bool

	Blocks []BlockResult

	// ValidatedSize is the size in bytes of the largest prefix of the
	// address space, starting at offset 0, all of whose sampled blocks
	// are Validated. Always 0 for read-only runs, which produce no
	// ground truth.
	ValidatedSize int64

	// RestoreFailures lists blocks whose original content could not be
	// written back. Empty when restoration succeeded or was skipped.
	RestoreFailures []RestoreFailure

	// Per-phase I/O timing. Phases that did not run are nil.
	SnapshotStats *IOStats
	WriteStats    *IOStats
	ReadbackStats *IOStats
	RestoreStats  *IOStats
}

// HasFailures reports whether any block ended in a state other than
// Validated (or ReadOK for read-only runs).
func (r *Report) HasFailures() bool {
	for _, b := range r.Blocks {
		switch b.Status {
		case StatusValidated:
		case StatusReadOK:
		default:
			return true
		}
	}
	return false
}

// CountByStatus tallies the classification sequence.
func (r *Report) CountByStatus() map[Status]int {
	counts := make(map[Status]int)
	for _, b := range r.Blocks {
		counts[b.Status]++
	}
	return counts
}

// ValidatedSize derives the usable size from an ascending-index-ordered
// classification sequence: the start offset of the first block that is not
// Validated, or driveSize when every block validated. A drive that fails
// at block k cannot be trusted from that address onward, even if a later
// block happened to match, so only the contiguous-from-start prefix is
// reported. When the very first sampling block fails, nothing at all is
// trusted: the validated size is 0, not the block's offset within area 0.
func ValidatedSize(blocks []BlockResult, driveSize int64) int64 {
	for i, b := range blocks {
		if b.Status != StatusValidated {
			if i == 0 {
				return 0
			}
			return b.Offset
		}
	}
	return driveSize
}
