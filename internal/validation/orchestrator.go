// Package validation implements the drive validation engine: snapshot the
// sampling blocks, overwrite them with random payloads in random order,
// read everything back through an uncached handle, classify each block,
// derive the validated size, and restore the original content.
package validation

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-drivecap/internal/device"
	"github.com/deploymenttheory/go-drivecap/internal/geometry"
)

// ErrSnapshotIncomplete aborts a destructive run whose pre-test capture
// did not cover every sampling block. Writing a block whose original
// content is unknown would make restoration impossible, so nothing is
// overwritten in that case.
var ErrSnapshotIncomplete = errors.New("snapshot capture incomplete, no blocks were written")

// Phase identifies a stage of the run for progress reporting.
type Phase int

const (
	PhaseSnapshot Phase = iota
	PhaseWrite
	PhaseReadback
	PhaseRestore
)

func (p Phase) String() string {
	switch p {
	case PhaseSnapshot:
		return "snapshot"
	case PhaseWrite:
		return "write"
	case PhaseReadback:
		return "readback"
	case PhaseRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// ProgressFunc receives per-block progress for each phase. done counts
// processed blocks, total is the phase's block count.
type ProgressFunc func(phase Phase, done, total int)

// Options tune a validation run.
type Options struct {
	// ReadOnly verifies reachability only: every block is read once and
	// nothing is ever written. Reduced guarantee, see StatusReadOK.
	ReadOnly bool
	// SkipRestore disables both snapshot capture and restoration. The
	// sampled blocks keep the random test payload afterwards.
	SkipRestore bool
	// Permutation overrides the block processing order. Nil selects a
	// uniformly random permutation.
	Permutation PermutationSource
	// Progress, when non-nil, is invoked after each processed block.
	Progress ProgressFunc
}

// Orchestrator drives one validation run over a device: capture, write,
// readback, classify, restore. Strictly sequential, single-threaded; the
// device handle is borrowed and never closed here.
type Orchestrator struct {
	dev  device.Device
	plan *geometry.Plan
	opts Options
}

// NewOrchestrator prepares a run of plan against dev.
func NewOrchestrator(dev device.Device, plan *geometry.Plan, opts Options) *Orchestrator {
	if opts.Permutation == nil {
		opts.Permutation = RandomPermutation{}
	}
	return &Orchestrator{dev: dev, plan: plan, opts: opts}
}

// Run executes the state machine and returns the finalized report.
//
// Destructive runs snapshot every sampling block before the first write;
// any capture failure aborts with ErrSnapshotIncomplete. Blocks are then
// processed in permuted order: write a fresh random payload, read it back,
// classify. A single block's I/O failure is recorded as its terminal
// status and the scan continues. Restoration runs last, after the report
// content is final, so a restore failure can never mask a test result.
func (o *Orchestrator) Run() (*Report, error) {
	n := o.plan.NumBlocks()
	statuses := make([]Status, n)

	report := &Report{
		RunID:     uuid.New(),
		DriveSize: o.plan.DriveSize,
		BlockSize: o.plan.BlockSize,
		ReadOnly:  o.opts.ReadOnly,
	}

	var snapshots *SnapshotStore
	if !o.opts.ReadOnly && !o.opts.SkipRestore {
		snapshots = NewSnapshotStore(o.plan.BlockSize, o.dev.Alignment())
		report.SnapshotStats = &IOStats{}
		for i, offset := range o.plan.Offsets {
			start := time.Now()
			err := snapshots.Capture(o.dev, i, offset)
			report.SnapshotStats.Add(time.Since(start))
			o.progress(PhaseSnapshot, i+1, n)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSnapshotIncomplete, err)
			}
		}
	}

	order := o.opts.Permutation.Perm(n)
	if err := checkPermutation(order, n); err != nil {
		return nil, err
	}

	if o.opts.ReadOnly {
		o.runReadOnly(order, statuses, report)
	} else {
		if err := o.runWriteVerify(order, statuses, report); err != nil {
			return nil, err
		}
	}

	// Processing order was randomized; the report is always in ascending
	// physical order.
	report.Blocks = make([]BlockResult, n)
	for i, offset := range o.plan.Offsets {
		report.Blocks[i] = BlockResult{Index: i, Offset: offset, Status: statuses[i]}
	}
	if !o.opts.ReadOnly {
		report.ValidatedSize = ValidatedSize(report.Blocks, o.plan.DriveSize)
	}

	if snapshots != nil {
		report.RestoreStats = &IOStats{}
		report.RestoreFailures = snapshots.RestoreAll(o.dev, report.RestoreStats, func(done, total int) {
			o.progress(PhaseRestore, done, total)
		})
	}
	return report, nil
}

// checkPermutation verifies order is a true permutation of [0, n). A
// defective order would leave blocks permanently Untested or process a
// block twice, breaking the one-terminal-status-per-block invariant.
func checkPermutation(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("permutation source returned %d indices, want %d", len(order), n)
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n {
			return fmt.Errorf("permutation source returned out-of-range index %d", idx)
		}
		if seen[idx] {
			return fmt.Errorf("permutation source repeated index %d", idx)
		}
		seen[idx] = true
	}
	return nil
}

// runReadOnly reads each block once. With nothing written there is no
// expected content, so a successful read only proves the address is
// reachable.
func (o *Orchestrator) runReadOnly(order []int, statuses []Status, report *Report) {
	report.ReadbackStats = &IOStats{}
	buf := device.AlignedBlock(int(o.plan.BlockSize), o.dev.Alignment())
	for done, idx := range order {
		start := time.Now()
		err := o.dev.ReadAt(buf, o.plan.Offsets[idx])
		report.ReadbackStats.Add(time.Since(start))
		if err != nil {
			statuses[idx] = StatusIOError
		} else {
			statuses[idx] = StatusReadOK
		}
		o.progress(PhaseReadback, done+1, len(order))
	}
}

// runWriteVerify writes a fresh random payload to each block in permuted
// order and immediately reads it back through the uncached device handle.
func (o *Orchestrator) runWriteVerify(order []int, statuses []Status, report *Report) error {
	report.WriteStats = &IOStats{}
	report.ReadbackStats = &IOStats{}
	readBuf := device.AlignedBlock(int(o.plan.BlockSize), o.dev.Alignment())
	for done, idx := range order {
		payload, err := o.payload()
		if err != nil {
			return err
		}
		offset := o.plan.Offsets[idx]

		start := time.Now()
		err = o.dev.WriteAt(payload, offset)
		report.WriteStats.Add(time.Since(start))
		if err != nil {
			// One block's hardware failure must not abort the scan.
			statuses[idx] = StatusIOError
			o.progress(PhaseWrite, done+1, len(order))
			continue
		}

		start = time.Now()
		err = o.dev.ReadAt(readBuf, offset)
		report.ReadbackStats.Add(time.Since(start))
		switch {
		case err != nil:
			statuses[idx] = StatusIOError
		case bytes.Equal(readBuf, payload):
			statuses[idx] = StatusValidated
		default:
			statuses[idx] = StatusNoStorage
		}
		o.progress(PhaseWrite, done+1, len(order))
	}
	return nil
}

// payload produces a fresh unpredictable block, distinct from any prior
// device content with overwhelming probability.
func (o *Orchestrator) payload() ([]byte, error) {
	buf := device.AlignedBlock(int(o.plan.BlockSize), o.dev.Alignment())
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generating payload: %w", err)
	}
	return buf, nil
}

func (o *Orchestrator) progress(phase Phase, done, total int) {
	if o.opts.Progress != nil {
		o.opts.Progress(phase, done, total)
	}
}
